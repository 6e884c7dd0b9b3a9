// Package geocache implements the persisted content-addressed geocode cache.
//
// Each entry maps a fingerprint of (address text, provider identifier) to the
// outcome of a single provider lookup. A nil value is a cached "looked up,
// not found" outcome, which is distinct from the key being absent. The cache
// is persisted as a JSON object keyed by fingerprint, with entries either
// null or {"lat": ..., "lon": ..., "ele": ...}.
package geocache

import (
	"crypto/md5" //nolint:gosec // content addressing, not authentication
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/petitlyon/cartomat/internal/models"
)

// Fingerprint derives the cache key for one (address, provider) lookup.
// It hashes the UTF-8 bytes of the address text concatenated with the
// provider identifier, so the same address cached under two providers never
// aliases, and re-running the pipeline reproduces identical keys.
func Fingerprint(address, providerID string) string {
	sum := md5.Sum([]byte(address + providerID)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// Cache is the in-memory mapping mutated during one enrichment batch.
// It is safe for use by both provider gateways.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*models.Coordinates
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[string]*models.Coordinates)}
}

// Lookup returns the cached outcome for key. The second return value reports
// whether the key is present at all; a present key with nil coordinates is a
// cached not-found outcome.
func (c *Cache) Lookup(key string) (*models.Coordinates, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	coords, ok := c.entries[key]
	return coords, ok
}

// Store records the outcome for key, overwriting any previous entry.
// A nil value records that the provider found nothing for the address.
func (c *Cache) Store(key string, coords *models.Coordinates) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = coords
}

// Len returns the number of cached outcomes.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Load reads a serialized cache from path. A missing or unparsable file
// degrades to an empty cache with a logged warning; it never fails the batch,
// the worst case being redundant provider lookups.
func Load(path string, log *slog.Logger) *Cache {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info("Geocode cache file not found, starting with an empty cache", "path", path)
		} else {
			log.Warn("Failed to read geocode cache, starting with an empty cache", "path", path, "error", err)
		}
		return New()
	}

	entries := make(map[string]*models.Coordinates)
	if err = json.Unmarshal(data, &entries); err != nil {
		log.Warn("Geocode cache file is corrupt, starting with an empty cache", "path", path, "error", err)
		return New()
	}

	log.Debug("Geocode cache loaded", "path", path, "entries", len(entries))
	return &Cache{entries: entries}
}

// Save serializes the full cache to path, replacing the previous file
// atomically (write to a temporary file in the same directory, then rename).
// A crash mid-write therefore never corrupts the previously persisted state.
func (c *Cache) Save(path string) error {
	c.mu.Lock()
	data, err := json.Marshal(c.entries)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to serialize geocode cache: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary cache file: %w", err)
	}

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temporary cache file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temporary cache file: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace cache file: %w", err)
	}

	return nil
}
