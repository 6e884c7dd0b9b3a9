package geocache_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/petitlyon/cartomat/internal/geocache"
	"github.com/petitlyon/cartomat/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		first := geocache.Fingerprint("12 rue de la République Lyon", "nominatim")
		second := geocache.Fingerprint("12 rue de la République Lyon", "nominatim")

		assert.Equal(t, first, second)
		assert.Len(t, first, 32) // 128-bit digest, hex-encoded
	})

	t.Run("separates providers", func(t *testing.T) {
		primary := geocache.Fingerprint("12 rue de la République Lyon", "nominatim")
		secondary := geocache.Fingerprint("12 rue de la République Lyon", "arcgis")

		assert.NotEqual(t, primary, secondary)
	})

	t.Run("separates addresses", func(t *testing.T) {
		assert.NotEqual(t,
			geocache.Fingerprint("12 rue A Lyon", "nominatim"),
			geocache.Fingerprint("14 rue A Lyon", "nominatim"))
	})
}

func TestCache_LookupStore(t *testing.T) {
	cache := geocache.New()
	key := geocache.Fingerprint("place Bellecour Lyon", "nominatim")

	t.Run("absent key", func(t *testing.T) {
		coords, ok := cache.Lookup(key)
		assert.False(t, ok)
		assert.Nil(t, coords)
	})

	t.Run("stored coordinates", func(t *testing.T) {
		cache.Store(key, &models.Coordinates{Latitude: 45.7578, Longitude: 4.8320})

		coords, ok := cache.Lookup(key)
		require.True(t, ok)
		require.NotNil(t, coords)
		assert.InEpsilon(t, 45.7578, coords.Latitude, 1e-9)
	})

	t.Run("cached not-found is distinct from absent", func(t *testing.T) {
		missKey := geocache.Fingerprint("nowhere at all", "nominatim")
		cache.Store(missKey, nil)

		coords, ok := cache.Lookup(missKey)
		assert.True(t, ok)
		assert.Nil(t, coords)
	})

	t.Run("store overwrites", func(t *testing.T) {
		cache.Store(key, nil)

		coords, ok := cache.Lookup(key)
		assert.True(t, ok)
		assert.Nil(t, coords)
	})
}

func TestCache_SaveLoadRoundTrip(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	path := filepath.Join(t.TempDir(), "geocode_cache.json")

	cache := geocache.New()
	foundKey := geocache.Fingerprint("place Bellecour Lyon", "nominatim")
	missKey := geocache.Fingerprint("nowhere at all", "arcgis")
	cache.Store(foundKey, &models.Coordinates{Latitude: 45.7578, Longitude: 4.8320, Elevation: 170})
	cache.Store(missKey, nil)

	require.NoError(t, cache.Save(path))

	loaded := geocache.Load(path, logger)
	assert.Equal(t, 2, loaded.Len())

	coords, ok := loaded.Lookup(foundKey)
	require.True(t, ok)
	require.NotNil(t, coords)
	assert.InEpsilon(t, 45.7578, coords.Latitude, 1e-9)
	assert.InEpsilon(t, 4.8320, coords.Longitude, 1e-9)
	assert.InEpsilon(t, 170.0, coords.Elevation, 1e-9)

	coords, ok = loaded.Lookup(missKey)
	assert.True(t, ok)
	assert.Nil(t, coords)
}

func TestLoad_MissingFile(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cache := geocache.Load(filepath.Join(t.TempDir(), "does-not-exist.json"), logger)

	require.NotNil(t, cache)
	assert.Equal(t, 0, cache.Len())
}

func TestLoad_CorruptFile(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	path := filepath.Join(t.TempDir(), "geocode_cache.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o600))

	cache := geocache.Load(path, logger)

	require.NotNil(t, cache)
	assert.Equal(t, 0, cache.Len())
}

func TestSave_ReplacesPreviousFile(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	path := filepath.Join(t.TempDir(), "geocode_cache.json")

	first := geocache.New()
	first.Store(geocache.Fingerprint("a", "nominatim"), nil)
	require.NoError(t, first.Save(path))

	second := geocache.New()
	second.Store(geocache.Fingerprint("b", "nominatim"), &models.Coordinates{Latitude: 1, Longitude: 2})
	require.NoError(t, second.Save(path))

	loaded := geocache.Load(path, logger)
	assert.Equal(t, 1, loaded.Len())

	_, ok := loaded.Lookup(geocache.Fingerprint("a", "nominatim"))
	assert.False(t, ok)
}
