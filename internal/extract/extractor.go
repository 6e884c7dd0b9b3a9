// Package extract turns uploaded source files into raw tables. Only the CSV
// extractor is implemented here; PDF and HTML extraction are external
// collaborators plugged in through the Extractor interface.
package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/petitlyon/cartomat/internal/table"
)

// Extractor produces a raw table from a source file.
type Extractor interface {
	Extract(ctx context.Context, path string) (table.Raw, error)
}

// ErrUnsupportedExtension reports a file type no extractor is registered for.
var ErrUnsupportedExtension = errors.New("unsupported input file extension")

// Serialized wraps an extractor with a mutex so that at most one extraction
// runs at a time. The PDF table extraction library is not safe for
// concurrent invocation, and that constraint is enforced here process-wide
// rather than trusted to every caller.
func Serialized(inner Extractor) Extractor {
	return &serializedExtractor{inner: inner}
}

type serializedExtractor struct {
	mu    sync.Mutex
	inner Extractor
}

func (s *serializedExtractor) Extract(ctx context.Context, path string) (table.Raw, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Extract(ctx, path)
}

// Registry maps file extensions (lowercase, with dot) to extractors.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry returns a registry with the CSV extractor pre-registered.
func NewRegistry() *Registry {
	reg := &Registry{extractors: make(map[string]Extractor)}
	reg.Register(".csv", CSV{})
	return reg
}

// Register binds an extractor to a file extension, replacing any previous
// binding.
func (r *Registry) Register(ext string, extractor Extractor) {
	r.extractors[strings.ToLower(ext)] = extractor
}

// Supports reports whether a file with the given name can be extracted.
func (r *Registry) Supports(filename string) bool {
	_, ok := r.extractors[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Extract dispatches on the file extension.
func (r *Registry) Extract(ctx context.Context, path string) (table.Raw, error) {
	ext := strings.ToLower(filepath.Ext(path))
	extractor, ok := r.extractors[ext]
	if !ok {
		return table.Raw{}, fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}
	return extractor.Extract(ctx, path)
}
