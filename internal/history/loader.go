// Package history loads the on-disk historical price dataset.
package history

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Loader reads and memoizes the historical dataset, a JSON document of raw
// price records. The first successful load is retained for the process
// lifetime; concurrent callers during a load share the same in-flight read.
// A failed load leaves the memo empty so a later request retries.
type Loader struct {
	path  string
	group singleflight.Group

	mu     sync.Mutex
	loaded bool
	raw    []any
}

// NewLoader creates a loader for the given JSON file path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load returns the raw historical collection, reading the backing file at
// most once per process lifetime on the success path. A non-array document
// is treated as an empty collection.
func (l *Loader) Load() ([]any, error) {
	l.mu.Lock()
	if l.loaded {
		raw := l.raw
		l.mu.Unlock()
		return raw, nil
	}
	l.mu.Unlock()

	v, err, _ := l.group.Do(l.path, func() (any, error) {
		data, err := os.ReadFile(l.path)
		if err != nil {
			return nil, fmt.Errorf("read history file: %w", err)
		}
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse history file: %w", err)
		}
		raw, ok := doc.([]any)
		if !ok {
			log.Printf("[WARN] history file %s is not a JSON array, treating as empty", l.path)
			raw = []any{}
		}

		l.mu.Lock()
		l.raw = raw
		l.loaded = true
		l.mu.Unlock()
		return raw, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]any), nil
}

// Reset clears the memo so the next Load rereads the backing file.
func (l *Loader) Reset() {
	l.mu.Lock()
	l.loaded = false
	l.raw = nil
	l.mu.Unlock()
}
