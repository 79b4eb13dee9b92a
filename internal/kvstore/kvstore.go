// Package kvstore implements the persistent key-value settings store used
// when the relational backend is not reachable. Values live in a single JSON
// document on a hackpadfs filesystem: origin-scoped IndexedDB in the browser
// build, the local disk natively, an in-memory fs in tests. The same store
// code runs on all three.
package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/hack-pad/hackpadfs"

	"github.com/pipeboard/pipeboard/pkg/types"
)

// DefaultFileName is the settings document written inside the store's
// filesystem.
const DefaultFileName = "settings.json"

// Compile-time interface check: Store must implement Settings.
var _ types.Settings = (*Store)(nil)

// Store holds the settings map in memory and rewrites the backing document
// on every mutation. Reads never touch the filesystem after Open.
type Store struct {
	mu     sync.RWMutex
	fsys   hackpadfs.FS
	path   string
	values map[string]string
}

// Open loads the settings document at path, or starts empty when it does not
// exist yet.
func Open(fsys hackpadfs.FS, path string) (*Store, error) {
	s := &Store{
		fsys:   fsys,
		path:   path,
		values: make(map[string]string),
	}

	content, err := hackpadfs.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, hackpadfs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(content, &s.values); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

// GetItem reports ok=false for a key that was never set.
func (s *Store) GetItem(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok, nil
}

// SetItem stores a value and persists the whole document.
func (s *Store) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.persist()
}

// RemoveItem deletes a key and persists. Removing an absent key is a no-op.
func (s *Store) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.persist()
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// persist rewrites the settings document. Caller holds the write lock.
func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := hackpadfs.WriteFullFile(s.fsys, s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}
