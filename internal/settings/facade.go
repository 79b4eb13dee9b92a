// Package settings presents one key-value contract regardless of which
// backend is active. The backend is chosen once at startup — the relational
// settings table when the privileged bridge is available, the browser-style
// key-value store otherwise — and injected here, so call sites never check
// the environment themselves.
package settings

import "github.com/pipeboard/pipeboard/pkg/types"

// Compile-time interface checks.
var (
	_ types.Settings = (*Facade)(nil)
	_ types.Settings = (*relationalBackend)(nil)
)

// Facade forwards every call to the backend selected at construction.
type Facade struct {
	backend types.Settings
}

// New wraps the chosen backend. Pass NewRelational(store) when the
// environment detector reports the privileged bridge, or the kvstore.Store
// directly otherwise.
func New(backend types.Settings) *Facade {
	return &Facade{backend: backend}
}

// GetItem reports ok=false for an absent key; a missing key is never an
// error.
func (f *Facade) GetItem(key string) (string, bool, error) {
	return f.backend.GetItem(key)
}

// SetItem stores a string value. Callers serialize structured data (JSON)
// themselves before calling.
func (f *Facade) SetItem(key, value string) error {
	return f.backend.SetItem(key, value)
}

// RemoveItem deletes a key.
func (f *Facade) RemoveItem(key string) error {
	return f.backend.RemoveItem(key)
}

// relationalBackend adapts the entity store's settings table to the Settings
// contract.
type relationalBackend struct {
	store types.Store
}

// NewRelational returns a Settings backend over the relational store's
// settings operations.
func NewRelational(store types.Store) types.Settings {
	return &relationalBackend{store: store}
}

func (r *relationalBackend) GetItem(key string) (string, bool, error) {
	return r.store.GetSetting(key)
}

func (r *relationalBackend) SetItem(key, value string) error {
	return r.store.SetSetting(key, value)
}

func (r *relationalBackend) RemoveItem(key string) error {
	return r.store.DeleteSetting(key)
}
