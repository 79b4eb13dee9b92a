// Package store is the public entry point for the persistence layer. It
// exposes backend construction and environment-driven selection while keeping
// the implementations internal.
package store

import (
	"context"

	"github.com/pipeboard/pipeboard/internal/env"
	"github.com/pipeboard/pipeboard/internal/kvstore"
	"github.com/pipeboard/pipeboard/internal/settings"
	"github.com/pipeboard/pipeboard/internal/sqlite"
	"github.com/pipeboard/pipeboard/pkg/types"
)

// NewBackend creates a relational backend instance. The backend is not
// attached; call Attach with a Config to open the database.
//
// Example:
//
//	backend := store.NewBackend()
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".pipeboard-db",
//	})
//	defer backend.Detach()
func NewBackend() types.Store {
	return sqlite.NewBackend()
}

// Privileged reports whether the relational backend is reachable in this
// process. The answer is computed once and never changes for the process
// lifetime.
func Privileged() bool {
	return env.Privileged()
}

// OpenSettings returns the settings facade for this environment: the
// relational settings table when the privileged bridge is available, the
// persistent key-value store under dataDir otherwise. The store argument may
// be nil in non-privileged environments.
func OpenSettings(ctx context.Context, s types.Store, dataDir string) (types.Settings, error) {
	if env.Privileged() {
		return settings.New(settings.NewRelational(s)), nil
	}
	kv, err := kvstore.OpenDefault(ctx, dataDir)
	if err != nil {
		return nil, err
	}
	return settings.New(kv), nil
}
