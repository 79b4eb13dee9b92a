//go:build js && wasm

package kvstore

import (
	"context"
	"fmt"

	"github.com/hack-pad/hackpadfs/indexeddb"
)

// idbName is the IndexedDB database backing the browser settings store,
// scoped to the application's origin by the browser itself.
const idbName = "pipeboard"

// OpenDefault opens the settings store over origin-scoped IndexedDB.
// The dir parameter is ignored in the browser build.
func OpenDefault(ctx context.Context, _ string) (*Store, error) {
	fsys, err := indexeddb.NewFS(ctx, idbName, indexeddb.Options{})
	if err != nil {
		return nil, fmt.Errorf("opening indexeddb fs: %w", err)
	}
	return Open(fsys, DefaultFileName)
}
