//go:build !js

package kvstore

import (
	"context"
	"fmt"
	goos "os"
	"path/filepath"

	"github.com/hack-pad/hackpadfs/os"
)

// OpenDefault opens the settings store in a directory on the local disk.
// The directory is created if needed. The context parameter matches the
// browser build's signature; it is unused here.
func OpenDefault(_ context.Context, dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	if err := goos.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", abs, err)
	}

	fsys := os.NewFS()
	path, err := fsys.FromOSPath(filepath.Join(abs, DefaultFileName))
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", abs, err)
	}
	return Open(fsys, path)
}
