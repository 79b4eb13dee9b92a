// Package env decides which settings backend the process uses. The check is
// a pure predicate, computed once; the result is constant for the process
// lifetime.
package env

import (
	"os"
	"sync"
)

// ForceBrowserEnv forces the browser-style key-value backend even when the
// relational store is reachable. Used for exercising the fallback path on a
// desktop build.
const ForceBrowserEnv = "PIPEBOARD_FORCE_BROWSER"

var (
	once       sync.Once
	privileged bool
)

// Privileged reports whether the embedded relational store is reachable from
// the current execution context: true for native desktop builds, false for
// the browser build. Safe to call repeatedly.
func Privileged() bool {
	once.Do(func() {
		if os.Getenv(ForceBrowserEnv) != "" {
			privileged = false
			return
		}
		privileged = bridgeAvailable()
	})
	return privileged
}
