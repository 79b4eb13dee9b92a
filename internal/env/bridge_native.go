//go:build !js

package env

// bridgeAvailable reports true: native builds link the embedded SQLite
// engine directly.
func bridgeAvailable() bool {
	return true
}
