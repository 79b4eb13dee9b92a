//go:build js && wasm

package env

// bridgeAvailable reports false: a browser tab has no privileged bridge to
// the embedded relational store.
func bridgeAvailable() bool {
	return false
}
