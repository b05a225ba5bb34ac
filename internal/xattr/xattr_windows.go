// +build windows

package xattr

import "errors"

// errUnsupported is returned by every operation on Windows, which has no
// POSIX-style extended attribute namespace. dano's xattr surface is
// POSIX-only by design; the sidecar remains fully functional.
var errUnsupported = errors.New("extended attributes are not supported on this platform")

// Get always reports no attribute present on Windows.
func Get(path string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set always fails on Windows.
func Set(path string, value []byte) error {
	return errUnsupported
}

// Remove is a no-op on Windows.
func Remove(path string) error {
	return nil
}
