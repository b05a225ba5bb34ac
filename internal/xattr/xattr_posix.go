// +build !windows

package xattr

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// initialBufferSize is large enough to hold any dano record in one read; if
// it's too small, Get retries once with the size the kernel reports.
const initialBufferSize = 4096

// Get reads dano's extended attribute from path. A missing attribute is not
// an error: it returns (nil, false, nil).
func Get(path string) ([]byte, bool, error) {
	buffer := make([]byte, initialBufferSize)
	n, err := unix.Getxattr(path, Name, buffer)
	if err != nil && !errors.Is(err, unix.ERANGE) {
		if errors.Is(err, unix.ENODATA) || errors.Is(err, unix.ENOATTR) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "unable to read extended attribute on %s", path)
	}
	if err != nil || n == len(buffer) {
		// The value may have been truncated; ask the kernel for the real size
		// and retry once.
		size, sizeErr := unix.Getxattr(path, Name, nil)
		if sizeErr != nil {
			return nil, false, errors.Wrapf(sizeErr, "unable to size extended attribute on %s", path)
		}
		buffer = make([]byte, size)
		n, err = unix.Getxattr(path, Name, buffer)
		if err != nil {
			return nil, false, errors.Wrapf(err, "unable to read extended attribute on %s", path)
		}
	}
	return buffer[:n], true, nil
}

// Set writes dano's extended attribute on path, replacing any existing
// value. It removes before setting to avoid a stale, larger value's bytes
// lingering past the end of a shorter new value on filesystems that reuse
// the attribute's storage in place.
func Set(path string, value []byte) error {
	_ = unix.Removexattr(path, Name)
	if err := unix.Setxattr(path, Name, value, 0); err != nil {
		return errors.Wrapf(err, "unable to write extended attribute on %s", path)
	}
	return nil
}

// Remove deletes dano's extended attribute from path. A missing attribute is
// not an error.
func Remove(path string) error {
	if err := unix.Removexattr(path, Name); err != nil {
		if errors.Is(err, unix.ENODATA) || errors.Is(err, unix.ENOATTR) {
			return nil
		}
		return errors.Wrapf(err, "unable to remove extended attribute on %s", path)
	}
	return nil
}
