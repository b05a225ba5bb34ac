// Package transcoder locates and invokes the external media transcoder and
// FLAC metadata reader that dano treats as opaque hashing oracles.
package transcoder

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/pkg/errors"
)

// ErrNotFound indicates that a required external binary could not be located
// on PATH.
var ErrNotFound = errors.New("unable to locate command")

// executableName computes the on-disk name for an executable on the given
// operating system.
func executableName(base, goos string) string {
	if goos == "windows" {
		return base + ".exe"
	}
	return base
}

// Find locates the named command on PATH, the way os/exec.LookPath does, but
// normalizes "not found" into ErrNotFound so callers can classify it as
// TranscoderUnavailable without string-matching exec's error text.
func Find(name string) (string, error) {
	target := executableName(name, runtime.GOOS)
	path, err := exec.LookPath(target)
	if err != nil {
		if os.IsNotExist(err) || errors.Is(err, exec.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", errors.Wrap(err, "unable to search PATH")
	}
	return path, nil
}
