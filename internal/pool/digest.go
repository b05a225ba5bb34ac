package pool

import (
	"strings"

	"github.com/pkg/errors"
)

const maxDigestLength = 128

// parseDigest splits the transcoder's stdout on the first `=`, returning the
// algorithm name echoed on the left and the validated, leading-zero-trimmed
// hex digest on the right. The core never interprets the digest's meaning,
// only checks its shape: all ASCII hex, no longer than maxDigestLength.
func parseDigest(stdout string) (algo, hex string, err error) {
	stdout = strings.TrimSpace(stdout)
	idx := strings.IndexByte(stdout, '=')
	if idx < 0 {
		return "", "", errors.Wrapf(ErrDigestParse, "no '=' in output %q", stdout)
	}
	algo = stdout[:idx]
	value := strings.ToLower(strings.TrimSpace(stdout[idx+1:]))
	if value == "" {
		return "", "", errors.Wrapf(ErrDigestParse, "empty digest in output %q", stdout)
	}
	if len(value) > maxDigestLength {
		return "", "", errors.Wrapf(ErrDigestParse, "digest exceeds %d characters", maxDigestLength)
	}
	for _, r := range value {
		if !isHexDigit(r) {
			return "", "", errors.Wrapf(ErrDigestParse, "non-hex character %q in digest", r)
		}
	}
	return algo, trimLeadingZeros(value), nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')
}

func trimLeadingZeros(value string) string {
	trimmed := strings.TrimLeft(value, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
