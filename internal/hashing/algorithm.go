// Package hashing names the digest algorithms dano can ask the transcoder to
// compute. dano never implements a digest itself — the algorithm name is
// just a token passed through to the transcoder's "-hash" flag and recorded
// alongside the digest it returns.
package hashing

import (
	"fmt"
	"strings"
)

// Algorithm is the short name of a digest, as recorded in FileMetadata and
// passed to the transcoder's -hash flag.
type Algorithm string

// The algorithms dano knows how to request from the transcoder.
const (
	Murmur3 Algorithm = "murmur3"
	MD5     Algorithm = "md5"
	CRC32   Algorithm = "crc32"
	Adler32 Algorithm = "adler32"
	SHA160  Algorithm = "sha160"
	SHA256  Algorithm = "sha256"
	SHA384  Algorithm = "sha384"
	SHA512  Algorithm = "sha512"

	// Default is the algorithm used when the user specifies none.
	Default = Murmur3
)

var supported = map[Algorithm]bool{
	Murmur3: true,
	MD5:     true,
	CRC32:   true,
	Adler32: true,
	SHA160:  true,
	SHA256:  true,
	SHA384:  true,
	SHA512:  true,
}

// Parse normalizes a user-supplied algorithm name, accepting the "sha1"
// alias for "sha160" the way the CLI historically has.
func Parse(name string) (Algorithm, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "sha1" {
		normalized = string(SHA160)
	}
	algorithm := Algorithm(normalized)
	if !supported[algorithm] {
		return "", fmt.Errorf("unsupported hash algorithm: %s", name)
	}
	return algorithm, nil
}

// Supported reports whether the algorithm is one dano recognizes.
func (a Algorithm) Supported() bool {
	return supported[a]
}

// String implements fmt.Stringer.
func (a Algorithm) String() string {
	return string(a)
}
