package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDigestTrimsLeadingZeros(t *testing.T) {
	algo, hex, err := parseDigest("murmur3=00deadbeef\n")
	require.NoError(t, err)
	require.Equal(t, "murmur3", algo)
	require.Equal(t, "deadbeef", hex)
}

func TestParseDigestLowercases(t *testing.T) {
	_, hex, err := parseDigest("sha256=DEADBEEF")
	require.NoError(t, err)
	require.Equal(t, "deadbeef", hex)
}

func TestParseDigestRejectsMissingEquals(t *testing.T) {
	_, _, err := parseDigest("deadbeef")
	require.ErrorIs(t, err, ErrDigestParse)
}

func TestParseDigestRejectsNonHex(t *testing.T) {
	_, _, err := parseDigest("murmur3=not-hex-at-all")
	require.ErrorIs(t, err, ErrDigestParse)
}

func TestParseDigestRejectsOverlong(t *testing.T) {
	long := make([]byte, maxDigestLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, _, err := parseDigest("sha512=" + string(long))
	require.ErrorIs(t, err, ErrDigestParse)
}

func TestParseDigestAllZerosYieldsZero(t *testing.T) {
	_, hex, err := parseDigest("crc32=0000")
	require.NoError(t, err)
	require.Equal(t, "0", hex)
}
