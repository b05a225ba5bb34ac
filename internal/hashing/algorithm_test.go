package hashing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAcceptsKnownAlgorithms(t *testing.T) {
	algo, err := Parse("SHA256")
	require.NoError(t, err)
	require.Equal(t, SHA256, algo)
}

func TestParseAliasesSha1ToSha160(t *testing.T) {
	algo, err := Parse("sha1")
	require.NoError(t, err)
	require.Equal(t, SHA160, algo)
}

func TestParseRejectsUnknownAlgorithm(t *testing.T) {
	_, err := Parse("blake3")
	require.Error(t, err)
}

func TestDefaultIsMurmur3(t *testing.T) {
	require.Equal(t, Murmur3, Default)
}
