package pathnorm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyCollapsesUnicodeNormalForms(t *testing.T) {
	// precomposed: LATIN SMALL LETTER E WITH ACUTE (U+00E9).
	precomposed := "caf\u00e9.mkv"
	// decomposed: LATIN SMALL LETTER E (U+0065) + COMBINING ACUTE ACCENT
	// (U+0301). Renders identically to the precomposed form above but
	// compares unequal byte-for-byte.
	decomposed := "cafe\u0301.mkv"
	require.NotEqual(t, precomposed, decomposed)
	require.Equal(t, Key(precomposed), Key(decomposed))
}
