package transcoder

import "strings"

// incorrectCodecParametersFragment is the substring ffmpeg emits on stderr
// when the requested hash algorithm isn't supported by the build in use.
const incorrectCodecParametersFragment = "incorrect codec parameters"

// OutputSuggestsUnsupportedAlgorithm reports whether stderr output from a
// failed transcoder invocation suggests the requested hash algorithm isn't
// supported by this transcoder build.
func OutputSuggestsUnsupportedAlgorithm(stderr string) bool {
	return strings.Contains(stderr, incorrectCodecParametersFragment)
}

// notAFlacFragment is the substring metaflac emits when asked to read a file
// that isn't a valid FLAC stream.
const notAFlacFragment = "FLAC__METADATA_CHAIN_STATUS_NOT_A_FLAC_FILE"

// OutputIndicatesNotFlac reports whether stderr output from metaflac
// indicates the target path is not a valid FLAC file.
func OutputIndicatesNotFlac(stderr string) bool {
	return strings.Contains(stderr, notAFlacFragment)
}
