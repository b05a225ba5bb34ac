package pool

import "github.com/pkg/errors"

// ErrTranscoderUnavailable means the external transcoder binary could not be
// located on PATH. This is fatal to the whole run: there is no point
// dispatching any request if nothing can service it.
var ErrTranscoderUnavailable = errors.New("transcoder unavailable")

// ErrTranscoderError wraps a non-zero exit from the transcoder along with
// its stderr. Per-request; logged and skipped rather than fatal.
var ErrTranscoderError = errors.New("transcoder error")

// ErrDigestParse means the transcoder's stdout didn't look like
// `ALGO=HEX`, or the hex payload failed validation.
var ErrDigestParse = errors.New("unable to parse digest from transcoder output")
