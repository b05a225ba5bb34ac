package ingest

import (
	"bytes"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/dano-checksum/dano/internal/hashing"
	"github.com/dano-checksum/dano/internal/record"
	"github.com/dano-checksum/dano/internal/transcoder"
)

// ErrNotFlac indicates metaflac rejected a file as not actually being a FLAC
// stream, distinguishing that case from a generic transcoder failure so
// callers can report it without implying a corrupt or missing executable.
var ErrNotFlac = errors.New("not a flac file")

const metaflacExecutable = "metaflac"

// ImportFlac asks metaflac for path's embedded MD5 digest of the decoded
// audio stream and wraps it into a FileInfo as if dano itself had just
// hashed it. This gives --import-flac a cheap way to seed records for a
// FLAC library that already carries per-file MD5s in its own stream header,
// without re-decoding every file through ffmpeg.
func ImportFlac(path string) (record.FileInfo, error) {
	binPath, err := transcoder.Find(metaflacExecutable)
	if err != nil {
		return record.FileInfo{}, errors.Wrapf(err, "locating %s", metaflacExecutable)
	}

	cmd := exec.Command(binPath, "--show-md5sum", path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if transcoder.OutputIndicatesNotFlac(stderr.String()) {
			return record.FileInfo{}, errors.Wrapf(ErrNotFlac, "%s", path)
		}
		return record.FileInfo{}, errors.Wrapf(err, "running %s on %s: %s", metaflacExecutable, path, stderr.String())
	}

	digest := strings.TrimSpace(stdout.String())
	if digest == "" || strings.Count(digest, "0") == len(digest) {
		return record.FileInfo{}, errors.Wrapf(ErrNotFlac, "%s: empty or all-zero md5 (likely not a flac stream)", path)
	}

	now := time.Now().UTC()
	return record.New(path, &record.FileMetadata{
		HashAlgo:        string(hashing.MD5),
		HashValue:       record.HashValue{Radix: record.HexRadix, Value: digest},
		LastWritten:     now,
		ModifyTime:      now,
		Decoded:         true,
		SelectedStreams: record.StreamsAudioOnly,
	}), nil
}
