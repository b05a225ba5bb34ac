package pool

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/pkg/errors"

	"github.com/dano-checksum/dano/internal/record"
	"github.com/dano-checksum/dano/internal/request"
	"github.com/dano-checksum/dano/internal/transcoder"
)

const transcoderExecutable = "ffmpeg"

// hashOne invokes the transcoder against one request, turning its output
// into a Result. It never returns a non-nil error for an ordinary missing
// file (that becomes a phantom record instead); it returns one when the
// transcoder could not be found, exited non-zero, or printed output that
// is not a valid digest.
func hashOne(req request.FileInfoRequest) Result {
	binPath, err := transcoder.Find(transcoderExecutable)
	if err != nil {
		return Result{Request: req, Err: errors.Wrap(ErrTranscoderUnavailable, err.Error())}
	}

	stat, statErr := os.Stat(req.Path)
	if os.IsNotExist(statErr) {
		return Result{Request: req, Info: record.FileInfo{Version: record.CurrentVersion, Path: req.Path}}
	}

	args := buildArgs(req)
	cmd := exec.Command(binPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	modTime := time.Now().UTC()
	if statErr == nil {
		modTime = stat.ModTime().UTC()
	}

	if runErr != nil {
		if transcoder.OutputSuggestsUnsupportedAlgorithm(stderr.String()) {
			fmt.Fprintf(os.Stderr, "hint: %s may not support hash algorithm %q on this build\n", transcoderExecutable, req.HashAlgo)
		}
		return Result{Request: req, Err: errors.Wrapf(ErrTranscoderError, "%s: %s", req.Path, stderr.String())}
	}

	if stdout.Len() == 0 {
		return Result{Request: req, Info: record.FileInfo{Version: record.CurrentVersion, Path: req.Path}}
	}

	_, hex, err := parseDigest(stdout.String())
	if err != nil {
		return Result{Request: req, Err: errors.Wrapf(err, "request for %s", req.Path)}
	}

	info := record.New(req.Path, &record.FileMetadata{
		HashAlgo:        string(req.HashAlgo),
		HashValue:       record.HashValue{Radix: record.HexRadix, Value: hex},
		LastWritten:     time.Now().UTC(),
		ModifyTime:      modTime,
		Decoded:         req.Decode,
		SelectedStreams: req.SelectedStreams,
		BitsPerSecond:   req.BitsPerSecond,
	})
	return Result{Request: req, Info: info}
}

// buildArgs constructs the ffmpeg invocation for req, per the stream
// selection / codec / hash output contract described in the transcoder
// interface: one input, an optional stream map, a copy-or-decode codec
// choice, and a hash muxer writing to stdout.
func buildArgs(req request.FileInfoRequest) []string {
	args := []string{"-i", req.Path}

	switch req.SelectedStreams {
	case record.StreamsAudioOnly:
		args = append(args, "-map", "0:a?")
	case record.StreamsVideoOnly:
		args = append(args, "-map", "0:v?")
	}

	switch {
	case !req.Decode:
		args = append(args, "-codec", "copy")
	case req.Decode && req.BitsPerSecond != nil:
		args = append(args, "-c", fmt.Sprintf("pcm_s%dle", *req.BitsPerSecond))
	}

	args = append(args, "-f", "hash", "-hash", string(req.HashAlgo), "-")
	return args
}
