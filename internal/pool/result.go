// Package pool runs a bounded worker pool that turns FileInfoRequests into
// hashed records by shelling out to ffmpeg, streaming results onto an
// unbounded channel for a single downstream consumer to classify.
package pool

import (
	"github.com/dano-checksum/dano/internal/record"
	"github.com/dano-checksum/dano/internal/request"
)

// Result pairs a request with its outcome. Err is nil for both a
// successfully hashed file and a phantom (a path that does not exist, or for
// which the transcoder printed nothing); phantom-ness is instead carried in
// Info via FileInfo.Phantom. Err is set when the transcoder could not be
// found, exited with an error, or printed output that is not a valid digest.
// Such a result is logged by the pool and skipped by the classifier; the run
// continues with the remaining results.
type Result struct {
	Request request.FileInfoRequest
	Info    record.FileInfo
	Err     error
}
