// Package request plans the set of hash computations a run needs to
// perform, pinning recorded parameters for already-known paths and
// synthesizing fresh ones for new paths.
package request

import (
	"github.com/dano-checksum/dano/internal/config"
	"github.com/dano-checksum/dano/internal/hashing"
	"github.com/dano-checksum/dano/internal/record"
)

// FileInfoRequest is one unit of work for the worker pool: a path to hash,
// plus the parameters that control how it gets hashed.
type FileInfoRequest struct {
	Path            string
	HashAlgo        hashing.Algorithm
	Decode          bool
	SelectedStreams record.SelectedStreams
	BitsPerSecond   *int
}

// Plan builds the union of the canonical view and the configured input
// paths. Every record in known that carries metadata becomes a request
// pinned to that record's hash algorithm, decode flag, selected streams, and
// bits-per-second, so that re-hashing a file always compares apples to
// apples against its prior record rather than silently picking up whatever
// algorithm happens to be the current CLI default. This seeding happens
// regardless of cfg.Paths, which is what lets `dano --test` with no
// positional arguments re-verify everything already recorded. cfg.Paths is
// then overlaid on top: only a path not already present in the map gets a
// fresh request synthesized under cfg's current settings. A path named on
// the command line that already has a recorded entry keeps its pinned
// parameters, so re-specifying an already-tracked path doesn't silently
// discard the algorithm and settings it was originally recorded under. When
// the same new path appears more than once in cfg.Paths, the later
// occurrence wins, matching shell globbing idioms where a path can
// legitimately be named twice.
func Plan(cfg *config.Config, known []record.FileInfo) []FileInfoRequest {
	byPath := make(map[string]FileInfoRequest, len(known)+len(cfg.Paths))
	order := make([]string, 0, len(known)+len(cfg.Paths))
	pinned := make(map[string]bool, len(known))

	for _, info := range known {
		if info.Metadata == nil {
			continue
		}
		byPath[info.Path] = FileInfoRequest{
			Path:            info.Path,
			HashAlgo:        hashing.Algorithm(info.Metadata.HashAlgo),
			Decode:          info.Metadata.Decoded,
			SelectedStreams: info.Metadata.SelectedStreams,
			BitsPerSecond:   info.Metadata.BitsPerSecond,
		}
		order = append(order, info.Path)
		pinned[info.Path] = true
	}

	for _, path := range cfg.Paths {
		if pinned[path] {
			continue
		}
		if _, exists := byPath[path]; !exists {
			order = append(order, path)
		}
		byPath[path] = FileInfoRequest{
			Path:            path,
			HashAlgo:        cfg.HashAlgo,
			Decode:          cfg.Decode,
			SelectedStreams: cfg.SelectedStreams,
			BitsPerSecond:   cfg.BitsPerSecond,
		}
	}

	requests := make([]FileInfoRequest, 0, len(order))
	for _, path := range order {
		requests = append(requests, byPath[path])
	}
	return requests
}
