// Package dispatch wires Ingest, the Request Planner, the Hash Worker Pool,
// the Classifier, and the Writer together behind one entry point per
// execution mode, mirroring the data flow Config → Ingest → Request Planner
// → (Hash Worker Pool ⇉ channel ⇉ Classifier) → Writer.
package dispatch

import (
	"fmt"
	"os"
	"sort"

	"github.com/pkg/errors"

	"github.com/dano-checksum/dano/internal/classify"
	"github.com/dano-checksum/dano/internal/config"
	"github.com/dano-checksum/dano/internal/hashing"
	"github.com/dano-checksum/dano/internal/ingest"
	"github.com/dano-checksum/dano/internal/pool"
	"github.com/dano-checksum/dano/internal/record"
	"github.com/dano-checksum/dano/internal/request"
	"github.com/dano-checksum/dano/internal/transcoder"
	"github.com/dano-checksum/dano/internal/writer"
)

// Run executes cfg's chosen mode end to end and returns the process exit
// code the caller should use.
func Run(cfg *config.Config) (int, error) {
	switch mode := cfg.ExecMode.(type) {
	case config.CleanMode:
		return runClean(cfg)
	case config.PrintMode:
		return runPrint(cfg)
	case config.DumpMode:
		return runDump(cfg)
	case config.WriteMode:
		if mode.ImportFlac {
			return runImportFlac(cfg)
		}
		return runHashAndWrite(cfg, false)
	case config.TestMode:
		return runHashAndWrite(cfg, true)
	default:
		return 1, errors.New("unrecognized execution mode")
	}
}

func runClean(cfg *config.Config) (int, error) {
	for _, path := range cfg.Paths {
		if err := ingest.RemoveXattr(path); err != nil {
			return 1, errors.Wrapf(err, "cleaning %s", path)
		}
	}
	return 0, nil
}

func runPrint(cfg *config.Config) (int, error) {
	canonical, err := ingest.Load(cfg.Paths, cfg.HashFile, cfg.Xattr)
	if err != nil {
		return 1, err
	}
	sort.Slice(canonical, func(i, j int) bool { return canonical[i].Path < canonical[j].Path })
	for _, info := range canonical {
		fmt.Println(formatDisplay(info))
	}
	return 0, nil
}

// formatDisplay renders one canonical record the way Print mode displays it:
// `<algo>=<hex padded to width 32, space-padded, left-justified> : <path>`.
func formatDisplay(info record.FileInfo) string {
	if info.Metadata == nil {
		return fmt.Sprintf("%-32s : %s", "(phantom)", info.Path)
	}
	return fmt.Sprintf("%s=%-32s : %s", info.Metadata.HashAlgo, info.Metadata.HashValue.Value, info.Path)
}

// runDump re-emits the canonical view straight back to the sidecar without
// hashing anything, the mode's whole purpose being to re-serialize existing
// records (e.g. after a schema upcast) rather than to discover new state.
func runDump(cfg *config.Config) (int, error) {
	canonical, err := ingest.Load(cfg.Paths, cfg.HashFile, cfg.Xattr)
	if err != nil {
		return 1, err
	}
	sort.Slice(canonical, func(i, j int) bool { return canonical[i].Path < canonical[j].Path })
	return 0, writer.Write(cfg, writer.Bundle{NewFiles: canonical})
}

func runImportFlac(cfg *config.Config) (int, error) {
	var records []record.FileInfo
	for _, path := range cfg.Paths {
		info, err := ingest.ImportFlac(path)
		if err != nil {
			if errors.Is(err, ingest.ErrNotFlac) {
				fmt.Fprintf(os.Stderr, "not a flac file, skipping: %s\n", path)
				continue
			}
			return 1, err
		}
		records = append(records, info)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Path < records[j].Path })
	return 0, writer.Write(cfg, writer.Bundle{NewFiles: records})
}

// runHashAndWrite covers Write and Test modes, the two that run the full
// hashing pipeline. verify controls whether the Ingest precondition
// check (NothingToVerify) and the aggregate exit code are enforced.
func runHashAndWrite(cfg *config.Config, verify bool) (int, error) {
	canonical, err := ingest.Load(cfg.Paths, cfg.HashFile, cfg.Xattr)
	if err != nil {
		return 1, err
	}

	if verify {
		mode, _ := cfg.ExecMode.(config.TestMode)
		if err := ingest.CheckNothingToVerify(canonical, mode.WriteNew, mode.OverwriteOld); err != nil {
			return 1, err
		}
	}

	reqs := request.Plan(cfg, canonical)
	if mode, ok := cfg.ExecMode.(config.WriteMode); ok && mode.Rewrite {
		reqs = forceRehash(reqs, cfg.HashAlgo)
	}

	if len(reqs) > 0 {
		if _, err := transcoder.Find("ffmpeg"); err != nil {
			return 1, errors.Wrap(pool.ErrTranscoderUnavailable, err.Error())
		}
	}

	results := pool.Run(reqs, cfg.NumThreads)
	fm := classify.BuildFileMap(canonical)
	classified, exitCode := classify.Classify(results, fm, cfg.Silent, verify)
	newFiles, modifiedFilenames := classify.Partition(classified)

	if err := writer.Write(cfg, writer.Bundle{NewFiles: newFiles, ModifiedFilenames: modifiedFilenames}); err != nil {
		return 1, err
	}

	if !verify {
		return 0, nil
	}
	return exitCode, nil
}

// forceRehash replaces the hash algorithm a request inherited from a prior
// record with the configured one, so --rewrite re-hashes under the current
// algorithm. The recorded decode flag, stream selection and bits-per-second
// stay pinned.
func forceRehash(reqs []request.FileInfoRequest, algo hashing.Algorithm) []request.FileInfoRequest {
	out := make([]request.FileInfoRequest, len(reqs))
	for i, r := range reqs {
		r.HashAlgo = algo
		out[i] = r
	}
	return out
}
