// Package classify compares hashed results against the canonical view of
// prior records and decides, per path, whether the result is a newly seen
// file, an unmodified match, a file whose content reappeared under a new
// name, or a corruption warning.
package classify

import (
	"sort"

	"github.com/dano-checksum/dano/internal/climsg"
	"github.com/dano-checksum/dano/internal/pool"
	"github.com/dano-checksum/dano/internal/record"
)

// Verdict names one of the five outcomes the classifier can reach for a
// single result, in the order the table in §4.5 evaluates them.
type Verdict int

const (
	// VerdictPhantom means the result carries no metadata: the transcoder
	// produced no output, so the path is treated as missing or unhashable.
	VerdictPhantom Verdict = iota
	// VerdictNewFile means neither the path nor the digest appears anywhere
	// in the canonical view.
	VerdictNewFile
	// VerdictOK means both the path and its digest match a canonical record.
	VerdictOK
	// VerdictRenamed means the digest matches a canonical record under a
	// different path: the file moved, its content didn't.
	VerdictRenamed
	// VerdictCorrupted means the path matches a canonical record but the
	// digest doesn't: the file's content changed without being renamed.
	VerdictCorrupted
)

// ExitCode is the per-verdict contribution to the run's aggregate exit code.
func (v Verdict) ExitCode() int {
	switch v {
	case VerdictPhantom:
		return 2
	case VerdictCorrupted:
		return 3
	default:
		return 0
	}
}

// Classified pairs one pool Result with the verdict reached for it.
type Classified struct {
	Result  pool.Result
	Verdict Verdict
}

// FileMap is the read-only, shared canonical view the classifier consults.
// It is built once by Ingest and handed to every classification call as an
// immutable reference; nothing after Ingest mutates it.
type FileMap map[string]record.FileInfo

// BuildFileMap indexes a canonical view by path for O(1) same-filename
// lookups. The slow-path same-hash search below still needs a linear scan,
// since multiple paths can't be simultaneously keyed by one digest value.
func BuildFileMap(canonical []record.FileInfo) FileMap {
	m := make(FileMap, len(canonical))
	for _, info := range canonical {
		m[info.Path] = info
	}
	return m
}

// Classify consumes results from ch, classifies each one against fm, and
// returns every classification plus the aggregate exit code. Per §13(a), the
// aggregate rule is "last nonzero wins": whichever verdict with a nonzero
// exit code is classified last overwrites any earlier nonzero code. Because
// channel arrival order is not deterministic, the exact code when both a
// phantom and a corruption occur in the same run is likewise not
// deterministic; callers needing a stable aggregate should consult per-path
// log lines instead.
func Classify(ch <-chan pool.Result, fm FileMap, silent bool, verify bool) (results []Classified, exitCode int) {
	for res := range ch {
		if res.Err != nil {
			continue
		}
		verdict := classifyOne(res, fm)
		logVerdict(res, verdict, silent, verify)
		if code := verdict.ExitCode(); code != 0 {
			exitCode = code
		}
		results = append(results, Classified{Result: res, Verdict: verdict})
	}
	return results, exitCode
}

func classifyOne(res pool.Result, fm FileMap) Verdict {
	if res.Info.Metadata == nil {
		return VerdictPhantom
	}
	sameName := isSameFilename(res.Info, fm)
	sameHash := isSameHash(res.Info, fm)
	switch {
	case !sameName && !sameHash:
		return VerdictNewFile
	case sameName && sameHash:
		return VerdictOK
	case sameHash:
		return VerdictRenamed
	default: // sameName only
		return VerdictCorrupted
	}
}

func isSameFilename(info record.FileInfo, fm FileMap) bool {
	_, ok := fm[info.Path]
	return ok
}

// isSameHash checks the fast path first (same path, matching digest), then
// falls back to a scan for any record anywhere in the map carrying the same
// digest, which is what detects a rename.
func isSameHash(info record.FileInfo, fm FileMap) bool {
	if prior, ok := fm[info.Path]; ok && prior.Metadata != nil && info.Metadata != nil {
		if prior.Metadata.HashValue.Equal(info.Metadata.HashValue) {
			return true
		}
	}
	if info.Metadata == nil {
		return false
	}
	for _, prior := range fm {
		if prior.Metadata == nil {
			continue
		}
		if prior.Metadata.HashValue.Equal(info.Metadata.HashValue) {
			return true
		}
	}
	return false
}

func logVerdict(res pool.Result, verdict Verdict, silent bool, verify bool) {
	path := res.Request.Path
	switch verdict {
	case VerdictPhantom:
		if verify {
			climsg.Error("path does not exist: %s", path)
		} else {
			climsg.Error("no record produced for path: %s", path)
		}
	case VerdictNewFile:
		climsg.Warning("new file: %s", path)
	case VerdictOK:
		if !silent {
			climsg.Warning("OK: %s", path)
		}
	case VerdictRenamed:
		climsg.Warning("OK, but hash moved to new filename: %s", path)
	case VerdictCorrupted:
		climsg.Error("WARN: new hash for same filename: %s", path)
	}
}

// Partition splits classified results into the NewFile and ModifiedFilename
// bundles the Writer needs, each sorted by path so sidecar writes stay
// deterministic regardless of the order results arrived in.
func Partition(classified []Classified) (newFiles, modifiedFilenames []record.FileInfo) {
	for _, c := range classified {
		switch c.Verdict {
		case VerdictNewFile:
			newFiles = append(newFiles, c.Result.Info)
		case VerdictRenamed:
			modifiedFilenames = append(modifiedFilenames, c.Result.Info)
		}
	}
	sort.Slice(newFiles, func(i, j int) bool { return newFiles[i].Path < newFiles[j].Path })
	sort.Slice(modifiedFilenames, func(i, j int) bool { return modifiedFilenames[i].Path < modifiedFilenames[j].Path })
	return newFiles, modifiedFilenames
}
