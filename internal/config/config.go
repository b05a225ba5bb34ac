package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/dano-checksum/dano/internal/hashing"
	"github.com/dano-checksum/dano/internal/record"
)

// ErrConfig marks failures that originate from invalid CLI input or
// environment, as opposed to failures encountered while doing the work the
// CLI requested. Dispatchers should treat it as fatal (exit 1).
var ErrConfig = errors.New("configuration error")

// Config is dano's fully resolved set of run parameters: the result of
// merging CLI flags, environment variables, and an optional global defaults
// file.
type Config struct {
	ExecMode ExecMode

	Silent         bool
	Decode         bool
	Xattr          bool
	DryRun         bool
	DisableFilter  bool
	CanonicalPaths bool

	NumThreads int // 0 means "use logical CPU count"

	SelectedStreams record.SelectedStreams
	HashAlgo        hashing.Algorithm
	BitsPerSecond   *int

	PWD        string
	OutputFile string
	HashFile   string

	Paths []string
}

// Options carries the raw, unvalidated flag values the CLI layer collects.
// Separating this from Config keeps flag parsing (cmd/dano) decoupled from
// the validation and defaulting logic below, which is unit-testable on its
// own.
type Options struct {
	Write        bool
	Test         bool
	Print        bool
	Dump         bool
	ImportFlac   bool
	Clean        bool
	Rewrite      bool
	WriteNew     bool
	OverwriteOld bool

	Silent         bool
	Decode         bool
	Xattr          bool
	DryRun         bool
	DisableFilter  bool
	CanonicalPaths bool

	NumThreads int

	Only          string // "", "audio", or "video"
	HashAlgoName  string
	OutputFile    string
	HashFile      string
	BitsPerSecond int // 0 means unset

	InputFiles []string
	StdinPaths []string // pre-read, already split, so tests don't need a real stdin
}

// Resolve validates and defaults a set of CLI options into a Config,
// replicating the original tool's precondition checks (exactly one mode,
// working directory resolvable, non-empty input set except in Test mode,
// whose check for recorded entries runs at dispatch instead).
func Resolve(opts Options) (*Config, error) {
	pwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrapf(ErrConfig, "working directory is not accessible: %v", err)
	}
	absPWD, err := filepath.Abs(pwd)
	if err != nil {
		return nil, errors.Wrapf(ErrConfig, "unable to resolve working directory: %v", err)
	}

	execMode, err := resolveExecMode(opts)
	if err != nil {
		return nil, err
	}

	selectedStreams := record.StreamsAll
	switch opts.Only {
	case "", "all":
		selectedStreams = record.StreamsAll
	case "audio":
		selectedStreams = record.StreamsAudioOnly
	case "video":
		selectedStreams = record.StreamsVideoOnly
	default:
		return nil, errors.Wrapf(ErrConfig, "invalid --only value: %s", opts.Only)
	}

	algoName := opts.HashAlgoName
	if algoName == "" {
		algoName = string(hashing.Default)
	}
	algo, err := hashing.Parse(algoName)
	if err != nil {
		return nil, errors.Wrap(ErrConfig, err.Error())
	}

	outputFile := opts.OutputFile
	if outputFile == "" {
		outputFile = filepath.Join(absPWD, DefaultOutputFileName())
	}
	hashFile := opts.HashFile
	if hashFile == "" {
		hashFile = outputFile
	}

	var bps *int
	if opts.BitsPerSecond > 0 {
		bps = &opts.BitsPerSecond
	}

	inputs := opts.InputFiles
	if len(inputs) == 0 {
		inputs = opts.StdinPaths
	}
	paths := filterPaths(inputs, opts.DisableFilter, opts.CanonicalPaths, hashFile)

	cfg := &Config{
		ExecMode:        execMode,
		Silent:          opts.Silent,
		Decode:          opts.Decode,
		Xattr:           opts.Xattr || XattrWritesEnabled(),
		DryRun:          opts.DryRun,
		DisableFilter:   opts.DisableFilter,
		CanonicalPaths:  opts.CanonicalPaths,
		NumThreads:      opts.NumThreads,
		SelectedStreams: selectedStreams,
		HashAlgo:        algo,
		BitsPerSecond:   bps,
		PWD:             absPWD,
		OutputFile:      outputFile,
		HashFile:        hashFile,
		Paths:           paths,
	}

	if _, isTest := execMode.(TestMode); len(cfg.Paths) == 0 && !isTest {
		return nil, errors.Wrap(ErrConfig, "no valid paths to search")
	}

	return cfg, nil
}

func resolveExecMode(opts Options) (ExecMode, error) {
	// ImportFlac and Rewrite are modifiers on Write, not modes of their own,
	// but the original CLI treats them as sufficient to imply Write when
	// --write itself wasn't also passed.
	if opts.ImportFlac && !opts.Write {
		opts.Write = true
	}
	if opts.Rewrite && !opts.Write {
		opts.Write = true
	}

	modes := 0
	for _, set := range []bool{opts.Write, opts.Test, opts.Print, opts.Dump, opts.Clean} {
		if set {
			modes++
		}
	}
	if modes > 1 {
		return nil, errors.Wrap(ErrConfig, "only one execution mode may be specified: --write, --test, --print, --dump, --import-flac, or --clean")
	}

	switch {
	case opts.Test:
		return TestMode{WriteNew: opts.WriteNew, OverwriteOld: opts.OverwriteOld}, nil
	case opts.Write:
		return WriteMode{Rewrite: opts.Rewrite, ImportFlac: opts.ImportFlac, Overwrite: opts.OverwriteOld}, nil
	case opts.Dump:
		return DumpMode{}, nil
	case opts.Print:
		return PrintMode{}, nil
	case opts.Clean:
		return CleanMode{}, nil
	default:
		return nil, errors.Wrap(ErrConfig, "you must specify an execution mode: --write, --test, --print, --dump, --import-flac, or --clean")
	}
}

// DefaultOutputFileName is the sidecar file name used when --output-file is
// not specified.
func DefaultOutputFileName() string {
	return "dano_hashes.txt"
}

func filterPaths(raw []string, disableFilter, canonical bool, hashFile string) []string {
	hashFileBase := filepath.Base(hashFile)
	var results []string
	for _, path := range raw {
		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: path does not exist: %s\n", path)
			continue
		}
		if info.IsDir() {
			continue
		}
		if filepath.Base(path) == hashFileBase {
			continue
		}
		if !disableFilter && !HasRecognizedExtension(path) {
			continue
		}
		if canonical {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
		}
		results = append(results, path)
	}
	return results
}
