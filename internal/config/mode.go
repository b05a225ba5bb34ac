package config

// ExecMode is a tagged variant over dano's five execution modes, following
// the teacher's preference for branching on a sum type at dispatcher edges
// rather than threading a pile of booleans through every downstream
// function.
type ExecMode interface {
	isExecMode()
}

// WriteMode writes newly hashed files to the record store. A file whose path
// already has a recorded hash is not written again, with or without Rewrite.
type WriteMode struct {
	// Rewrite re-hashes files that already have a record under the
	// configured hash algorithm instead of the recorded one. The results are
	// classified like any other, so an existing record is not re-serialized
	// and a legacy-schema line stays as it is in the sidecar.
	Rewrite bool
	// ImportFlac sources initial records from metaflac rather than from a
	// prior sidecar/xattr state.
	ImportFlac bool
	// Overwrite re-materializes the sidecar via OverwriteAll when a hash
	// reappears under a new filename; otherwise such results are discarded
	// silently.
	Overwrite bool
}

func (WriteMode) isExecMode() {}

// TestMode (aka Verify/Compare) re-hashes inputs and checks them against the
// canonical view, exiting with a non-zero code on any mismatch or missing
// file.
type TestMode struct {
	// WriteNew appends records for paths with no prior record.
	WriteNew bool
	// OverwriteOld, together with WriteNew, re-materializes the sidecar when a
	// hash has moved to a new filename. Without WriteNew such results are not
	// written.
	OverwriteOld bool
}

func (TestMode) isExecMode() {}

// PrintMode pretty-prints the canonical view to stdout without hashing
// anything.
type PrintMode struct{}

func (PrintMode) isExecMode() {}

// DumpMode re-serializes the canonical view back to the sidecar without
// testing or comparing.
type DumpMode struct{}

func (DumpMode) isExecMode() {}

// CleanMode removes dano's extended attribute from each input path without
// touching the sidecar.
type CleanMode struct{}

func (CleanMode) isExecMode() {}
