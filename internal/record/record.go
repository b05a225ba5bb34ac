// Package record defines dano's durable unit of state, FileInfo, and its
// JSON wire format. A FileInfo is born when the hash worker pool parses a
// transcoder result and is mutated only by wholesale replacement
// (OverwriteAll) — never edited in place.
package record

import (
	"strings"
	"time"
)

// CurrentVersion is the schema version written by this build. Records read
// at a lower version are upcast before entering the canonical view.
const CurrentVersion = 2

// HexRadix is the radix used for all natively-produced hash values. Imported
// values (e.g. from FLAC metadata) may carry a different radix but are
// always expressed as hexadecimal text regardless.
const HexRadix = 16

// SelectedStreams enumerates which of a container's streams a request or
// record's hash covers.
type SelectedStreams string

// The supported stream selections.
const (
	StreamsAll        SelectedStreams = "all"
	StreamsAudioOnly  SelectedStreams = "audio"
	StreamsVideoOnly  SelectedStreams = "video"
)

// HashValue is a digest expressed at a given radix with leading zeros
// trimmed. Equality is defined over the canonical (trimmed) value at its
// stated radix.
type HashValue struct {
	Radix int    `json:"radix"`
	Value string `json:"value"`
}

// Equal reports whether two hash values are the same digest: same radix,
// same trimmed hex text (case-insensitive, since transcoder output is
// lowercase but imported or hand-edited sidecars may not be).
func (h HashValue) Equal(other HashValue) bool {
	if h.Radix != other.Radix {
		return false
	}
	return strings.EqualFold(normalizeHex(h.Value), normalizeHex(other.Value))
}

// normalizeHex trims leading zeros, the same normalization OverwriteAll's
// content-addressed grouping relies on.
func normalizeHex(value string) string {
	trimmed := strings.TrimLeft(strings.ToLower(value), "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// FileMetadata describes a completed hash of a path's media streams.
type FileMetadata struct {
	HashAlgo         string          `json:"hash_algo"`
	HashValue        HashValue       `json:"hash_value"`
	LastWritten      time.Time       `json:"last_written"`
	ModifyTime       time.Time       `json:"modify_time"`
	Decoded          bool            `json:"decoded"`
	SelectedStreams  SelectedStreams `json:"selected_streams"`
	BitsPerSecond    *int            `json:"opt_bits_per_second,omitempty"`
}

// FileInfo is the unit of record: a path plus an optional hash. A nil
// Metadata is a "phantom" record — the path is known but unhashable (missing
// or the transcoder produced no output).
type FileInfo struct {
	Version  int           `json:"version"`
	Path     string        `json:"path"`
	Metadata *FileMetadata `json:"metadata"`
}

// New constructs a FileInfo at the current schema version.
func New(path string, metadata *FileMetadata) FileInfo {
	return FileInfo{Version: CurrentVersion, Path: path, Metadata: metadata}
}

// WithPath returns a copy of the FileInfo with Path replaced. Used both to
// restore the real path after reading an xattr record (whose stored Path is
// always empty) and to clear it before writing one.
func (f FileInfo) WithPath(path string) FileInfo {
	f.Path = path
	return f
}

// Phantom reports whether this record signals "path considered, no hash
// available" rather than carrying an actual digest.
func (f FileInfo) Phantom() bool {
	return f.Metadata == nil
}
