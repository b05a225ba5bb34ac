// Package pathnorm normalizes filesystem paths for comparison, the way
// mutagen's filesystem package normalizes Unicode forms before treating two
// paths as "the same" across POSIX filesystems that don't themselves
// enforce a single normal form.
package pathnorm

import "golang.org/x/text/unicode/norm"

// Key returns the canonical comparison key for a path: its NFC-normalized
// form. Two paths that render identically but use different Unicode
// composition (e.g. a precomposed "é" vs. an "e" + combining acute) collapse
// to the same key, so Ingest's path-based dedup doesn't treat them as
// distinct records.
func Key(path string) string {
	return norm.NFC.String(path)
}
