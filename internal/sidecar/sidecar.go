// Package sidecar implements dano's line-delimited record store: the first
// persistence surface, coequal with the per-file extended attribute
// implemented in package xattr. A sidecar is UTF-8, newline-terminated, and
// begins with a single "//"-prefixed comment header; every subsequent
// non-comment line is one JSON FileInfo record.
package sidecar

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/dano-checksum/dano/internal/record"
)

// DefaultName is the sidecar file name used when the user specifies none.
const DefaultName = "dano_hashes.txt"

// tmpSuffixPrefix names the sibling file OverwriteAll stages its output in
// before the atomic rename, following the teacher's convention of a
// recognizable, collision-resistant temporary-file prefix.
const tmpSuffixPrefix = ".tmp-"

// headerPrefix marks a sidecar comment line; comment lines are ignored on
// read.
const headerPrefix = "//"

// Header renders the first line written to a newly created sidecar.
func Header(invokedFrom string) string {
	return fmt.Sprintf("%s DANO, Invoked from: %s\n", headerPrefix, invokedFrom)
}

// ReadAll parses every non-comment line of the sidecar at path. Lines that
// fail to parse are logged to stderr and skipped, so a crash mid-append that
// leaves a half-written line doesn't take down the rest of the sidecar.
func ReadAll(path string) ([]record.FileInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "unable to open sidecar %s", path)
	}
	defer file.Close()

	var results []record.FileInfo
	scanner := bufio.NewScanner(file)
	// Records are small, but be generous with the line buffer in case a path
	// or digest is unusually long.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, headerPrefix) {
			continue
		}
		info, parseErr := record.Deserialize(line)
		if parseErr != nil {
			fmt.Fprintf(os.Stderr, "WARN: skipping unparseable sidecar line: %v\n", parseErr)
			continue
		}
		results = append(results, info)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "unable to read sidecar %s", path)
	}
	return results, nil
}

// Append opens the sidecar for append, writing the header comment first if
// the sidecar doesn't yet exist, then writes one serialized record per line.
func Append(path string, invokedFrom string, infos []record.FileInfo) error {
	isFirstRun := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		isFirstRun = true
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "unable to open sidecar %s for append", path)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if isFirstRun {
		if _, err := writer.WriteString(Header(invokedFrom)); err != nil {
			return errors.Wrap(err, "unable to write sidecar header")
		}
	}
	for _, info := range infos {
		if info.Metadata == nil {
			continue
		}
		serialized, err := record.Serialize(info)
		if err != nil {
			return err
		}
		if _, err := writer.WriteString(serialized + "\n"); err != nil {
			return errors.Wrap(err, "unable to append sidecar record")
		}
	}
	return writer.Flush()
}

// OverwriteAll atomically replaces the sidecar's full contents with infos,
// writing them to a ".tmp-<uuid>" sibling first and renaming it into place.
// The caller is responsible for having already deduplicated infos by digest.
func OverwriteAll(path string, invokedFrom string, infos []record.FileInfo) error {
	tmpPath := path + tmpSuffixPrefix + uuid.New().String()[:8]

	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrapf(err, "unable to create temporary sidecar %s", tmpPath)
	}

	writer := bufio.NewWriter(file)
	if _, err := writer.WriteString(Header(invokedFrom)); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return errors.Wrap(err, "unable to write sidecar header")
	}
	for _, info := range infos {
		if info.Metadata == nil {
			continue
		}
		serialized, err := record.Serialize(info)
		if err != nil {
			file.Close()
			os.Remove(tmpPath)
			return err
		}
		if _, err := writer.WriteString(serialized + "\n"); err != nil {
			file.Close()
			os.Remove(tmpPath)
			return errors.Wrap(err, "unable to write sidecar record")
		}
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return errors.Wrap(err, "unable to flush temporary sidecar")
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "unable to close temporary sidecar")
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "unable to rename temporary sidecar into place at %s", path)
	}
	return nil
}

// DeduplicateByDigest groups infos by their canonical (radix, trimmed hex)
// digest and keeps, within each group, the record with the maximum
// LastWritten. Phantom records (no metadata) are dropped, since they carry
// no digest to group by and OverwriteAll's invariant is stated purely in
// terms of distinct digests.
func DeduplicateByDigest(infos []record.FileInfo) []record.FileInfo {
	type key struct {
		radix int
		value string
	}
	best := make(map[key]record.FileInfo)
	for _, info := range infos {
		if info.Metadata == nil {
			continue
		}
		k := key{radix: info.Metadata.HashValue.Radix, value: normalizeHex(info.Metadata.HashValue.Value)}
		existing, ok := best[k]
		if !ok || info.Metadata.LastWritten.After(existing.Metadata.LastWritten) {
			best[k] = info
		}
	}
	results := make([]record.FileInfo, 0, len(best))
	for _, info := range best {
		results = append(results, info)
	}
	return results
}

func normalizeHex(value string) string {
	trimmed := strings.TrimLeft(strings.ToLower(value), "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
