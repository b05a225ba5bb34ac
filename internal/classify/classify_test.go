package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dano-checksum/dano/internal/pool"
	"github.com/dano-checksum/dano/internal/record"
	"github.com/dano-checksum/dano/internal/request"
)

func makeRecord(path, hash string) record.FileInfo {
	return record.New(path, &record.FileMetadata{
		HashAlgo:        "murmur3",
		HashValue:       record.HashValue{Radix: record.HexRadix, Value: hash},
		LastWritten:     time.Unix(100, 0),
		ModifyTime:      time.Unix(100, 0),
		SelectedStreams: record.StreamsAll,
	})
}

func makeResult(path, hash string) pool.Result {
	return pool.Result{
		Request: request.FileInfoRequest{Path: path},
		Info:    makeRecord(path, hash),
	}
}

func TestClassifyNewFile(t *testing.T) {
	fm := BuildFileMap(nil)
	v := classifyOne(makeResult("a.mkv", "deadbeef"), fm)
	require.Equal(t, VerdictNewFile, v)
	require.Equal(t, 0, v.ExitCode())
}

func TestClassifyOK(t *testing.T) {
	fm := BuildFileMap([]record.FileInfo{makeRecord("a.mkv", "deadbeef")})
	v := classifyOne(makeResult("a.mkv", "deadbeef"), fm)
	require.Equal(t, VerdictOK, v)
}

func TestClassifyRenamed(t *testing.T) {
	fm := BuildFileMap([]record.FileInfo{makeRecord("a.mkv", "deadbeef")})
	v := classifyOne(makeResult("b.mkv", "deadbeef"), fm)
	require.Equal(t, VerdictRenamed, v)
}

func TestClassifyCorrupted(t *testing.T) {
	fm := BuildFileMap([]record.FileInfo{makeRecord("a.mkv", "deadbeef")})
	v := classifyOne(makeResult("a.mkv", "cafef00d"), fm)
	require.Equal(t, VerdictCorrupted, v)
	require.Equal(t, 3, v.ExitCode())
}

func TestClassifyPhantom(t *testing.T) {
	fm := BuildFileMap([]record.FileInfo{makeRecord("a.mkv", "deadbeef")})
	phantom := pool.Result{
		Request: request.FileInfoRequest{Path: "a.mkv"},
		Info:    record.FileInfo{Version: record.CurrentVersion, Path: "a.mkv"},
	}
	v := classifyOne(phantom, fm)
	require.Equal(t, VerdictPhantom, v)
	require.Equal(t, 2, v.ExitCode())
}

func TestPartitionSortsByPath(t *testing.T) {
	classified := []Classified{
		{Result: makeResult("z.mkv", "111"), Verdict: VerdictNewFile},
		{Result: makeResult("a.mkv", "222"), Verdict: VerdictNewFile},
	}
	newFiles, _ := Partition(classified)
	require.Equal(t, []string{"a.mkv", "z.mkv"}, []string{newFiles[0].Path, newFiles[1].Path})
}
