package request

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dano-checksum/dano/internal/config"
	"github.com/dano-checksum/dano/internal/hashing"
	"github.com/dano-checksum/dano/internal/record"
)

func TestPlanPinsRecordedParametersForKnownPaths(t *testing.T) {
	cfg := &config.Config{
		Paths:           []string{"a.mkv"},
		HashAlgo:        hashing.Murmur3,
		SelectedStreams: record.StreamsAll,
	}
	known := []record.FileInfo{
		record.New("a.mkv", &record.FileMetadata{
			HashAlgo:        string(hashing.SHA256),
			SelectedStreams: record.StreamsAudioOnly,
			Decoded:         true,
		}),
	}

	reqs := Plan(cfg, known)
	require.Len(t, reqs, 1)
	require.Equal(t, hashing.SHA256, reqs[0].HashAlgo)
	require.Equal(t, record.StreamsAudioOnly, reqs[0].SelectedStreams)
	require.True(t, reqs[0].Decode)
}

func TestPlanSynthesizesFreshRequestForNewPaths(t *testing.T) {
	cfg := &config.Config{
		Paths:           []string{"new.mkv"},
		HashAlgo:        hashing.Murmur3,
		SelectedStreams: record.StreamsAll,
	}
	reqs := Plan(cfg, nil)
	require.Len(t, reqs, 1)
	require.Equal(t, hashing.Murmur3, reqs[0].HashAlgo)
	require.False(t, reqs[0].Decode)
}

func TestPlanLaterDuplicatePathWins(t *testing.T) {
	cfg := &config.Config{
		Paths:    []string{"a.mkv", "a.mkv"},
		HashAlgo: hashing.Murmur3,
	}
	reqs := Plan(cfg, nil)
	require.Len(t, reqs, 1)
}

// TestPlanWithEmptyPathsReVerifiesKnownRecords covers `dano --test` invoked
// with no positional arguments: cfg.Paths is empty, but every canonical-view
// record with metadata must still turn into a request so the whole tracked
// set gets re-verified.
func TestPlanWithEmptyPathsReVerifiesKnownRecords(t *testing.T) {
	cfg := &config.Config{
		HashAlgo:        hashing.Murmur3,
		SelectedStreams: record.StreamsAll,
	}
	known := []record.FileInfo{
		record.New("a.mkv", &record.FileMetadata{
			HashAlgo:        string(hashing.SHA256),
			SelectedStreams: record.StreamsAudioOnly,
		}),
		record.New("b.mkv", &record.FileMetadata{
			HashAlgo: string(hashing.Murmur3),
		}),
		record.New("phantom.mkv", nil),
	}

	reqs := Plan(cfg, known)
	require.Len(t, reqs, 2)

	byPath := make(map[string]FileInfoRequest, len(reqs))
	for _, req := range reqs {
		byPath[req.Path] = req
	}
	require.Equal(t, hashing.SHA256, byPath["a.mkv"].HashAlgo)
	require.Equal(t, record.StreamsAudioOnly, byPath["a.mkv"].SelectedStreams)
	require.Equal(t, hashing.Murmur3, byPath["b.mkv"].HashAlgo)
	_, hasPhantom := byPath["phantom.mkv"]
	require.False(t, hasPhantom)
}

// TestPlanKeepsPinnedParamsWhenPathAlsoNamedExplicitly covers the case where
// a path is both in the canonical view and named again on the command line:
// its recorded parameters must win over cfg's current defaults.
func TestPlanKeepsPinnedParamsWhenPathAlsoNamedExplicitly(t *testing.T) {
	cfg := &config.Config{
		Paths:           []string{"a.mkv"},
		HashAlgo:        hashing.Murmur3,
		SelectedStreams: record.StreamsAll,
	}
	known := []record.FileInfo{
		record.New("a.mkv", &record.FileMetadata{
			HashAlgo:        string(hashing.SHA256),
			SelectedStreams: record.StreamsAudioOnly,
		}),
	}

	reqs := Plan(cfg, known)
	require.Len(t, reqs, 1)
	require.Equal(t, hashing.SHA256, reqs[0].HashAlgo)
	require.Equal(t, record.StreamsAudioOnly, reqs[0].SelectedStreams)
}
