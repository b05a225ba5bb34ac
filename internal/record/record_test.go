package record

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// TestSerializeDeserializeRoundTrip verifies that deserializing a serialized
// FileInfo yields back an identical value.
func TestSerializeDeserializeRoundTrip(t *testing.T) {
	bps := 16
	original := New("a.mkv", &FileMetadata{
		HashAlgo:        "murmur3",
		HashValue:       HashValue{Radix: HexRadix, Value: "deadbeef"},
		LastWritten:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ModifyTime:      time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Decoded:         true,
		SelectedStreams: StreamsAudioOnly,
		BitsPerSecond:   &bps,
	})

	serialized, err := Serialize(original)
	require.NoError(t, err)

	deserialized, err := Deserialize(serialized)
	require.NoError(t, err)

	if diff := cmp.Diff(original, deserialized); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

// TestPhantomRecordRoundTrip verifies that a phantom record (no metadata)
// round-trips correctly.
func TestPhantomRecordRoundTrip(t *testing.T) {
	original := New("missing.mkv", nil)

	serialized, err := Serialize(original)
	require.NoError(t, err)

	deserialized, err := Deserialize(serialized)
	require.NoError(t, err)
	require.True(t, deserialized.Phantom())
	require.Equal(t, original.Path, deserialized.Path)
}

// TestUpcastV1DefaultsNewFields verifies that a legacy version-1 line is
// upcast to the current version with additive fields at their defaults.
func TestUpcastV1DefaultsNewFields(t *testing.T) {
	line := `{"version":1,"path":"old.mkv","metadata":{"hash_algo":"md5","hash_value":"cafe","last_written":"2020-01-01T00:00:00Z","modify_time":"2020-01-01T00:00:00Z"}}`

	info, err := Deserialize(line)
	require.NoError(t, err)
	require.Equal(t, CurrentVersion, info.Version)
	require.Equal(t, "old.mkv", info.Path)
	require.NotNil(t, info.Metadata)
	require.False(t, info.Metadata.Decoded)
	require.Equal(t, StreamsAll, info.Metadata.SelectedStreams)
	require.Nil(t, info.Metadata.BitsPerSecond)
	require.Equal(t, "md5", info.Metadata.HashAlgo)
	require.True(t, info.Metadata.HashValue.Equal(HashValue{Radix: HexRadix, Value: "cafe"}))
}

// TestUpcastUnknownVersionFails verifies that an unregistered schema version
// fails with ErrSchemaUnknown.
func TestUpcastUnknownVersionFails(t *testing.T) {
	line := `{"version":99,"path":"x.mkv","metadata":null}`
	_, err := Deserialize(line)
	require.ErrorIs(t, err, ErrSchemaUnknown)
}

// TestHashValueEqualTrimsLeadingZeros verifies digest equality normalizes
// leading zeros and case before comparing.
func TestHashValueEqualTrimsLeadingZeros(t *testing.T) {
	a := HashValue{Radix: HexRadix, Value: "00DEADBEEF"}
	b := HashValue{Radix: HexRadix, Value: "deadbeef"}
	require.True(t, a.Equal(b))

	c := HashValue{Radix: HexRadix, Value: "deadbeee"}
	require.False(t, a.Equal(c))
}
