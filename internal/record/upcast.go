package record

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// fileInfoV1 is the schema written before selected-stream hashing, decoded
// re-materialization, and PCM bit-depth reinterpretation existed. Fields
// absent here are additive-only: upcastV1 defaults them rather than failing.
type fileInfoV1 struct {
	Version  int              `json:"version"`
	Path     string           `json:"path"`
	Metadata *fileMetadataV1  `json:"metadata"`
}

type fileMetadataV1 struct {
	HashAlgo    string    `json:"hash_algo"`
	HashValue   string    `json:"hash_value"`
	LastWritten time.Time `json:"last_written"`
	ModifyTime  time.Time `json:"modify_time"`
}

// upcastV1 converts a version-1 line to the current schema. It is
// additive-only: decoded defaults to false, selected_streams defaults to
// All, and opt_bits_per_second defaults to absent.
func upcastV1(line string) (FileInfo, error) {
	var legacy fileInfoV1
	if err := json.Unmarshal([]byte(line), &legacy); err != nil {
		return FileInfo{}, errors.Wrap(err, "unable to parse legacy v1 record")
	}

	var metadata *FileMetadata
	if legacy.Metadata != nil {
		metadata = &FileMetadata{
			HashAlgo: legacy.Metadata.HashAlgo,
			HashValue: HashValue{
				Radix: HexRadix,
				Value: legacy.Metadata.HashValue,
			},
			LastWritten:     legacy.Metadata.LastWritten,
			ModifyTime:      legacy.Metadata.ModifyTime,
			Decoded:         false,
			SelectedStreams: StreamsAll,
			BitsPerSecond:   nil,
		}
	}

	return FileInfo{
		Version:  CurrentVersion,
		Path:     legacy.Path,
		Metadata: metadata,
	}, nil
}
