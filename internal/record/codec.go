package record

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ErrSchemaUnknown is returned when a record's version is neither the
// current schema nor a registered legacy schema.
var ErrSchemaUnknown = errors.New("unknown record schema version")

// versionProbe is parsed first, before the full record, so Deserialize can
// dispatch to the right upcaster without assuming the rest of the shape.
type versionProbe struct {
	Version int `json:"version"`
}

// Serialize renders a FileInfo as a single stable JSON object. The caller is
// responsible for appending the trailing newline required by the sidecar
// format.
func Serialize(info FileInfo) (string, error) {
	data, err := json.Marshal(info)
	if err != nil {
		return "", errors.Wrap(err, "unable to marshal record")
	}
	return string(data), nil
}

// Deserialize parses one JSON line into a FileInfo, upcasting it to the
// current schema if it was written at an older version.
func Deserialize(line string) (FileInfo, error) {
	var probe versionProbe
	if err := json.Unmarshal([]byte(line), &probe); err != nil {
		return FileInfo{}, errors.Wrap(err, "unable to parse record version")
	}

	switch probe.Version {
	case CurrentVersion:
		var info FileInfo
		if err := json.Unmarshal([]byte(line), &info); err != nil {
			return FileInfo{}, errors.Wrap(err, "unable to parse record")
		}
		return info, nil
	case 1:
		return upcastV1(line)
	default:
		return FileInfo{}, errors.Wrapf(ErrSchemaUnknown, "version %d", probe.Version)
	}
}
