package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownType is returned by Decode for a syntactically valid JSON
// frame whose type tag is not part of the protocol. Receivers are
// expected to log and drop such frames rather than fail the connection.
var ErrUnknownType = errors.New("unknown control frame type")

// Encode serializes a control frame to its wire form.
func Encode(frame ControlFrame) ([]byte, error) {
	data, err := json.Marshal(frame)
	if err != nil {
		return nil, fmt.Errorf("encode %s frame: %w", frame.ControlType(), err)
	}
	return data, nil
}

// Decode parses a text frame into its typed form. Binary frames must
// never be passed here; the transport's message type already separates
// them, and speculatively parsing chunk bytes as JSON would misfire on
// chunks that happen to start with '{'.
func Decode(data []byte) (ControlFrame, error) {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("decode control frame: %w", err)
	}

	switch tag.Type {
	case TypeChat:
		var f Chat
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode %s frame: %w", tag.Type, err)
		}
		return f, nil
	case TypeFileMeta:
		var f FileMeta
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode %s frame: %w", tag.Type, err)
		}
		return f, nil
	case TypeFileHeader:
		var f FileHeader
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode %s frame: %w", tag.Type, err)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, tag.Type)
	}
}
