package jsonrpc2

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// ID is a request identifier. The zero value is the absent id, which marks
// a request as a notification. A present id is a JSON string, number, or
// null; null counts as present and is echoed back in responses.
type ID struct {
	raw json.RawMessage
}

// StringID returns an ID holding s.
func StringID(s string) ID {
	raw, _ := json.Marshal(s)
	return ID{raw: raw}
}

// NumberID returns an ID holding n.
func NumberID(n int64) ID {
	return ID{raw: json.RawMessage(strconv.FormatInt(n, 10))}
}

// NullID returns the explicit null id, used in error responses when the
// originating request id could not be determined.
func NullID() ID {
	return ID{raw: json.RawMessage("null")}
}

// IsZero reports whether the id is absent.
func (id ID) IsZero() bool {
	return id.raw == nil
}

// Value returns the id as nil (absent or null), string, or float64.
func (id ID) Value() interface{} {
	if id.raw == nil {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(id.raw, &v); err != nil {
		return nil
	}
	return v
}

// String formats the id for logging.
func (id ID) String() string {
	if id.raw == nil {
		return "<none>"
	}
	return string(id.raw)
}

// Equal reports whether two ids carry the same wire value.
func (id ID) Equal(other ID) bool {
	return bytes.Equal(id.raw, other.raw)
}

// MarshalJSON emits null for the zero ID. Request envelopes never reach
// this case: they omit the absent id via omitzero.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.raw == nil {
		return []byte("null"), nil
	}
	return id.raw, nil
}

// UnmarshalJSON accepts a string, number, or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return errors.New("id must not be empty")
	}
	switch {
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return errors.New("id must be a string, number or null")
		}
	case bytes.Equal(trimmed, []byte("null")):
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return errors.New("id must be a string, number or null")
		}
	}
	id.raw = append(json.RawMessage(nil), trimmed...)
	return nil
}
