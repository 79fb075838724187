package jsonrpc2

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ParamsKind discriminates the three shapes request arguments can take.
type ParamsKind int

const (
	ParamsAbsent ParamsKind = iota
	ParamsPositional
	ParamsNamed
)

// Params holds request arguments: absent, positional (a JSON array), or
// named (a JSON object). The zero value is absent.
type Params struct {
	raw json.RawMessage
}

// NewParams builds Params from v, which must marshal to a JSON array or
// object. nil (and values marshaling to null) mean no arguments.
func NewParams(v interface{}) (Params, error) {
	if v == nil {
		return Params{}, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return Params{}, err
	}
	var p Params
	if err := p.UnmarshalJSON(raw); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Positional builds positional params from args.
func Positional(args ...interface{}) (Params, error) {
	return NewParams(args)
}

// Named builds named params from fields.
func Named(fields map[string]interface{}) (Params, error) {
	return NewParams(fields)
}

// Kind reports the shape of the params.
func (p Params) Kind() ParamsKind {
	if p.raw == nil {
		return ParamsAbsent
	}
	if p.raw[0] == '[' {
		return ParamsPositional
	}
	return ParamsNamed
}

// IsZero reports whether the params are absent.
func (p Params) IsZero() bool {
	return p.raw == nil
}

// Raw returns the raw JSON of the params, or nil when absent.
func (p Params) Raw() json.RawMessage {
	return p.raw
}

// Unmarshal decodes the params into v. Absent params decode as null.
func (p Params) Unmarshal(v interface{}) error {
	raw := p.raw
	if raw == nil {
		raw = json.RawMessage("null")
	}
	return json.Unmarshal(raw, v)
}

// MarshalJSON emits null for absent params. Request envelopes never reach
// this case: they omit absent params via omitzero.
func (p Params) MarshalJSON() ([]byte, error) {
	if p.raw == nil {
		return []byte("null"), nil
	}
	return p.raw, nil
}

// UnmarshalJSON accepts an array or an object. null is treated as absent.
func (p *Params) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		p.raw = nil
		return nil
	}
	switch trimmed[0] {
	case '[', '{':
		if !json.Valid(trimmed) {
			return errors.New("params is not valid JSON")
		}
		p.raw = append(json.RawMessage(nil), trimmed...)
		return nil
	}
	return errors.New("params must be an array or an object")
}
