package jsonrpc2

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Request is a single JSON-RPC 2.0 call or notification. Requests are
// value objects: built once, never mutated.
type Request struct {
	Method string
	Params Params
	ID     ID
}

// NewRequest builds a call. params must marshal to a JSON array or object,
// or be nil for no arguments.
func NewRequest(method string, params interface{}, id ID) (*Request, error) {
	if method == "" {
		return nil, fmt.Errorf("%w: method must not be empty", ErrInvalidRequest)
	}
	p, err := NewParams(params)
	if err != nil {
		return nil, err
	}
	return &Request{Method: method, Params: p, ID: id}, nil
}

// NewNotification builds a request without an id. Resolving it never
// produces a response.
func NewNotification(method string, params interface{}) (*Request, error) {
	return NewRequest(method, params, ID{})
}

// IsNotification reports whether the request carries no id.
func (r *Request) IsNotification() bool {
	return r.ID.IsZero()
}

type wireRequest struct {
	JSONRPC string  `json:"jsonrpc"`
	Method  string  `json:"method"`
	Params  *Params `json:"params,omitempty"`
	ID      *ID     `json:"id,omitempty"`
}

// MarshalJSON emits the canonical envelope, omitting absent params and the
// absent id. Batches serialize via json.Marshal on a []Request.
func (r Request) MarshalJSON() ([]byte, error) {
	w := wireRequest{
		JSONRPC: Version,
		Method:  r.Method,
	}
	if !r.Params.IsZero() {
		w.Params = &r.Params
	}
	if !r.ID.IsZero() {
		w.ID = &r.ID
	}
	return json.Marshal(w)
}

// UnmarshalJSON validates the envelope: the object must carry
// jsonrpc "2.0" and a non-empty string method; params must be an array or
// object; the id must be a string, number or null.
func (r *Request) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		var syn *json.SyntaxError
		if errors.As(err, &syn) {
			return fmt.Errorf("%w: %v", ErrParse, err)
		}
		return fmt.Errorf("%w: request must be an object", ErrInvalidRequest)
	}

	var version string
	if raw, ok := fields["jsonrpc"]; !ok || json.Unmarshal(raw, &version) != nil || version != Version {
		return fmt.Errorf("%w: jsonrpc version must be %q", ErrInvalidRequest, Version)
	}

	rawMethod, ok := fields["method"]
	if !ok {
		return fmt.Errorf("%w: method is required", ErrInvalidRequest)
	}
	var method string
	if err := json.Unmarshal(rawMethod, &method); err != nil {
		return fmt.Errorf("%w: method must be a string", ErrInvalidRequest)
	}
	if method == "" {
		return fmt.Errorf("%w: method must not be empty", ErrInvalidRequest)
	}

	var params Params
	if raw, ok := fields["params"]; ok {
		if err := params.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}

	var id ID
	if raw, ok := fields["id"]; ok {
		if err := id.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}

	r.Method = method
	r.Params = params
	r.ID = id
	return nil
}

// ParseRequest parses a single request object. Invalid JSON wraps
// ErrParse; a structurally invalid envelope wraps ErrInvalidRequest.
func ParseRequest(data []byte) (*Request, error) {
	r := new(Request)
	if err := json.Unmarshal(data, r); err != nil {
		return nil, requestParseError(err)
	}
	return r, nil
}

// ParseRequestBatch parses a batch. An empty array is invalid; member
// order is preserved.
func ParseRequestBatch(data []byte) ([]Request, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		var syn *json.SyntaxError
		if errors.As(err, &syn) {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return nil, fmt.Errorf("%w: batch must be an array", ErrInvalidRequest)
	}
	if len(raws) == 0 {
		return nil, fmt.Errorf("%w: batch must not be empty", ErrInvalidRequest)
	}
	reqs := make([]Request, len(raws))
	for i, raw := range raws {
		if err := reqs[i].UnmarshalJSON(raw); err != nil {
			return nil, err
		}
	}
	return reqs, nil
}

// requestParseError classifies errors escaping json.Unmarshal: syntax
// errors come from the decoder's validity pass and never reach
// Request.UnmarshalJSON, so they are wrapped here.
func requestParseError(err error) error {
	if errors.Is(err, ErrParse) || errors.Is(err, ErrInvalidRequest) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrParse, err)
}
