package jsonrpc2

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Response is the outcome of a resolved call: either a result or an error
// object, never both. Responses are value objects, built once and read
// thereafter.
type Response struct {
	id     ID
	result interface{}
	err    *Error
}

// NewResponse builds a success response. A nil result is a legal JSON
// null result.
func NewResponse(id ID, result interface{}) *Response {
	return &Response{id: id, result: result}
}

// NewErrorResponse builds a failed response. rpcErr must not be nil; a nil
// value is replaced with a generic internal error to keep the
// result-xor-error invariant.
func NewErrorResponse(id ID, rpcErr *Error) *Response {
	if rpcErr == nil {
		rpcErr = NewError(CodeInternalError, "internal error")
	}
	return &Response{id: id, err: rpcErr}
}

// ID returns the id echoed from the originating request. It is the zero
// ID when the id could not be determined; on the wire that is null.
func (r *Response) ID() ID {
	return r.id
}

// IsError reports whether the response carries an error.
func (r *Response) IsError() bool {
	return r.err != nil
}

// Result returns the success payload. For responses parsed off the wire
// the payload is a json.RawMessage; see UnmarshalResult for typed access.
// Calling Result on an error response returns ErrInvalidState.
func (r *Response) Result() (interface{}, error) {
	if r.err != nil {
		return nil, fmt.Errorf("%w: Result on an error response", ErrInvalidState)
	}
	return r.result, nil
}

// UnmarshalResult decodes the success payload into v. Calling it on an
// error response returns ErrInvalidState.
func (r *Response) UnmarshalResult(v interface{}) error {
	if r.err != nil {
		return fmt.Errorf("%w: UnmarshalResult on an error response", ErrInvalidState)
	}
	raw, ok := r.result.(json.RawMessage)
	if !ok {
		b, err := json.Marshal(r.result)
		if err != nil {
			return err
		}
		raw = b
	}
	return json.Unmarshal(raw, v)
}

// Err returns the error object, or nil for a success response. Code,
// message and optional data are read from the returned *Error.
func (r *Response) Err() *Error {
	return r.err
}

// MarshalJSON emits the canonical envelope with exactly one of result and
// error, and an id that is null when unknown. Batches serialize via
// json.Marshal on a []Response.
func (r Response) MarshalJSON() ([]byte, error) {
	if r.err != nil {
		return json.Marshal(struct {
			JSONRPC string `json:"jsonrpc"`
			Error   *Error `json:"error"`
			ID      ID     `json:"id"`
		}{Version, r.err, r.id})
	}
	return json.Marshal(struct {
		JSONRPC string      `json:"jsonrpc"`
		Result  interface{} `json:"result"`
		ID      ID          `json:"id"`
	}{Version, r.result, r.id})
}

// UnmarshalJSON validates the envelope: jsonrpc must be "2.0", exactly one
// of result and error must be present, and an error object must carry
// code and message.
func (r *Response) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		var syn *json.SyntaxError
		if errors.As(err, &syn) {
			return fmt.Errorf("%w: %v", ErrParse, err)
		}
		return fmt.Errorf("%w: response must be an object", ErrInvalidResponse)
	}

	var version string
	if raw, ok := fields["jsonrpc"]; !ok || json.Unmarshal(raw, &version) != nil || version != Version {
		return fmt.Errorf("%w: jsonrpc version must be %q", ErrInvalidResponse, Version)
	}

	rawResult, hasResult := fields["result"]
	rawError, hasError := fields["error"]
	if hasResult && hasError {
		return fmt.Errorf("%w: result and error are mutually exclusive", ErrInvalidResponse)
	}
	if !hasResult && !hasError {
		return fmt.Errorf("%w: one of result and error is required", ErrInvalidResponse)
	}

	var id ID
	if raw, ok := fields["id"]; ok {
		if err := id.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}

	if hasError {
		rpcErr, err := parseErrorObject(rawError)
		if err != nil {
			return err
		}
		*r = Response{id: id, err: rpcErr}
		return nil
	}
	*r = Response{id: id, result: append(json.RawMessage(nil), rawResult...)}
	return nil
}

func parseErrorObject(raw json.RawMessage) (*Error, error) {
	var eo struct {
		Code    *int            `json:"code"`
		Message *string         `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &eo); err != nil {
		return nil, fmt.Errorf("%w: malformed error object", ErrInvalidResponse)
	}
	if eo.Code == nil || eo.Message == nil {
		return nil, fmt.Errorf("%w: error must carry code and message", ErrInvalidResponse)
	}
	rpcErr := &Error{Code: *eo.Code, Message: *eo.Message}
	if eo.Data != nil && !bytes.Equal(bytes.TrimSpace(eo.Data), []byte("null")) {
		rpcErr.Data = append(json.RawMessage(nil), eo.Data...)
	}
	return rpcErr, nil
}

// ParseResponse parses a single response object. Invalid JSON wraps
// ErrParse; a structurally invalid envelope wraps ErrInvalidResponse.
func ParseResponse(data []byte) (*Response, error) {
	r := new(Response)
	if err := json.Unmarshal(data, r); err != nil {
		return nil, responseParseError(err)
	}
	return r, nil
}

// ParseResponseBatch parses a batch of responses. An empty array is
// invalid; member order is preserved.
func ParseResponseBatch(data []byte) ([]Response, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		var syn *json.SyntaxError
		if errors.As(err, &syn) {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return nil, fmt.Errorf("%w: batch must be an array", ErrInvalidResponse)
	}
	if len(raws) == 0 {
		return nil, fmt.Errorf("%w: batch must not be empty", ErrInvalidResponse)
	}
	resps := make([]Response, len(raws))
	for i, raw := range raws {
		if err := resps[i].UnmarshalJSON(raw); err != nil {
			return nil, err
		}
	}
	return resps, nil
}

func responseParseError(err error) error {
	if errors.Is(err, ErrParse) || errors.Is(err, ErrInvalidResponse) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrParse, err)
}
