package jsonrpc2

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// The CBOR envelope mirrors the JSON envelope field for field, with the
// same omission and validation rules. It exists for socket transports
// where JSON overhead matters; the protocol semantics are unchanged.

// cborDec decodes CBOR maps into string-keyed Go maps so values can be
// re-encoded as JSON.
var cborDec, _ = cbor.DecOptions{
	DefaultMapType: reflect.TypeOf(map[string]interface{}(nil)),
}.DecMode()

// MarshalCBOR implements cbor.Marshaler.
func (r Request) MarshalCBOR() ([]byte, error) {
	m := map[string]interface{}{"jsonrpc": Version, "method": r.Method}
	if !r.Params.IsZero() {
		var v interface{}
		if err := json.Unmarshal(r.Params.Raw(), &v); err != nil {
			return nil, err
		}
		m["params"] = v
	}
	if !r.ID.IsZero() {
		m["id"] = r.ID.Value()
	}
	return cbor.Marshal(m)
}

// UnmarshalCBOR implements cbor.Unmarshaler with the same validation as
// the JSON envelope.
func (r *Request) UnmarshalCBOR(data []byte) error {
	var fields map[string]cbor.RawMessage
	if err := cbor.Unmarshal(data, &fields); err != nil {
		if cbor.Wellformed(data) != nil {
			return fmt.Errorf("%w: %v", ErrParse, err)
		}
		return fmt.Errorf("%w: request must be a map", ErrInvalidRequest)
	}

	var version string
	if raw, ok := fields["jsonrpc"]; !ok || cbor.Unmarshal(raw, &version) != nil || version != Version {
		return fmt.Errorf("%w: jsonrpc version must be %q", ErrInvalidRequest, Version)
	}

	rawMethod, ok := fields["method"]
	if !ok {
		return fmt.Errorf("%w: method is required", ErrInvalidRequest)
	}
	var method string
	if err := cbor.Unmarshal(rawMethod, &method); err != nil {
		return fmt.Errorf("%w: method must be a string", ErrInvalidRequest)
	}
	if method == "" {
		return fmt.Errorf("%w: method must not be empty", ErrInvalidRequest)
	}

	var params Params
	if raw, ok := fields["params"]; ok {
		jraw, err := cborToJSON(raw)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		if err := params.UnmarshalJSON(jraw); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}

	var id ID
	if raw, ok := fields["id"]; ok {
		jraw, err := cborToJSON(raw)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		if err := id.UnmarshalJSON(jraw); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}

	r.Method = method
	r.Params = params
	r.ID = id
	return nil
}

// MarshalCBOR implements cbor.Marshaler.
func (r Response) MarshalCBOR() ([]byte, error) {
	m := map[string]interface{}{"jsonrpc": Version, "id": r.id.Value()}
	if r.err != nil {
		em := map[string]interface{}{"code": r.err.Code, "message": r.err.Message}
		if r.err.Data != nil {
			v, err := jsonValue(r.err.Data)
			if err != nil {
				return nil, err
			}
			em["data"] = v
		}
		m["error"] = em
	} else {
		v, err := jsonValue(r.result)
		if err != nil {
			return nil, err
		}
		m["result"] = v
	}
	return cbor.Marshal(m)
}

// UnmarshalCBOR implements cbor.Unmarshaler with the same validation as
// the JSON envelope.
func (r *Response) UnmarshalCBOR(data []byte) error {
	var fields map[string]cbor.RawMessage
	if err := cbor.Unmarshal(data, &fields); err != nil {
		if cbor.Wellformed(data) != nil {
			return fmt.Errorf("%w: %v", ErrParse, err)
		}
		return fmt.Errorf("%w: response must be a map", ErrInvalidResponse)
	}

	var version string
	if raw, ok := fields["jsonrpc"]; !ok || cbor.Unmarshal(raw, &version) != nil || version != Version {
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
		jraw, err := cborToJSON(raw)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		if err := id.UnmarshalJSON(jraw); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}

	if hasError {
		var eo struct {
			Code    *int64          `cbor:"code"`
			Message *string         `cbor:"message"`
			Data    cbor.RawMessage `cbor:"data"`
		}
		if err := cbor.Unmarshal(rawError, &eo); err != nil {
			return fmt.Errorf("%w: malformed error object", ErrInvalidResponse)
		}
		if eo.Code == nil || eo.Message == nil {
			return fmt.Errorf("%w: error must carry code and message", ErrInvalidResponse)
		}
		rpcErr := &Error{Code: int(*eo.Code), Message: *eo.Message}
		if eo.Data != nil {
			jraw, err := cborToJSON(eo.Data)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
			}
			if !bytes.Equal(jraw, []byte("null")) {
				rpcErr.Data = jraw
			}
		}
		*r = Response{id: id, err: rpcErr}
		return nil
	}

	jraw, err := cborToJSON(rawResult)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	*r = Response{id: id, result: jraw}
	return nil
}

// cborToJSON re-encodes a CBOR value as JSON.
func cborToJSON(raw cbor.RawMessage) (json.RawMessage, error) {
	var v interface{}
	if err := cborDec.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// jsonValue unwraps a json.RawMessage into the value it encodes, so it can
// be re-encoded in another codec. Other values pass through.
func jsonValue(v interface{}) (interface{}, error) {
	if raw, ok := v.(json.RawMessage); ok {
		var out interface{}
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	return v, nil
}
