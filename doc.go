// Package jsonrpc2 provides the JSON-RPC 2.0 message model and a
// transport-agnostic method dispatcher.
//
// This package implements the JSON-RPC 2.0 specification
// (https://www.jsonrpc.org/specification). It deliberately carries no
// transport: callers hand it raw payloads and a method table, and it hands
// back responses to send (or nothing, for notifications).
//
// # Basic Usage
//
// Parse a request, resolve it against a method table, and serialize the
// response:
//
//	methods := jsonrpc2.MethodMap{
//	    "echo": func(ctx context.Context, params jsonrpc2.Params) (interface{}, error) {
//	        var args []string
//	        if err := params.Unmarshal(&args); err != nil {
//	            return nil, jsonrpc2.InvalidParams("echo takes strings")
//	        }
//	        return args, nil
//	    },
//	}
//
//	req, err := jsonrpc2.ParseRequest(body)
//	if err != nil {
//	    // malformed input; the caller decides whether to answer
//	}
//	resp := req.Resolve(ctx, methods)
//	if resp != nil {
//	    out, _ := json.Marshal(resp)
//	}
//
// A nil response means the request was a notification and nothing must be
// sent, even if resolution failed.
//
// # Batches
//
// A batch is a non-empty JSON array of requests. Use IsBatch to sniff the
// payload shape, ParseRequestBatch to parse, and ResolveBatch or
// ResolveBatchConcurrent to dispatch. Batch output preserves input order
// and contains only the responses of non-notification members. Serialize a
// batch with json.Marshal on the slice.
//
// # Error Handling
//
// Handlers returning *Error set the wire error verbatim, including
// application codes outside the reserved range:
//
//	return nil, jsonrpc2.NewError(1001, "quota exceeded")
//
// Any other handler error (or panic) becomes an internal error (-32603).
// Standard error codes are defined as constants:
//   - CodeParseError (-32700)
//   - CodeInvalidRequest (-32600)
//   - CodeMethodNotFound (-32601)
//   - CodeInvalidParams (-32602)
//   - CodeInternalError (-32603)
//
// Deserialization failures are returned to the caller as errors wrapping
// ErrParse, ErrInvalidRequest or ErrInvalidResponse; the library never
// converts them into responses on its own. Transports that answer anyway
// can build the reply with (*Error).Response.
//
// # Notifications
//
// A request without an id is a notification and never yields a response.
// Failures of notifications are swallowed from the wire; pass WithLogger to
// surface them locally.
//
// # Binary Envelope
//
// Request and Response also implement cbor.Marshaler and cbor.Unmarshaler
// with identical envelope semantics, for socket transports where JSON
// overhead matters. Batches work through slice (un)marshaling as with JSON.
package jsonrpc2
