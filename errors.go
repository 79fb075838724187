package jsonrpc2

import "errors"

// Reserved JSON-RPC 2.0 error codes. Application errors must use codes
// outside -32768..-32000.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Sentinel errors for local failures. They are returned to the caller,
// never serialized; match with errors.Is.
var (
	ErrParse           = errors.New("jsonrpc2: parse error")
	ErrInvalidRequest  = errors.New("jsonrpc2: invalid request")
	ErrInvalidResponse = errors.New("jsonrpc2: invalid response")
	ErrInvalidState    = errors.New("jsonrpc2: invalid state")
)

// Error is the JSON-RPC 2.0 error object carried in failed responses.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// NewError creates an error with the given code and message.
func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithData returns a copy of e carrying additional error info.
func (e *Error) WithData(data interface{}) *Error {
	return &Error{Code: e.Code, Message: e.Message, Data: data}
}

// InvalidParams builds the error a handler returns when it rejects its
// arguments (-32602).
func InvalidParams(message string) *Error {
	return NewError(CodeInvalidParams, message)
}

// Response wraps e into a response, echoing id (null when the originating
// id could not be determined). Intended for transports that answer
// malformed input with -32700 or -32600 themselves.
func (e *Error) Response(id ID) *Response {
	return NewErrorResponse(id, e)
}
