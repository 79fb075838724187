package jsonrpc2

const (
	// Version is the protocol version carried in every envelope.
	Version = "2.0"

	// ContentType is the media type for JSON-RPC over HTTP payloads.
	ContentType = "application/json; charset=utf-8"
)

// IsBatch reports whether the payload is a batch, i.e. a top-level JSON
// array. It only inspects the first non-whitespace byte and makes no
// claim about the rest of the payload.
func IsBatch(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		default:
			return b == '['
		}
	}
	return false
}
