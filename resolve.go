package jsonrpc2

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/log"
	"golang.org/x/sync/errgroup"
)

// Handler is an invocable method. It receives the request arguments in the
// shape the caller sent them; decode with Params.Unmarshal. Returning
// *Error sets the wire error verbatim, including application codes outside
// the reserved range. Any other error becomes an internal error (-32603).
type Handler func(ctx context.Context, params Params) (interface{}, error)

// MethodMap maps method names to handlers. It is supplied per resolve call
// and treated as read-only; the library never retains or mutates it.
type MethodMap map[string]Handler

type resolveConfig struct {
	logger log.Logger
	limit  int
}

// ResolveOption configures a resolve call.
type ResolveOption func(*resolveConfig)

// WithLogger sets the logger that receives failures swallowed by the
// notification rule. The default discards them.
func WithLogger(logger log.Logger) ResolveOption {
	return func(c *resolveConfig) { c.logger = logger }
}

// WithConcurrencyLimit bounds the number of in-flight member resolutions
// in ResolveBatchConcurrent. Zero or less means no limit.
func WithConcurrencyLimit(n int) ResolveOption {
	return func(c *resolveConfig) { c.limit = n }
}

func newResolveConfig(opts []ResolveOption) *resolveConfig {
	c := &resolveConfig{logger: log.NewNopLogger()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve looks up the request's method and invokes it with the request's
// params. A lookup miss yields a method-not-found response; a handler
// error or panic yields an internal error response unless the handler
// returned *Error. For notifications Resolve returns nil regardless of
// outcome; failures go to the WithLogger channel instead of the wire.
func (r *Request) Resolve(ctx context.Context, methods MethodMap, opts ...ResolveOption) *Response {
	return resolve(ctx, r, methods, newResolveConfig(opts))
}

// ResolveBatch resolves each request in order. Notifications contribute no
// response; the output keeps the relative order of the members that did
// produce one.
func ResolveBatch(ctx context.Context, batch []Request, methods MethodMap, opts ...ResolveOption) []Response {
	c := newResolveConfig(opts)
	responses := make([]Response, 0, len(batch))
	for i := range batch {
		if resp := resolve(ctx, &batch[i], methods, c); resp != nil {
			responses = append(responses, *resp)
		}
	}
	return responses
}

// ResolveBatchConcurrent resolves batch members concurrently, one
// goroutine per member, bounded by WithConcurrencyLimit if set. Results
// are reassembled by input index, so output order is input order, not
// completion order. Handlers must not assume exclusive access to shared
// state; the method map itself is only read.
func ResolveBatchConcurrent(ctx context.Context, batch []Request, methods MethodMap, opts ...ResolveOption) []Response {
	c := newResolveConfig(opts)
	slots := make([]*Response, len(batch))
	g, ctx := errgroup.WithContext(ctx)
	if c.limit > 0 {
		g.SetLimit(c.limit)
	}
	for i := range batch {
		i := i
		g.Go(func() error {
			slots[i] = resolve(ctx, &batch[i], methods, c)
			return nil
		})
	}
	_ = g.Wait()

	responses := make([]Response, 0, len(batch))
	for _, resp := range slots {
		if resp != nil {
			responses = append(responses, *resp)
		}
	}
	return responses
}

func resolve(ctx context.Context, r *Request, methods MethodMap, c *resolveConfig) *Response {
	handler, ok := methods[r.Method]
	if !ok {
		rpcErr := NewError(CodeMethodNotFound, "method not found: "+r.Method)
		if r.IsNotification() {
			c.logger.Log("method", r.Method, "err", rpcErr)
			return nil
		}
		return NewErrorResponse(r.ID, rpcErr)
	}

	result, err := invoke(ctx, handler, r.Params)
	if r.IsNotification() {
		if err != nil {
			c.logger.Log("method", r.Method, "err", err)
		}
		return nil
	}
	if err != nil {
		return NewErrorResponse(r.ID, wireError(err))
	}
	return NewResponse(r.ID, result)
}

// invoke runs the handler, converting a panic into an internal error.
func invoke(ctx context.Context, handler Handler, params Params) (result interface{}, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = NewError(CodeInternalError, fmt.Sprintf("internal error: %v", rec))
		}
	}()
	return handler(ctx, params)
}

// wireError converts a handler error to the wire error object. *Error
// values keep their code; anything else is an internal error carrying the
// error text as message.
func wireError(err error) *Error {
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	return &Error{Code: CodeInternalError, Message: err.Error()}
}
