// Demo JSON-RPC 2.0 server over raw TCP: one request (or batch) per
// connection, nothing written back for notifications.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/joho/godotenv"

	"github.com/mnehpets/jsonrpc2"
)

func methods() jsonrpc2.MethodMap {
	return jsonrpc2.MethodMap{
		"sum_numbers": func(ctx context.Context, params jsonrpc2.Params) (interface{}, error) {
			var nums []float64
			if err := params.Unmarshal(&nums); err != nil {
				return nil, jsonrpc2.InvalidParams("sum_numbers takes numbers")
			}
			total := 0.0
			for _, n := range nums {
				total += n
			}
			return total, nil
		},
		"say_hello": func(ctx context.Context, params jsonrpc2.Params) (interface{}, error) {
			var words []string
			if err := params.Unmarshal(&words); err != nil || len(words) != 1 {
				return nil, jsonrpc2.InvalidParams("say_hello takes one word")
			}
			return "hello " + words[0] + "!", nil
		},
		"sleep": func(ctx context.Context, params jsonrpc2.Params) (interface{}, error) {
			var secs []int
			if err := params.Unmarshal(&secs); err != nil || len(secs) != 1 {
				return nil, jsonrpc2.InvalidParams("sleep takes one duration in seconds")
			}
			select {
			case <-time.After(time.Duration(secs[0]) * time.Second):
				return fmt.Sprintf("slept for %ds", secs[0]), nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		},
		"crash_on_call": func(ctx context.Context, params jsonrpc2.Params) (interface{}, error) {
			return nil, errors.New("my call crashed")
		},
	}
}

func main() {
	_ = godotenv.Load()
	addr := os.Getenv("JSONRPC_ADDR")
	if addr == "" {
		addr = "localhost:4999"
	}

	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("listening on %s", addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Fatal(err)
		}
		go serve(conn, logger)
	}
}

func serve(conn net.Conn, logger kitlog.Logger) {
	defer conn.Close()

	buf := make([]byte, 1<<12)
	n, err := conn.Read(buf)
	if err != nil {
		return
	}
	body := buf[:n]

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	out := handle(ctx, body, logger)
	if out != nil {
		conn.Write(out)
	}
}

// handle resolves the payload and returns the bytes to send back, or nil
// when the input was all notifications.
func handle(ctx context.Context, body []byte, logger kitlog.Logger) []byte {
	if jsonrpc2.IsBatch(body) {
		batch, err := jsonrpc2.ParseRequestBatch(body)
		if err != nil {
			return encode(parseFailure(err))
		}
		responses := jsonrpc2.ResolveBatchConcurrent(ctx, batch, methods(), jsonrpc2.WithLogger(logger))
		if len(responses) == 0 {
			return nil
		}
		return encode(responses)
	}

	req, err := jsonrpc2.ParseRequest(body)
	if err != nil {
		return encode(parseFailure(err))
	}
	resp := req.Resolve(ctx, methods(), jsonrpc2.WithLogger(logger))
	if resp == nil {
		return nil
	}
	return encode(resp)
}

// parseFailure converts a deserialization failure into the wire reply,
// with a null id since the request id could not be determined.
func parseFailure(err error) *jsonrpc2.Response {
	if errors.Is(err, jsonrpc2.ErrParse) {
		return jsonrpc2.NewError(jsonrpc2.CodeParseError, "parse error").Response(jsonrpc2.NullID())
	}
	return jsonrpc2.NewError(jsonrpc2.CodeInvalidRequest, "invalid request").Response(jsonrpc2.NullID())
}

func encode(v interface{}) []byte {
	out, err := json.Marshal(v)
	if err != nil {
		log.Printf("encode: %v", err)
		return nil
	}
	return out
}
