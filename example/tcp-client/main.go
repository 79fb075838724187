// Demo client for the tcp-server example: sends a mix of calls, bad
// calls, a notification and a batch, one connection per payload, and
// prints each outcome.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"

	"github.com/joho/godotenv"

	"github.com/mnehpets/jsonrpc2"
)

func payloads() [][]byte {
	singles := []struct {
		method string
		params interface{}
		id     jsonrpc2.ID
	}{
		{"sum_numbers", []int{1, 2, 3, 4, 5}, jsonrpc2.NumberID(0)},
		{"say_hello", []string{"USER"}, jsonrpc2.NumberID(1)},
		{"sleep", []int{2}, jsonrpc2.NumberID(2)},
		{"crash_on_call", nil, jsonrpc2.NumberID(4)},
		{"sum_numbers", []string{"type", "error"}, jsonrpc2.NumberID(5)},
		{"say_hello", map[string]interface{}{"world": "wrong param name"}, jsonrpc2.NumberID(6)},
		{"say_hello", []string{"wrong", "param", "count"}, jsonrpc2.NumberID(7)},
		{"say_hello", []string{"this is a notification"}, jsonrpc2.ID{}},
	}

	var out [][]byte
	for _, s := range singles {
		req, err := jsonrpc2.NewRequest(s.method, s.params, s.id)
		if err != nil {
			log.Fatal(err)
		}
		data, err := json.Marshal(req)
		if err != nil {
			log.Fatal(err)
		}
		out = append(out, data)
	}

	batch := make([]jsonrpc2.Request, 0, 3)
	for _, s := range []struct {
		method string
		params interface{}
		id     jsonrpc2.ID
	}{
		{"sum_numbers", []int{0, -1}, jsonrpc2.NumberID(8)},
		{"crash_on_call", nil, jsonrpc2.NumberID(9)},
		{"say_hello", []string{"world"}, jsonrpc2.NumberID(10)},
	} {
		req, err := jsonrpc2.NewRequest(s.method, s.params, s.id)
		if err != nil {
			log.Fatal(err)
		}
		batch = append(batch, *req)
	}
	data, err := json.Marshal(batch)
	if err != nil {
		log.Fatal(err)
	}
	return append(out, data)
}

func main() {
	_ = godotenv.Load()
	addr := os.Getenv("JSONRPC_ADDR")
	if addr == "" {
		addr = "localhost:4999"
	}

	for _, payload := range payloads() {
		body, err := exchange(addr, payload)
		if err != nil {
			log.Fatal(err)
		}
		if len(body) == 0 {
			continue
		}
		if jsonrpc2.IsBatch(body) {
			responses, err := jsonrpc2.ParseResponseBatch(body)
			if err != nil {
				log.Fatal(err)
			}
			for i := range responses {
				printResponse(&responses[i])
			}
			continue
		}
		resp, err := jsonrpc2.ParseResponse(body)
		if err != nil {
			log.Fatal(err)
		}
		printResponse(resp)
	}
}

func exchange(addr string, payload []byte) ([]byte, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	if _, err := conn.Write(payload); err != nil {
		return nil, err
	}
	return io.ReadAll(conn)
}

func printResponse(resp *jsonrpc2.Response) {
	if !resp.IsError() {
		result, _ := resp.Result()
		if raw, ok := result.(json.RawMessage); ok {
			result = string(raw)
		}
		fmt.Println(resp.ID(), result)
		return
	}
	fmt.Println(resp.ID(), resp.Err().Message, resp.Err().Data)
}
