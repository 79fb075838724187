package jsonrpc2

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestRequestMarshal(t *testing.T) {
	tests := []struct {
		name   string
		method string
		params interface{}
		id     ID
		want   string
	}{
		{"positional params", "echo", []string{"hi"}, NumberID(5), `{"jsonrpc":"2.0","method":"echo","params":["hi"],"id":5}`},
		{"named params", "subtract", map[string]interface{}{"minuend": 42}, StringID("a"), `{"jsonrpc":"2.0","method":"subtract","params":{"minuend":42},"id":"a"}`},
		{"no params", "ping", nil, NumberID(1), `{"jsonrpc":"2.0","method":"ping","id":1}`},
		{"notification", "notify", []int{1}, ID{}, `{"jsonrpc":"2.0","method":"notify","params":[1]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewRequest(tt.method, tt.params, tt.id)
			if err != nil {
				t.Fatalf("NewRequest: %v", err)
			}
			got, err := json.Marshal(req)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRequestBatchMarshal(t *testing.T) {
	a, _ := NewRequest("sum", []int{1, 2}, NumberID(1))
	b, _ := NewNotification("log", []string{"hi"})
	got, err := json.Marshal([]Request{*a, *b})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[{"jsonrpc":"2.0","method":"sum","params":[1,2],"id":1},{"jsonrpc":"2.0","method":"log","params":["hi"]}]`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRequestRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		method string
		params interface{}
		id     ID
	}{
		{"call with array params", "sum_numbers", []int{1, 2, 3}, NumberID(0)},
		{"call with object params", "say_hello", map[string]interface{}{"word": "world"}, StringID("req-1")},
		{"call without params", "crash_on_call", nil, NumberID(4)},
		{"notification", "say_hello", []string{"quiet"}, ID{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewRequest(tt.method, tt.params, tt.id)
			if err != nil {
				t.Fatalf("NewRequest: %v", err)
			}
			data, err := json.Marshal(req)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			got, err := ParseRequest(data)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got.Method != req.Method {
				t.Errorf("method: got %q, want %q", got.Method, req.Method)
			}
			if !got.ID.Equal(req.ID) {
				t.Errorf("id: got %s, want %s", got.ID, req.ID)
			}
			if got.IsNotification() != req.IsNotification() {
				t.Errorf("notification flag changed: got %v", got.IsNotification())
			}
			if string(got.Params.Raw()) != string(req.Params.Raw()) {
				t.Errorf("params: got %s, want %s", got.Params.Raw(), req.Params.Raw())
			}
		})
	}
}

func TestParseRequestErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"malformed json", `{"jsonrpc":`, ErrParse},
		{"empty input", ``, ErrParse},
		{"truncated array", `[{"jsonrpc"`, ErrParse},
		{"scalar", `42`, ErrInvalidRequest},
		{"array as single request", `[]`, ErrInvalidRequest},
		{"missing version", `{"method":"m","id":1}`, ErrInvalidRequest},
		{"wrong version", `{"jsonrpc":"1.0","method":"m","id":1}`, ErrInvalidRequest},
		{"missing method", `{"jsonrpc":"2.0","id":1}`, ErrInvalidRequest},
		{"method not a string", `{"jsonrpc":"2.0","method":5,"id":1}`, ErrInvalidRequest},
		{"empty method", `{"jsonrpc":"2.0","method":"","id":1}`, ErrInvalidRequest},
		{"scalar params", `{"jsonrpc":"2.0","method":"m","params":5,"id":1}`, ErrInvalidRequest},
		{"boolean id", `{"jsonrpc":"2.0","method":"m","id":true}`, ErrInvalidRequest},
		{"object id", `{"jsonrpc":"2.0","method":"m","id":{}}`, ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRequest([]byte(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseRequestNullID(t *testing.T) {
	req, err := ParseRequest([]byte(`{"jsonrpc":"2.0","method":"m","id":null}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if req.IsNotification() {
		t.Error("a present null id must not mark a notification")
	}
	if req.ID.Value() != nil {
		t.Errorf("id value: got %v, want nil", req.ID.Value())
	}
}

func TestParseRequestBatch(t *testing.T) {
	data := []byte(`[
		{"jsonrpc":"2.0","method":"a","id":1},
		{"jsonrpc":"2.0","method":"b"},
		{"jsonrpc":"2.0","method":"c","id":2}
	]`)
	reqs, err := ParseRequestBatch(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(reqs) != 3 {
		t.Fatalf("got %d requests, want 3", len(reqs))
	}
	for i, want := range []string{"a", "b", "c"} {
		if reqs[i].Method != want {
			t.Errorf("member %d: got method %q, want %q", i, reqs[i].Method, want)
		}
	}
	if !reqs[1].IsNotification() {
		t.Error("member 1 should be a notification")
	}
}

func TestParseRequestBatchErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty batch", `[]`, ErrInvalidRequest},
		{"not an array", `{"jsonrpc":"2.0","method":"m"}`, ErrInvalidRequest},
		{"malformed json", `[{]`, ErrParse},
		{"invalid member", `[{"jsonrpc":"2.0","id":1}]`, ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRequestBatch([]byte(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewRequestValidation(t *testing.T) {
	if _, err := NewRequest("", nil, NumberID(1)); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("empty method: got %v, want %v", err, ErrInvalidRequest)
	}
	if _, err := NewRequest("m", "scalar", NumberID(1)); err == nil {
		t.Error("scalar params should be rejected")
	}
}

func TestIsBatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"array", `[{"jsonrpc":"2.0"}]`, true},
		{"array with leading whitespace", "\n\t [1]", true},
		{"object", `{"jsonrpc":"2.0"}`, false},
		{"empty", ``, false},
		{"whitespace only", "  \n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBatch([]byte(tt.input)); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
