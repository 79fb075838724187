package jsonrpc2

import (
	"testing"
)

func TestParamsKind(t *testing.T) {
	positional, err := Positional(1, "two")
	if err != nil {
		t.Fatalf("Positional: %v", err)
	}
	if positional.Kind() != ParamsPositional {
		t.Errorf("got kind %v, want positional", positional.Kind())
	}

	named, err := Named(map[string]interface{}{"a": 1})
	if err != nil {
		t.Fatalf("Named: %v", err)
	}
	if named.Kind() != ParamsNamed {
		t.Errorf("got kind %v, want named", named.Kind())
	}

	var absent Params
	if absent.Kind() != ParamsAbsent || !absent.IsZero() {
		t.Errorf("zero Params should be absent, got kind %v", absent.Kind())
	}
}

func TestNewParamsRejectsScalars(t *testing.T) {
	for _, v := range []interface{}{5, "text", true} {
		if _, err := NewParams(v); err == nil {
			t.Errorf("NewParams(%v): expected an error", v)
		}
	}
}

func TestNewParamsNil(t *testing.T) {
	p, err := NewParams(nil)
	if err != nil {
		t.Fatalf("NewParams(nil): %v", err)
	}
	if !p.IsZero() {
		t.Error("nil should build absent params")
	}
}

func TestParamsUnmarshal(t *testing.T) {
	p, err := Named(map[string]interface{}{"minuend": 42, "subtrahend": 23})
	if err != nil {
		t.Fatalf("Named: %v", err)
	}
	var args struct {
		Minuend    int `json:"minuend"`
		Subtrahend int `json:"subtrahend"`
	}
	if err := p.Unmarshal(&args); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if args.Minuend != 42 || args.Subtrahend != 23 {
		t.Errorf("got %+v", args)
	}

	var absent Params
	var slice []int
	if err := absent.Unmarshal(&slice); err != nil {
		t.Errorf("absent Unmarshal: %v", err)
	}
	if slice != nil {
		t.Errorf("absent params decoded to %v", slice)
	}
}

func TestParamsUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantKind ParamsKind
	}{
		{"array", `[1,2]`, false, ParamsPositional},
		{"object", `{"a":1}`, false, ParamsNamed},
		{"null is absent", `null`, false, ParamsAbsent},
		{"scalar", `5`, true, ParamsAbsent},
		{"string", `"x"`, true, ParamsAbsent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Params
			err := p.UnmarshalJSON([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("got err %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && p.Kind() != tt.wantKind {
				t.Errorf("got kind %v, want %v", p.Kind(), tt.wantKind)
			}
		})
	}
}
