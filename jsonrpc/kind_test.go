package jsonrpc

import (
	"encoding/json"
	"testing"
)

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindRequest, KindNotification, KindResponse} {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", k.String(), err)
		}
		if got != k {
			t.Errorf("ParseKind(%q): got %v, want %v", k.String(), got, k)
		}
	}
	if got, err := ParseKind(" Response "); err != nil || got != KindResponse {
		t.Errorf("got %v, %v", got, err)
	}
	if _, err := ParseKind("notif"); err == nil {
		t.Error("ParseKind(\"notif\") succeeded")
	}
	if got := Kind(9).String(); got != "Kind(9)" {
		t.Errorf("got %q", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		packet Packet
		want   Kind
		ok     bool
	}{
		{"request", Packet{"jsonrpc": "2.0", "id": 1, "method": "m"}, KindRequest, true},
		{"request with null id", Packet{"jsonrpc": "2.0", "id": nil, "method": "m"}, KindRequest, true},
		{"notification", Packet{"jsonrpc": "2.0", "method": "m"}, KindNotification, true},
		{"result", Packet{"jsonrpc": "2.0", "id": 1, "result": "ok"}, KindResponse, true},
		{"error", Packet{"jsonrpc": "2.0", "error": map[string]any{}}, KindResponse, true},
		{"method and result", Packet{"method": "m", "result": "ok"}, 0, false},
		{"empty", Packet{}, 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.packet)
			if got != tt.want || ok != tt.ok {
				t.Errorf("got %v, %v, want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestShapeOf(t *testing.T) {
	type params struct{ A int }
	tests := []struct {
		name string
		v    any
		want Shape
	}{
		{"nil", nil, ShapeInvalid},
		{"string", "s", ShapeString},
		{"sequence", []any{1}, ShapeSequence},
		{"typed sequence", []string{"a"}, ShapeSequence},
		{"array", [2]int{1, 2}, ShapeSequence},
		{"mapping", map[string]any{"a": 1}, ShapeMapping},
		{"typed mapping", map[string]int{"a": 1}, ShapeMapping},
		{"packet", Packet{}, ShapeMapping},
		{"pointer to mapping", &map[string]any{}, ShapeMapping},
		{"int keyed map", map[int]any{1: 1}, ShapeInvalid},
		{"nil sequence", []any(nil), ShapeInvalid},
		{"nil typed sequence", []string(nil), ShapeInvalid},
		{"nil mapping", map[string]any(nil), ShapeInvalid},
		{"nil typed mapping", map[string]string(nil), ShapeInvalid},
		{"nil packet", Packet(nil), ShapeInvalid},
		{"empty sequence", []any{}, ShapeSequence},
		{"bytes", []byte("b"), ShapeInvalid},
		{"number", 42, ShapeInvalid},
		{"json number", json.Number("42"), ShapeInvalid},
		{"bool", true, ShapeInvalid},
		{"struct", params{A: 1}, ShapeInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShapeOf(tt.v); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
