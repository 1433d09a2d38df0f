package endpoint

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fxamacker/cbor/v2"
)

func TestCBORRenderer_EncodesBody(t *testing.T) {
	rec := httptest.NewRecorder()
	r := CBORRenderer{Status: http.StatusAccepted, Value: map[string]any{"kind": "request", "valid": true}}
	if err := r.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected status %d, got %d", http.StatusAccepted, rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != MediaTypeCBOR {
		t.Fatalf("expected Content-Type %q, got %q", MediaTypeCBOR, got)
	}
	var got map[string]any
	if err := cbor.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("body is not CBOR: %v", err)
	}
	if got["kind"] != "request" || got["valid"] != true {
		t.Fatalf("got %v", got)
	}
}

func TestCBORRenderer_Deterministic(t *testing.T) {
	v := map[string]any{"b": 1, "a": 2, "c": []any{"x"}}
	var first []byte
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		r := CBORRenderer{Value: v}
		if err := r.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)); err != nil {
			t.Fatalf("Render returned error: %v", err)
		}
		if first == nil {
			first = rec.Body.Bytes()
			continue
		}
		if string(rec.Body.Bytes()) != string(first) {
			t.Fatalf("encoding %d differs: %x vs %x", i, rec.Body.Bytes(), first)
		}
	}
}

func TestCBORRenderer_EncodeErrorLeavesResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	r := CBORRenderer{Value: make(chan int)}
	if err := r.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)); err == nil {
		t.Fatal("expected error")
	}
	if rec.Header().Get("Content-Type") != "" || rec.Body.Len() != 0 {
		t.Fatal("response was written")
	}
}

func TestNegotiate(t *testing.T) {
	tests := []struct {
		accept string
		cbor   bool
	}{
		{"", false},
		{"application/json", false},
		{"application/cbor", true},
		{"application/cbor, application/json", true},
		{"application/json, application/cbor", false},
		{"text/html, application/cbor;q=0.9", true},
		{"*/*, application/cbor", false},
	}
	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			_, isCBOR := Negotiate(req, 0, nil).(*CBORRenderer)
			if isCBOR != tt.cbor {
				t.Errorf("got cbor=%v, want %v", isCBOR, tt.cbor)
			}
		})
	}
}
