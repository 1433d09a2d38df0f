package endpoint

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

var errSentinel = errors.New("json encode error")

type jsonBadValue struct{}

func (jsonBadValue) MarshalJSON() ([]byte, error) {
	return nil, errSentinel
}

func TestJSONRenderer_SetsContentTypeAndEncodesBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	r := JSONRenderer{Value: map[string]any{"problems": []string{`method must not begin with "rpc."`}}}
	if err := r.Render(rec, req); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	resp := rec.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != MediaTypeJSON {
		t.Fatalf("expected Content-Type %q, got %q", MediaTypeJSON, got)
	}
	want := `{"problems":["method must not begin with \"rpc.\""]}` + "\n"
	if got := rec.Body.String(); got != want {
		t.Fatalf("expected body %q, got %q", want, got)
	}
}

func TestJSONRenderer_DoesNotEscapeHTML(t *testing.T) {
	rec := httptest.NewRecorder()
	r := JSONRenderer{Value: "a < b && c > d"}
	if err := r.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if got := rec.Body.String(); got != "\"a < b && c > d\"\n" {
		t.Fatalf("got body %q", got)
	}
}

func TestJSONRenderer_UsesStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	r := JSONRenderer{Status: http.StatusUnprocessableEntity, Value: map[string]bool{"valid": false}}
	if err := r.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, rec.Code)
	}
	var got map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if got["valid"] {
		t.Fatalf("got %v", got)
	}
}

func TestJSONRenderer_EncodeError(t *testing.T) {
	rec := httptest.NewRecorder()
	r := JSONRenderer{Value: jsonBadValue{}}
	err := r.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if !errors.Is(err, errSentinel) {
		t.Fatalf("got %v, want %v", err, errSentinel)
	}
}
