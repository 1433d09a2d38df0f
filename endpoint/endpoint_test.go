package endpoint

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type headerPreprocessor struct {
	Key   string
	Value string
}

func (hp headerPreprocessor) Process(w http.ResponseWriter, r *http.Request, next func(http.ResponseWriter, *http.Request) error) error {
	if hp.Key != "" {
		w.Header().Set(hp.Key, hp.Value)
	}
	return next(w, r)
}

func TestHandler_PreprocessorsThenRenderer(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	h := Handler(func(_ http.ResponseWriter, r *http.Request, params struct{}) (Renderer, error) {
		return &StringRenderer{Body: "ok"}, nil
	}, headerPreprocessor{Key: "X-Test", Value: "1"})

	h.ServeHTTP(rec, req)

	if got := rec.Result().Header.Get("X-Test"); got != "1" {
		t.Fatalf("expected X-Test header %q, got %q", "1", got)
	}
	if got := rec.Body.String(); got != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", got)
	}
}

func TestHandler_BindsParams(t *testing.T) {
	h := Handler(func(_ http.ResponseWriter, _ *http.Request, params struct {
		Name string `query:"name"`
	}) (Renderer, error) {
		return &StringRenderer{Body: "hello " + strings.ToUpper(params.Name)}, nil
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?name=world", nil))

	if got := rec.Body.String(); got != "hello WORLD" {
		t.Fatalf("expected body %q, got %q", "hello WORLD", got)
	}
}

func TestHandler_ProcessorShortCircuits(t *testing.T) {
	called := false
	h := Handler(func(_ http.ResponseWriter, _ *http.Request, _ struct{}) (Renderer, error) {
		called = true
		return &StringRenderer{Body: "ok"}, nil
	}, ProcessorFunc(func(w http.ResponseWriter, r *http.Request, next func(http.ResponseWriter, *http.Request) error) error {
		return Error(http.StatusForbidden, "go away", nil)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if called {
		t.Fatal("endpoint ran after processor error")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "go away" {
		t.Fatalf("expected body %q, got %q", "go away", got)
	}
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "boom"},
		{"endpoint error", Error(http.StatusNotFound, "no such code", nil), http.StatusNotFound, "no such code"},
		{"endpoint error without message", Error(http.StatusTeapot, "", nil), http.StatusTeapot, http.StatusText(http.StatusTeapot)},
		{"invalid status", &EndpointError{Status: 42, Message: "odd"}, http.StatusInternalServerError, "odd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Handler(func(_ http.ResponseWriter, _ *http.Request, _ struct{}) (Renderer, error) {
				return nil, tt.err
			})
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tt.wantBody {
				t.Errorf("got body %q, want %q", got, tt.wantBody)
			}
		})
	}
}

func TestHandler_NilRenderer(t *testing.T) {
	h := Handler(func(_ http.ResponseWriter, _ *http.Request, _ struct{}) (Renderer, error) {
		return nil, nil
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
}

func TestHandler_DeferRunsBeforeRender(t *testing.T) {
	var order []string
	h := Handler(func(_ http.ResponseWriter, r *http.Request, _ struct{}) (Renderer, error) {
		Defer(r.Context(), func(w http.ResponseWriter) {
			order = append(order, "first")
		})
		Defer(r.Context(), func(w http.ResponseWriter) {
			order = append(order, "second")
			w.Header().Set("X-Deferred", "1")
		})
		return RendererFunc(func(w http.ResponseWriter, _ *http.Request) error {
			order = append(order, "render")
			w.WriteHeader(http.StatusNoContent)
			return nil
		}), nil
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := strings.Join(order, ","); got != "second,first,render" {
		t.Fatalf("got order %q", got)
	}
	if rec.Header().Get("X-Deferred") != "1" {
		t.Fatal("deferred header not written")
	}
}

func TestDeferOutsideHandlerIsNoop(t *testing.T) {
	Defer(context.Background(), func(http.ResponseWriter) {
		t.Fatal("deferred function ran")
	})
	Commit(context.Background(), httptest.NewRecorder())
}

func TestEndpointError_Unwrap(t *testing.T) {
	cause := errors.New("cause")
	err := Error(http.StatusBadRequest, "bad", cause)
	if !errors.Is(err, cause) {
		t.Fatal("errors.Is did not find cause")
	}
	if got := err.Error(); got != "bad: cause" {
		t.Fatalf("got %q", got)
	}
	if again := Error(http.StatusInternalServerError, "other", err); again != err {
		t.Fatal("EndpointError was wrapped twice")
	}
}
