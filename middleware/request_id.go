package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/mnehpets/jrpc/endpoint"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-Id"

// maxRequestIDLength bounds client-supplied ids.
const maxRequestIDLength = 128

type requestIDKey struct{}

// RequestIDProcessor assigns every request an id. A well-formed id sent by
// the client is kept; otherwise a random UUID is generated. The id is echoed
// in the response and stored in the request context.
type RequestIDProcessor struct {
	// NewID generates ids. Defaults to uuid.NewString.
	NewID func() string
}

func NewRequestIDProcessor() *RequestIDProcessor {
	return &RequestIDProcessor{NewID: uuid.NewString}
}

// Process implements endpoint.Processor.
func (p *RequestIDProcessor) Process(w http.ResponseWriter, r *http.Request, next func(http.ResponseWriter, *http.Request) error) error {
	id := r.Header.Get(HeaderRequestID)
	if !validRequestID(id) {
		newID := p.NewID
		if newID == nil {
			newID = uuid.NewString
		}
		id = newID()
	}
	w.Header().Set(HeaderRequestID, id)
	return next(w, r.WithContext(WithRequestID(r.Context(), id)))
}

// WithRequestID returns a copy of ctx carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored by RequestIDProcessor, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// validRequestID accepts non-empty printable ASCII up to maxRequestIDLength.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

var _ endpoint.Processor = (*RequestIDProcessor)(nil)
