package endpoint

import (
	"net/http"
	"strings"

	"github.com/mnehpets/jrpc/codec"
)

// Media types understood by the renderers.
const (
	MediaTypeJSON = codec.MediaTypeJSON
	MediaTypeCBOR = codec.MediaTypeCBOR
)

// CBORRenderer serializes Value as CBOR (RFC 8949).
//
// Content-Type is always "application/cbor". Status defaults to 200. The
// encoding is codec's deterministic one, so equal values render to equal
// bytes. The value is encoded before the status line is written, so an
// encoding error leaves the response untouched.
type CBORRenderer struct {
	Status int
	Value  any
}

func (cr *CBORRenderer) Render(w http.ResponseWriter, _ *http.Request) error {
	b, err := codec.Encode(MediaTypeCBOR, cr.Value)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", MediaTypeCBOR)
	w.WriteHeader(statusOr(cr.Status, http.StatusOK))
	_, err = w.Write(b)
	return err
}

// Negotiate returns a CBORRenderer when the request's Accept header lists
// application/cbor before application/json, and a JSONRenderer otherwise.
func Negotiate(r *http.Request, status int, v any) Renderer {
	if r != nil && prefersCBOR(r.Header.Get("Accept")) {
		return &CBORRenderer{Status: status, Value: v}
	}
	return &JSONRenderer{Status: status, Value: v}
}

func prefersCBOR(accept string) bool {
	for _, part := range strings.Split(accept, ",") {
		switch codec.MediaType(part) {
		case MediaTypeCBOR:
			return true
		case MediaTypeJSON, "*/*", "application/*":
			return false
		}
	}
	return false
}
