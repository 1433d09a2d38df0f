package endpoint

import (
	"encoding/json"
	"net/http"
)

// JSONRenderer serializes Value as JSON.
//
// Content-Type is always "application/json". Status defaults to 200. HTML
// characters are not escaped, so error messages such as `"rpc."` and
// "java < python" survive unchanged. The encoder appends a trailing newline.
//
// If encoding fails the error is returned; the status line has already been
// written at that point.
type JSONRenderer struct {
	Status int
	Value  any
}

func (jr *JSONRenderer) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", MediaTypeJSON)
	w.WriteHeader(statusOr(jr.Status, http.StatusOK))

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(jr.Value)
}

func statusOr(status, def int) int {
	if status == 0 {
		return def
	}
	return status
}
