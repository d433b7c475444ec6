// internal/app/system/jsonio/jsonio.go
package jsonio

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dalemusser/tasktracker/internal/app/system/limits"
)

// ErrBadBody is returned by Decode for empty, oversized or malformed bodies.
var ErrBadBody = errors.New("invalid request body")

// Write encodes v as the JSON response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Decode reads one JSON value from the request body into dst. Unknown
// fields are ignored; the body is capped at limits.MaxJSONBody.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrBadBody
		}
		return errors.Join(ErrBadBody, err)
	}
	return nil
}
