package request

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mcoot/tournament/internal/api/apierr"
)

// MaxBodyBytes bounds the size of a request body
const MaxBodyBytes = 1 << 20

// Decode reads a single JSON value from the request body into v. Unknown
// fields, trailing content and oversized bodies are parsing errors.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apierr.NewParsingError("Unable to parse request body: body exceeds 1MB")
		}
		return apierr.NewParsingError("Unable to parse request body: " + err.Error())
	}
	// Anything but EOF after the value, including a stray "]" or "}", is trailing content
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return apierr.NewParsingError("Unable to parse request body: unexpected content after JSON value")
	}
	return nil
}
