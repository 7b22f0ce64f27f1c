package apierr

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mcoot/tournament/internal/model"
)

// APIError is one entry of an error response
type APIError struct {
	ErrorType string `json:"error_type"`
	Reason    string `json:"reason"`
	HTTPCode  *int   `json:"http_code,omitempty"`
}

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Errors []APIError `json:"errors"`
}

// WriteError writes err as an error response. The status is the explicit code
// of the first error, else the default status of its kind. Errors carrying no
// domain label are reported as INFRA_ERROR.
func WriteError(w http.ResponseWriter, err error) {
	errs := model.AsErrors(err)
	if len(errs) == 0 {
		errs = model.Single(model.NewError(model.KindInfra, "Internal server error"))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(Status(errs))
	_ = json.NewEncoder(w).Encode(FromErrors(errs))
}

// Status picks the response status for a non-empty error list
func Status(errs model.Errors) int {
	first := errs[0]
	if first.Code != 0 {
		return first.Code
	}
	return first.Kind.Status()
}

// FromErrors converts domain errors to their wire form, keeping order
func FromErrors(errs model.Errors) ErrorResponse {
	out := make([]APIError, len(errs))
	for i, de := range errs {
		out[i] = APIError{ErrorType: de.Kind.String(), Reason: de.Reason}
		if de.Code != 0 {
			code := de.Code
			out[i].HTTPCode = &code
		}
	}
	return ErrorResponse{Errors: out}
}

// NewParsingError creates the error returned for a malformed request body
func NewParsingError(reason string) error {
	return model.Single(model.NewError(model.KindParsing, reason))
}

// NewInternalError creates an internal server error, naming the request when
// its id is known
func NewInternalError(requestID string) error {
	reason := "Internal server error"
	if requestID != "" {
		reason = fmt.Sprintf("Internal server error (request %s)", requestID)
	}
	return model.Single(model.NewErrorWithCode(model.KindInfra, reason, http.StatusInternalServerError))
}
