package model

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a DomainError. The set is closed.
type Kind int

const (
	KindEmpty Kind = iota + 1
	KindBlank
	KindNull
	KindValueCondition
	KindUnavailable
	KindInfra
	KindParsing
)

// String returns the wire name of the kind
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "EMPTY_ERROR"
	case KindBlank:
		return "BLANK_ERROR"
	case KindNull:
		return "NULL_ERROR"
	case KindValueCondition:
		return "VALUE_CONDITION_ERROR"
	case KindUnavailable:
		return "UNAVAILABLE_ERROR"
	case KindInfra:
		return "INFRA_ERROR"
	case KindParsing:
		return "PARSING_ERROR"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText encodes the kind by its wire name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a wire name back into a Kind
func (k *Kind) UnmarshalText(text []byte) error {
	for _, candidate := range []Kind{
		KindEmpty, KindBlank, KindNull, KindValueCondition,
		KindUnavailable, KindInfra, KindParsing,
	} {
		if candidate.String() == string(text) {
			*k = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown error kind %q", text)
}

// Status is the HTTP status used for the kind when an error carries no explicit code
func (k Kind) Status() int {
	switch k {
	case KindEmpty, KindBlank, KindNull, KindValueCondition, KindUnavailable, KindParsing:
		return http.StatusBadRequest
	case KindInfra:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// DomainError is a single labeled failure
type DomainError struct {
	Kind   Kind
	Reason string
	// Code is an optional transport status; zero means "use the kind default"
	Code int
}

// NewError creates a DomainError without a transport code
func NewError(kind Kind, reason string) *DomainError {
	return &DomainError{Kind: kind, Reason: reason}
}

// NewErrorWithCode creates a DomainError carrying an explicit transport status
func NewErrorWithCode(kind Kind, reason string, code int) *DomainError {
	return &DomainError{Kind: kind, Reason: reason, Code: code}
}

func (e *DomainError) Error() string {
	return e.Kind.String() + ": " + e.Reason
}

// Errors is an ordered list of domain errors. A non-nil Errors value returned
// as an error is never empty.
type Errors []*DomainError

func (e Errors) Error() string {
	reasons := make([]string, len(e))
	for i, de := range e {
		reasons[i] = de.Error()
	}
	return strings.Join(reasons, "; ")
}

// Reasons returns the reason of every error, in order
func (e Errors) Reasons() []string {
	reasons := make([]string, len(e))
	for i, de := range e {
		reasons[i] = de.Reason
	}
	return reasons
}

// Single wraps one DomainError as an Errors list
func Single(de *DomainError) Errors {
	return Errors{de}
}

// AsErrors extracts the domain errors carried by err. Errors that carry no
// label become a single INFRA_ERROR so callers always see a labeled failure.
func AsErrors(err error) Errors {
	if err == nil {
		return nil
	}
	var errs Errors
	if errors.As(err, &errs) && len(errs) > 0 {
		return errs
	}
	var de *DomainError
	if errors.As(err, &de) {
		return Errors{de}
	}
	return Errors{NewError(KindInfra, err.Error())}
}

// Collector accumulates independent failures without short-circuiting
type Collector struct {
	errs Errors
}

// Add appends the domain errors carried by err, keeping call order. nil is ignored.
func (c *Collector) Add(err error) {
	if err == nil {
		return
	}
	c.errs = append(c.errs, AsErrors(err)...)
}

// Err returns the accumulated errors, or nil if nothing failed
func (c *Collector) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}
