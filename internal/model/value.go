package model

import "strings"

// NonEmptyText is a string that is neither empty nor only whitespace
type NonEmptyText struct {
	text string
}

// NewNonEmptyText validates value for the named field.
// Checks run null, then empty, then blank; at most one error is returned.
func NewNonEmptyText(value *string, field string) (NonEmptyText, error) {
	switch {
	case value == nil:
		return NonEmptyText{}, NewError(KindNull, field+" can't be null")
	case *value == "":
		return NonEmptyText{}, NewError(KindEmpty, field+" can't be empty")
	case strings.TrimSpace(*value) == "":
		return NonEmptyText{}, NewError(KindBlank, field+" can't be blank")
	}
	return NonEmptyText{text: *value}, nil
}

func (t NonEmptyText) String() string {
	return t.text
}

// NonNegativeNumber is an integer greater than or equal to zero
type NonNegativeNumber struct {
	value int
}

// NewNonNegativeNumber validates value for the named field
func NewNonNegativeNumber(value *int, field string) (NonNegativeNumber, error) {
	switch {
	case value == nil:
		return NonNegativeNumber{}, NewError(KindNull, field+" should not be null")
	case *value < 0:
		return NonNegativeNumber{}, NewError(KindValueCondition, field+" must have positive value")
	}
	return NonNegativeNumber{value: *value}, nil
}

// Int returns the wrapped value
func (n NonNegativeNumber) Int() int {
	return n.value
}
