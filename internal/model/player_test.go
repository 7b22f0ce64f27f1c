package model

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func requireErrors(t *testing.T, err error) Errors {
	t.Helper()
	var errs Errors
	require.True(t, errors.As(err, &errs), "expected Errors, got %T", err)
	require.NotEmpty(t, errs)
	return errs
}

func TestNewNonEmptyText(t *testing.T) {
	tests := []struct {
		name   string
		value  *string
		kind   Kind
		reason string
	}{
		{"null", nil, KindNull, "pseudo can't be null"},
		{"empty", ptr(""), KindEmpty, "pseudo can't be empty"},
		{"blank", ptr(" \t "), KindBlank, "pseudo can't be blank"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNonEmptyText(tt.value, "pseudo")
			var de *DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.kind, de.Kind)
			assert.Equal(t, tt.reason, de.Reason)
		})
	}

	text, err := NewNonEmptyText(ptr(" Bond "), "pseudo")
	require.NoError(t, err)
	assert.Equal(t, " Bond ", text.String())
}

func TestNewNonNegativeNumber(t *testing.T) {
	_, err := NewNonNegativeNumber(nil, "points")
	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindNull, de.Kind)
	assert.Equal(t, "points should not be null", de.Reason)

	_, err = NewNonNegativeNumber(ptr(-1), "points")
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindValueCondition, de.Kind)
	assert.Equal(t, "points must have positive value", de.Reason)

	n, err := NewNonNegativeNumber(ptr(0), "points")
	require.NoError(t, err)
	assert.Equal(t, 0, n.Int())
}

func TestBuildPlayerAccumulatesNullErrors(t *testing.T) {
	_, err := BuildPlayer(RawPlayer{})

	errs := requireErrors(t, err)
	assert.Equal(t, []string{"pseudo can't be null", "points should not be null"}, errs.Reasons())
	assert.Equal(t, KindNull, errs[0].Kind)
	assert.Equal(t, KindNull, errs[1].Kind)
}

func TestBuildPlayerAccumulatesBlankAndNegative(t *testing.T) {
	_, err := BuildPlayer(RawPlayer{Pseudo: ptr(" "), Points: ptr(-129)})

	errs := requireErrors(t, err)
	assert.Equal(t, []string{"pseudo can't be blank", "points must have positive value"}, errs.Reasons())
	assert.Equal(t, KindBlank, errs[0].Kind)
	assert.Equal(t, KindValueCondition, errs[1].Kind)
}

func TestBuildPlayerSingleEmptyError(t *testing.T) {
	_, err := BuildPlayer(RawPlayer{Pseudo: ptr(""), Points: ptr(129)})

	errs := requireErrors(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, KindEmpty, errs[0].Kind)
	assert.Equal(t, "pseudo can't be empty", errs[0].Reason)
}

func TestBuildPlayerOnlyPointsInvalid(t *testing.T) {
	_, err := BuildPlayer(RawPlayer{Pseudo: ptr("user1"), Points: ptr(-5)})

	errs := requireErrors(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, KindValueCondition, errs[0].Kind)
}

func TestBuildPlayerSucceeds(t *testing.T) {
	entity, err := BuildPlayer(RawPlayer{Pseudo: ptr("user1"), Points: ptr(152)})
	require.NoError(t, err)

	assert.Equal(t, ValidatedPlayer{Pseudo: "user1", Points: 152}, entity.Validated())

	stored := entity.Validated().WithRank(ptr("Expert"))
	assert.Equal(t, "user1", stored.Pseudo)
	assert.Equal(t, 152, stored.Points)
	require.NotNil(t, stored.Rank)
	assert.Equal(t, "Expert", *stored.Rank)
}

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, SortByPseudo, ParseSortMode("pseudo"))
	assert.Equal(t, SortByPseudo, ParseSortMode("PSEUDO"))
	assert.Equal(t, SortByRank, ParseSortMode("Rank"))
	assert.Equal(t, SortByPoints, ParseSortMode("points"))
	assert.Equal(t, SortByPoints, ParseSortMode(""))
	assert.Equal(t, SortByPoints, ParseSortMode("level"))
}

func TestKindWireNames(t *testing.T) {
	text, err := KindUnavailable.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "UNAVAILABLE_ERROR", string(text))

	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("PARSING_ERROR")))
	assert.Equal(t, KindParsing, k)
	assert.Error(t, k.UnmarshalText([]byte("NOPE")))

	assert.Equal(t, http.StatusBadRequest, KindBlank.Status())
	assert.Equal(t, http.StatusInternalServerError, KindInfra.Status())
}

func TestAsErrorsLabelsPlainErrors(t *testing.T) {
	errs := AsErrors(errors.New("connection reset"))
	require.Len(t, errs, 1)
	assert.Equal(t, KindInfra, errs[0].Kind)
	assert.Equal(t, "connection reset", errs[0].Reason)

	assert.Nil(t, AsErrors(nil))
}

func TestCollectorKeepsOrder(t *testing.T) {
	var c Collector
	assert.NoError(t, c.Err())

	c.Add(nil)
	c.Add(NewError(KindEmpty, "a"))
	c.Add(Errors{NewError(KindBlank, "b"), NewError(KindNull, "c")})

	errs := requireErrors(t, c.Err())
	assert.Equal(t, []string{"a", "b", "c"}, errs.Reasons())
}
