package model

import "strings"

// RawPlayer is unchecked player input as received from a client.
// Any field may be absent.
type RawPlayer struct {
	Pseudo *string
	Points *int
}

// PlayerEntity is a player whose fields passed validation.
// The only way to obtain one is BuildPlayer.
type PlayerEntity struct {
	Pseudo NonEmptyText
	Points NonNegativeNumber
}

// ValidatedPlayer is the projection of a PlayerEntity handed to persistence
type ValidatedPlayer struct {
	Pseudo string
	Points int
}

// StoredPlayer is the persisted player record, keyed by Pseudo.
// Rank is free-form metadata and is not validated.
type StoredPlayer struct {
	Pseudo string  `json:"pseudo"`
	Points int     `json:"points"`
	Rank   *string `json:"rank,omitempty"`
}

// BuildPlayer validates every field of raw and assembles a PlayerEntity.
// All field failures are reported together, pseudo first.
func BuildPlayer(raw RawPlayer) (PlayerEntity, error) {
	var c Collector

	pseudo, err := NewNonEmptyText(raw.Pseudo, "pseudo")
	c.Add(err)
	points, err := NewNonNegativeNumber(raw.Points, "points")
	c.Add(err)

	if err := c.Err(); err != nil {
		return PlayerEntity{}, err
	}
	return PlayerEntity{Pseudo: pseudo, Points: points}, nil
}

// Validated projects the entity onto plain values
func (p PlayerEntity) Validated() ValidatedPlayer {
	return ValidatedPlayer{Pseudo: p.Pseudo.String(), Points: p.Points.Int()}
}

// WithRank merges a validated player with caller-supplied rank metadata
func (v ValidatedPlayer) WithRank(rank *string) *StoredPlayer {
	return &StoredPlayer{Pseudo: v.Pseudo, Points: v.Points, Rank: rank}
}

// SortMode selects the field players are listed by
type SortMode string

const (
	SortByPseudo SortMode = "pseudo"
	SortByPoints SortMode = "points"
	SortByRank   SortMode = "rank"
)

// ParseSortMode matches value case-insensitively; anything else sorts by points
func ParseSortMode(value string) SortMode {
	switch mode := SortMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case SortByPseudo, SortByPoints, SortByRank:
		return mode
	}
	return SortByPoints
}
