package storage

import (
	"context"

	"github.com/mcoot/tournament/internal/model"
)

// Condition restricts when SavePlayer may write
type Condition int

const (
	// Always overwrites or creates unconditionally (last write wins)
	Always Condition = iota
	// IfAbsent writes only when no record exists for the pseudo
	IfAbsent
	// IfPresent writes only when a record already exists for the pseudo
	IfPresent
)

func (c Condition) String() string {
	switch c {
	case Always:
		return "always"
	case IfAbsent:
		return "if_absent"
	case IfPresent:
		return "if_present"
	}
	return "unknown"
}

// Storage defines the interface for player persistence
type Storage interface {
	// GetPlayer returns model.ErrPlayerNotFound when no record exists
	GetPlayer(ctx context.Context, pseudo string) (*model.StoredPlayer, error)
	PlayerExists(ctx context.Context, pseudo string) (bool, error)
	// SavePlayer returns model.ErrWriteConflict when cond does not hold
	SavePlayer(ctx context.Context, player *model.StoredPlayer, cond Condition) error
	DeletePlayer(ctx context.Context, pseudo string) error
	ListPlayers(ctx context.Context) ([]*model.StoredPlayer, error)
}

// CheckCondition reports whether a write under cond is allowed given whether
// the key currently exists
func CheckCondition(cond Condition, exists bool) error {
	switch cond {
	case IfAbsent:
		if exists {
			return model.ErrWriteConflict
		}
	case IfPresent:
		if !exists {
			return model.ErrWriteConflict
		}
	}
	return nil
}
