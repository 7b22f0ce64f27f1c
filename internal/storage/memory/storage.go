package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/tournament/internal/model"
	"github.com/mcoot/tournament/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu      sync.RWMutex
	players map[string]model.StoredPlayer
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[string]model.StoredPlayer),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) GetPlayer(ctx context.Context, pseudo string) (*model.StoredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[pseudo]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return clonePlayer(player), nil
}

func (s *Storage) PlayerExists(ctx context.Context, pseudo string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.players[pseudo]
	return ok, nil
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.StoredPlayer, cond storage.Condition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.players[player.Pseudo]
	if err := storage.CheckCondition(cond, exists); err != nil {
		return err
	}
	s.players[player.Pseudo] = *clonePlayer(*player)
	return nil
}

func (s *Storage) DeletePlayer(ctx context.Context, pseudo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, pseudo)
	return nil
}

// ListPlayers returns every player ordered by pseudo
func (s *Storage) ListPlayers(ctx context.Context) ([]*model.StoredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.StoredPlayer, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, clonePlayer(p))
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Pseudo < players[j].Pseudo })
	return players, nil
}

// clonePlayer copies p so callers never share the stored rank pointer
func clonePlayer(p model.StoredPlayer) *model.StoredPlayer {
	if p.Rank != nil {
		rank := *p.Rank
		p.Rank = &rank
	}
	return &p
}
