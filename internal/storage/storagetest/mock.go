package storagetest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mcoot/tournament/internal/model"
	"github.com/mcoot/tournament/internal/storage"
)

// MockStorage is a testify mock of storage.Storage for failure-path tests
type MockStorage struct {
	mock.Mock
}

// Ensure MockStorage implements Storage
var _ storage.Storage = (*MockStorage)(nil)

func (m *MockStorage) GetPlayer(ctx context.Context, pseudo string) (*model.StoredPlayer, error) {
	args := m.Called(ctx, pseudo)
	player, _ := args.Get(0).(*model.StoredPlayer)
	return player, args.Error(1)
}

func (m *MockStorage) PlayerExists(ctx context.Context, pseudo string) (bool, error) {
	args := m.Called(ctx, pseudo)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) SavePlayer(ctx context.Context, player *model.StoredPlayer, cond storage.Condition) error {
	args := m.Called(ctx, player, cond)
	return args.Error(0)
}

func (m *MockStorage) DeletePlayer(ctx context.Context, pseudo string) error {
	args := m.Called(ctx, pseudo)
	return args.Error(0)
}

func (m *MockStorage) ListPlayers(ctx context.Context) ([]*model.StoredPlayer, error) {
	args := m.Called(ctx)
	players, _ := args.Get(0).([]*model.StoredPlayer)
	return players, args.Error(1)
}
