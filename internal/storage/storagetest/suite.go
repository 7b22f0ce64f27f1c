// Package storagetest holds the behaviour every storage backend must share.
// Backend test suites embed Suite and set Store in their SetupTest.
package storagetest

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tournament/internal/model"
	"github.com/mcoot/tournament/internal/storage"
)

// Suite runs the storage contract against Store
type Suite struct {
	suite.Suite
	Store storage.Storage
	Ctx   context.Context
}

func rank(r string) *string {
	return &r
}

func (s *Suite) TestSaveAndGetPlayer() {
	player := &model.StoredPlayer{Pseudo: "Spectre", Points: 500, Rank: rank("Expert")}

	err := s.Store.SavePlayer(s.Ctx, player, storage.Always)
	s.Require().NoError(err)

	retrieved, err := s.Store.GetPlayer(s.Ctx, "Spectre")
	s.Require().NoError(err)
	s.Equal("Spectre", retrieved.Pseudo)
	s.Equal(500, retrieved.Points)
	s.Require().NotNil(retrieved.Rank)
	s.Equal("Expert", *retrieved.Rank)
}

func (s *Suite) TestSavePlayerWithoutRank() {
	err := s.Store.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "Bond", Points: 0}, storage.Always)
	s.Require().NoError(err)

	retrieved, err := s.Store.GetPlayer(s.Ctx, "Bond")
	s.Require().NoError(err)
	s.Equal(0, retrieved.Points)
	s.Nil(retrieved.Rank)
}

func (s *Suite) TestGetPlayerNotFound() {
	_, err := s.Store.GetPlayer(s.Ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestPlayerExists() {
	_ = s.Store.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "Bond", Points: 1}, storage.Always)

	exists, err := s.Store.PlayerExists(s.Ctx, "Bond")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.Store.PlayerExists(s.Ctx, "Goldfinger")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *Suite) TestSavePlayerOverwrites() {
	_ = s.Store.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "Bond", Points: 1, Rank: rank("spy")}, storage.Always)

	err := s.Store.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "Bond", Points: 2}, storage.Always)
	s.Require().NoError(err)

	retrieved, err := s.Store.GetPlayer(s.Ctx, "Bond")
	s.Require().NoError(err)
	s.Equal(2, retrieved.Points)
	s.Nil(retrieved.Rank)
}

func (s *Suite) TestSavePlayerIfAbsent() {
	err := s.Store.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "Bond", Points: 1}, storage.IfAbsent)
	s.Require().NoError(err)

	err = s.Store.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "Bond", Points: 2}, storage.IfAbsent)
	s.ErrorIs(err, model.ErrWriteConflict)

	retrieved, err := s.Store.GetPlayer(s.Ctx, "Bond")
	s.Require().NoError(err)
	s.Equal(1, retrieved.Points)
}

func (s *Suite) TestSavePlayerIfPresent() {
	err := s.Store.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "Bond", Points: 1}, storage.IfPresent)
	s.ErrorIs(err, model.ErrWriteConflict)

	_, err = s.Store.GetPlayer(s.Ctx, "Bond")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	_ = s.Store.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "Bond", Points: 1}, storage.Always)
	err = s.Store.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "Bond", Points: 7}, storage.IfPresent)
	s.Require().NoError(err)

	retrieved, err := s.Store.GetPlayer(s.Ctx, "Bond")
	s.Require().NoError(err)
	s.Equal(7, retrieved.Points)
}

func (s *Suite) TestDeletePlayer() {
	_ = s.Store.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "Bond", Points: 1}, storage.Always)

	err := s.Store.DeletePlayer(s.Ctx, "Bond")
	s.Require().NoError(err)

	_, err = s.Store.GetPlayer(s.Ctx, "Bond")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestDeleteMissingPlayerIsNoop() {
	s.NoError(s.Store.DeletePlayer(s.Ctx, "nobody"))
}

func (s *Suite) TestListPlayers() {
	_ = s.Store.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "Bond", Points: 2000, Rank: rank("spy")}, storage.Always)
	_ = s.Store.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "LeChiffre", Points: 2001}, storage.Always)

	players, err := s.Store.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)

	byPseudo := map[string]*model.StoredPlayer{}
	for _, p := range players {
		byPseudo[p.Pseudo] = p
	}
	s.Equal(2000, byPseudo["Bond"].Points)
	s.Require().NotNil(byPseudo["Bond"].Rank)
	s.Equal("spy", *byPseudo["Bond"].Rank)
	s.Nil(byPseudo["LeChiffre"].Rank)
}

func (s *Suite) TestListPlayersEmpty() {
	players, err := s.Store.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *Suite) TestListPlayersAfterDelete() {
	_ = s.Store.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "Bond", Points: 1}, storage.Always)
	_ = s.Store.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "Q", Points: 2}, storage.Always)
	_ = s.Store.DeletePlayer(s.Ctx, "Bond")

	players, err := s.Store.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal("Q", players[0].Pseudo)
}
