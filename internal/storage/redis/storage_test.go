package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tournament/internal/model"
	"github.com/mcoot/tournament/internal/storage"
	"github.com/mcoot/tournament/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	mini    *miniredis.Miniredis
	storage *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.Store = s.storage
	s.Ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestPlayerStoredAsJSONWithoutTTL() {
	_ = s.storage.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "Bond", Points: 2000}, storage.Always)

	raw, err := s.mini.Get(s.storage.playerKey("Bond"))
	s.Require().NoError(err)
	s.JSONEq(`{"pseudo":"Bond","points":2000}`, raw)
	s.Equal(time.Duration(0), s.mini.TTL(s.storage.playerKey("Bond")))
}

func (s *StorageSuite) TestIndexTracksSavesAndDeletes() {
	_ = s.storage.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "Bond"}, storage.Always)
	_ = s.storage.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "Q"}, storage.Always)

	members, err := s.mini.Members(s.storage.playersIndexKey())
	s.Require().NoError(err)
	s.ElementsMatch([]string{"Bond", "Q"}, members)

	_ = s.storage.DeletePlayer(s.Ctx, "Bond")
	members, err = s.mini.Members(s.storage.playersIndexKey())
	s.Require().NoError(err)
	s.Equal([]string{"Q"}, members)
}

func (s *StorageSuite) TestFailedConditionDoesNotIndex() {
	err := s.storage.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "Ghost"}, storage.IfPresent)
	s.ErrorIs(err, model.ErrWriteConflict)
	s.False(s.mini.Exists(s.storage.playersIndexKey()))
}

func (s *StorageSuite) TestFailedInsertLeavesRecordAndIndexAlone() {
	s.Require().NoError(s.storage.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "Bond", Points: 1}, storage.Always))

	err := s.storage.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "Bond", Points: 9}, storage.IfAbsent)
	s.ErrorIs(err, model.ErrWriteConflict)

	raw, err := s.mini.Get(s.storage.playerKey("Bond"))
	s.Require().NoError(err)
	s.JSONEq(`{"pseudo":"Bond","points":1}`, raw)
	members, err := s.mini.Members(s.storage.playersIndexKey())
	s.Require().NoError(err)
	s.Equal([]string{"Bond"}, members)
}

func (s *StorageSuite) TestConditionalWritesIndexOnSuccess() {
	s.Require().NoError(s.storage.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "Q"}, storage.IfAbsent))
	s.Require().NoError(s.storage.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "Q", Points: 4}, storage.IfPresent))

	members, err := s.mini.Members(s.storage.playersIndexKey())
	s.Require().NoError(err)
	s.Equal([]string{"Q"}, members)

	players, err := s.storage.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal(4, players[0].Points)
}

func (s *StorageSuite) TestIndexFailureWritesNoRecord() {
	// A string at the index key makes SADD fail with WRONGTYPE
	s.Require().NoError(s.mini.Set(s.storage.playersIndexKey(), "not-a-set"))

	err := s.storage.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "Bond"}, storage.Always)
	s.Error(err)
	s.False(s.mini.Exists(s.storage.playerKey("Bond")))
}

func (s *StorageSuite) TestListSkipsDanglingIndexEntries() {
	_ = s.storage.SavePlayer(s.Ctx, &model.StoredPlayer{Pseudo: "Bond", Points: 1}, storage.Always)
	_, err := s.mini.SAdd(s.storage.playersIndexKey(), "Ghost")
	s.Require().NoError(err)

	players, err := s.storage.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal("Bond", players[0].Pseudo)
}

func (s *StorageSuite) TestKeyPrefixDefaults() {
	st := NewWithClient(redis.NewClient(&redis.Options{Addr: s.mini.Addr()}), Config{})
	defer func() { _ = st.Close() }()
	s.Equal("tournament:player:Bond", st.playerKey("Bond"))
}

func (s *StorageSuite) TestConnectionFailureSurfaces() {
	s.mini.Close()
	_, err := s.storage.GetPlayer(s.Ctx, "Bond")
	s.Error(err)
	s.NotErrorIs(err, model.ErrPlayerNotFound)
}
