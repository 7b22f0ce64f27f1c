package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/tournament/internal/model"
	"github.com/mcoot/tournament/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Each player is a JSON string key; a SET indexes all pseudos for listing.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultConfig().KeyPrefix
	}
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) GetPlayer(ctx context.Context, pseudo string) (*model.StoredPlayer, error) {
	data, err := s.client.Get(ctx, s.playerKey(pseudo)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.StoredPlayer
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, fmt.Errorf("decode player %q: %w", pseudo, err)
	}
	return &player, nil
}

func (s *Storage) PlayerExists(ctx context.Context, pseudo string) (bool, error) {
	exists, err := s.client.Exists(ctx, s.playerKey(pseudo)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// savePlayerScript writes a player record and its index entry atomically.
// The index is updated first so a failing SADD leaves the record untouched.
// KEYS: record, index. ARGV: json, pseudo, condition (NX, XX or empty).
var savePlayerScript = redis.NewScript(`
local exists = redis.call('EXISTS', KEYS[1]) == 1
if (ARGV[3] == 'NX' and exists) or (ARGV[3] == 'XX' and not exists) then
  return 0
end
redis.call('SADD', KEYS[2], ARGV[2])
redis.call('SET', KEYS[1], ARGV[1])
return 1
`)

// SavePlayer maps the write condition onto SET NX and SET XX semantics and
// indexes the pseudo in the same script run
func (s *Storage) SavePlayer(ctx context.Context, player *model.StoredPlayer, cond storage.Condition) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	var flag string
	switch cond {
	case storage.IfAbsent:
		flag = "NX"
	case storage.IfPresent:
		flag = "XX"
	}

	keys := []string{s.playerKey(player.Pseudo), s.playersIndexKey()}
	written, err := savePlayerScript.Run(ctx, s.client, keys, data, player.Pseudo, flag).Int()
	if err != nil {
		return err
	}
	if written == 0 {
		return model.ErrWriteConflict
	}
	return nil
}

func (s *Storage) DeletePlayer(ctx context.Context, pseudo string) error {
	// Use pipeline so the record and its index entry go together
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.playerKey(pseudo))
	pipe.SRem(ctx, s.playersIndexKey(), pseudo)
	_, err := pipe.Exec(ctx)
	return err
}

// ListPlayers returns every indexed player ordered by pseudo
func (s *Storage) ListPlayers(ctx context.Context) ([]*model.StoredPlayer, error) {
	pseudos, err := s.client.SMembers(ctx, s.playersIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(pseudos) == 0 {
		return []*model.StoredPlayer{}, nil
	}
	sort.Strings(pseudos)

	keys := make([]string, len(pseudos))
	for i, pseudo := range pseudos {
		keys[i] = s.playerKey(pseudo)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.StoredPlayer, 0, len(values))
	for i, val := range values {
		if val == nil {
			continue // Index entry without a record
		}
		raw, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected value type %T for player %q", val, pseudos[i])
		}
		var player model.StoredPlayer
		if err := json.Unmarshal([]byte(raw), &player); err != nil {
			return nil, fmt.Errorf("decode player %q: %w", pseudos[i], err)
		}
		players = append(players, &player)
	}

	return players, nil
}
