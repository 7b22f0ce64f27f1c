package redis

import "fmt"

// playerKey returns the Redis key holding a player record
func (s *Storage) playerKey(pseudo string) string {
	return fmt.Sprintf("%s:player:%s", s.cfg.KeyPrefix, pseudo)
}

// playersIndexKey returns the Redis key for the SET of all stored pseudos
func (s *Storage) playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", s.cfg.KeyPrefix)
}
