// Package sqlite provides a SQLite-backed player storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/mcoot/tournament/internal/model"
	"github.com/mcoot/tournament/internal/storage"
	"github.com/mcoot/tournament/internal/storage/sqlite/migrations"
)

// Storage persists players in a single SQLite table
type Storage struct {
	db *sql.DB
}

// Open opens the database at path and applies embedded migrations
func Open(ctx context.Context, path string) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database handle
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) GetPlayer(ctx context.Context, pseudo string) (*model.StoredPlayer, error) {
	row := s.db.QueryRowContext(ctx, `SELECT pseudo, points, rank FROM players WHERE pseudo = ?`, pseudo)
	player, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get player %q: %w", pseudo, err)
	}
	return player, nil
}

func (s *Storage) PlayerExists(ctx context.Context, pseudo string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM players WHERE pseudo = ?)`, pseudo).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check player %q: %w", pseudo, err)
	}
	return exists, nil
}

// SavePlayer maps IfAbsent to INSERT, IfPresent to UPDATE and Always to an upsert
func (s *Storage) SavePlayer(ctx context.Context, player *model.StoredPlayer, cond storage.Condition) error {
	rank := sql.NullString{}
	if player.Rank != nil {
		rank = sql.NullString{String: *player.Rank, Valid: true}
	}

	switch cond {
	case storage.IfAbsent:
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO players (pseudo, points, rank) VALUES (?, ?, ?)`,
			player.Pseudo, player.Points, rank)
		if isUniqueViolation(err) {
			return model.ErrWriteConflict
		}
		if err != nil {
			return fmt.Errorf("insert player %q: %w", player.Pseudo, err)
		}
	case storage.IfPresent:
		res, err := s.db.ExecContext(ctx,
			`UPDATE players SET points = ?, rank = ? WHERE pseudo = ?`,
			player.Points, rank, player.Pseudo)
		if err != nil {
			return fmt.Errorf("update player %q: %w", player.Pseudo, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update player %q: %w", player.Pseudo, err)
		}
		if n == 0 {
			return model.ErrWriteConflict
		}
	default:
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO players (pseudo, points, rank) VALUES (?, ?, ?)
			 ON CONFLICT(pseudo) DO UPDATE SET points = excluded.points, rank = excluded.rank`,
			player.Pseudo, player.Points, rank)
		if err != nil {
			return fmt.Errorf("save player %q: %w", player.Pseudo, err)
		}
	}
	return nil
}

func (s *Storage) DeletePlayer(ctx context.Context, pseudo string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM players WHERE pseudo = ?`, pseudo); err != nil {
		return fmt.Errorf("delete player %q: %w", pseudo, err)
	}
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.StoredPlayer, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT pseudo, points, rank FROM players ORDER BY pseudo`)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	players := []*model.StoredPlayer{}
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row scanner) (*model.StoredPlayer, error) {
	var (
		player model.StoredPlayer
		rank   sql.NullString
	)
	if err := row.Scan(&player.Pseudo, &player.Points, &rank); err != nil {
		return nil, err
	}
	if rank.Valid {
		player.Rank = &rank.String
	}
	return &player, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}
