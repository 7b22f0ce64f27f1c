// Package player sequences validation, policy checks and persistence for the
// player registry and shapes the results for transport.
package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/mcoot/tournament/internal/model"
	"github.com/mcoot/tournament/internal/services/policy"
	"github.com/mcoot/tournament/internal/storage"
)

// PlayerInput is a create request. Rank is stored as-is.
type PlayerInput struct {
	Pseudo *string
	Points *int
	Rank   *string
}

// PlayerUpdate is an update request; the pseudo comes from the resource path
type PlayerUpdate struct {
	Points *int
	Rank   *string
}

// Option configures a Service
type Option func(*Service)

// WithStrictWrites makes creates and non-forced updates use conditional writes,
// so a concurrent writer between the policy check and the write is reported
// as the same Unavailable error the check would have produced
func WithStrictWrites(strict bool) Option {
	return func(s *Service) {
		s.strictWrites = strict
	}
}

// Service orchestrates player operations. Every error it returns is a model.Errors.
type Service struct {
	storage      storage.Storage
	policy       *policy.Policy
	logger       *slog.Logger
	strictWrites bool
}

// New creates a player Service
func New(store storage.Storage, pol *policy.Policy, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		storage: store,
		policy:  pol,
		logger:  logger.With(slog.String("component", "player-service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddPlayer validates and stores a new player
func (s *Service) AddPlayer(ctx context.Context, in PlayerInput) (string, error) {
	raw := model.RawPlayer{Pseudo: in.Pseudo, Points: in.Points}
	validated, err := s.policy.ValidateCreation(ctx, raw, s.storage.PlayerExists)
	if err != nil {
		return "", s.rejected(err)
	}

	cond := storage.Always
	if s.strictWrites {
		cond = storage.IfAbsent
	}
	if err := s.storage.SavePlayer(ctx, validated.WithRank(in.Rank), cond); err != nil {
		if errors.Is(err, model.ErrWriteConflict) {
			return "", model.Single(policy.PseudoTaken(validated.Pseudo))
		}
		return "", s.infra(err, http.StatusBadRequest, "Unable to save player %s", validated.Pseudo)
	}

	s.logger.Info("player created",
		slog.String("pseudo", validated.Pseudo),
		slog.Int("points", validated.Points),
	)
	return fmt.Sprintf("Player with pseudo %s created successfully.", validated.Pseudo), nil
}

// UpdatePlayer replaces the stored player; forceCreate allows creating it
func (s *Service) UpdatePlayer(ctx context.Context, pseudo string, in PlayerUpdate, forceCreate bool) (string, error) {
	raw := model.RawPlayer{Pseudo: &pseudo, Points: in.Points}
	validated, err := s.policy.ValidateUpdate(ctx, raw, s.storage.PlayerExists, forceCreate)
	if err != nil {
		return "", s.rejected(err)
	}

	cond := storage.Always
	if s.strictWrites && !forceCreate {
		cond = storage.IfPresent
	}
	if err := s.storage.SavePlayer(ctx, validated.WithRank(in.Rank), cond); err != nil {
		if errors.Is(err, model.ErrWriteConflict) {
			return "", model.Single(policy.PseudoMissing(validated.Pseudo))
		}
		return "", s.infra(err, http.StatusBadRequest, "Unable to save player %s", validated.Pseudo)
	}

	s.logger.Info("player updated",
		slog.String("pseudo", validated.Pseudo),
		slog.Int("points", validated.Points),
		slog.Bool("force_create", forceCreate),
	)
	return fmt.Sprintf("Player with pseudo %s updated successfully.", validated.Pseudo), nil
}

// GetPlayer returns the stored player or a 404 Unavailable error
func (s *Service) GetPlayer(ctx context.Context, pseudo string) (*model.StoredPlayer, error) {
	player, err := s.storage.GetPlayer(ctx, pseudo)
	if errors.Is(err, model.ErrPlayerNotFound) {
		return nil, model.Single(model.NewErrorWithCode(
			model.KindUnavailable,
			fmt.Sprintf("Pseudo: %s is not found.", pseudo),
			http.StatusNotFound,
		))
	}
	if err != nil {
		return nil, s.infra(err, http.StatusFailedDependency, "Unable to get player %s", pseudo)
	}
	return player, nil
}

// DeletePlayer removes an existing player; a missing one is reported like GetPlayer
func (s *Service) DeletePlayer(ctx context.Context, pseudo string) (string, error) {
	if _, err := s.GetPlayer(ctx, pseudo); err != nil {
		return "", err
	}

	if err := s.storage.DeletePlayer(ctx, pseudo); err != nil {
		return "", s.infra(err, http.StatusBadRequest, "Unable to delete player %s", pseudo)
	}

	s.logger.Info("player deleted", slog.String("pseudo", pseudo))
	return fmt.Sprintf("Player %s successfully removed.", pseudo), nil
}

// ListPlayers returns every player in descending order of the sortBy field.
// Unknown or empty sortBy sorts by points.
func (s *Service) ListPlayers(ctx context.Context, sortBy string) ([]*model.StoredPlayer, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, s.infra(err, http.StatusFailedDependency, "Unable to list players")
	}

	SortPlayers(players, model.ParseSortMode(sortBy))
	return players, nil
}

// SortPlayers orders players descending by mode, keeping the input order for ties.
// Players without a rank come last when sorting by rank.
func SortPlayers(players []*model.StoredPlayer, mode model.SortMode) {
	var less func(a, b *model.StoredPlayer) bool
	switch mode {
	case model.SortByPseudo:
		less = func(a, b *model.StoredPlayer) bool { return a.Pseudo > b.Pseudo }
	case model.SortByRank:
		less = func(a, b *model.StoredPlayer) bool {
			if a.Rank == nil || b.Rank == nil {
				return a.Rank != nil && b.Rank == nil
			}
			return *a.Rank > *b.Rank
		}
	default:
		less = func(a, b *model.StoredPlayer) bool { return a.Points > b.Points }
	}

	sort.SliceStable(players, func(i, j int) bool {
		return less(players[i], players[j])
	})
}

// rejected converts a validation failure, logging any infrastructure error it carries
func (s *Service) rejected(err error) model.Errors {
	errs := model.AsErrors(err)
	for _, e := range errs {
		if e.Kind == model.KindInfra {
			s.logger.Error("storage operation failed",
				slog.String("reason", e.Reason),
				slog.Int("code", e.Code),
			)
		}
	}
	return errs
}

func (s *Service) infra(err error, code int, format string, args ...any) model.Errors {
	reason := fmt.Sprintf(format, args...) + ": " + err.Error()
	s.logger.Error("storage operation failed",
		slog.String("reason", reason),
		slog.Int("code", code),
	)
	return model.Single(model.NewErrorWithCode(model.KindInfra, reason, code))
}
