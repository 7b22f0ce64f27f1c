// Package policy decides whether a validated player may be created or updated,
// given whether its pseudo is already taken.
package policy

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mcoot/tournament/internal/model"
)

// ExistsFunc reports whether a player with the given pseudo is stored
type ExistsFunc func(ctx context.Context, pseudo string) (bool, error)

// Policy runs the entity builder then the uniqueness/existence checks.
// It holds no state and never touches storage directly.
type Policy struct{}

// New creates a Policy
func New() *Policy {
	return &Policy{}
}

// ValidateCreation succeeds when raw is structurally valid and its pseudo is free
func (p *Policy) ValidateCreation(ctx context.Context, raw model.RawPlayer, exists ExistsFunc) (model.ValidatedPlayer, error) {
	entity, err := model.BuildPlayer(raw)
	if err != nil {
		return model.ValidatedPlayer{}, err
	}

	player := entity.Validated()
	taken, err := probe(ctx, exists, player.Pseudo)
	if err != nil {
		return model.ValidatedPlayer{}, err
	}
	if taken {
		return model.ValidatedPlayer{}, model.Single(PseudoTaken(player.Pseudo))
	}
	return player, nil
}

// ValidateUpdate succeeds when raw is structurally valid and its pseudo is
// stored, or forceCreate allows creating it
func (p *Policy) ValidateUpdate(ctx context.Context, raw model.RawPlayer, exists ExistsFunc, forceCreate bool) (model.ValidatedPlayer, error) {
	entity, err := model.BuildPlayer(raw)
	if err != nil {
		return model.ValidatedPlayer{}, err
	}

	player := entity.Validated()
	if forceCreate {
		return player, nil
	}

	found, err := probe(ctx, exists, player.Pseudo)
	if err != nil {
		return model.ValidatedPlayer{}, err
	}
	if !found {
		return model.ValidatedPlayer{}, model.Single(PseudoMissing(player.Pseudo))
	}
	return player, nil
}

func probe(ctx context.Context, exists ExistsFunc, pseudo string) (bool, error) {
	found, err := exists(ctx, pseudo)
	if err != nil {
		return false, model.Single(model.NewErrorWithCode(
			model.KindInfra,
			fmt.Sprintf("Unable to check pseudo %s: %v", pseudo, err),
			http.StatusFailedDependency,
		))
	}
	return found, nil
}

// PseudoTaken is the Unavailable error for a create on an existing pseudo
func PseudoTaken(pseudo string) *model.DomainError {
	return model.NewError(model.KindUnavailable,
		fmt.Sprintf("Pseudo value = %s already exists and is not available anymore.", pseudo))
}

// PseudoMissing is the Unavailable error for an update on an unknown pseudo
func PseudoMissing(pseudo string) *model.DomainError {
	return model.NewError(model.KindUnavailable,
		fmt.Sprintf("Pseudo value = %s does not exist. Set the forceCreate query parameter to true to force creation.", pseudo))
}
