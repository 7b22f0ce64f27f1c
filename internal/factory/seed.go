package factory

import (
	"context"
	"fmt"

	"github.com/mcoot/tournament/internal/services/player"
)

type seedPlayer struct {
	pseudo string
	points int
	rank   string
}

var seedPlayers = []seedPlayer{
	{pseudo: "Bond", points: 2000, rank: "spy"},
	{pseudo: "LeChiffre", points: 2001, rank: "Expert"},
}

// Seed stores the demo players, replacing any existing records with the same pseudo
func (a *App) Seed(ctx context.Context) error {
	for _, sp := range seedPlayers {
		points, rank := sp.points, sp.rank
		if _, err := a.PlayerService.UpdatePlayer(ctx, sp.pseudo, player.PlayerUpdate{
			Points: &points,
			Rank:   &rank,
		}, true); err != nil {
			return fmt.Errorf("seed player %s: %w", sp.pseudo, err)
		}
	}
	return nil
}
