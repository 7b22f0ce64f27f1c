package response

import "github.com/mcoot/tournament/internal/model"

// Message is the body of a successful write
type Message struct {
	Message string `json:"message"`
}

// Player represents a player in API responses
type Player struct {
	Pseudo string  `json:"pseudo"`
	Points int     `json:"points"`
	Rank   *string `json:"rank,omitempty"`
}

// PlayerFromModel converts a stored player to a response Player
func PlayerFromModel(p *model.StoredPlayer) Player {
	return Player{
		Pseudo: p.Pseudo,
		Points: p.Points,
		Rank:   p.Rank,
	}
}

// PlayersFromModel converts a list of stored players, keeping order
func PlayersFromModel(players []*model.StoredPlayer) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}
