package store

import "picklego-app/internal/model"

type PlayerStore interface {
	ListPlayers() []model.Player
	GetPlayer(id string) (model.Player, bool)
	GetPlayerByEmail(email string) (model.Player, bool)
	CreatePlayer(player model.Player) (model.Player, error)
	UpdatePlayer(player model.Player) error
}

type MatchStore interface {
	ListMatches() []model.Match
	ListMatchesForPlayer(playerID string) []model.Match
	// GetMatch returns an error wrapping ErrNotFound when no match has the id.
	GetMatch(id string) (model.Match, error)
	CreateMatch(match model.Match) (model.Match, error)
	UpdateMatch(match model.Match) error
	DeleteMatch(id string) error
}

type Store interface {
	PlayerStore
	MatchStore
}
