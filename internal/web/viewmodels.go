package web

import (
	"picklego-app/internal/model"
	"picklego-app/internal/players"
	"picklego-app/internal/scoring"
)

type SetView struct {
	model.SetScore
	Winner   string `json:"winner"`
	Complete bool   `json:"complete"`
}

type MatchView struct {
	model.Match
	Title        string    `json:"title"`
	Team1Name    string    `json:"team1Name"`
	Team2Name    string    `json:"team2Name"`
	Sets         []SetView `json:"sets"`
	Team1SetWins int       `json:"team1SetWins"`
	Team2SetWins int       `json:"team2SetWins"`
	CurrentSet   int       `json:"currentSet"`
	Winner       string    `json:"winner"`
	Result       string    `json:"result,omitempty"`
}

type PlayerView struct {
	ID           string        `json:"id"`
	DisplayName  string        `json:"displayName"`
	IsRegistered bool          `json:"isRegistered"`
	Player       *model.Player `json:"player,omitempty"`
}

type TeamsView struct {
	Set       int           `json:"set"`
	Teams     scoring.Teams `json:"teams"`
	Team1Name string        `json:"team1Name"`
	Team2Name string        `json:"team2Name"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) matchView(m model.Match, userID string) MatchView {
	display := players.TeamDisplay{Match: m, Directory: s.players}
	view := MatchView{
		Match:      m,
		Title:      display.String(),
		Team1Name:  display.Team1(),
		Team2Name:  display.Team2(),
		Sets:       make([]SetView, 0, len(m.Scores)),
		CurrentSet: scoring.CurrentSet(m.Scores, m.PointsToWin, m.NumberOfSets),
		Winner:     scoring.MatchOutcome(m).String(),
	}
	for _, set := range m.Scores {
		view.Sets = append(view.Sets, SetView{
			SetScore: set,
			Winner:   scoring.SetWinner(set).String(),
			Complete: scoring.IsSetComplete(set, m.PointsToWin),
		})
	}
	view.Team1SetWins, view.Team2SetWins = scoring.CountSetWins(m.Scores)
	if m.Status == model.MatchCompleted && m.HasPlayer(userID) {
		view.Result = scoring.Result(m, userID)
	}
	return view
}

func (s *Server) matchViews(ms []model.Match, userID string) []MatchView {
	views := make([]MatchView, 0, len(ms))
	for _, m := range ms {
		views = append(views, s.matchView(m, userID))
	}
	return views
}

func (s *Server) playerView(id string) PlayerView {
	view := PlayerView{
		ID:           id,
		DisplayName:  s.players.DisplayName(id),
		IsRegistered: s.players.IsRegistered(id),
	}
	if p, ok := s.players.Player(id); ok {
		view.Player = &p
	}
	return view
}

func (s *Server) teamName(pair scoring.Pair) string {
	if pair[1] == "" {
		return s.players.DisplayName(pair[0])
	}
	return s.players.DisplayName(pair[0]) + " & " + s.players.DisplayName(pair[1])
}
