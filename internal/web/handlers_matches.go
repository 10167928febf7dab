package web

import (
	"net/http"
	"strings"

	"picklego-app/internal/matches"
	"picklego-app/internal/model"
	"picklego-app/internal/scoring"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleMatchesList(w http.ResponseWriter, r *http.Request) {
	all, err := s.matches.ListMatches(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.matchViews(all, currentUserID(r)))
}

func (s *Server) handleMatchCreate(w http.ResponseWriter, r *http.Request) {
	var cfg model.MatchConfig
	if !decodeJSON(w, r, &cfg, false) {
		return
	}
	created, err := s.matches.CreateMatch(r.Context(), cfg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.matchView(created, currentUserID(r)))
}

func (s *Server) handleMatchShow(w http.ResponseWriter, r *http.Request) {
	m, err := s.matches.GetMatch(r.Context(), chi.URLParam(r, "matchID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.matchView(m, currentUserID(r)))
}

// handleMatchUpdate overlays the request body on the stored match, so fields
// left out of the body keep their values.
func (s *Server) handleMatchUpdate(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")
	m, err := s.matches.GetMatch(r.Context(), matchID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !decodeJSON(w, r, &m, false) {
		return
	}
	m.ID = matchID
	if err := s.matches.UpdateMatch(r.Context(), m); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.matchView(m, currentUserID(r)))
}

func (s *Server) handleMatchDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.matches.DeleteMatch(r.Context(), chi.URLParam(r, "matchID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setRequest struct {
	Team1Score int `json:"team1Score"`
	Team2Score int `json:"team2Score"`
	GameNumber int `json:"gameNumber"`
}

func (s *Server) handleSetRecord(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	m, err := s.matches.RecordSetScore(r.Context(), chi.URLParam(r, "matchID"), req.Team1Score, req.Team2Score, req.GameNumber)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.matchView(m, currentUserID(r)))
}

type scoresRequest struct {
	Sets []model.SetScore `json:"sets"`
	// Line is an alternative to Sets, e.g. "11-4, 6-11, 11-9".
	Line string `json:"line"`
}

func (s *Server) handleSetsSave(w http.ResponseWriter, r *http.Request) {
	var req scoresRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	sets := req.Sets
	if strings.TrimSpace(req.Line) != "" {
		parsed, err := scoring.ParseSets(req.Line)
		if err != nil {
			s.writeError(w, r, &matches.ValidationError{Message: err.Error()})
			return
		}
		sets = parsed
	}
	m, err := s.matches.SaveScores(r.Context(), chi.URLParam(r, "matchID"), sets)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.matchView(m, currentUserID(r)))
}

type completeRequest struct {
	Winner string `json:"winner"`
}

func (s *Server) handleMatchComplete(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}
	var claimed *scoring.Side
	if req.Winner != "" {
		side, ok := scoring.ParseSide(req.Winner)
		if !ok {
			s.writeError(w, r, &matches.ValidationError{Message: "Unknown winner " + req.Winner})
			return
		}
		claimed = &side
	}
	m, err := s.matches.CompleteMatch(r.Context(), chi.URLParam(r, "matchID"), claimed)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.matchView(m, currentUserID(r)))
}

func (s *Server) handleMatchTeams(w http.ResponseWriter, r *http.Request) {
	set, err := queryInt(r, "set", 1)
	if err != nil || set < 1 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "set must be a positive number"})
		return
	}
	teams, err := s.matches.TeamsForSet(r.Context(), chi.URLParam(r, "matchID"), set)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TeamsView{
		Set:       set,
		Teams:     teams,
		Team1Name: s.teamName(teams.Team1),
		Team2Name: s.teamName(teams.Team2),
	})
}

type rotationRequest struct {
	Players []string `json:"players"`
}

type rotationResponse struct {
	Players []string      `json:"players"`
	Teams   scoring.Teams `json:"teams"`
}

func (s *Server) handleRotation(w http.ResponseWriter, r *http.Request) {
	var req rotationRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	rotated, err := s.matches.RotatePartners(req.Players)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	teams, err := scoring.TeamsForSet(rotated, 1)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rotationResponse{Players: rotated, Teams: teams})
}
