package web

import (
	"net/http"
	"strings"

	"picklego-app/internal/model"

	"github.com/go-chi/chi/v5"
)

// handlePlayersList is the player picker. The current user is left out.
// With invited=true only pending invitations are listed.
func (s *Server) handlePlayersList(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("invited") == "true" {
		writeJSON(w, http.StatusOK, s.players.Invited())
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, s.players.Available(query, currentUserID(r)))
}

func (s *Server) handlePlayerShow(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.playerView(chi.URLParam(r, "playerID")))
}

type playerRequest struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	PhoneNumber  string           `json:"phoneNumber"`
	IsRegistered bool             `json:"isRegistered"`
	SkillLevel   model.SkillLevel `json:"skillLevel"`
}

// handlePlayerAdd invites a new player when no id is given, unless the email
// already belongs to a player. With an id the player is added unless already
// known. The stored player is returned either way.
func (s *Server) handlePlayerAdd(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		if existing, ok := s.players.ByEmail(req.Email); ok {
			writeJSON(w, http.StatusOK, s.playerView(existing.ID))
			return
		}
		p, err := s.players.Invite(req.Name, req.Email, req.PhoneNumber)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusCreated, s.playerView(p.ID))
		return
	}

	added, err := s.players.AddIfNeeded(model.Player{
		ID:           strings.TrimSpace(req.ID),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		IsRegistered: req.IsRegistered,
		SkillLevel:   req.SkillLevel,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, s.playerView(strings.TrimSpace(req.ID)))
}
