package web

import (
	"net/http"

	"picklego-app/internal/model"

	"github.com/go-chi/chi/v5"
)

const defaultRecentLimit = 3

func (s *Server) handleMyMatches(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	ctx := r.Context()

	var (
		list []model.Match
		err  error
	)
	switch chi.URLParam(r, "list") {
	case "upcoming":
		list, err = s.matches.ListUpcoming(ctx, userID)
	case "won":
		list, err = s.matches.ListWon(ctx, userID)
	case "lost":
		list, err = s.matches.ListLost(ctx, userID)
	case "recent":
		limit, perr := queryInt(r, "limit", defaultRecentLimit)
		if perr != nil || limit < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative number"})
			return
		}
		list, err = s.matches.RecentCompleted(ctx, userID, limit)
	default:
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.matchViews(list, userID))
}

func (s *Server) handleNextMatch(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	m, ok, err := s.matches.NextMatch(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no upcoming match"})
		return
	}
	writeJSON(w, http.StatusOK, s.matchView(m, userID))
}

func (s *Server) handleMyRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.matches.Record(r.Context(), currentUserID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
