// Package web exposes the match and player operations as a JSON API.
package web

import (
	"net/http"

	"picklego-app/internal/matches"
	"picklego-app/internal/players"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

type Options struct {
	// DefaultUserID is the signed-in user when a request names none.
	DefaultUserID string
	// RateLimit caps mutating requests per second. Zero disables the limit.
	RateLimit rate.Limit
	RateBurst int
}

type Server struct {
	matches       *matches.Service
	players       *players.Directory
	logger        *log.Logger
	defaultUserID string
	limiter       *rate.Limiter
}

func NewServer(svc *matches.Service, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	limit := opts.RateLimit
	if limit <= 0 {
		limit = rate.Inf
	}
	return &Server{
		matches:       svc,
		players:       svc.Directory(),
		logger:        logger,
		defaultUserID: opts.DefaultUserID,
		limiter:       rate.NewLimiter(limit, opts.RateBurst),
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", userHeaderName},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(s.withCurrentUser)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/matches", s.handleMatchesList)
	r.Get("/matches/{matchID}", s.handleMatchShow)
	r.Get("/matches/{matchID}/teams", s.handleMatchTeams)
	r.Get("/me/matches/{list}", s.handleMyMatches)
	r.Get("/me/next-match", s.handleNextMatch)
	r.Get("/me/record", s.handleMyRecord)
	r.Get("/players", s.handlePlayersList)
	r.Get("/players/{playerID}", s.handlePlayerShow)

	r.Group(func(r chi.Router) {
		r.Use(s.limitWrites)
		r.Post("/matches", s.handleMatchCreate)
		r.Put("/matches/{matchID}", s.handleMatchUpdate)
		r.Delete("/matches/{matchID}", s.handleMatchDelete)
		r.Post("/matches/{matchID}/sets", s.handleSetRecord)
		r.Put("/matches/{matchID}/sets", s.handleSetsSave)
		r.Post("/matches/{matchID}/complete", s.handleMatchComplete)
		r.Post("/rotations", s.handleRotation)
		r.Post("/players", s.handlePlayerAdd)
	})

	return r
}
