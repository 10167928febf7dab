// Package matches schedules matches, records their scores and answers the
// per-player history queries.
package matches

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"picklego-app/internal/model"
	"picklego-app/internal/players"
	"picklego-app/internal/scoring"
	"picklego-app/internal/store"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

type Options struct {
	// Latency is waited before each store call, standing in for a network round trip.
	Latency time.Duration
	// Rand drives the initial partner shuffle. Defaults to a time-seeded source.
	Rand scoring.Shuffler
}

type Service struct {
	store     store.MatchStore
	directory *players.Directory
	logger    *log.Logger
	latency   time.Duration

	rngMu sync.Mutex
	rng   scoring.Shuffler
}

func NewService(s store.MatchStore, directory *players.Directory, logger *log.Logger, opts Options) *Service {
	if logger == nil {
		logger = log.Default()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		store:     s,
		directory: directory,
		logger:    logger,
		latency:   opts.Latency,
		rng:       rng,
	}
}

func (s *Service) Directory() *players.Directory {
	return s.directory
}

// wait sleeps for the configured latency or until ctx is done.
func (s *Service) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// CreateMatch validates cfg and stores a new scheduled match with a fresh id.
// Rotating doubles matches get their partners shuffled once here.
func (s *Service) CreateMatch(ctx context.Context, cfg model.MatchConfig) (model.Match, error) {
	if err := validateConfig(cfg); err != nil {
		return model.Match{}, err
	}
	match := model.NewMatch(uuid.NewString(), cfg)
	if match.IsRotatingDoubles() {
		rotated, err := s.RotatePartners(match.Players)
		if err != nil {
			return model.Match{}, err
		}
		match.Players = rotated
	}
	if err := s.wait(ctx); err != nil {
		return model.Match{}, err
	}
	created, err := s.store.CreateMatch(match)
	if err != nil {
		return model.Match{}, fmt.Errorf("create match: %w", err)
	}
	s.logger.Info("Match created", "match", created.ID, "type", created.MatchType, "players", len(created.Players))
	return created, nil
}

func validateConfig(cfg model.MatchConfig) error {
	if strings.TrimSpace(cfg.Location) == "" {
		return invalid(msgLocationRequired)
	}
	if !cfg.MatchType.Valid() {
		return invalid(fmt.Sprintf("Unknown match type %q", cfg.MatchType))
	}
	if len(cfg.Players) != cfg.MatchType.PlayerCount() {
		return invalid(msgPlayersRequired)
	}
	seen := make(map[string]struct{}, len(cfg.Players))
	for _, id := range cfg.Players {
		if strings.TrimSpace(id) == "" {
			return invalid(msgPlayersRequired)
		}
		if _, dup := seen[id]; dup {
			return invalid("Each player can only be selected once")
		}
		seen[id] = struct{}{}
	}
	if cfg.PointsToWin <= 0 {
		return invalid("Points to win must be positive")
	}
	if cfg.NumberOfSets <= 0 {
		return invalid("Number of sets must be positive")
	}
	switch cfg.PartnerSelection {
	case "", model.PartnersFixed, model.PartnersRotating:
	default:
		return invalid(fmt.Sprintf("Unknown partner selection %q", cfg.PartnerSelection))
	}
	return nil
}

func (s *Service) GetMatch(ctx context.Context, id string) (model.Match, error) {
	if err := s.wait(ctx); err != nil {
		return model.Match{}, err
	}
	m, err := s.store.GetMatch(id)
	if err != nil {
		return model.Match{}, fmt.Errorf("get match: %w", err)
	}
	return m, nil
}

// ListMatches returns every match, newest first.
func (s *Service) ListMatches(ctx context.Context) ([]model.Match, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.store.ListMatches(), nil
}

// UpdateMatch replaces the stored match with the same id. A missing id is
// reported as store.ErrNotFound.
func (s *Service) UpdateMatch(ctx context.Context, match model.Match) error {
	if !match.Status.Valid() {
		return invalid(fmt.Sprintf("Unknown match status %q", match.Status))
	}
	if err := s.wait(ctx); err != nil {
		return err
	}
	if err := s.store.UpdateMatch(match); err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	s.logger.Info("Match updated", "match", match.ID, "status", match.Status)
	return nil
}

// DeleteMatch removes the match. Deleting twice leaves the store unchanged but
// the second call reports store.ErrNotFound.
func (s *Service) DeleteMatch(ctx context.Context, id string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	if err := s.store.DeleteMatch(id); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	s.logger.Info("Match deleted", "match", id)
	return nil
}

// requireScheduled rejects changes to a match that has left the scheduled state.
// Status only ever moves from scheduled to completed, through CompleteMatch.
func requireScheduled(m model.Match) error {
	if m.Status != model.MatchScheduled {
		return &store.RepositoryError{Kind: store.ErrConflict, Entity: "match", ID: m.ID}
	}
	return nil
}

// RecordSetScore stores one set. A set with an existing gameNumber is replaced,
// otherwise it is added; sets stay ordered by gameNumber. The status is left
// unchanged.
func (s *Service) RecordSetScore(ctx context.Context, matchID string, team1Score, team2Score, gameNumber int) (model.Match, error) {
	if team1Score < 0 || team2Score < 0 {
		return model.Match{}, invalid("Scores cannot be negative")
	}
	if gameNumber <= 0 {
		return model.Match{}, invalid("Game number must be positive")
	}
	m, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return model.Match{}, err
	}
	if err := requireScheduled(m); err != nil {
		return model.Match{}, err
	}

	set := model.SetScore{Team1Score: team1Score, Team2Score: team2Score, GameNumber: gameNumber}
	replaced := false
	for i := range m.Scores {
		if m.Scores[i].GameNumber == gameNumber {
			m.Scores[i] = set
			replaced = true
			break
		}
	}
	if !replaced {
		m.Scores = append(m.Scores, set)
	}
	sort.SliceStable(m.Scores, func(i, j int) bool { return m.Scores[i].GameNumber < m.Scores[j].GameNumber })

	if err := s.store.UpdateMatch(m); err != nil {
		return model.Match{}, fmt.Errorf("record set: %w", err)
	}
	s.logger.Debug("Set recorded", "match", matchID, "game", gameNumber, "score", fmt.Sprintf("%d-%d", team1Score, team2Score))
	return m, nil
}

// SaveScores replaces every set of the match, renumbering them from 1. The match
// stays scheduled.
func (s *Service) SaveScores(ctx context.Context, matchID string, sets []model.SetScore) (model.Match, error) {
	for _, set := range sets {
		if set.Team1Score < 0 || set.Team2Score < 0 {
			return model.Match{}, invalid("Scores cannot be negative")
		}
	}
	m, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return model.Match{}, err
	}
	if err := requireScheduled(m); err != nil {
		return model.Match{}, err
	}
	m.Scores = make([]model.SetScore, 0, len(sets))
	for i, set := range sets {
		set.GameNumber = i + 1
		m.Scores = append(m.Scores, set)
	}
	if err := s.store.UpdateMatch(m); err != nil {
		return model.Match{}, fmt.Errorf("save scores: %w", err)
	}
	s.logger.Info("Scores saved", "match", matchID, "sets", len(m.Scores))
	return m, nil
}

// CompleteMatch marks a scheduled match completed. When claimed is not nil it
// must agree with the outcome of the recorded sets.
func (s *Service) CompleteMatch(ctx context.Context, matchID string, claimed *scoring.Side) (model.Match, error) {
	m, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return model.Match{}, err
	}
	if err := requireScheduled(m); err != nil {
		return model.Match{}, err
	}
	if claimed != nil && *claimed != scoring.MatchOutcome(m) {
		return model.Match{}, invalid(msgWinnerMismatch)
	}
	m.Status = model.MatchCompleted
	if err := s.store.UpdateMatch(m); err != nil {
		return model.Match{}, fmt.Errorf("complete match: %w", err)
	}
	s.logger.Info("Match completed", "match", matchID, "winner", scoring.MatchOutcome(m))
	return m, nil
}

func (s *Service) playerMatches(ctx context.Context, userID string) ([]model.Match, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.store.ListMatchesForPlayer(userID), nil
}

// ListUpcoming returns the user's scheduled matches, earliest first.
func (s *Service) ListUpcoming(ctx context.Context, userID string) ([]model.Match, error) {
	ms, err := s.playerMatches(ctx, userID)
	if err != nil {
		return nil, err
	}
	return store.Upcoming(ms, userID), nil
}

func (s *Service) ListWon(ctx context.Context, userID string) ([]model.Match, error) {
	ms, err := s.playerMatches(ctx, userID)
	if err != nil {
		return nil, err
	}
	return store.Won(ms, userID), nil
}

func (s *Service) ListLost(ctx context.Context, userID string) ([]model.Match, error) {
	ms, err := s.playerMatches(ctx, userID)
	if err != nil {
		return nil, err
	}
	return store.Lost(ms, userID), nil
}

// NextMatch returns the user's earliest upcoming match, or ok false when there is none.
func (s *Service) NextMatch(ctx context.Context, userID string) (model.Match, bool, error) {
	ms, err := s.playerMatches(ctx, userID)
	if err != nil {
		return model.Match{}, false, err
	}
	m, ok := store.NextMatch(ms, userID)
	return m, ok, nil
}

func (s *Service) RecentCompleted(ctx context.Context, userID string, limit int) ([]model.Match, error) {
	ms, err := s.playerMatches(ctx, userID)
	if err != nil {
		return nil, err
	}
	return store.RecentCompleted(ms, userID, limit), nil
}

type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Played int `json:"played"`
}

// Record counts the user's completed matches. Ties count as played only.
func (s *Service) Record(ctx context.Context, userID string) (Record, error) {
	ms, err := s.playerMatches(ctx, userID)
	if err != nil {
		return Record{}, err
	}
	var rec Record
	for _, m := range store.Completed(ms, userID) {
		rec.Played++
		if won, ok := scoring.DidUserWin(m, userID); ok && won {
			rec.Wins++
		} else if scoring.DidUserLose(m, userID) {
			rec.Losses++
		}
	}
	return rec, nil
}

// TeamsForSet returns the pairing of a rotating doubles match for a 1-based set.
// Other matches keep their fixed teams.
func (s *Service) TeamsForSet(ctx context.Context, matchID string, setNumber int) (scoring.Teams, error) {
	m, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return scoring.Teams{}, err
	}
	if m.IsRotatingDoubles() {
		return scoring.TeamsForSet(m.Players, setNumber)
	}
	if m.MatchType == model.MatchDoubles {
		return scoring.TeamsForSet(m.Players, 1)
	}
	if len(m.Players) != 2 {
		return scoring.Teams{}, invalid(msgPlayersRequired)
	}
	return scoring.Teams{
		Team1: scoring.Pair{m.Players[0]},
		Team2: scoring.Pair{m.Players[1]},
	}, nil
}

// RotatePartners shuffles four players given in team order so neither team keeps
// its original ordered pair.
func (s *Service) RotatePartners(playerIDs []string) ([]string, error) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	rotated, err := scoring.RotatePartners(playerIDs, s.rng)
	if err != nil {
		if errors.Is(err, scoring.ErrNotFourPlayers) || errors.Is(err, scoring.ErrDuplicatePlayer) {
			return nil, invalid(msgPlayersRequired)
		}
		return nil, err
	}
	return rotated, nil
}
