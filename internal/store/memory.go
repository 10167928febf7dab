package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"picklego-app/internal/model"

	"github.com/google/uuid"
)

type MemoryStore struct {
	mu      sync.RWMutex
	players map[string]model.Player
	matches map[string]model.Match
}

type MemoryOptions struct {
	// Seed loads the demo players and matches.
	Seed bool
	// Now anchors seeded match dates. Defaults to time.Now.
	Now func() time.Time
}

func NewMemoryStore(opts MemoryOptions) *MemoryStore {
	s := &MemoryStore{
		players: make(map[string]model.Player),
		matches: make(map[string]model.Match),
	}
	if opts.Seed {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		seedData(s, now())
	}
	return s
}

func (s *MemoryStore) ListPlayers() []model.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]model.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p)
	}
	sortPlayers(players)
	return players
}

func (s *MemoryStore) GetPlayer(id string) (model.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[id]
	return p, ok
}

func (s *MemoryStore) GetPlayerByEmail(email string) (model.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.TrimSpace(email)
	if email == "" {
		return model.Player{}, false
	}
	for _, p := range s.players {
		if strings.EqualFold(p.Email, email) {
			return p, true
		}
	}
	return model.Player{}, false
}

func (s *MemoryStore) CreatePlayer(player model.Player) (model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if player.ID == "" {
		player.ID = uuid.NewString()
	}
	if _, exists := s.players[player.ID]; exists {
		return model.Player{}, conflict("player", player.ID)
	}
	s.players[player.ID] = player
	return player, nil
}

func (s *MemoryStore) UpdatePlayer(player model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[player.ID]; !ok {
		return notFound("player", player.ID)
	}
	s.players[player.ID] = player
	return nil
}

func (s *MemoryStore) ListMatches() []model.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]model.Match, 0, len(s.matches))
	for _, m := range s.matches {
		matches = append(matches, m.Clone())
	}
	sortByDate(matches, false)
	return matches
}

func (s *MemoryStore) ListMatchesForPlayer(playerID string) []model.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]model.Match, 0)
	for _, m := range s.matches {
		if m.HasPlayer(playerID) {
			matches = append(matches, m.Clone())
		}
	}
	sortByDate(matches, false)
	return matches
}

func (s *MemoryStore) GetMatch(id string) (model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[id]
	if !ok {
		return model.Match{}, notFound("match", id)
	}
	return m.Clone(), nil
}

func (s *MemoryStore) CreateMatch(match model.Match) (model.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	if _, exists := s.matches[match.ID]; exists {
		return model.Match{}, conflict("match", match.ID)
	}
	if match.Status == "" {
		match.Status = model.MatchScheduled
	}
	if match.Scores == nil {
		match.Scores = []model.SetScore{}
	}
	s.matches[match.ID] = match.Clone()
	return match, nil
}

func (s *MemoryStore) UpdateMatch(match model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[match.ID]; !ok {
		return notFound("match", match.ID)
	}
	s.matches[match.ID] = match.Clone()
	return nil
}

func (s *MemoryStore) DeleteMatch(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[id]; !ok {
		return notFound("match", id)
	}
	delete(s.matches, id)
	return nil
}

func sortPlayers(players []model.Player) {
	sort.Slice(players, func(i, j int) bool {
		a, b := strings.ToLower(players[i].Name), strings.ToLower(players[j].Name)
		if a == b {
			return players[i].ID < players[j].ID
		}
		return a < b
	})
}

// SeedUserID is the signed-in user of the demo data set.
const SeedUserID = "test@test.com"

func seedData(s *MemoryStore, now time.Time) {
	seedPlayers := []model.Player{
		{ID: "1", Name: "John Smith", Email: "john1@example.com", IsRegistered: true, SkillLevel: model.SkillIntermediate},
		{ID: "2", Name: "Sarah Johnson", Email: "sarah2@example.com", IsRegistered: true, SkillLevel: model.SkillAdvanced},
		{ID: "3", Name: "Mike Davis", Email: "mike3@example.com", IsRegistered: true, SkillLevel: model.SkillBeginner},
		{ID: "4", Name: "Emily Wilson", Email: "emily4@example.com", IsRegistered: true, SkillLevel: model.SkillIntermediate},
		{ID: "5", Name: "David Brown", Email: "david5@example.com", IsInvited: true, SkillLevel: model.SkillBeginner},
	}
	for _, p := range seedPlayers {
		s.players[p.ID] = p
	}

	seedMatches := []model.Match{
		{
			Date:             now.Add(time.Hour),
			Location:         "Central Park Courts",
			MatchType:        model.MatchDoubles,
			PointsToWin:      15,
			NumberOfSets:     3,
			Players:          []string{SeedUserID, "2", "3", "4"},
			Status:           model.MatchScheduled,
			Notes:            "Evening match",
			IsPublicFacility: true,
			PartnerSelection: model.PartnersFixed,
		},
		{
			Date:             now.Add(2 * time.Hour),
			Location:         "Downtown Sports Center",
			MatchType:        model.MatchSingles,
			PointsToWin:      11,
			NumberOfSets:     2,
			Players:          []string{SeedUserID, "5"},
			Status:           model.MatchScheduled,
			PartnerSelection: model.PartnersFixed,
		},
		{
			Date:         now.Add(-24 * time.Hour),
			Location:     "Westside Arena",
			MatchType:    model.MatchDoubles,
			PointsToWin:  21,
			NumberOfSets: 5,
			Players:      []string{SeedUserID, "3", "4", "5"},
			Scores: []model.SetScore{
				{Team1Score: 21, Team2Score: 19, GameNumber: 1},
				{Team1Score: 21, Team2Score: 18, GameNumber: 2},
				{Team1Score: 21, Team2Score: 20, GameNumber: 3},
			},
			Status:           model.MatchCompleted,
			Notes:            "Tough match!",
			IsPublicFacility: true,
			PartnerSelection: model.PartnersRotating,
		},
		{
			Date:         now.Add(-48 * time.Hour),
			Location:     "Eastside Gym",
			MatchType:    model.MatchSingles,
			PointsToWin:  15,
			NumberOfSets: 3,
			Players:      []string{SeedUserID, "3"},
			Scores: []model.SetScore{
				{Team1Score: 15, Team2Score: 10, GameNumber: 1},
				{Team1Score: 15, Team2Score: 12, GameNumber: 2},
			},
			Status:           model.MatchCompleted,
			PartnerSelection: model.PartnersFixed,
		},
		{
			Date:             now.Add(12 * time.Hour),
			Location:         "Lakeside Club",
			MatchType:        model.MatchDoubles,
			PointsToWin:      11,
			NumberOfSets:     2,
			Players:          []string{SeedUserID, "4", "1", "5"},
			Status:           model.MatchScheduled,
			Notes:            "Morning match",
			IsPublicFacility: true,
			PartnerSelection: model.PartnersRotating,
		},
	}
	for _, m := range seedMatches {
		m.ID = uuid.NewString()
		if m.Scores == nil {
			m.Scores = []model.SetScore{}
		}
		s.matches[m.ID] = m
	}
}
