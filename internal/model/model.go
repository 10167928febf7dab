package model

import (
	"strings"
	"time"
)

type SkillLevel string

type MatchType string

type MatchStatus string

type PartnerSelection string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillPro          SkillLevel = "pro"

	MatchSingles MatchType = "singles"
	MatchDoubles MatchType = "doubles"

	MatchScheduled  MatchStatus = "scheduled"
	MatchInProgress MatchStatus = "in_progress"
	MatchCompleted  MatchStatus = "completed"
	MatchCancelled  MatchStatus = "cancelled"

	PartnersFixed    PartnerSelection = "fixed"
	PartnersRotating PartnerSelection = "rotating"
)

// PlayerCount is the number of participants a match of this type requires.
func (t MatchType) PlayerCount() int {
	if t == MatchDoubles {
		return 4
	}
	return 2
}

func (t MatchType) Valid() bool {
	return t == MatchSingles || t == MatchDoubles
}

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchScheduled, MatchInProgress, MatchCompleted, MatchCancelled:
		return true
	}
	return false
}

type Player struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email,omitempty"`
	PhoneNumber  string     `json:"phoneNumber,omitempty"`
	IsRegistered bool       `json:"isRegistered"`
	IsInvited    bool       `json:"isInvited"`
	SkillLevel   SkillLevel `json:"skillLevel,omitempty"`
}

func (p Player) DisplayName() string {
	return strings.TrimSpace(p.Name)
}

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SetScore is one set of a match. GameNumber is 1-based.
type SetScore struct {
	Team1Score int `json:"team1Score" msgpack:"t1"`
	Team2Score int `json:"team2Score" msgpack:"t2"`
	GameNumber int `json:"gameNumber" msgpack:"n"`
}

// MatchConfig is everything the caller supplies to schedule a match.
type MatchConfig struct {
	Date             time.Time        `json:"date"`
	Location         string           `json:"location"`
	Coordinate       *Coordinate      `json:"coordinate,omitempty"`
	MatchType        MatchType        `json:"matchType"`
	PointsToWin      int              `json:"pointsToWin"`
	NumberOfSets     int              `json:"numberOfSets"`
	Players          []string         `json:"players"`
	Notes            string           `json:"notes,omitempty"`
	IsPublicFacility bool             `json:"isPublicFacility"`
	PartnerSelection PartnerSelection `json:"partnerSelection"`
}

// Match references players by id only; names are resolved through the player directory.
type Match struct {
	ID               string           `json:"id"`
	Date             time.Time        `json:"date"`
	Location         string           `json:"location"`
	Coordinate       *Coordinate      `json:"coordinate,omitempty"`
	MatchType        MatchType        `json:"matchType"`
	PointsToWin      int              `json:"pointsToWin"`
	NumberOfSets     int              `json:"numberOfSets"`
	Players          []string         `json:"players"`
	Scores           []SetScore       `json:"scores"`
	Status           MatchStatus      `json:"status"`
	Notes            string           `json:"notes,omitempty"`
	IsPublicFacility bool             `json:"isPublicFacility"`
	PartnerSelection PartnerSelection `json:"partnerSelection"`
}

func NewMatch(id string, cfg MatchConfig) Match {
	selection := cfg.PartnerSelection
	if selection == "" {
		selection = PartnersFixed
	}
	return Match{
		ID:               id,
		Date:             cfg.Date,
		Location:         cfg.Location,
		Coordinate:       cfg.Coordinate,
		MatchType:        cfg.MatchType,
		PointsToWin:      cfg.PointsToWin,
		NumberOfSets:     cfg.NumberOfSets,
		Players:          append([]string{}, cfg.Players...),
		Scores:           []SetScore{},
		Status:           MatchScheduled,
		Notes:            cfg.Notes,
		IsPublicFacility: cfg.IsPublicFacility,
		PartnerSelection: selection,
	}
}

func (m Match) HasPlayer(id string) bool {
	for _, p := range m.Players {
		if p == id {
			return true
		}
	}
	return false
}

func (m Match) IsRotatingDoubles() bool {
	return m.MatchType == MatchDoubles && m.PartnerSelection == PartnersRotating
}

// Clone returns a copy that shares no slices with m.
func (m Match) Clone() Match {
	c := m
	c.Players = append([]string{}, m.Players...)
	c.Scores = append([]SetScore{}, m.Scores...)
	if m.Coordinate != nil {
		coord := *m.Coordinate
		c.Coordinate = &coord
	}
	return c
}
