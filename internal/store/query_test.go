package store

import (
	"testing"
	"time"

	"picklego-app/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 5, 1, 18, 0, 0, 0, time.UTC)

func completed(id string, offset int, players []string, scores ...model.SetScore) model.Match {
	return model.Match{
		ID:      id,
		Date:    day.AddDate(0, 0, offset),
		Players: players,
		Scores:  scores,
		Status:  model.MatchCompleted,
	}
}

func scheduled(id string, offset int, players ...string) model.Match {
	return model.Match{ID: id, Date: day.AddDate(0, 0, offset), Players: players, Status: model.MatchScheduled}
}

func ids(matches []model.Match) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.ID)
	}
	return out
}

func TestUpcomingSortedAscending(t *testing.T) {
	matches := []model.Match{
		scheduled("late", 5, "u1", "u2"),
		scheduled("early", 1, "u1", "u3"),
		scheduled("not-mine", 0, "u2", "u3"),
		completed("done", -1, []string{"u1", "u2"}),
		{ID: "cancelled", Date: day, Players: []string{"u1", "u2"}, Status: model.MatchCancelled},
	}
	assert.Equal(t, []string{"early", "late"}, ids(Upcoming(matches, "u1")))

	next, ok := NextMatch(matches, "u1")
	require.True(t, ok)
	assert.Equal(t, "early", next.ID)

	_, ok = NextMatch(matches, "nobody")
	assert.False(t, ok)
}

func TestWonAndLost(t *testing.T) {
	win := []model.SetScore{{Team1Score: 11, Team2Score: 4, GameNumber: 1}, {Team1Score: 6, Team2Score: 11, GameNumber: 2}, {Team1Score: 11, Team2Score: 9, GameNumber: 3}}
	loss := []model.SetScore{{Team1Score: 2, Team2Score: 11, GameNumber: 1}}
	tie := []model.SetScore{{Team1Score: 11, Team2Score: 2, GameNumber: 1}, {Team1Score: 2, Team2Score: 11, GameNumber: 2}}

	matches := []model.Match{
		completed("won-old", -10, []string{"u1", "p2", "p3", "p4"}, win...),
		completed("won-new", -1, []string{"p1", "u1"}, loss...),
		completed("lost", -3, []string{"u1", "p2"}, loss...),
		completed("tied", -2, []string{"u1", "p2"}, tie...),
		scheduled("future", 3, "u1", "p2"),
	}

	assert.Equal(t, []string{"won-new", "won-old"}, ids(Won(matches, "u1")))
	assert.Equal(t, []string{"lost"}, ids(Lost(matches, "u1")))
	assert.Equal(t, []string{"won-new", "tied", "lost", "won-old"}, ids(Completed(matches, "u1")))
}

func TestWonSingleMatchScenario(t *testing.T) {
	m := completed("m1", 0, []string{"u1", "u2"},
		model.SetScore{Team1Score: 11, Team2Score: 4, GameNumber: 1},
		model.SetScore{Team1Score: 6, Team2Score: 11, GameNumber: 2},
		model.SetScore{Team1Score: 11, Team2Score: 9, GameNumber: 3},
	)
	matches := []model.Match{m}
	assert.Equal(t, []string{"m1"}, ids(Won(matches, "u1")))
	assert.Empty(t, Lost(matches, "u1"))
}

func TestRecentCompleted(t *testing.T) {
	matches := []model.Match{
		completed("a", -4, []string{"u1", "x"}),
		completed("b", -3, []string{"u1", "x"}),
		completed("c", -2, []string{"u1", "x"}),
		completed("d", -1, []string{"u1", "x"}),
	}
	assert.Equal(t, []string{"d", "c", "b"}, ids(RecentCompleted(matches, "u1", 3)))
	assert.Len(t, RecentCompleted(matches, "u1", 10), 4)
	assert.Empty(t, RecentCompleted(matches, "u1", 0))
}

func TestQueriesDoNotReorderInput(t *testing.T) {
	matches := []model.Match{scheduled("b", 2, "u1"), scheduled("a", 1, "u1")}
	_ = Upcoming(matches, "u1")
	assert.Equal(t, []string{"b", "a"}, ids(matches))
}
