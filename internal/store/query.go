package store

import (
	"sort"

	"picklego-app/internal/model"
	"picklego-app/internal/scoring"
)

// The helpers below take a player's matches as returned by ListMatchesForPlayer
// and never modify the slice they are given.

// Upcoming returns scheduled matches containing userID, earliest first.
func Upcoming(matches []model.Match, userID string) []model.Match {
	out := filterMatches(matches, func(m model.Match) bool {
		return m.Status == model.MatchScheduled && m.HasPlayer(userID)
	})
	sortByDate(out, true)
	return out
}

// NextMatch is the earliest upcoming match for userID.
func NextMatch(matches []model.Match, userID string) (model.Match, bool) {
	upcoming := Upcoming(matches, userID)
	if len(upcoming) == 0 {
		return model.Match{}, false
	}
	return upcoming[0], true
}

// Completed returns completed matches containing userID, most recent first.
func Completed(matches []model.Match, userID string) []model.Match {
	out := filterMatches(matches, func(m model.Match) bool {
		return m.Status == model.MatchCompleted && m.HasPlayer(userID)
	})
	sortByDate(out, false)
	return out
}

// Won returns completed matches userID's team won, most recent first.
func Won(matches []model.Match, userID string) []model.Match {
	return filterMatches(Completed(matches, userID), func(m model.Match) bool {
		won, ok := scoring.DidUserWin(m, userID)
		return ok && won
	})
}

// Lost returns completed matches the opposing team won. Ties are in neither list.
func Lost(matches []model.Match, userID string) []model.Match {
	return filterMatches(Completed(matches, userID), func(m model.Match) bool {
		return scoring.DidUserLose(m, userID)
	})
}

// RecentCompleted returns at most limit completed matches, most recent first.
func RecentCompleted(matches []model.Match, userID string, limit int) []model.Match {
	out := Completed(matches, userID)
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func filterMatches(matches []model.Match, keep func(model.Match) bool) []model.Match {
	out := make([]model.Match, 0, len(matches))
	for _, m := range matches {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

func sortByDate(matches []model.Match, ascending bool) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Date.Equal(b.Date) {
			return a.ID < b.ID
		}
		if ascending {
			return a.Date.Before(b.Date)
		}
		return a.Date.After(b.Date)
	})
}
