// Package scoring derives set and match outcomes from recorded scores.
// Nothing here mutates its input.
package scoring

import "picklego-app/internal/model"

// Side identifies one of the two teams of a match. SideNone is used both for an
// undecided set and for a tied match.
type Side int

const (
	SideNone Side = iota
	SideTeam1
	SideTeam2
)

func (s Side) String() string {
	switch s {
	case SideTeam1:
		return "team1"
	case SideTeam2:
		return "team2"
	}
	return "none"
}

func (s Side) Opponent() Side {
	switch s {
	case SideTeam1:
		return SideTeam2
	case SideTeam2:
		return SideTeam1
	}
	return SideNone
}

// ParseSide accepts "team1"/"team2" and "1"/"2".
func ParseSide(value string) (Side, bool) {
	switch value {
	case "team1", "1":
		return SideTeam1, true
	case "team2", "2":
		return SideTeam2, true
	case "none", "tied", "":
		return SideNone, true
	}
	return SideNone, false
}

// SetWinner is a plain comparison of the two scores. Recorded sets are never
// checked against pointsToWin or a two-point margin.
func SetWinner(set model.SetScore) Side {
	switch {
	case set.Team1Score > set.Team2Score:
		return SideTeam1
	case set.Team2Score > set.Team1Score:
		return SideTeam2
	}
	return SideNone
}

// IsSetComplete reports whether a set in progress is finished: one side has
// reached pointsToWin and leads by at least two. Only used to advance the
// current-set counter during score entry.
func IsSetComplete(set model.SetScore, pointsToWin int) bool {
	if set.Team1Score < pointsToWin && set.Team2Score < pointsToWin {
		return false
	}
	diff := set.Team1Score - set.Team2Score
	if diff < 0 {
		diff = -diff
	}
	return diff >= 2
}

// CurrentSet returns the 1-based number of the set being played, advancing past
// each leading set that IsSetComplete. The result exceeds numberOfSets once every
// set is finished.
func CurrentSet(sets []model.SetScore, pointsToWin, numberOfSets int) int {
	current := 1
	for _, set := range sets {
		if current > numberOfSets || !IsSetComplete(set, pointsToWin) {
			break
		}
		current++
	}
	return current
}

func CountSetWins(sets []model.SetScore) (team1Wins, team2Wins int) {
	for _, set := range sets {
		switch SetWinner(set) {
		case SideTeam1:
			team1Wins++
		case SideTeam2:
			team2Wins++
		}
	}
	return team1Wins, team2Wins
}

// MatchOutcome returns the side with strictly more set wins, or SideNone for a tie.
func MatchOutcome(m model.Match) Side {
	team1Wins, team2Wins := CountSetWins(m.Scores)
	switch {
	case team1Wins > team2Wins:
		return SideTeam1
	case team2Wins > team1Wins:
		return SideTeam2
	}
	return SideNone
}

// UserTeam places userID by array position: the first len/2 players are team 1,
// the last len/2 are team 2. For rotating doubles this ignores the per-set
// pairing, so a player keeps the team of their slot in Players.
func UserTeam(m model.Match, userID string) Side {
	half := len(m.Players) / 2
	for i := 0; i < half; i++ {
		if m.Players[i] == userID {
			return SideTeam1
		}
	}
	for i := len(m.Players) - half; i < len(m.Players); i++ {
		if m.Players[i] == userID {
			return SideTeam2
		}
	}
	return SideNone
}

// DidUserWin reports whether userID's team has strictly more set wins. ok is false
// when the user is not in the match or their team cannot be determined.
func DidUserWin(m model.Match, userID string) (won bool, ok bool) {
	team := UserTeam(m, userID)
	if team == SideNone {
		return false, false
	}
	return MatchOutcome(m) == team, true
}

// DidUserLose is the strict counterpart of DidUserWin: the opposing team has more
// set wins. A tied match is neither won nor lost.
func DidUserLose(m model.Match, userID string) bool {
	team := UserTeam(m, userID)
	if team == SideNone {
		return false
	}
	return MatchOutcome(m) == team.Opponent()
}

const (
	ResultWon  = "You Won!"
	ResultLost = "You Lost"
	ResultTied = "Match Tied"
)

// Result is the summary line shown to userID for the match.
func Result(m model.Match, userID string) string {
	outcome := MatchOutcome(m)
	if outcome == SideNone {
		return ResultTied
	}
	if UserTeam(m, userID) == outcome {
		return ResultWon
	}
	return ResultLost
}
