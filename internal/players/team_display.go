package players

import (
	"fmt"

	"picklego-app/internal/model"
)

const missingPlayerName = "Unknown Player"

// TeamDisplay renders the two sides of a match by array position.
type TeamDisplay struct {
	Match     model.Match
	Directory *Directory
}

func (t TeamDisplay) playerName(index int) string {
	if index < 0 || index >= len(t.Match.Players) {
		return missingPlayerName
	}
	return t.Directory.DisplayName(t.Match.Players[index])
}

func (t TeamDisplay) Team1() string {
	if t.Match.MatchType == model.MatchSingles {
		return t.playerName(0)
	}
	return fmt.Sprintf("%s & %s", t.playerName(0), t.playerName(1))
}

func (t TeamDisplay) Team2() string {
	if t.Match.MatchType == model.MatchSingles {
		return t.playerName(1)
	}
	return fmt.Sprintf("%s & %s", t.playerName(2), t.playerName(3))
}

func (t TeamDisplay) String() string {
	return t.Team1() + " vs " + t.Team2()
}
