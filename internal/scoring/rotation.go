package scoring

import (
	"errors"
	"fmt"
)

var (
	ErrNotFourPlayers  = errors.New("partner rotation needs exactly 4 players")
	ErrDuplicatePlayer = errors.New("partner rotation needs 4 distinct players")
)

// rotationSchedule lists player slots as team1[0], team1[1], team2[0], team2[1].
// Entries 3 and 4 repeat the partitions of entries 2 and 1 with the sides swapped.
var rotationSchedule = [5][4]int{
	{0, 1, 2, 3},
	{0, 2, 1, 3},
	{0, 3, 1, 2},
	{1, 2, 0, 3},
	{1, 3, 0, 2},
}

type Pair [2]string

type Teams struct {
	Team1 Pair `json:"team1"`
	Team2 Pair `json:"team2"`
}

// TeamsForSet returns the rotating-partners pairing for a 1-based set number.
// The schedule repeats every five sets.
func TeamsForSet(players []string, setNumber int) (Teams, error) {
	if len(players) != 4 {
		return Teams{}, fmt.Errorf("%w: got %d", ErrNotFourPlayers, len(players))
	}
	index := ((setNumber-1)%len(rotationSchedule) + len(rotationSchedule)) % len(rotationSchedule)
	slots := rotationSchedule[index]
	return Teams{
		Team1: Pair{players[slots[0]], players[slots[1]]},
		Team2: Pair{players[slots[2]], players[slots[3]]},
	}, nil
}

// Shuffler is satisfied by *rand.Rand.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// RotatePartners reshuffles four players given in team order [a, b, c, d] until
// the new first pair is not (a, b) and the new second pair is not (c, d), both
// compared as ordered pairs. Used once when a rotating doubles match is created.
func RotatePartners(players []string, rng Shuffler) ([]string, error) {
	if len(players) != 4 {
		return nil, fmt.Errorf("%w: got %d", ErrNotFourPlayers, len(players))
	}
	seen := make(map[string]struct{}, 4)
	for _, p := range players {
		if _, dup := seen[p]; dup {
			return nil, ErrDuplicatePlayer
		}
		seen[p] = struct{}{}
	}

	rotated := append([]string{}, players...)
	for {
		rng.Shuffle(len(rotated), func(i, j int) { rotated[i], rotated[j] = rotated[j], rotated[i] })
		sameTeam1 := rotated[0] == players[0] && rotated[1] == players[1]
		sameTeam2 := rotated[2] == players[2] && rotated[3] == players[3]
		if !sameTeam1 && !sameTeam2 {
			return rotated, nil
		}
	}
}
