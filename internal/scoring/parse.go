package scoring

import (
	"fmt"
	"strconv"
	"strings"

	"picklego-app/internal/model"

	"github.com/go-andiamo/splitter"
)

var setSplitter, _ = splitter.NewSplitter(',', splitter.DoubleQuotes)

// ParseSets reads a score line such as "11-4, 6-11, 11-9" into numbered sets.
// A set may also be written "11:4" or quoted. Empty entries are skipped.
func ParseSets(line string) ([]model.SetScore, error) {
	parts, err := setSplitter.Split(line)
	if err != nil {
		return nil, fmt.Errorf("split score line: %w", err)
	}
	sets := []model.SetScore{}
	for _, part := range parts {
		part = strings.Trim(strings.TrimSpace(part), `"`)
		if part == "" {
			continue
		}
		set, err := parseSet(part)
		if err != nil {
			return nil, err
		}
		set.GameNumber = len(sets) + 1
		sets = append(sets, set)
	}
	return sets, nil
}

func parseSet(value string) (model.SetScore, error) {
	a, b, ok := strings.Cut(value, "-")
	if !ok {
		a, b, ok = strings.Cut(value, ":")
	}
	if !ok {
		return model.SetScore{}, fmt.Errorf("invalid set %q: expected team1-team2", value)
	}
	team1, errA := strconv.Atoi(strings.TrimSpace(a))
	team2, errB := strconv.Atoi(strings.TrimSpace(b))
	if errA != nil || errB != nil {
		return model.SetScore{}, fmt.Errorf("invalid set %q: scores must be numbers", value)
	}
	if team1 < 0 || team2 < 0 {
		return model.SetScore{}, fmt.Errorf("invalid set %q: scores cannot be negative", value)
	}
	return model.SetScore{Team1Score: team1, Team2Score: team2}, nil
}

// FormatSets is the inverse of ParseSets.
func FormatSets(sets []model.SetScore) string {
	parts := make([]string, 0, len(sets))
	for _, set := range sets {
		parts = append(parts, fmt.Sprintf("%d-%d", set.Team1Score, set.Team2Score))
	}
	return strings.Join(parts, ", ")
}
