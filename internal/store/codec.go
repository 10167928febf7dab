package store

import (
	"fmt"
	"strings"
	"time"

	"picklego-app/internal/model"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

func encodePlayerIDs(ids []string) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}
	blob, err := msgpack.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("encode players: %w", err)
	}
	return blob, nil
}

func encodeScores(scores []model.SetScore) ([]byte, error) {
	if scores == nil {
		scores = []model.SetScore{}
	}
	blob, err := msgpack.Marshal(scores)
	if err != nil {
		return nil, fmt.Errorf("encode scores: %w", err)
	}
	return blob, nil
}

func decodePlayerIDs(matchID string, blob []byte) []string {
	ids := []string{}
	if len(blob) == 0 {
		return ids
	}
	if err := msgpack.Unmarshal(blob, &ids); err != nil {
		log.Error("Failed to unmarshal players_blob", "error", err, "matchID", matchID)
		return []string{}
	}
	return ids
}

func decodeScores(matchID string, blob []byte) []model.SetScore {
	scores := []model.SetScore{}
	if len(blob) == 0 {
		return scores
	}
	if err := msgpack.Unmarshal(blob, &scores); err != nil {
		log.Error("Failed to unmarshal scores_blob", "error", err, "matchID", matchID)
		return []model.SetScore{}
	}
	return scores
}

func timeValueString(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, false
	}
	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed, true
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, true
	}
	if parsed, err := time.Parse("2006-01-02 15:04:05.999999999-07:00", value); err == nil {
		return parsed, true
	}
	return time.Time{}, false
}
