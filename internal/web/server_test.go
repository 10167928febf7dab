package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"picklego-app/internal/matches"
	"picklego-app/internal/model"
	"picklego-app/internal/players"
	"picklego-app/internal/store"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

var seedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, opts Options) http.Handler {
	t.Helper()
	s := store.NewMemoryStore(store.MemoryOptions{Seed: true, Now: func() time.Time { return seedNow }})
	logger := log.New(io.Discard)
	svc := matches.NewService(s, players.NewDirectory(s, logger), logger, matches.Options{})
	if opts.DefaultUserID == "" {
		opts.DefaultUserID = store.SeedUserID
	}
	return NewServer(svc, logger, opts).Routes()
}

func doRequest(t *testing.T, h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t, Options{})
	rec := doRequest(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMatchLifecycle(t *testing.T) {
	h := newTestServer(t, Options{})

	rec := doRequest(t, h, http.MethodPost, "/matches", `{
		"date": "2026-06-02T18:00:00Z",
		"location": "Riverside Courts",
		"matchType": "singles",
		"pointsToWin": 11,
		"numberOfSets": 3,
		"players": ["test@test.com", "2"]
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[MatchView](t, rec)
	assert.Equal(t, model.MatchScheduled, created.Status)
	assert.Equal(t, "Guest vs Sarah Johnson", created.Title)
	assert.Equal(t, 1, created.CurrentSet)

	base := "/matches/" + created.ID
	rec = doRequest(t, h, http.MethodPost, base+"/sets", `{"team1Score": 11, "team2Score": 4, "gameNumber": 1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 2, decode[MatchView](t, rec).CurrentSet)

	rec = doRequest(t, h, http.MethodPut, base+"/sets", `{"line": "11-4, 6-11, 11-9"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view := decode[MatchView](t, rec)
	assert.Equal(t, 2, view.Team1SetWins)
	assert.Equal(t, 1, view.Team2SetWins)
	assert.Equal(t, "team1", view.Winner)
	require.Len(t, view.Sets, 3)
	assert.Equal(t, "team2", view.Sets[1].Winner)
	assert.True(t, view.Sets[2].Complete)

	rec = doRequest(t, h, http.MethodPost, base+"/complete", `{"winner": "team2"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Selected winner does not match the set results")

	rec = doRequest(t, h, http.MethodPost, base+"/complete", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view = decode[MatchView](t, rec)
	assert.Equal(t, model.MatchCompleted, view.Status)
	assert.Equal(t, "You Won!", view.Result)

	rec = doRequest(t, h, http.MethodGet, base, "", userHeaderName, "2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "You Lost", decode[MatchView](t, rec).Result)

	rec = doRequest(t, h, http.MethodPost, base+"/complete", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, h, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doRequest(t, h, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = doRequest(t, h, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateMatchValidation(t *testing.T) {
	h := newTestServer(t, Options{})

	rec := doRequest(t, h, http.MethodPost, "/matches", `{"matchType": "doubles", "pointsToWin": 11, "numberOfSets": 3, "players": ["1","2","3","4"]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Please select a location", decode[errorResponse](t, rec).Error)

	rec = doRequest(t, h, http.MethodPost, "/matches", `{"location": "Court", "matchType": "doubles", "pointsToWin": 11, "numberOfSets": 3, "players": ["1","2"]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Please select all players", decode[errorResponse](t, rec).Error)

	rec = doRequest(t, h, http.MethodPost, "/matches", `{"location": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateMatchKeepsOmittedFields(t *testing.T) {
	h := newTestServer(t, Options{})

	upcoming := decode[[]MatchView](t, doRequest(t, h, http.MethodGet, "/me/matches/upcoming", ""))
	require.NotEmpty(t, upcoming)
	first := upcoming[0]

	rec := doRequest(t, h, http.MethodPut, "/matches/"+first.ID, `{"notes": "Bring water", "status": "cancelled"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[MatchView](t, rec)
	assert.Equal(t, "Bring water", updated.Notes)
	assert.Equal(t, model.MatchCancelled, updated.Status)
	assert.Equal(t, first.Location, updated.Location)
	assert.Equal(t, first.Players, updated.Players)

	rec = doRequest(t, h, http.MethodPut, "/matches/missing", `{"notes": "x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMyMatches(t *testing.T) {
	h := newTestServer(t, Options{})

	upcoming := decode[[]MatchView](t, doRequest(t, h, http.MethodGet, "/me/matches/upcoming", ""))
	require.Len(t, upcoming, 3)
	assert.Equal(t, "Central Park Courts", upcoming[0].Location)
	assert.Equal(t, "Downtown Sports Center", upcoming[1].Location)
	assert.Equal(t, "Lakeside Club", upcoming[2].Location)

	next := decode[MatchView](t, doRequest(t, h, http.MethodGet, "/me/next-match", ""))
	assert.Equal(t, upcoming[0].ID, next.ID)

	won := decode[[]MatchView](t, doRequest(t, h, http.MethodGet, "/me/matches/won", ""))
	require.Len(t, won, 2)
	assert.Equal(t, "Westside Arena", won[0].Location)
	assert.Equal(t, "You Won!", won[0].Result)

	lost := decode[[]MatchView](t, doRequest(t, h, http.MethodGet, "/me/matches/lost", ""))
	assert.Empty(t, lost)

	recent := decode[[]MatchView](t, doRequest(t, h, http.MethodGet, "/me/matches/recent?limit=1", ""))
	require.Len(t, recent, 1)
	assert.Equal(t, "Westside Arena", recent[0].Location)

	rec := doRequest(t, h, http.MethodGet, "/me/matches/recent?limit=x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/me/matches/someday", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	record := decode[matches.Record](t, doRequest(t, h, http.MethodGet, "/me/record", ""))
	assert.Equal(t, matches.Record{Wins: 2, Losses: 0, Played: 2}, record)

	rec = doRequest(t, h, http.MethodGet, "/me/next-match", "", userHeaderName, "nobody")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLostMatchesForOpponent(t *testing.T) {
	h := newTestServer(t, Options{})
	lost := decode[[]MatchView](t, doRequest(t, h, http.MethodGet, "/me/matches/lost", "", userHeaderName, "3"))
	require.Len(t, lost, 1)
	assert.Equal(t, "Eastside Gym", lost[0].Location)
	assert.Equal(t, "You Lost", lost[0].Result)

	won := decode[[]MatchView](t, doRequest(t, h, http.MethodGet, "/me/matches/won", "", userHeaderName, "3"))
	require.Len(t, won, 1)
	assert.Equal(t, "Westside Arena", won[0].Location)
}

func TestCurrentUserFromCookie(t *testing.T) {
	h := newTestServer(t, Options{})
	req := httptest.NewRequest(http.MethodGet, "/me/record", nil)
	req.AddCookie(&http.Cookie{Name: userCookieName, Value: "5"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, matches.Record{Losses: 1, Played: 1}, decode[matches.Record](t, rec))
}

func TestTeamsEndpoint(t *testing.T) {
	h := newTestServer(t, Options{})

	rec := doRequest(t, h, http.MethodPost, "/matches", `{
		"location": "Lakeside Club",
		"matchType": "doubles",
		"partnerSelection": "fixed",
		"pointsToWin": 11,
		"numberOfSets": 3,
		"players": ["1", "2", "3", "4"]
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[MatchView](t, rec)

	teams := decode[TeamsView](t, doRequest(t, h, http.MethodGet, "/matches/"+created.ID+"/teams?set=2", ""))
	assert.Equal(t, 2, teams.Set)
	assert.Equal(t, "John Smith & Sarah Johnson", teams.Team1Name)
	assert.Equal(t, "Mike Davis & Emily Wilson", teams.Team2Name)

	rec = doRequest(t, h, http.MethodGet, "/matches/"+created.ID+"/teams?set=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRotationEndpoint(t *testing.T) {
	h := newTestServer(t, Options{})

	rec := doRequest(t, h, http.MethodPost, "/rotations", `{"players": ["A", "B", "C", "D"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[rotationResponse](t, rec)
	assert.ElementsMatch(t, []string{"A", "B", "C", "D"}, resp.Players)
	assert.False(t, resp.Players[0] == "A" && resp.Players[1] == "B")
	assert.False(t, resp.Players[2] == "C" && resp.Players[3] == "D")
	assert.Equal(t, resp.Players[0], resp.Teams.Team1[0])

	rec = doRequest(t, h, http.MethodPost, "/rotations", `{"players": ["A", "B"]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPlayers(t *testing.T) {
	h := newTestServer(t, Options{})

	list := decode[[]model.Player](t, doRequest(t, h, http.MethodGet, "/players?q=john", ""))
	require.Len(t, list, 2)
	assert.Equal(t, "John Smith", list[0].Name)

	rec := doRequest(t, h, http.MethodPost, "/players", `{"name": "Lisa Anderson", "email": "lisa@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	invited := decode[PlayerView](t, rec)
	assert.Equal(t, "Lisa Anderson", invited.DisplayName)
	require.NotNil(t, invited.Player)
	assert.True(t, invited.Player.IsInvited)

	invitedList := decode[[]model.Player](t, doRequest(t, h, http.MethodGet, "/players?invited=true", ""))
	require.Len(t, invitedList, 2)
	assert.Equal(t, "David Brown", invitedList[0].Name)
	assert.Equal(t, "Lisa Anderson", invitedList[1].Name)

	rec = doRequest(t, h, http.MethodPost, "/players", `{"name": "Johnny", "email": "JOHN1@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", decode[PlayerView](t, rec).ID)

	rec = doRequest(t, h, http.MethodPost, "/players", `{"id": "1", "name": "Someone Else"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "John Smith", decode[PlayerView](t, rec).DisplayName)

	rec = doRequest(t, h, http.MethodPost, "/players", `{"id": "p9", "name": "Tom Lee", "isRegistered": true}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	shown := decode[PlayerView](t, doRequest(t, h, http.MethodGet, "/players/p9", ""))
	assert.True(t, shown.IsRegistered)

	guest := decode[PlayerView](t, doRequest(t, h, http.MethodGet, "/players/someone@example.com", ""))
	assert.Equal(t, "Guest", guest.DisplayName)
	assert.Nil(t, guest.Player)

	rec = doRequest(t, h, http.MethodPost, "/players", `{"name": " "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestWriteRateLimit(t *testing.T) {
	h := newTestServer(t, Options{RateLimit: rate.Every(time.Hour), RateBurst: 1})

	rec := doRequest(t, h, http.MethodPost, "/rotations", `{"players": ["A", "B", "C", "D"]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, h, http.MethodPost, "/rotations", `{"players": ["A", "B", "C", "D"]}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/matches", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t, Options{})
	req := httptest.NewRequest(http.MethodOptions, "/matches", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
