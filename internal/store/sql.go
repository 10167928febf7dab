package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"picklego-app/internal/model"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

type dialect struct {
	name string
	// numbered placeholders ($1, $2, ...) instead of ?
	numbered bool
}

var (
	sqliteDialect   = dialect{name: "sqlite"}
	postgresDialect = dialect{name: "postgres", numbered: true}
)

func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// sqlStore implements Store over database/sql for both SQL backends.
// Player ids and set scores are stored as msgpack blobs.
type sqlStore struct {
	db      *sql.DB
	dialect dialect
}

const playerColumns = `id, name, email, phone_number, is_registered, is_invited, skill_level`

const matchColumns = `id, date, location, latitude, longitude, match_type, points_to_win, number_of_sets, players_blob, scores_blob, status, notes, is_public_facility, partner_selection`

func (s *sqlStore) Close() error {
	return s.db.Close()
}

func (s *sqlStore) ListPlayers() []model.Player {
	rows, err := s.db.Query(`SELECT ` + playerColumns + ` FROM players`)
	if err != nil {
		log.Error("Failed to list players", "error", err)
		return nil
	}
	defer rows.Close()

	players := []model.Player{}
	for rows.Next() {
		p, err := scanPlayerRow(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, p)
	}
	sortPlayers(players)
	return players
}

func (s *sqlStore) GetPlayer(id string) (model.Player, bool) {
	row := s.db.QueryRow(s.dialect.rebind(`SELECT `+playerColumns+` FROM players WHERE id = ?`), id)
	p, err := scanPlayerRow(row)
	if err != nil {
		logLookupError("player", id, err)
		return model.Player{}, false
	}
	return p, true
}

func (s *sqlStore) GetPlayerByEmail(email string) (model.Player, bool) {
	email = strings.TrimSpace(email)
	if email == "" {
		return model.Player{}, false
	}
	row := s.db.QueryRow(s.dialect.rebind(`SELECT `+playerColumns+` FROM players WHERE lower(email) = lower(?) LIMIT 1`), email)
	p, err := scanPlayerRow(row)
	if err != nil {
		logLookupError("player", email, err)
		return model.Player{}, false
	}
	return p, true
}

func (s *sqlStore) CreatePlayer(player model.Player) (model.Player, error) {
	if player.ID == "" {
		player.ID = uuid.NewString()
	}
	_, err := s.db.Exec(s.dialect.rebind(`INSERT INTO players (`+playerColumns+`) VALUES (?,?,?,?,?,?,?)`),
		player.ID, player.Name, player.Email, player.PhoneNumber, player.IsRegistered, player.IsInvited, string(player.SkillLevel),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Player{}, conflict("player", player.ID)
		}
		return model.Player{}, err
	}
	return player, nil
}

func (s *sqlStore) UpdatePlayer(player model.Player) error {
	res, err := s.db.Exec(s.dialect.rebind(`UPDATE players SET name = ?, email = ?, phone_number = ?, is_registered = ?, is_invited = ?, skill_level = ? WHERE id = ?`),
		player.Name, player.Email, player.PhoneNumber, player.IsRegistered, player.IsInvited, string(player.SkillLevel), player.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return notFound("player", player.ID)
	}
	return nil
}

func (s *sqlStore) ListMatches() []model.Match {
	return s.queryMatches(`SELECT ` + matchColumns + ` FROM matches`)
}

// ListMatchesForPlayer filters in Go since player ids live inside players_blob.
func (s *sqlStore) ListMatchesForPlayer(playerID string) []model.Match {
	all := s.queryMatches(`SELECT ` + matchColumns + ` FROM matches`)
	return filterMatches(all, func(m model.Match) bool { return m.HasPlayer(playerID) })
}

func (s *sqlStore) queryMatches(query string, args ...any) []model.Match {
	rows, err := s.db.Query(s.dialect.rebind(query), args...)
	if err != nil {
		log.Error("Failed to list matches", "error", err)
		return nil
	}
	defer rows.Close()

	matches := []model.Match{}
	for rows.Next() {
		m, err := scanMatchRow(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, m)
	}
	sortByDate(matches, false)
	return matches
}

func (s *sqlStore) GetMatch(id string) (model.Match, error) {
	row := s.db.QueryRow(s.dialect.rebind(`SELECT `+matchColumns+` FROM matches WHERE id = ?`), id)
	m, err := scanMatchRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Match{}, notFound("match", id)
	}
	if err != nil {
		return model.Match{}, fmt.Errorf("get match %q: %w", id, err)
	}
	return m, nil
}

func (s *sqlStore) CreateMatch(match model.Match) (model.Match, error) {
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	if match.Status == "" {
		match.Status = model.MatchScheduled
	}
	if match.Scores == nil {
		match.Scores = []model.SetScore{}
	}
	args, err := matchArgs(match)
	if err != nil {
		return model.Match{}, err
	}
	_, err = s.db.Exec(s.dialect.rebind(`INSERT INTO matches (`+matchColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`),
		append([]any{match.ID}, args...)...,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Match{}, conflict("match", match.ID)
		}
		return model.Match{}, err
	}
	return match, nil
}

func (s *sqlStore) UpdateMatch(match model.Match) error {
	args, err := matchArgs(match)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(s.dialect.rebind(`UPDATE matches SET date = ?, location = ?, latitude = ?, longitude = ?, match_type = ?, points_to_win = ?, number_of_sets = ?, players_blob = ?, scores_blob = ?, status = ?, notes = ?, is_public_facility = ?, partner_selection = ? WHERE id = ?`),
		append(args, match.ID)...,
	)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return notFound("match", match.ID)
	}
	return nil
}

func (s *sqlStore) DeleteMatch(id string) error {
	res, err := s.db.Exec(s.dialect.rebind(`DELETE FROM matches WHERE id = ?`), id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return notFound("match", id)
	}
	return nil
}

// matchArgs returns every match column after id, in matchColumns order.
func matchArgs(match model.Match) ([]any, error) {
	playersBlob, err := encodePlayerIDs(match.Players)
	if err != nil {
		return nil, err
	}
	scoresBlob, err := encodeScores(match.Scores)
	if err != nil {
		return nil, err
	}
	var lat, lon sql.NullFloat64
	if match.Coordinate != nil {
		lat = sql.NullFloat64{Float64: match.Coordinate.Latitude, Valid: true}
		lon = sql.NullFloat64{Float64: match.Coordinate.Longitude, Valid: true}
	}
	return []any{
		timeValueString(match.Date),
		match.Location,
		lat,
		lon,
		string(match.MatchType),
		match.PointsToWin,
		match.NumberOfSets,
		playersBlob,
		scoresBlob,
		string(match.Status),
		match.Notes,
		match.IsPublicFacility,
		string(match.PartnerSelection),
	}, nil
}

func scanPlayerRow(scanner interface{ Scan(dest ...any) error }) (model.Player, error) {
	var p model.Player
	var email, phone, skill sql.NullString
	if err := scanner.Scan(&p.ID, &p.Name, &email, &phone, &p.IsRegistered, &p.IsInvited, &skill); err != nil {
		return model.Player{}, err
	}
	p.Email = email.String
	p.PhoneNumber = phone.String
	p.SkillLevel = model.SkillLevel(skill.String)
	return p, nil
}

func scanMatchRow(scanner interface{ Scan(dest ...any) error }) (model.Match, error) {
	var m model.Match
	var date, notes sql.NullString
	var lat, lon sql.NullFloat64
	var matchType, status, selection string
	var playersBlob, scoresBlob []byte
	if err := scanner.Scan(
		&m.ID,
		&date,
		&m.Location,
		&lat,
		&lon,
		&matchType,
		&m.PointsToWin,
		&m.NumberOfSets,
		&playersBlob,
		&scoresBlob,
		&status,
		&notes,
		&m.IsPublicFacility,
		&selection,
	); err != nil {
		return model.Match{}, err
	}
	m.MatchType = model.MatchType(matchType)
	m.Status = model.MatchStatus(status)
	m.PartnerSelection = model.PartnerSelection(selection)
	m.Notes = notes.String
	if date.Valid {
		if parsed, ok := parseTimeString(date.String); ok {
			m.Date = parsed
		}
	}
	if lat.Valid && lon.Valid {
		m.Coordinate = &model.Coordinate{Latitude: lat.Float64, Longitude: lon.Float64}
	}
	m.Players = decodePlayerIDs(m.ID, playersBlob)
	m.Scores = decodeScores(m.ID, scoresBlob)
	return m, nil
}

// logLookupError logs failed single-row lookups. A missing row is expected and
// not logged.
func logLookupError(entity, key string, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		return
	}
	log.Error("Failed to load "+entity, "error", err, "key", key)
}

func isUniqueViolation(err error) bool {
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}
