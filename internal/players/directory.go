// Package players resolves player ids to display names and manages the player
// list used when picking partners and opponents.
package players

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"picklego-app/internal/model"
	"picklego-app/internal/store"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	GuestName   = "Guest"
	UnknownName = "Unknown"
)

// guestIDPattern matches ids that are opaque to people: any 36-character run of
// hex digits and dashes, which covers canonical UUIDs.
var guestIDPattern = regexp.MustCompile(`[0-9a-fA-F-]{36}`)

type Directory struct {
	store  store.PlayerStore
	logger *log.Logger
}

func NewDirectory(s store.PlayerStore, logger *log.Logger) *Directory {
	if logger == nil {
		logger = log.Default()
	}
	return &Directory{store: s, logger: logger}
}

// Player looks a player up by id.
func (d *Directory) Player(id string) (model.Player, bool) {
	return d.store.GetPlayer(id)
}

// ByEmail matches the address case-insensitively.
func (d *Directory) ByEmail(email string) (model.Player, bool) {
	return d.store.GetPlayerByEmail(email)
}

// Name returns the player's name, or "Unknown" when the id is not in the directory.
func (d *Directory) Name(id string) string {
	if p, ok := d.store.GetPlayer(id); ok {
		return p.Name
	}
	return UnknownName
}

// DisplayName returns the name of a known player. Unknown ids that look like an
// email address or a UUID become "Guest"; any other id is shown as is.
func (d *Directory) DisplayName(id string) string {
	if p, ok := d.store.GetPlayer(id); ok {
		return p.Name
	}
	if strings.Contains(id, "@") || guestIDPattern.MatchString(id) {
		return GuestName
	}
	return id
}

func (d *Directory) IsRegistered(id string) bool {
	p, ok := d.store.GetPlayer(id)
	return ok && p.IsRegistered
}

// Invited lists players who were invited but have not registered, ordered by name.
func (d *Directory) Invited() []model.Player {
	invited := []model.Player{}
	for _, p := range d.store.ListPlayers() {
		if p.IsInvited && !p.IsRegistered {
			invited = append(invited, p)
		}
	}
	return invited
}

// AddIfNeeded inserts player unless its id is already present. The first write
// wins; later adds with the same id are dropped. It reports whether the player
// was added.
func (d *Directory) AddIfNeeded(player model.Player) (bool, error) {
	if strings.TrimSpace(player.ID) == "" {
		return false, errors.New("player id is required")
	}
	if _, exists := d.store.GetPlayer(player.ID); exists {
		return false, nil
	}
	if _, err := d.store.CreatePlayer(player); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return false, nil
		}
		return false, fmt.Errorf("add player: %w", err)
	}
	d.logger.Info("Player added", "player", player.ID, "registered", player.IsRegistered)
	return true, nil
}

// Save overwrites an existing player.
func (d *Directory) Save(player model.Player) error {
	if err := d.store.UpdatePlayer(player); err != nil {
		return fmt.Errorf("save player: %w", err)
	}
	return nil
}

// Invite creates an unregistered, invited player for someone without an account.
func (d *Directory) Invite(name, email, phone string) (model.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Player{}, errors.New("player name is required")
	}
	player := model.Player{
		ID:          uuid.NewString(),
		Name:        name,
		Email:       strings.TrimSpace(email),
		PhoneNumber: strings.TrimSpace(phone),
		IsInvited:   true,
	}
	if _, err := d.AddIfNeeded(player); err != nil {
		return model.Player{}, err
	}
	return player, nil
}

// Search matches query fuzzily and case-insensitively against names and emails.
// An empty query returns every player. Results are ordered by name.
func (d *Directory) Search(query string) []model.Player {
	all := d.store.ListPlayers()
	query = strings.TrimSpace(query)
	if query == "" {
		return all
	}
	matches := []model.Player{}
	for _, p := range all {
		if fuzzy.MatchFold(query, p.Name) || (p.Email != "" && fuzzy.MatchFold(query, p.Email)) {
			matches = append(matches, p)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return strings.ToLower(matches[i].Name) < strings.ToLower(matches[j].Name)
	})
	return matches
}

// Available is the player picker list: every player except the excluded ids.
func (d *Directory) Available(query string, exclude ...string) []model.Player {
	skip := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}
	out := []model.Player{}
	for _, p := range d.Search(query) {
		if _, ok := skip[p.ID]; ok {
			continue
		}
		out = append(out, p)
	}
	return out
}
