// Package session holds the client-side mirror of the server's game
// session: phase, current game, current song, roster and reveal progress.
// All writes go through *State; everything else reads through View.
package session

import (
	"sync"

	"github.com/neonbeat/nb-admin/internal/models"
)

// View is the read-only surface of the session state. Components that
// only display or gate on state receive a View, never a *State.
type View interface {
	Phase() (models.Phase, bool)
	Game() (models.Game, bool)
	Song() (models.Song, bool)
	Teams() []models.Team
	TeamByID(id string) (models.Team, bool)
	PointFieldsFound() []string
	BonusFieldsFound() []string
	PairingTeam() (models.Team, bool)

	CanPairTeams() bool
	CanStartGame() bool
	CanResumeGame() bool
	CanPauseGame() bool
	CanRevealSong() bool
	CanGoNextSong() bool
	CanStopGame() bool
	CanEndGame() bool
	CanDeleteGame() bool
	ShowGameList() bool
	IsGameRunning() bool
}

// State is the single-writer container for the mirrored session state.
// Writers are the event reconciler and the snapshot loader; no action
// invocation mutates it directly.
type State struct {
	mu sync.RWMutex

	phase      models.Phase
	phaseKnown bool

	game *models.Game
	song *models.Song

	teams []models.Team

	pointFieldsFound []string
	bonusFieldsFound []string

	pairing *models.Team
}

// NewState returns an empty state: phase undefined, no game, no song.
func NewState() *State {
	return &State{}
}

// View returns the read-only view of s.
func (s *State) View() View {
	return s
}

// SetPhase records a confirmed phase transition.
func (s *State) SetPhase(p models.Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = p
	s.phaseKnown = true
}

// Phase returns the current phase and whether one is known yet.
func (s *State) Phase() (models.Phase, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase, s.phaseKnown
}

// SetGame records the current game.
func (s *State) SetGame(g models.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game = &g
}

// ClearGame drops the current game, its song and all reveal progress.
func (s *State) ClearGame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game = nil
	s.song = nil
	s.pointFieldsFound = nil
	s.bonusFieldsFound = nil
}

// Game returns the current game, if any.
func (s *State) Game() (models.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.game == nil {
		return models.Game{}, false
	}
	return *s.game, true
}

// SetSong replaces the current song and the reveal-progress sets
// wholesale. Progress keys unknown to the song are discarded so the
// stored sets are always subsets of the song's field keys.
func (s *State) SetSong(song models.Song, pointFound, bonusFound []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.song = &song
	s.pointFieldsFound = clampToFields(pointFound, song.PointFields)
	s.bonusFieldsFound = clampToFields(bonusFound, song.BonusFields)
}

// Song returns the current song, if any.
func (s *State) Song() (models.Song, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.song == nil {
		return models.Song{}, false
	}
	return *s.song, true
}

// ReplaceRevealProgress replaces both progress sets with the
// server-confirmed arrays. It never unions with prior progress.
func (s *State) ReplaceRevealProgress(pointFound, bonusFound []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.song == nil {
		s.pointFieldsFound = nil
		s.bonusFieldsFound = nil
		return
	}
	s.pointFieldsFound = clampToFields(pointFound, s.song.PointFields)
	s.bonusFieldsFound = clampToFields(bonusFound, s.song.BonusFields)
}

// PointFieldsFound returns the revealed point-field keys of the current song.
func (s *State) PointFieldsFound() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.pointFieldsFound...)
}

// BonusFieldsFound returns the revealed bonus-field keys of the current song.
func (s *State) BonusFieldsFound() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.bonusFieldsFound...)
}

// SetTeams replaces the roster with a freshly pulled one.
func (s *State) SetTeams(teams []models.Team) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams = append([]models.Team(nil), teams...)
}

// Teams returns a copy of the current roster.
func (s *State) Teams() []models.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Team(nil), s.teams...)
}

// TeamByID looks a team up in the current roster.
func (s *State) TeamByID(id string) (models.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.teams {
		if t.ID == id {
			return t, true
		}
	}
	return models.Team{}, false
}

// SetPairing marks team as the one waiting for a buzzer. A previous
// waiting team is superseded; at most one request is outstanding.
func (s *State) SetPairing(team models.Team) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairing = &team
}

// ClearPairing resolves the outstanding pairing request, if any.
func (s *State) ClearPairing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairing = nil
}

// PairingTeam returns the team currently awaiting a buzzer, if any.
func (s *State) PairingTeam() (models.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pairing == nil {
		return models.Team{}, false
	}
	return *s.pairing, true
}

func clampToFields(keys []string, fields []models.Field) []string {
	if len(keys) == 0 {
		return nil
	}
	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f.Key] = true
	}
	var out []string
	for _, k := range keys {
		if known[k] {
			out = append(out, k)
		}
	}
	return out
}
