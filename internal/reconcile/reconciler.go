// Package reconcile merges the two server channels into one coherent
// session state: periodic/initial pull snapshots and incremental push
// events. Pulls are sequenced to causally follow the event that
// triggered them, so no version check is needed to avoid regressions.
package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/neonbeat/nb-admin/clients/neonbeat"
	"github.com/neonbeat/nb-admin/internal/models"
	"github.com/neonbeat/nb-admin/internal/notify"
	"github.com/neonbeat/nb-admin/internal/push"
	"github.com/neonbeat/nb-admin/internal/session"
)

// Gateway is the slice of the command client the reconciler pulls
// snapshots and reveal confirmations through.
type Gateway interface {
	Phase(ctx context.Context) (neonbeat.PhaseStatus, error)
	Song(ctx context.Context) (neonbeat.SongStatus, error)
	Game(ctx context.Context, id string) (models.Game, error)
	Teams(ctx context.Context) ([]models.Team, error)
	RevealField(ctx context.Context, req neonbeat.FieldRevealRequest) (neonbeat.FieldRevealResult, error)
}

// Reconciler applies push events and snapshot pulls to the session
// state. It is the only writer besides the initial snapshot load.
type Reconciler struct {
	state    *session.State
	gateway  Gateway
	notifier notify.Notifier
}

// New creates a reconciler over the given state.
func New(state *session.State, gateway Gateway, notifier notify.Notifier) *Reconciler {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	return &Reconciler{
		state:    state,
		gateway:  gateway,
		notifier: notifier,
	}
}

// Bootstrap pulls the initial snapshot: phase, then song and reveal
// progress when a song is active, then the current game and roster.
// Called before the push channel opens, and again after a reconnect.
func (r *Reconciler) Bootstrap(ctx context.Context) error {
	status, err := r.gateway.Phase(ctx)
	if err != nil {
		return fmt.Errorf("pull phase snapshot: %w", err)
	}
	r.state.SetPhase(status.Phase)
	log.Info().Str("phase", string(status.Phase)).Bool("degraded", status.Degraded).Msg("phase snapshot applied")

	if songActive(status.Phase) {
		songStatus, err := r.gateway.Song(ctx)
		if err != nil {
			return fmt.Errorf("pull song snapshot: %w", err)
		}
		if songStatus.Song != nil {
			r.state.SetSong(*songStatus.Song, songStatus.FoundPointFields, songStatus.FoundBonusFields)
		}
	}

	if status.GameID != "" {
		game, err := r.gateway.Game(ctx, status.GameID)
		if err != nil {
			return fmt.Errorf("pull game snapshot: %w", err)
		}
		r.state.SetGame(game)
		r.RefreshTeams(ctx)
	}
	return nil
}

// Attach subscribes the reconciler to every event kind on ch. Events
// are applied in arrival order on the channel's dispatch goroutine.
func (r *Reconciler) Attach(ctx context.Context, ch *push.Channel) {
	for _, kind := range Kinds() {
		kind := kind
		ch.On(kind, func(data []byte) {
			r.Apply(ctx, kind, data)
		})
	}
	ch.OnUnknown(func(kind string, data []byte) {
		r.Apply(ctx, kind, data)
	})
}

// Apply maps one push event to a state mutation. Unrecognized kinds are
// reported as protocol violations rather than silently ignored.
func (r *Reconciler) Apply(ctx context.Context, kind string, data []byte) {
	switch kind {
	case KindPhaseChanged:
		r.applyPhaseChanged(data)
	case KindPairingWaiting:
		r.applyPairingWaiting(data)
	case KindPairingAssigned:
		r.applyPairingAssigned(ctx, data)
	case KindTeamCreated:
		r.applyTeamCreated(ctx, data)
	case KindTestBuzz:
		r.applyTestBuzz(data)
	default:
		r.violation(&push.ProtocolViolation{Kind: kind, Reason: "unrecognized event kind"})
	}
}

func (r *Reconciler) applyPhaseChanged(data []byte) {
	var payload PhaseChangedPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		r.violation(&push.ProtocolViolation{Kind: KindPhaseChanged, Reason: err.Error()})
		return
	}

	r.state.SetPhase(payload.Phase)
	r.notifier.Infof("game phase changed to: %s", payload.Phase)

	if payload.Song != nil {
		// The event replaces the song and both reveal-progress sets
		// wholesale; prior progress never survives a song change.
		r.state.SetSong(*payload.Song, payload.FoundPointFields, payload.FoundBonusFields)
	}
}

func (r *Reconciler) applyPairingWaiting(data []byte) {
	var payload PairingWaitingPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		r.violation(&push.ProtocolViolation{Kind: KindPairingWaiting, Reason: err.Error()})
		return
	}

	team, ok := r.state.TeamByID(payload.TeamID)
	if !ok {
		r.violation(&push.ProtocolViolation{Kind: KindPairingWaiting, Reason: "unknown team id " + payload.TeamID})
		return
	}
	r.state.SetPairing(team)
	r.notifier.Infof("team %s is waiting for buzzer pairing", team.Name)
}

func (r *Reconciler) applyPairingAssigned(ctx context.Context, data []byte) {
	var payload PairingAssignedPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		r.violation(&push.ProtocolViolation{Kind: KindPairingAssigned, Reason: err.Error()})
		return
	}

	r.state.ClearPairing()
	r.notifier.Successf("team %s paired with buzzer %s", payload.TeamID, payload.BuzzerID)

	// The authoritative buzzer mapping lives server-side; pull it
	// rather than patching the roster locally. This pull is causally
	// after the event, so it cannot regress state.
	r.RefreshTeams(ctx)
}

func (r *Reconciler) applyTeamCreated(ctx context.Context, data []byte) {
	var payload TeamCreatedPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		r.violation(&push.ProtocolViolation{Kind: KindTeamCreated, Reason: err.Error()})
		return
	}

	r.notifier.Successf("new team created: %s", payload.TeamName)
	r.RefreshTeams(ctx)
}

func (r *Reconciler) applyTestBuzz(data []byte) {
	var payload TestBuzzPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		r.violation(&push.ProtocolViolation{Kind: KindTestBuzz, Reason: err.Error()})
		return
	}
	r.notifier.Infof("test buzz received from buzzer %s", payload.BuzzerID)
}

// RefreshTeams replaces the roster with a fresh server pull. Failures
// are surfaced as notices; the previous roster stays in place.
func (r *Reconciler) RefreshTeams(ctx context.Context) {
	teams, err := r.gateway.Teams(ctx)
	if err != nil {
		r.notifier.Errorf("error fetching teams: %v", err)
		return
	}
	r.state.SetTeams(teams)
}

// RevealField requests disclosure of one answer field of the current
// song and applies the server's confirmed progress. The requested key
// is never appended optimistically; only the returned arrays count.
func (r *Reconciler) RevealField(ctx context.Context, fieldKey string, kind models.FieldKind) error {
	song, ok := r.state.Song()
	if !ok {
		r.notifier.Errorf("no song is currently active")
		return fmt.Errorf("no song is currently active")
	}
	songID, err := strconv.ParseInt(song.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("parse song id %q: %w", song.ID, err)
	}

	result, err := r.gateway.RevealField(ctx, neonbeat.FieldRevealRequest{
		FieldKey: fieldKey,
		Kind:     kind,
		SongID:   songID,
	})
	if err != nil {
		r.notifier.Errorf("error revealing field: %v", err)
		return err
	}

	r.state.ReplaceRevealProgress(result.PointFields, result.BonusFields)
	r.notifier.Successf("field %s revealed successfully", fieldKey)
	return nil
}

// songActive reports whether the phase implies a current song.
func songActive(p models.Phase) bool {
	switch p {
	case models.PhasePlaying, models.PhasePaused, models.PhaseReveal:
		return true
	}
	return false
}

func (r *Reconciler) violation(v *push.ProtocolViolation) {
	log.Error().Err(v).Msg("push event rejected")
	r.notifier.Errorf("%s", v.Error())
}
