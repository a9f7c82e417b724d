// Package console is the operator-facing surface of the sync core.
// Every action goes intent -> gating check -> gateway call; state only
// changes once the confirming push event (or snapshot pull) lands.
package console

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/neonbeat/nb-admin/clients/neonbeat"
	"github.com/neonbeat/nb-admin/internal/models"
	"github.com/neonbeat/nb-admin/internal/notify"
	"github.com/neonbeat/nb-admin/internal/push"
	"github.com/neonbeat/nb-admin/internal/reconcile"
	"github.com/neonbeat/nb-admin/internal/session"
)

// IllegalAction reports an action attempted outside the phases where
// the server would accept it. It is caught before any request is sent.
type IllegalAction struct {
	Action string
	Phase  models.Phase
}

func (e *IllegalAction) Error() string {
	if e.Phase == "" {
		return fmt.Sprintf("%s is not legal before the first phase is known", e.Action)
	}
	return fmt.Sprintf("%s is not legal in phase %s", e.Action, e.Phase)
}

// Console drives one remote game session.
type Console struct {
	state    *session.State
	gateway  *neonbeat.Client
	tokens   *neonbeat.TokenStore
	rec      *reconcile.Reconciler
	notifier notify.Notifier
}

// New wires a console for the server at baseURL.
func New(baseURL string, notifier notify.Notifier) *Console {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	tokens := &neonbeat.TokenStore{}
	gateway := neonbeat.NewClient(baseURL, tokens)
	state := session.NewState()
	return &Console{
		state:    state,
		gateway:  gateway,
		tokens:   tokens,
		rec:      reconcile.New(state, gateway, notifier),
		notifier: notifier,
	}
}

// State returns the read-only session view.
func (c *Console) State() session.View {
	return c.state.View()
}

// Gateway returns the underlying command client.
func (c *Console) Gateway() *neonbeat.Client {
	return c.gateway
}

// Bootstrap pulls the initial snapshot into the session state.
func (c *Console) Bootstrap(ctx context.Context) error {
	return c.rec.Bootstrap(ctx)
}

// Connect opens the push channel and attaches the reconciler. The
// returned channel's Run must be driven by the caller; when it fails,
// reconnecting (Bootstrap + Connect again) is the caller's policy.
func (c *Console) Connect(ctx context.Context) (*push.Channel, error) {
	ch, err := push.Connect(ctx, push.Config{
		URL:         c.gateway.StreamURL(),
		OnHandshake: c.tokens.Set,
		Notifier:    c.notifier,
	})
	if err != nil {
		return nil, err
	}
	c.rec.Attach(ctx, ch)
	return ch, nil
}

// Sync runs one full connection lifetime: snapshot pull, channel open,
// event loop. It returns when the channel dies or ctx is cancelled.
func (c *Console) Sync(ctx context.Context) error {
	if err := c.Bootstrap(ctx); err != nil {
		return err
	}
	ch, err := c.Connect(ctx)
	if err != nil {
		return err
	}
	defer ch.Close()

	done := make(chan error, 1)
	go func() { done <- ch.Run() }()

	select {
	case <-ctx.Done():
		ch.Close()
		<-done
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// gate wraps the gating check shared by all phase-bound commands.
func (c *Console) gate(action string, legal bool) error {
	if legal {
		return nil
	}
	phase, _ := c.state.Phase()
	err := &IllegalAction{Action: action, Phase: phase}
	log.Debug().Str("action", action).Str("phase", string(phase)).Msg("action blocked by gating policy")
	return err
}

// StartGame requests the start transition.
func (c *Console) StartGame(ctx context.Context) error {
	if err := c.gate("start", c.state.CanStartGame()); err != nil {
		return err
	}
	return c.gateway.StartGame(ctx)
}

// PauseGame requests the pause transition.
func (c *Console) PauseGame(ctx context.Context) error {
	if err := c.gate("pause", c.state.CanPauseGame()); err != nil {
		return err
	}
	return c.gateway.PauseGame(ctx)
}

// ResumeGame requests the resume transition.
func (c *Console) ResumeGame(ctx context.Context) error {
	if err := c.gate("resume", c.state.CanResumeGame()); err != nil {
		return err
	}
	return c.gateway.ResumeGame(ctx)
}

// RevealSong requests the reveal transition for the current song.
func (c *Console) RevealSong(ctx context.Context) error {
	if err := c.gate("reveal", c.state.CanRevealSong()); err != nil {
		return err
	}
	return c.gateway.RevealSong(ctx)
}

// NextSong requests advancing to the next song.
func (c *Console) NextSong(ctx context.Context) error {
	if err := c.gate("next", c.state.CanGoNextSong()); err != nil {
		return err
	}
	return c.gateway.NextSong(ctx)
}

// StopGame requests the stop transition.
func (c *Console) StopGame(ctx context.Context) error {
	if err := c.gate("stop", c.state.CanStopGame()); err != nil {
		return err
	}
	return c.gateway.StopGame(ctx)
}

// EndGame requests the end transition.
func (c *Console) EndGame(ctx context.Context) error {
	if err := c.gate("end", c.state.CanEndGame()); err != nil {
		return err
	}
	return c.gateway.EndGame(ctx)
}

// LoadGame makes a game current. The phase stays as-is until the server
// confirms a transition via phase_changed.
func (c *Console) LoadGame(ctx context.Context, id string) error {
	game, err := c.gateway.LoadGame(ctx, id)
	if err != nil {
		c.notifier.Errorf("error loading game: %v", err)
		return err
	}
	c.state.SetGame(game)
	c.notifier.Successf("game loaded successfully")
	c.rec.RefreshTeams(ctx)
	return nil
}

// CreateGame creates a game from a playlist and makes it current.
func (c *Console) CreateGame(ctx context.Context, req neonbeat.CreateGameRequest) (models.Game, error) {
	game, err := c.gateway.CreateGame(ctx, req)
	if err != nil {
		return models.Game{}, err
	}
	c.state.SetGame(game)
	c.notifier.Successf("game created successfully")
	return game, nil
}

// DeleteGame removes a game, gated on the delete policy.
func (c *Console) DeleteGame(ctx context.Context, id string) error {
	if err := c.gate("delete", c.state.CanDeleteGame()); err != nil {
		return err
	}
	return c.gateway.DeleteGame(ctx, id)
}

// ImportPlaylist uploads a playlist definition.
func (c *Console) ImportPlaylist(ctx context.Context, playlist models.Playlist) error {
	if err := c.gateway.ImportPlaylist(ctx, playlist); err != nil {
		return err
	}
	c.notifier.Successf("playlist imported successfully")
	return nil
}

// CreateTeam registers a team without a buzzer, starting at zero.
func (c *Console) CreateTeam(ctx context.Context, name string) error {
	if err := c.gateway.CreateTeam(ctx, neonbeat.TeamRequest{Name: name, Score: 0}); err != nil {
		return err
	}
	c.notifier.Successf("team created successfully")
	c.rec.RefreshTeams(ctx)
	return nil
}

// StartAutoPairing begins the hardware pairing flow for a team.
func (c *Console) StartAutoPairing(ctx context.Context, teamID string) error {
	if err := c.gate("pairing", c.state.CanPairTeams()); err != nil {
		return err
	}
	return c.gateway.RequestPairing(ctx, teamID)
}

// ManualPair assigns a buzzer to a team directly. Confirmation arrives
// through the roster refresh, not through pairing events.
func (c *Console) ManualPair(ctx context.Context, teamID, buzzerID string) error {
	team, ok := c.state.TeamByID(teamID)
	if !ok {
		return fmt.Errorf("unknown team id %s", teamID)
	}
	if err := c.gateway.ManualPair(ctx, team, buzzerID); err != nil {
		return err
	}
	c.rec.RefreshTeams(ctx)
	return nil
}

// GrantPoints requests a score delta for a team. A team without a
// buzzer cannot be scored; the delta is applied server-side only.
func (c *Console) GrantPoints(ctx context.Context, team models.Team, points int) error {
	if !team.Paired() {
		c.notifier.Errorf("team %s is not paired with a buzzer", team.Name)
		return fmt.Errorf("team %s has no buzzer", team.Name)
	}
	if err := c.gateway.Score(ctx, team.BuzzerID, points); err != nil {
		c.notifier.Errorf("error granting points: %v", err)
		return err
	}
	c.notifier.Successf("granted %d points to team %s", points, team.Name)
	c.rec.RefreshTeams(ctx)
	return nil
}

// ValidateAnswer adjudicates the team currently buzzed in.
func (c *Console) ValidateAnswer(ctx context.Context, verdict neonbeat.Verdict) error {
	return c.gateway.ValidateAnswer(ctx, verdict)
}

// RevealField discloses one answer field of the current song.
func (c *Console) RevealField(ctx context.Context, fieldKey string, kind models.FieldKind) error {
	return c.rec.RevealField(ctx, fieldKey, kind)
}
