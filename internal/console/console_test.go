package console

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neonbeat/nb-admin/clients/neonbeat"
	"github.com/neonbeat/nb-admin/internal/models"
	"github.com/neonbeat/nb-admin/internal/notify"
)

// fixture is a fake server covering the REST surface the console
// touches plus the push stream.
type fixture struct {
	srv *httptest.Server

	mu     sync.Mutex
	phase  neonbeat.PhaseStatus
	teams  []models.Team
	hits   []string
	tokens []string

	events chan string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		phase:  neonbeat.PhaseStatus{Phase: models.PhaseIdle},
		events: make(chan string, 8),
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fixture) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits = append(f.hits, r.Method+" "+r.URL.Path)
	f.tokens = append(f.tokens, r.Header.Get(neonbeat.AdminTokenHeader))
	phase := f.phase
	teams := f.teams
	f.mu.Unlock()

	switch r.URL.Path {
	case neonbeat.PhaseEndpoint:
		json.NewEncoder(w).Encode(phase)
	case neonbeat.PublicTeamsEndpoint:
		json.NewEncoder(w).Encode(map[string]any{"teams": teams})
	case neonbeat.StreamEndpoint:
		f.stream(w, r)
	case "/admin/games/g1/load":
		json.NewEncoder(w).Encode(models.Game{ID: "g1", Name: "Friday Night"})
	default:
		fmt.Fprint(w, "{}")
	}
}

func (f *fixture) stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "no flusher", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-f.events:
			fmt.Fprint(w, ev)
			flusher.Flush()
		}
	}
}

func (f *fixture) push(kind string, payload any) {
	data, _ := json.Marshal(payload)
	f.events <- fmt.Sprintf("event: %s\ndata: %s\n\n", kind, data)
}

func (f *fixture) setPhase(p models.Phase) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phase.Phase = p
}

func (f *fixture) setTeams(teams []models.Team) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teams = teams
}

func (f *fixture) count(methodAndPath string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, h := range f.hits {
		if h == methodAndPath {
			n++
		}
	}
	return n
}

func (f *fixture) lastToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.tokens) == 0 {
		return ""
	}
	return f.tokens[len(f.tokens)-1]
}

func fakeRoster(n int) []models.Team {
	faker := gofakeit.New(7)
	teams := make([]models.Team, n)
	for i := range teams {
		teams[i] = models.Team{
			ID:       fmt.Sprintf("t%d", i+1),
			Name:     faker.PetName(),
			BuzzerID: fmt.Sprintf("b%d", i+1),
			Score:    faker.Number(0, 50),
		}
	}
	return teams
}

func TestIllegalActionIsBlockedBeforeDispatch(t *testing.T) {
	f := newFixture(t)
	c := New(f.srv.URL, &notify.Recorder{})
	require.NoError(t, c.Bootstrap(context.Background()))

	// Starting from idle is illegal; no request may leave the client.
	err := c.StartGame(context.Background())
	var illegal *IllegalAction
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, "start", illegal.Action)
	assert.Equal(t, models.PhaseIdle, illegal.Phase)
	assert.Zero(t, f.count("POST "+neonbeat.GameStartEndpoint))

	require.Error(t, c.PauseGame(context.Background()))
	require.Error(t, c.EndGame(context.Background()))
	assert.Zero(t, f.count("POST "+neonbeat.GamePauseEndpoint))
	assert.Zero(t, f.count("POST "+neonbeat.GameEndEndpoint))
}

func TestActionsBeforeFirstSnapshotAreBlocked(t *testing.T) {
	f := newFixture(t)
	c := New(f.srv.URL, &notify.Recorder{})

	// No Bootstrap: the phase is still unknown.
	err := c.StartGame(context.Background())
	var illegal *IllegalAction
	require.ErrorAs(t, err, &illegal)
	assert.Empty(t, string(illegal.Phase))
	assert.Zero(t, f.count("POST "+neonbeat.GameStartEndpoint))
}

func TestLegalActionsAreDispatched(t *testing.T) {
	f := newFixture(t)
	f.setPhase(models.PhasePrepReady)
	c := New(f.srv.URL, &notify.Recorder{})
	require.NoError(t, c.Bootstrap(context.Background()))

	require.NoError(t, c.StartGame(context.Background()))
	assert.Equal(t, 1, f.count("POST "+neonbeat.GameStartEndpoint))

	// The dispatch does not change local state; only a push event would.
	phase, _ := c.State().Phase()
	assert.Equal(t, models.PhasePrepReady, phase)
}

func TestLoadGameSetsCurrentGameWithoutPhaseChange(t *testing.T) {
	f := newFixture(t)
	c := New(f.srv.URL, &notify.Recorder{})
	require.NoError(t, c.Bootstrap(context.Background()))

	require.NoError(t, c.LoadGame(context.Background(), "g1"))

	game, ok := c.State().Game()
	require.True(t, ok)
	assert.Equal(t, "Friday Night", game.Name)
	phase, _ := c.State().Phase()
	assert.Equal(t, models.PhaseIdle, phase)
}

func TestGrantPointsRequiresPairedTeam(t *testing.T) {
	f := newFixture(t)
	recorder := &notify.Recorder{}
	c := New(f.srv.URL, recorder)

	err := c.GrantPoints(context.Background(), models.Team{ID: "t1", Name: "Alpha"}, 10)
	require.Error(t, err)
	assert.Zero(t, f.count("POST "+neonbeat.GameScoreEndpoint))
	require.NotEmpty(t, recorder.ByLevel(notify.LevelError))
}

func TestGrantPointsDispatchesAndRefreshesRoster(t *testing.T) {
	f := newFixture(t)
	roster := fakeRoster(2)
	f.setTeams(roster)
	c := New(f.srv.URL, &notify.Recorder{})

	require.NoError(t, c.GrantPoints(context.Background(), roster[0], 10))

	assert.Equal(t, 1, f.count("POST "+neonbeat.GameScoreEndpoint))
	if diff := cmp.Diff(roster, c.State().Teams()); diff != "" {
		t.Errorf("roster mismatch after refresh (-want +got):\n%s", diff)
	}
}

func TestManualPairRejectsUnknownTeam(t *testing.T) {
	f := newFixture(t)
	c := New(f.srv.URL, &notify.Recorder{})

	err := c.ManualPair(context.Background(), "ghost", "b1")
	require.Error(t, err)
	assert.Zero(t, f.count("PUT "+neonbeat.TeamsEndpoint+"/ghost"))
}

func TestSyncAppliesHandshakeAndPushEvents(t *testing.T) {
	f := newFixture(t)
	recorder := &notify.Recorder{}
	c := New(f.srv.URL, recorder)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- c.Sync(ctx) }()

	f.push("handshake", map[string]string{"token": "s3cret"})
	f.push("phase_changed", map[string]string{"phase": string(models.PhasePrepReady)})

	require.Eventually(t, func() bool {
		phase, known := c.State().Phase()
		return known && phase == models.PhasePrepReady
	}, 2*time.Second, 10*time.Millisecond, "phase_changed event not applied")

	// Commands issued after the handshake carry the session credential.
	require.NoError(t, c.StartGame(ctx))
	assert.Equal(t, "s3cret", f.lastToken())

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Sync did not return after cancellation")
	}
}
