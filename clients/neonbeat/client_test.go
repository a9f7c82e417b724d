package neonbeat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neonbeat/nb-admin/internal/models"
)

func TestCommandsCarrySessionCredential(t *testing.T) {
	var gotToken, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get(AdminTokenHeader)
		gotRequestID = r.Header.Get(RequestIDHeader)
	}))
	defer server.Close()

	tokens := &TokenStore{}
	client := NewClient(server.URL, tokens)

	// Before the handshake no credential is attached.
	require.NoError(t, client.StartGame(context.Background()))
	assert.Empty(t, gotToken)
	assert.NotEmpty(t, gotRequestID, "every call carries a correlation id")

	tokens.Set("secret-token")
	require.NoError(t, client.StartGame(context.Background()))
	assert.Equal(t, "secret-token", gotToken)
}

func TestCommandRejectedReasonExtraction(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantReason string
	}{
		{
			name:       "structured error field",
			status:     http.StatusConflict,
			body:       `{"error":"game already running"}`,
			wantReason: "game already running",
		},
		{
			name:       "structured message field",
			status:     http.StatusBadRequest,
			body:       `{"message":"unknown playlist"}`,
			wantReason: "unknown playlist",
		},
		{
			name:       "raw text body",
			status:     http.StatusInternalServerError,
			body:       "something broke",
			wantReason: "something broke",
		},
		{
			name:       "empty body falls back",
			status:     http.StatusForbidden,
			body:       "",
			wantReason: rejectionFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, nil)
			err := client.PauseGame(context.Background())

			var rejected *CommandRejected
			require.ErrorAs(t, err, &rejected)
			assert.Equal(t, tt.status, rejected.Status)
			assert.Equal(t, tt.wantReason, rejected.Reason)
			assert.Equal(t, "pause game", rejected.Op)
		})
	}
}

func TestUnreachableServerIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, nil)
	err := client.Healthcheck(context.Background())

	var unreachable *TransportUnreachable
	require.ErrorAs(t, err, &unreachable)
}

func TestTeamsUnwrapsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PublicTeamsEndpoint, r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"teams": []models.Team{
				{ID: "t1", Name: "Alpha", BuzzerID: "b1", Score: 10},
				{ID: "t2", Name: "Beta"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	teams, err := client.Teams(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "Alpha", teams[0].Name)
	assert.True(t, teams[0].Paired())
	assert.False(t, teams[1].Paired())
}

func TestRevealFieldRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, FieldsFoundEndpoint, r.URL.Path)

		var req FieldRevealRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "artist", req.FieldKey)
		assert.Equal(t, models.FieldKindPoint, req.Kind)
		assert.Equal(t, int64(42), req.SongID)

		json.NewEncoder(w).Encode(FieldRevealResult{
			SongID:      42,
			PointFields: []string{"artist"},
			BonusFields: []string{},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	result, err := client.RevealField(context.Background(), FieldRevealRequest{
		FieldKey: "artist",
		Kind:     models.FieldKindPoint,
		SongID:   42,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), result.SongID)
	assert.Equal(t, []string{"artist"}, result.PointFields)
	assert.Empty(t, result.BonusFields)
}

func TestPhaseAndSongSnapshots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PhaseEndpoint:
			json.NewEncoder(w).Encode(PhaseStatus{Phase: models.PhasePlaying, GameID: "g1"})
		case SongEndpoint:
			json.NewEncoder(w).Encode(SongStatus{
				Song:             &models.Song{ID: "7"},
				FoundPointFields: []string{"artist"},
				FoundBonusFields: []string{},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	phase, err := client.Phase(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.PhasePlaying, phase.Phase)
	assert.Equal(t, "g1", phase.GameID)

	song, err := client.Song(context.Background())
	require.NoError(t, err)
	require.NotNil(t, song.Song)
	assert.Equal(t, "7", song.Song.ID)
	assert.Equal(t, []string{"artist"}, song.FoundPointFields)
}

func TestWaitReadyRetriesUntilHealthy(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	err := client.WaitReady(context.Background(), clockwork.NewRealClock(), time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWaitReadyObeysContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	client := NewClient(server.URL, nil)
	err := client.WaitReady(ctx, clockwork.NewRealClock(), time.Hour)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
