package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neonbeat/nb-admin/internal/models"
)

// TestGatingTable checks the full phase x action cross product against
// the server's phase contract.
func TestGatingTable(t *testing.T) {
	type expectations struct {
		pair     bool
		start    bool
		resume   bool
		pause    bool
		reveal   bool
		next     bool
		stop     bool
		end      bool
		delete_  bool
		gameList bool
		running  bool
	}

	tests := []struct {
		name  string
		phase models.Phase
		known bool
		want  expectations
	}{
		{
			name:  "phase unknown",
			known: false,
			want:  expectations{delete_: true, gameList: true},
		},
		{
			name:  "idle",
			phase: models.PhaseIdle,
			known: true,
			want:  expectations{pair: true, delete_: true, gameList: true},
		},
		{
			name:  "prep_ready",
			phase: models.PhasePrepReady,
			known: true,
			want:  expectations{pair: true, start: true, stop: true},
		},
		{
			name:  "pairing",
			phase: models.PhasePairing,
			known: true,
			want:  expectations{pair: true, stop: true},
		},
		{
			name:  "playing",
			phase: models.PhasePlaying,
			known: true,
			want:  expectations{pair: true, pause: true, reveal: true, stop: true, running: true},
		},
		{
			name:  "paused",
			phase: models.PhasePaused,
			known: true,
			want:  expectations{pair: true, resume: true, stop: true, running: true},
		},
		{
			name:  "reveal",
			phase: models.PhaseReveal,
			known: true,
			want:  expectations{pair: true, next: true, stop: true, running: true},
		},
		{
			name:  "scores",
			phase: models.PhaseScores,
			known: true,
			want:  expectations{pair: true, end: true, delete_: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewState()
			if tt.known {
				state.SetPhase(tt.phase)
			}

			assert.Equal(t, tt.want.pair, state.CanPairTeams(), "CanPairTeams")
			assert.Equal(t, tt.want.start, state.CanStartGame(), "CanStartGame")
			assert.Equal(t, tt.want.resume, state.CanResumeGame(), "CanResumeGame")
			assert.Equal(t, tt.want.pause, state.CanPauseGame(), "CanPauseGame")
			assert.Equal(t, tt.want.reveal, state.CanRevealSong(), "CanRevealSong")
			assert.Equal(t, tt.want.next, state.CanGoNextSong(), "CanGoNextSong")
			assert.Equal(t, tt.want.stop, state.CanStopGame(), "CanStopGame")
			assert.Equal(t, tt.want.end, state.CanEndGame(), "CanEndGame")
			assert.Equal(t, tt.want.delete_, state.CanDeleteGame(), "CanDeleteGame")
			assert.Equal(t, tt.want.gameList, state.ShowGameList(), "ShowGameList")
			assert.Equal(t, tt.want.running, state.IsGameRunning(), "IsGameRunning")
		})
	}
}
