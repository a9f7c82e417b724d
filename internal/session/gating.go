package session

import "github.com/neonbeat/nb-admin/internal/models"

// Gating policy: callers consult these before dispatching a command so
// the server is never sent a request its phase contract guarantees to
// reject. The gateway itself does not enforce any of this.

// CanPairTeams reports whether pairing may be requested. Teams may be
// re-paired in any phase, but not before the first phase is known.
func (s *State) CanPairTeams() bool {
	_, known := s.Phase()
	return known
}

// CanStartGame reports whether the start command is legal.
func (s *State) CanStartGame() bool {
	p, known := s.Phase()
	return known && p == models.PhasePrepReady
}

// CanResumeGame reports whether the resume command is legal.
func (s *State) CanResumeGame() bool {
	p, known := s.Phase()
	return known && p == models.PhasePaused
}

// CanPauseGame reports whether the pause command is legal.
func (s *State) CanPauseGame() bool {
	p, known := s.Phase()
	return known && p == models.PhasePlaying
}

// CanRevealSong reports whether the reveal command is legal.
func (s *State) CanRevealSong() bool {
	p, known := s.Phase()
	return known && p == models.PhasePlaying
}

// CanGoNextSong reports whether advancing to the next song is legal.
func (s *State) CanGoNextSong() bool {
	p, known := s.Phase()
	return known && p == models.PhaseReveal
}

// CanStopGame reports whether the stop command is legal.
func (s *State) CanStopGame() bool {
	p, known := s.Phase()
	if !known {
		return false
	}
	switch p {
	case models.PhasePlaying, models.PhasePaused, models.PhasePairing, models.PhasePrepReady, models.PhaseReveal:
		return true
	}
	return false
}

// CanEndGame reports whether the end command is legal.
func (s *State) CanEndGame() bool {
	p, known := s.Phase()
	return known && p == models.PhaseScores
}

// CanDeleteGame reports whether deleting a game is legal.
func (s *State) CanDeleteGame() bool {
	p, known := s.Phase()
	if !known {
		return true
	}
	return p == models.PhaseIdle || p == models.PhaseScores
}

// ShowGameList reports whether the game list should be offered.
func (s *State) ShowGameList() bool {
	p, known := s.Phase()
	if !known {
		return true
	}
	return p == models.PhaseIdle
}

// IsGameRunning reports whether a game is in one of its active phases.
func (s *State) IsGameRunning() bool {
	p, known := s.Phase()
	if !known {
		return false
	}
	switch p {
	case models.PhasePlaying, models.PhasePaused, models.PhaseReveal:
		return true
	}
	return false
}
