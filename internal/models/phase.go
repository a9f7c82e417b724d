package models

// Phase defines the server-authoritative stage of a game session.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhasePrepReady Phase = "prep_ready"
	PhasePairing   Phase = "pairing"
	PhasePlaying   Phase = "playing"
	PhasePaused    Phase = "pause"
	PhaseReveal    Phase = "reveal"
	PhaseScores    Phase = "scores"
)

// Valid reports whether p is one of the phases the server emits.
func (p Phase) Valid() bool {
	switch p {
	case PhaseIdle, PhasePrepReady, PhasePairing, PhasePlaying, PhasePaused, PhaseReveal, PhaseScores:
		return true
	}
	return false
}
