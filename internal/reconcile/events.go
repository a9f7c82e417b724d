package reconcile

import "github.com/neonbeat/nb-admin/internal/models"

// Push event kinds emitted by the server on the admin stream.
const (
	KindPhaseChanged    = "phase_changed"
	KindPairingWaiting  = "pairing.waiting"
	KindPairingAssigned = "pairing.assigned"
	KindTeamCreated     = "team.created"
	KindTestBuzz        = "test.buzz"
)

// Kinds lists every event kind the reconciler subscribes to.
func Kinds() []string {
	return []string{
		KindPhaseChanged,
		KindPairingWaiting,
		KindPairingAssigned,
		KindTeamCreated,
		KindTestBuzz,
	}
}

// PhaseChangedPayload confirms a phase transition. When Song is set the
// event is the single source of truth for the current song and its
// reveal progress at the phase boundary.
type PhaseChangedPayload struct {
	Phase            models.Phase `json:"phase"`
	Song             *models.Song `json:"song,omitempty"`
	FoundPointFields []string     `json:"found_point_fields,omitempty"`
	FoundBonusFields []string     `json:"found_bonus_fields,omitempty"`
}

// PairingWaitingPayload marks a team as awaiting a buzzer press.
type PairingWaitingPayload struct {
	TeamID string `json:"team_id"`
}

// PairingAssignedPayload confirms a buzzer was assigned to a team.
type PairingAssignedPayload struct {
	TeamID   string `json:"team_id"`
	BuzzerID string `json:"buzzer_id"`
}

// TeamCreatedPayload announces a team created outside this client.
type TeamCreatedPayload struct {
	TeamName string `json:"team_name"`
}

// TestBuzzPayload reports a test press of a buzzer. Informational only.
type TestBuzzPayload struct {
	BuzzerID string `json:"buzzer_id"`
}
