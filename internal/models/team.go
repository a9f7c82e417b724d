package models

// Team represents a playing team, optionally paired with a physical buzzer.
type Team struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	BuzzerID string `json:"buzzer_id,omitempty"`
	Score    int    `json:"score"`
}

// Paired reports whether the team has a buzzer assigned.
func (t Team) Paired() bool {
	return t.BuzzerID != ""
}

// Buzzer identifies a physical buzzer device.
type Buzzer struct {
	ID string `json:"id"`
}
