package models

// FieldKind distinguishes the two answer field groups of a song.
type FieldKind string

const (
	FieldKindPoint FieldKind = "point"
	FieldKindBonus FieldKind = "bonus"
)

// Field is one guessable answer field of a song.
type Field struct {
	Key    string `json:"key"`
	Points int    `json:"points"`
	Value  string `json:"value"`
}

// Song represents a single playable song with its answer fields.
type Song struct {
	ID              string  `json:"id"`
	PointFields     []Field `json:"point_fields"`
	BonusFields     []Field `json:"bonus_fields"`
	StartsAtMs      int64   `json:"starts_at_ms"`
	GuessDurationMs int64   `json:"guess_duration_ms"`
	URL             string  `json:"url"`
}

// Fields returns the field group matching kind.
func (s *Song) Fields(kind FieldKind) []Field {
	if kind == FieldKindBonus {
		return s.BonusFields
	}
	return s.PointFields
}

// HasField reports whether the song carries a field of the given kind and key.
func (s *Song) HasField(kind FieldKind, key string) bool {
	for _, f := range s.Fields(kind) {
		if f.Key == key {
			return true
		}
	}
	return false
}

// Playlist is an ordered collection of songs.
type Playlist struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Songs []Song `json:"songs"`
}
