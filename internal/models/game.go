package models

// GameStatus defines the lifecycle status of a game.
type GameStatus string

const (
	GameStatusPaused  GameStatus = "paused"
	GameStatusPlaying GameStatus = "playing"
)

// Game represents a trivia game instance on the server.
type Game struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Playlist  Playlist   `json:"playlist"`
	Teams     []Team     `json:"teams,omitempty"`
	Status    GameStatus `json:"status,omitempty"`
	CreatedAt string     `json:"created_at,omitempty"`
	UpdatedAt string     `json:"updated_at,omitempty"`
}
