package neonbeat

import (
	"context"
	"net/http"

	"github.com/neonbeat/nb-admin/internal/models"
)

// PhaseStatus is the server's answer to a phase snapshot pull.
type PhaseStatus struct {
	Phase    models.Phase `json:"phase"`
	Degraded bool         `json:"degraded"`
	GameID   string       `json:"game_id"`
}

// SongStatus is the server's answer to a song snapshot pull.
type SongStatus struct {
	Song             *models.Song `json:"song"`
	FoundPointFields []string     `json:"found_point_fields"`
	FoundBonusFields []string     `json:"found_bonus_fields"`
}

// Phase pulls the current phase snapshot.
func (c *Client) Phase(ctx context.Context) (PhaseStatus, error) {
	var status PhaseStatus
	if err := c.do(ctx, "get phase", http.MethodGet, PhaseEndpoint, nil, &status); err != nil {
		return PhaseStatus{}, err
	}
	return status, nil
}

// Song pulls the current song and its reveal progress.
func (c *Client) Song(ctx context.Context) (SongStatus, error) {
	var status SongStatus
	if err := c.do(ctx, "get song", http.MethodGet, SongEndpoint, nil, &status); err != nil {
		return SongStatus{}, err
	}
	return status, nil
}
