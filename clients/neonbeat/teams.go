package neonbeat

import (
	"context"
	"net/http"

	"github.com/neonbeat/nb-admin/internal/models"
)

// TeamRequest is the body for creating or updating a team.
type TeamRequest struct {
	Name     string `json:"name"`
	BuzzerID string `json:"buzzer_id,omitempty"`
	Score    int    `json:"score"`
}

type teamsResponse struct {
	Teams []models.Team `json:"teams"`
}

// Teams fetches the current roster. The roster is authoritative
// server-side; callers never recompute scores locally.
func (c *Client) Teams(ctx context.Context) ([]models.Team, error) {
	var resp teamsResponse
	if err := c.do(ctx, "list teams", http.MethodGet, PublicTeamsEndpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Teams, nil
}

// CreateTeam registers a new team.
func (c *Client) CreateTeam(ctx context.Context, req TeamRequest) error {
	return c.do(ctx, "create team", http.MethodPost, TeamsEndpoint, req, nil)
}

// UpdateTeam replaces a team's name, buzzer assignment and score.
func (c *Client) UpdateTeam(ctx context.Context, id string, req TeamRequest) error {
	return c.do(ctx, "update team", http.MethodPut, TeamsEndpoint+"/"+id, req, nil)
}

// RequestPairing starts the hardware auto-pairing flow for a team. The
// outcome arrives asynchronously as pairing.waiting / pairing.assigned
// push events.
func (c *Client) RequestPairing(ctx context.Context, firstTeamID string) error {
	body := struct {
		FirstTeamID string `json:"first_team_id"`
	}{FirstTeamID: firstTeamID}
	return c.do(ctx, "request pairing", http.MethodPost, PairingEndpoint, body, nil)
}

// ManualPair assigns a buzzer to a team directly, bypassing the
// auto-pairing flow. Confirmation arrives only via the roster refresh
// this indirectly triggers, not via pairing events.
func (c *Client) ManualPair(ctx context.Context, team models.Team, buzzerID string) error {
	return c.UpdateTeam(ctx, team.ID, TeamRequest{
		Name:     team.Name,
		BuzzerID: buzzerID,
		Score:    team.Score,
	})
}
