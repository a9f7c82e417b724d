package neonbeat

import (
	"context"
	"net/http"

	"github.com/neonbeat/nb-admin/internal/models"
)

// Verdict is the adjudication of a buzzed-in answer.
type Verdict string

const (
	VerdictCorrect    Verdict = "correct"
	VerdictIncomplete Verdict = "incomplete"
	VerdictWrong      Verdict = "wrong"
)

// FieldRevealRequest asks the server to disclose one answer field of
// the current song.
type FieldRevealRequest struct {
	FieldKey string           `json:"field_key"`
	Kind     models.FieldKind `json:"kind"`
	SongID   int64            `json:"song_id"`
}

// FieldRevealResult is the server's confirmation of a field reveal. Its
// arrays are authoritative; the client replaces its progress sets with
// them instead of appending the requested key.
type FieldRevealResult struct {
	SongID      int64    `json:"song_id"`
	PointFields []string `json:"point_fields"`
	BonusFields []string `json:"bonus_fields"`
}

// StartGame requests the start transition. Success only means the
// server accepted the request; the transition is confirmed by a
// phase_changed push event.
func (c *Client) StartGame(ctx context.Context) error {
	return c.do(ctx, "start game", http.MethodPost, GameStartEndpoint, nil, nil)
}

// StopGame requests the stop transition.
func (c *Client) StopGame(ctx context.Context) error {
	return c.do(ctx, "stop game", http.MethodPost, GameStopEndpoint, nil, nil)
}

// EndGame requests the end transition.
func (c *Client) EndGame(ctx context.Context) error {
	return c.do(ctx, "end game", http.MethodPost, GameEndEndpoint, nil, nil)
}

// PauseGame requests the pause transition.
func (c *Client) PauseGame(ctx context.Context) error {
	return c.do(ctx, "pause game", http.MethodPost, GamePauseEndpoint, nil, nil)
}

// ResumeGame requests the resume transition.
func (c *Client) ResumeGame(ctx context.Context) error {
	return c.do(ctx, "resume game", http.MethodPost, GameResumeEndpoint, nil, nil)
}

// RevealSong requests the reveal transition for the current song.
func (c *Client) RevealSong(ctx context.Context) error {
	return c.do(ctx, "reveal song", http.MethodPost, GameRevealEndpoint, nil, nil)
}

// NextSong requests advancing to the next song.
func (c *Client) NextSong(ctx context.Context) error {
	return c.do(ctx, "next song", http.MethodPost, GameNextEndpoint, nil, nil)
}

// Score requests a point delta for the team paired with buzzerID. The
// delta is applied server-side; the client never does score arithmetic.
func (c *Client) Score(ctx context.Context, buzzerID string, delta int) error {
	body := struct {
		BuzzerID string `json:"buzzer_id"`
		Delta    int    `json:"delta"`
	}{BuzzerID: buzzerID, Delta: delta}
	return c.do(ctx, "score", http.MethodPost, GameScoreEndpoint, body, nil)
}

// ValidateAnswer adjudicates the answer of the team that buzzed in.
func (c *Client) ValidateAnswer(ctx context.Context, verdict Verdict) error {
	body := struct {
		Valid Verdict `json:"valid"`
	}{Valid: verdict}
	return c.do(ctx, "validate answer", http.MethodPost, GameAnswerEndpoint, body, nil)
}

// RevealField asks the server to disclose one answer field and returns
// the authoritative reveal progress for the song.
func (c *Client) RevealField(ctx context.Context, req FieldRevealRequest) (FieldRevealResult, error) {
	var result FieldRevealResult
	if err := c.do(ctx, "reveal field", http.MethodPost, FieldsFoundEndpoint, req, &result); err != nil {
		return FieldRevealResult{}, err
	}
	return result, nil
}
