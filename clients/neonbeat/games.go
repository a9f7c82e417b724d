package neonbeat

import (
	"context"
	"net/http"

	"github.com/neonbeat/nb-admin/internal/models"
)

// CreateGameRequest is the body for creating a new game.
type CreateGameRequest struct {
	Name       string        `json:"name"`
	Teams      []models.Team `json:"teams"`
	PlaylistID string        `json:"playlist_id"`
}

// Games lists all games known to the server.
func (c *Client) Games(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	if err := c.do(ctx, "list games", http.MethodGet, GamesEndpoint, nil, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// Game fetches a single game by id.
func (c *Client) Game(ctx context.Context, id string) (models.Game, error) {
	var game models.Game
	if err := c.do(ctx, "get game", http.MethodGet, GamesEndpoint+"/"+id, nil, &game); err != nil {
		return models.Game{}, err
	}
	return game, nil
}

// CreateGame creates a new game from a playlist and team list.
func (c *Client) CreateGame(ctx context.Context, req CreateGameRequest) (models.Game, error) {
	var game models.Game
	if err := c.do(ctx, "create game", http.MethodPost, GamesEndpoint, req, &game); err != nil {
		return models.Game{}, err
	}
	return game, nil
}

// LoadGame makes the given game the server's current game.
func (c *Client) LoadGame(ctx context.Context, id string) (models.Game, error) {
	var game models.Game
	if err := c.do(ctx, "load game", http.MethodPost, GamesEndpoint+"/"+id+"/load", nil, &game); err != nil {
		return models.Game{}, err
	}
	return game, nil
}

// DeleteGame removes a game from the server.
func (c *Client) DeleteGame(ctx context.Context, id string) error {
	return c.do(ctx, "delete game", http.MethodDelete, GamesEndpoint+"/"+id, nil, nil)
}

// Playlists lists all importable playlists.
func (c *Client) Playlists(ctx context.Context) ([]models.Playlist, error) {
	var playlists []models.Playlist
	if err := c.do(ctx, "list playlists", http.MethodGet, PlaylistsEndpoint, nil, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// ImportPlaylist uploads a playlist definition to the server.
func (c *Client) ImportPlaylist(ctx context.Context, playlist models.Playlist) error {
	return c.do(ctx, "import playlist", http.MethodPost, PlaylistsEndpoint, playlist, nil)
}
