package neonbeat

const (
	// API endpoints
	HealthcheckEndpoint = "/healthcheck"
	GamesEndpoint       = "/admin/games"
	PlaylistsEndpoint   = "/admin/playlists"
	TeamsEndpoint       = "/admin/teams"
	PairingEndpoint     = "/admin/teams/pairing"
	PublicTeamsEndpoint = "/public/teams"
	PhaseEndpoint       = "/public/phase"
	SongEndpoint        = "/public/song"

	// Game control endpoints
	GameStartEndpoint  = "/admin/game/start"
	GameStopEndpoint   = "/admin/game/stop"
	GameEndEndpoint    = "/admin/game/end"
	GamePauseEndpoint  = "/admin/game/pause"
	GameResumeEndpoint = "/admin/game/resume"
	GameRevealEndpoint = "/admin/game/reveal"
	GameNextEndpoint   = "/admin/game/next"
	GameScoreEndpoint  = "/admin/game/score"
	GameAnswerEndpoint = "/admin/game/answer"
	FieldsFoundEndpoint = "/admin/game/fields/found"

	// Push channel endpoint
	StreamEndpoint = "/sse/admin"

	// Headers
	AdminTokenHeader = "X-Admin-Token"
	RequestIDHeader  = "X-Request-Id"
)
