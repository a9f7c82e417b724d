package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/neonbeat/nb-admin/clients/neonbeat"
	"github.com/neonbeat/nb-admin/internal/console"
	"github.com/neonbeat/nb-admin/internal/models"
	"github.com/neonbeat/nb-admin/internal/notify"
)

type adminApp struct {
	cfg *Config
}

func (a *adminApp) console() *console.Console {
	con := console.New(a.cfg.API.BaseURL, notify.LogNotifier{})
	con.Gateway().SetTimeout(a.cfg.timeout())
	return con
}

// withSession builds a console, pulls the snapshot, and hands both to
// fn. Gated commands need the snapshot so the gating policy has a
// phase to work with.
func (a *adminApp) withSession(c *cli.Context, fn func(context.Context, *console.Console) error) error {
	con := a.console()
	if err := con.Bootstrap(c.Context); err != nil {
		return err
	}
	return fn(c.Context, con)
}

func (a *adminApp) gamesCommand() *cli.Command {
	return &cli.Command{
		Name:  "games",
		Usage: "manage games",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list all games",
				Action: func(c *cli.Context) error {
					games, err := a.console().Gateway().Games(c.Context)
					if err != nil {
						return err
					}
					for _, g := range games {
						fmt.Printf("%s\t%s\t%s\n", g.ID, g.Name, g.Status)
					}
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "create a game from a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "playlist", Required: true, Usage: "playlist id"},
					&cli.StringSliceFlag{Name: "team", Usage: "team name, repeatable"},
				},
				Action: func(c *cli.Context) error {
					var teams []models.Team
					for _, name := range c.StringSlice("team") {
						teams = append(teams, models.Team{Name: name})
					}
					game, err := a.console().CreateGame(c.Context, neonbeat.CreateGameRequest{
						Name:       c.String("name"),
						Teams:      teams,
						PlaylistID: c.String("playlist"),
					})
					if err != nil {
						return err
					}
					fmt.Println(game.ID)
					return nil
				},
			},
			{
				Name:      "load",
				Usage:     "make a game the current game",
				ArgsUsage: "<game-id>",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("expected exactly one game id")
					}
					return a.console().LoadGame(c.Context, c.Args().First())
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a game",
				ArgsUsage: "<game-id>",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("expected exactly one game id")
					}
					return a.withSession(c, func(ctx context.Context, con *console.Console) error {
						return con.DeleteGame(ctx, c.Args().First())
					})
				},
			},
		},
	}
}

func (a *adminApp) playlistsCommand() *cli.Command {
	return &cli.Command{
		Name:  "playlists",
		Usage: "manage playlists",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list all playlists",
				Action: func(c *cli.Context) error {
					playlists, err := a.console().Gateway().Playlists(c.Context)
					if err != nil {
						return err
					}
					for _, p := range playlists {
						fmt.Printf("%s\t%s\t%d songs\n", p.ID, p.Name, len(p.Songs))
					}
					return nil
				},
			},
			{
				Name:      "import",
				Usage:     "import a playlist from a JSON file",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("expected exactly one file")
					}
					data, err := os.ReadFile(c.Args().First())
					if err != nil {
						return fmt.Errorf("read playlist file: %w", err)
					}
					var playlist models.Playlist
					if err := json.Unmarshal(data, &playlist); err != nil {
						return fmt.Errorf("parse playlist file: %w", err)
					}
					return a.console().ImportPlaylist(c.Context, playlist)
				},
			},
		},
	}
}

func (a *adminApp) teamsCommand() *cli.Command {
	return &cli.Command{
		Name:  "teams",
		Usage: "manage teams and pairing",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list the current roster",
				Action: func(c *cli.Context) error {
					teams, err := a.console().Gateway().Teams(c.Context)
					if err != nil {
						return err
					}
					for _, t := range teams {
						buzzer := t.BuzzerID
						if buzzer == "" {
							buzzer = "-"
						}
						fmt.Printf("%s\t%s\tbuzzer=%s\tscore=%d\n", t.ID, t.Name, buzzer, t.Score)
					}
					return nil
				},
			},
			{
				Name:      "create",
				Usage:     "create a team without a buzzer",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("expected exactly one team name")
					}
					return a.console().CreateTeam(c.Context, c.Args().First())
				},
			},
			{
				Name:      "pair",
				Usage:     "start hardware auto-pairing for a team",
				ArgsUsage: "<team-id>",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("expected exactly one team id")
					}
					return a.withSession(c, func(ctx context.Context, con *console.Console) error {
						return con.StartAutoPairing(ctx, c.Args().First())
					})
				},
			},
			{
				Name:      "pair-manual",
				Usage:     "assign a buzzer to a team directly",
				ArgsUsage: "<team-id> <buzzer-id>",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 2 {
						return fmt.Errorf("expected a team id and a buzzer id")
					}
					return a.withSession(c, func(ctx context.Context, con *console.Console) error {
						return con.ManualPair(ctx, c.Args().Get(0), c.Args().Get(1))
					})
				},
			},
		},
	}
}

func (a *adminApp) gameCommand() *cli.Command {
	type transition struct {
		name  string
		usage string
		run   func(*console.Console, context.Context) error
	}
	transitions := []transition{
		{"start", "start the loaded game", func(con *console.Console, ctx context.Context) error { return con.StartGame(ctx) }},
		{"stop", "stop the running game", func(con *console.Console, ctx context.Context) error { return con.StopGame(ctx) }},
		{"end", "end the game after the score screen", func(con *console.Console, ctx context.Context) error { return con.EndGame(ctx) }},
		{"pause", "pause the running game", func(con *console.Console, ctx context.Context) error { return con.PauseGame(ctx) }},
		{"resume", "resume the paused game", func(con *console.Console, ctx context.Context) error { return con.ResumeGame(ctx) }},
		{"reveal", "reveal the current song", func(con *console.Console, ctx context.Context) error { return con.RevealSong(ctx) }},
		{"next", "advance to the next song", func(con *console.Console, ctx context.Context) error { return con.NextSong(ctx) }},
	}

	var subcommands []*cli.Command
	for _, tr := range transitions {
		tr := tr
		subcommands = append(subcommands, &cli.Command{
			Name:  tr.name,
			Usage: tr.usage,
			Action: func(c *cli.Context) error {
				return a.withSession(c, func(ctx context.Context, con *console.Console) error {
					return tr.run(con, ctx)
				})
			},
		})
	}

	return &cli.Command{
		Name:        "game",
		Usage:       "drive the current game's phase",
		Subcommands: subcommands,
	}
}

func (a *adminApp) scoreCommand() *cli.Command {
	return &cli.Command{
		Name:      "score",
		Usage:     "request a score delta for a buzzer",
		ArgsUsage: "<buzzer-id> <delta>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 2 {
				return fmt.Errorf("expected a buzzer id and a delta")
			}
			delta, err := strconv.Atoi(c.Args().Get(1))
			if err != nil {
				return fmt.Errorf("parse delta: %w", err)
			}
			return a.console().Gateway().Score(c.Context, c.Args().Get(0), delta)
		},
	}
}

func (a *adminApp) answerCommand() *cli.Command {
	return &cli.Command{
		Name:      "answer",
		Usage:     "adjudicate the buzzed-in answer",
		ArgsUsage: "<correct|incomplete|wrong>",
		Action: func(c *cli.Context) error {
			verdict := neonbeat.Verdict(c.Args().First())
			switch verdict {
			case neonbeat.VerdictCorrect, neonbeat.VerdictIncomplete, neonbeat.VerdictWrong:
			default:
				return fmt.Errorf("verdict must be correct, incomplete or wrong")
			}
			return a.console().ValidateAnswer(c.Context, verdict)
		},
	}
}

func (a *adminApp) revealCommand() *cli.Command {
	return &cli.Command{
		Name:      "reveal-field",
		Usage:     "disclose one answer field of the current song",
		ArgsUsage: "<field-key>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "kind", Value: string(models.FieldKindPoint), Usage: "point or bonus"},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one field key")
			}
			kind := models.FieldKind(c.String("kind"))
			if kind != models.FieldKindPoint && kind != models.FieldKindBonus {
				return fmt.Errorf("kind must be point or bonus")
			}
			return a.withSession(c, func(ctx context.Context, con *console.Console) error {
				return con.RevealField(ctx, c.Args().First(), kind)
			})
		},
	}
}

// watchCommand runs the full sync core: health probe, snapshot pull,
// push channel, reconcile loop. Reconnection is this command's policy:
// when the channel dies, it resynchronizes with a fresh snapshot.
func (a *adminApp) watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "follow the live session state",
		Action: func(c *cli.Context) error {
			clock := clockwork.NewRealClock()
			con := a.console()

			if err := con.Gateway().WaitReady(c.Context, clock, a.cfg.probeInterval()); err != nil {
				return err
			}

			for {
				err := con.Sync(c.Context)
				if c.Context.Err() != nil {
					return nil
				}
				log.Error().Err(err).Msg("session sync interrupted, reconnecting")

				select {
				case <-c.Context.Done():
					return nil
				case <-clock.After(a.cfg.probeInterval()):
				}
			}
		},
	}
}
