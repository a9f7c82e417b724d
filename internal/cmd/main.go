package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	app := &adminApp{}

	cliApp := &cli.App{
		Name:  "nb-admin",
		Usage: "operator console for a NeonBeat game server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to the configuration file",
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "server base URL (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}

			cfg, err := loadConfig(c.String("config"))
			if err != nil {
				return err
			}
			if base := c.String("base-url"); base != "" {
				cfg.API.BaseURL = base
			}
			app.cfg = cfg
			return nil
		},
		Commands: []*cli.Command{
			app.gamesCommand(),
			app.playlistsCommand(),
			app.teamsCommand(),
			app.gameCommand(),
			app.scoreCommand(),
			app.answerCommand(),
			app.revealCommand(),
			app.watchCommand(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}
