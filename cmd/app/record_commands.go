package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/txvault/cmd/app/commands"
	"github.com/allisson/txvault/internal/app"
	"github.com/allisson/txvault/internal/config"
)

func getRecordCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "verify-records",
			Usage: "Decrypt every stored record and report those that fail integrity checks",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "concurrency",
					Aliases: []string{"c"},
					Value:   0,
					Usage:   "Number of records opened in parallel (defaults to VERIFY_CONCURRENCY)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				recordUseCase, err := container.RecordUseCase()
				if err != nil {
					return err
				}

				concurrency := int(cmd.Int("concurrency"))
				if !cmd.IsSet("concurrency") {
					concurrency = cfg.VerifyConcurrency
				}

				return commands.RunVerifyRecords(
					ctx,
					recordUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					concurrency,
					cmd.String("format"),
				)
			},
		},
	}
}
