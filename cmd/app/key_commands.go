package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/txvault/cmd/app/commands"
	"github.com/allisson/txvault/internal/app"
	"github.com/allisson/txvault/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-master-key",
			Usage: "Generate a new 32-byte master key for envelope encryption",
			Flags: []cli.Flag{
				&cli.UintFlag{
					Name:    "key-version",
					Aliases: []string{"k"},
					Value:   1,
					Usage:   "Master key version recorded as mk_version on new records",
				},
				&cli.StringFlag{
					Name:  "kms-provider",
					Value: "",
					Usage: "KMS provider (localsecrets, gcpkms, awskms, azurekeyvault, hashivault); omit for a plain hex key",
				},
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Value: "",
					Usage: "KMS key URI (e.g., base64key://, gcpkms://projects/.../cryptoKeys/...)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunCreateMasterKey(
					ctx,
					container.KMSService(),
					nil,
					container.Logger(),
					commands.DefaultIO().Writer,
					uint(cmd.Uint("key-version")),
					cmd.String("kms-provider"),
					cmd.String("kms-key-uri"),
				)
			},
		},
	}
}
