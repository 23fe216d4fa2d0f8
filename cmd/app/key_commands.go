package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/reptend/cmd/app/commands"
	"github.com/allisson/reptend/internal/app"
	cipherService "github.com/allisson/reptend/internal/cipher/service"
	"github.com/allisson/reptend/internal/config"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-master-key",
			Usage: "Generate a new master key, optionally wrapped by a KMS key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "id",
					Aliases: []string{"i"},
					Usage:   "Master key ID (e.g., prod-master-key-2026)",
				},
				&cli.StringFlag{
					Name:  "kms-provider",
					Usage: "KMS provider (localsecrets, gcpkms, awskms, azurekeyvault, hashivault)",
				},
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Usage: "KMS key URI (e.g., base64key://, gcpkms://projects/.../cryptoKeys/...)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunCreateMasterKey(
					ctx,
					cipherService.NewKMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("id"),
					cmd.String("kms-provider"),
					cmd.String("kms-key-uri"),
				)
			},
		},
		{
			Name:  "create-cipher-key",
			Usage: "Create a named cipher key with a fresh full reptend prime",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Cipher key name",
				},
				&cli.IntFlag{
					Name:  "prime-bits",
					Usage: "Prime size in bits (0 uses CIPHER_DEFAULT_PRIME_BITS)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				cipherKeyUseCase, err := container.CipherKeyUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateCipherKey(
					ctx,
					cipherKeyUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					int(cmd.Int("prime-bits")),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "rotate-cipher-key",
			Usage: "Add a new version with a fresh prime to a cipher key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Cipher key name",
				},
				&cli.IntFlag{
					Name:  "prime-bits",
					Usage: "Prime size in bits (0 uses CIPHER_DEFAULT_PRIME_BITS)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				cipherKeyUseCase, err := container.CipherKeyUseCase()
				if err != nil {
					return err
				}

				return commands.RunRotateCipherKey(
					ctx,
					cipherKeyUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					int(cmd.Int("prime-bits")),
					cmd.String("format"),
				)
			},
		},
	}
}
