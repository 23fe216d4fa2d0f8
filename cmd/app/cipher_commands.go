package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/reptend/cmd/app/commands"
	"github.com/allisson/reptend/internal/app"
	"github.com/allisson/reptend/internal/config"
)

func fileFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "in",
			Aliases: []string{"i"},
			Value:   "-",
			Usage:   "Input file ('-' for stdin)",
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Value:   "-",
			Usage:   "Output file ('-' for stdout)",
		},
		&cli.StringFlag{
			Name:    "key",
			Aliases: []string{"k"},
			Sources: cli.EnvVars("REPTEND_KEY"),
			Usage:   "Base64 encoded 32-byte master key",
		},
		&cli.StringFlag{
			Name:    "passphrase",
			Aliases: []string{"p"},
			Sources: cli.EnvVars("REPTEND_PASSPHRASE"),
			Usage:   "Passphrase stretched with Argon2id",
		},
		&cli.StringFlag{
			Name:  "prime",
			Usage: "Decimal full reptend prime (omit to embed the default prime)",
		},
	}
}

func fileKey(cmd *cli.Command) commands.FileKey {
	return commands.FileKey{
		Key:        cmd.String("key"),
		Passphrase: cmd.String("passphrase"),
		Prime:      cmd.String("prime"),
	}
}

func getCipherCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate-prime",
			Usage: "Generate a full reptend prime",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "bits",
					Aliases: []string{"b"},
					Usage:   "Prime size in bits (0 uses CIPHER_DEFAULT_PRIME_BITS)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				primeUseCase, err := container.PrimeUseCase()
				if err != nil {
					return err
				}

				return commands.RunGeneratePrime(
					ctx,
					primeUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					int(cmd.Int("bits")),
					cmd.String("format"),
				)
			},
		},
		{
			Name:      "check-prime",
			Usage:     "Report whether a number is a full reptend prime",
			ArgsUsage: "<decimal>",
			Flags:     []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				primeUseCase, err := container.PrimeUseCase()
				if err != nil {
					return err
				}

				return commands.RunCheckPrime(
					ctx,
					primeUseCase,
					commands.DefaultIO().Writer,
					cmd.Args().First(),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "encrypt-file",
			Usage: "Encrypt a file with a master key or passphrase",
			Flags: fileFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				primeUseCase, err := container.PrimeUseCase()
				if err != nil {
					return err
				}

				return commands.RunEncryptFile(
					ctx,
					container.Envelope(),
					primeUseCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("in"),
					cmd.String("out"),
					fileKey(cmd),
				)
			},
		},
		{
			Name:  "decrypt-file",
			Usage: "Decrypt a file produced by encrypt-file",
			Flags: fileFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunDecryptFile(
					container.Envelope(),
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("in"),
					cmd.String("out"),
					fileKey(cmd),
				)
			},
		},
	}
}
