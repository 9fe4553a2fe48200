// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/keywhiz-core/cmd/app/commands"
	"github.com/allisson/keywhiz-core/internal/app"
	"github.com/allisson/keywhiz-core/internal/config"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "app",
		Usage:   "Keywhiz-style secrets storage service",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					logger := container.Logger()
					defer func() {
						if err := container.Shutdown(ctx); err != nil {
							logger.Error("failed to shutdown container", slog.Any("error", err))
						}
					}()
					return commands.RunMigrations(logger, cfg.DBDriver, cfg.DBConnectionString)
				},
			},
			{
				Name:  "create-client",
				Usage: "Create a new client (automation principal or human operator record)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "Client name, matched against the mTLS certificate common name",
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Human-readable description of the client",
					},
					&cli.BoolFlag{
						Name:  "automation",
						Value: true,
						Usage: "Whether this client authenticates via mTLS as an automation principal",
					},
					&cli.StringFlag{
						Name:  "creator",
						Value: "cli",
						Usage: "Name recorded as the creator of this client",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runCreateClient(ctx, cmd)
				},
			},
			{
				Name:  "rotate-root-key",
				Usage: "Generate or rotate the root key used for secret-content envelope encryption",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "id",
						Aliases: []string{"i"},
						Usage:   "Root key ID (defaults to root-key-YYYY-MM-DD)",
					},
					&cli.StringFlag{
						Name:  "kms-provider",
						Usage: "KMS provider (localsecrets, gcpkms, awskms, azurekeyvault, hashivault)",
					},
					&cli.StringFlag{
						Name:  "kms-key-uri",
						Usage: "KMS key URI used to encrypt the generated root key",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunRotateRootKey(
						ctx,
						os.Stdout,
						cmd.String("id"),
						cmd.String("kms-provider"),
						cmd.String("kms-key-uri"),
						os.Getenv("ROOT_KEYS"),
						os.Getenv("ACTIVE_ROOT_KEY_ID"),
					)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}

// runCreateClient wires up the DI container and delegates to commands.RunCreateClient.
func runCreateClient(ctx context.Context, cmd *cli.Command) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer func() {
		if err := container.Shutdown(ctx); err != nil {
			logger.Error("failed to shutdown container", slog.Any("error", err))
		}
	}()

	clientUseCase, err := container.ClientUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize client use case: %w", err)
	}

	return commands.RunCreateClient(
		ctx,
		clientUseCase,
		logger,
		cmd.String("name"),
		cmd.String("description"),
		cmd.Bool("automation"),
		cmd.String("creator"),
		os.Stdout,
	)
}
