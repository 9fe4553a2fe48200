package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	clientsDomain "github.com/allisson/keywhiz-core/internal/clients/domain"
	clientsUseCase "github.com/allisson/keywhiz-core/internal/clients/usecase"
)

// RunCreateClient registers a new client record. Automation clients authenticate
// later via their mTLS certificate common name matching the client name;
// non-automation clients are operator-facing administrative records.
//
// Requirements: Database must be migrated and accessible.
func RunCreateClient(
	ctx context.Context,
	clientUseCase clientsUseCase.ClientUseCase,
	logger *slog.Logger,
	name string,
	description string,
	automation bool,
	creator string,
	writer io.Writer,
) error {
	logger.Info("creating new client", slog.String("name", name), slog.Bool("automation", automation))

	input := clientsDomain.CreateClientInput{
		Name:        name,
		Description: description,
		Automation:  automation,
		Creator:     creator,
	}

	client, err := clientUseCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	result := map[string]any{
		"id":          client.ID,
		"name":        client.Name,
		"description": client.Description,
		"automation":  client.Automation,
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal client: %w", err)
	}

	_, _ = fmt.Fprintln(writer, string(encoded))

	logger.Info("client created successfully",
		slog.Int64("client_id", client.ID),
		slog.String("name", name),
	)

	return nil
}
