package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	clientsDomain "github.com/allisson/keywhiz-core/internal/clients/domain"
	clientsMocks "github.com/allisson/keywhiz-core/internal/clients/http/mocks"
)

func TestRunCreateClient(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("success-automation", func(t *testing.T) {
		mockUseCase := &clientsMocks.MockClientUseCase{}
		input := clientsDomain.CreateClientInput{
			Name:        "payments-service",
			Description: "payments team automation client",
			Automation:  true,
			Creator:     "cli",
		}
		client := &clientsDomain.Client{
			ID:          1,
			Name:        input.Name,
			Description: input.Description,
			Automation:  true,
		}

		mockUseCase.On("Create", ctx, input).Return(client, nil)

		var out bytes.Buffer
		err := RunCreateClient(
			ctx,
			mockUseCase,
			logger,
			input.Name,
			input.Description,
			input.Automation,
			input.Creator,
			&out,
		)

		require.NoError(t, err)
		require.Contains(t, out.String(), "payments-service")
		require.Contains(t, out.String(), `"automation": true`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("error-name-conflict", func(t *testing.T) {
		mockUseCase := &clientsMocks.MockClientUseCase{}
		input := clientsDomain.CreateClientInput{
			Name:       "existing-client",
			Automation: true,
			Creator:    "cli",
		}

		mockUseCase.On("Create", ctx, input).Return(nil, clientsDomain.ErrNameConflict)

		var out bytes.Buffer
		err := RunCreateClient(ctx, mockUseCase, logger, input.Name, "", true, "cli", &out)

		require.Error(t, err)
		require.ErrorIs(t, err, clientsDomain.ErrNameConflict)
		mockUseCase.AssertExpectations(t)
	})
}
