package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/allisson/keywhiz-core/internal/sanitize"
	"github.com/allisson/keywhiz-core/internal/secrets/http/dto"
)

func TestMapSanitizedSecretsToListResponse(t *testing.T) {
	now := time.Now().UTC()
	secrets := []sanitize.SanitizedSecret{
		{ID: 1, Name: "test/1", Version: "v1", ContentSize: 10, CreatedAt: now},
		{ID: 2, Name: "test/2", Version: "v2", ContentSize: 20, CreatedAt: now},
	}

	response := dto.MapSanitizedSecretsToListResponse(secrets)

	assert.Len(t, response.Data, 2)
	assert.Equal(t, secrets[0].ID, response.Data[0].ID)
	assert.Equal(t, secrets[0].Name, response.Data[0].Name)
	assert.Equal(t, secrets[0].Version, response.Data[0].Version)
	assert.Equal(t, secrets[0].ContentSize, response.Data[0].ContentSize)
	assert.Equal(t, secrets[0].CreatedAt, response.Data[0].CreatedAt)

	assert.Equal(t, secrets[1].ID, response.Data[1].ID)
	assert.Equal(t, secrets[1].Name, response.Data[1].Name)
}
