package dto

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	secretsDomain "github.com/allisson/keywhiz-core/internal/secrets/domain"
)

func newTestSecret(now time.Time) *secretsDomain.Secret {
	return &secretsDomain.Secret{
		Series: secretsDomain.SecretSeries{
			ID:          1,
			Name:        "database/password",
			Description: "prod db password",
			Type:        "password",
			Metadata:    map[string]string{"owner": "team-a"},
			CreatedAt:   now,
			CreatedBy:   "alice",
		},
		Content: secretsDomain.SecretContent{
			ID:        10,
			Version:   "v1",
			UpdatedAt: now,
			UpdatedBy: "alice",
		},
	}
}

func TestMapSecretToResponse(t *testing.T) {
	t.Run("Success_MapAllFieldsExcludingValue", func(t *testing.T) {
		now := time.Now().UTC()
		secret := newTestSecret(now)

		response := MapSecretToResponse(secret)

		assert.Equal(t, int64(1), response.ID)
		assert.Equal(t, "database/password", response.Name)
		assert.Equal(t, "v1", response.Version)
		assert.Equal(t, "prod db password", response.Description)
		assert.Empty(t, response.Value)
		assert.Equal(t, now, response.CreatedAt)
	})
}

func TestMapSecretToGetResponse(t *testing.T) {
	t.Run("Success_MapAllFieldsIncludingValue", func(t *testing.T) {
		now := time.Now().UTC()
		secret := newTestSecret(now)
		plaintext := []byte("super-secret-value")

		response := MapSecretToGetResponse(secret, plaintext)

		assert.Equal(t, int64(1), response.ID)
		assert.Equal(t, "database/password", response.Name)
		assert.Equal(t, "v1", response.Version)
		assert.Equal(t, base64.StdEncoding.EncodeToString(plaintext), response.Value)

		decoded, err := base64.StdEncoding.DecodeString(response.Value)
		assert.NoError(t, err)
		assert.Equal(t, plaintext, decoded)
	})

	t.Run("Success_EmptyPlaintext", func(t *testing.T) {
		now := time.Now().UTC()
		secret := newTestSecret(now)

		response := MapSecretToGetResponse(secret, []byte{})

		assert.Empty(t, response.Value)
	})

	t.Run("Success_BinaryData", func(t *testing.T) {
		now := time.Now().UTC()
		secret := newTestSecret(now)
		binaryData := []byte{0x00, 0x01, 0x02, 0xFF, 0xFE, 0xFD}

		response := MapSecretToGetResponse(secret, binaryData)

		expectedBase64 := base64.StdEncoding.EncodeToString(binaryData)
		assert.Equal(t, expectedBase64, response.Value)

		decoded, err := base64.StdEncoding.DecodeString(response.Value)
		assert.NoError(t, err)
		assert.Equal(t, binaryData, decoded)
	})
}
