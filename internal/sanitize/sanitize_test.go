package sanitize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	secretsDomain "github.com/allisson/keywhiz-core/internal/secrets/domain"
)

// validEnvelope decodes to a 36-byte payload (12-byte nonce + 16-byte GCM
// tag + 8-byte plaintext); EnvelopeCiphertextLength accepts any payload of
// at least 28 bytes.
const validEnvelope = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA.kid-1"

func TestSanitize(t *testing.T) {
	now := time.Now().UTC()
	secret := secretsDomain.Secret{
		Series: secretsDomain.SecretSeries{
			ID:          1,
			Name:        "db-password",
			Description: "primary database credential",
			Type:        "Password",
			Metadata:    map[string]string{"env": "prod"},
			CreatedAt:   now,
			CreatedBy:   "alice",
		},
		Content: secretsDomain.SecretContent{
			SecretSeriesID:   1,
			EncryptedContent: validEnvelope,
			Version:          "v1",
			UpdatedAt:        now,
			UpdatedBy:        "bob",
		},
	}

	sanitized, err := Sanitize(secret)
	require.NoError(t, err)

	assert.Equal(t, int64(1), sanitized.ID)
	assert.Equal(t, "db-password", sanitized.Name)
	assert.Equal(t, "primary database credential", sanitized.Description)
	assert.Equal(t, "Password", sanitized.Type)
	assert.Equal(t, map[string]string{"env": "prod"}, sanitized.Metadata)
	assert.Equal(t, "v1", sanitized.Version)
	assert.Equal(t, 8, sanitized.ContentSize)
	assert.Equal(t, now, sanitized.CreatedAt)
	assert.Equal(t, "alice", sanitized.CreatedBy)
	assert.Equal(t, now, sanitized.UpdatedAt)
	assert.Equal(t, "bob", sanitized.UpdatedBy)
}

func TestSanitize_MalformedEnvelope(t *testing.T) {
	secret := secretsDomain.Secret{
		Series:  secretsDomain.SecretSeries{ID: 1, Name: "broken"},
		Content: secretsDomain.SecretContent{EncryptedContent: "not-a-valid-envelope"},
	}

	_, err := Sanitize(secret)
	assert.Error(t, err)
}

func TestSanitizeAll(t *testing.T) {
	now := time.Now().UTC()
	secrets := []secretsDomain.Secret{
		{
			Series:  secretsDomain.SecretSeries{ID: 1, Name: "first", CreatedAt: now},
			Content: secretsDomain.SecretContent{EncryptedContent: validEnvelope, UpdatedAt: now},
		},
		{
			Series:  secretsDomain.SecretSeries{ID: 2, Name: "second", CreatedAt: now},
			Content: secretsDomain.SecretContent{EncryptedContent: validEnvelope, UpdatedAt: now},
		},
	}

	sanitized, err := SanitizeAll(secrets)
	require.NoError(t, err)
	require.Len(t, sanitized, 2)
	assert.Equal(t, "first", sanitized[0].Name)
	assert.Equal(t, "second", sanitized[1].Name)
}

func TestSanitizeAll_ShortCircuitsOnError(t *testing.T) {
	secrets := []secretsDomain.Secret{
		{
			Series:  secretsDomain.SecretSeries{ID: 1, Name: "ok"},
			Content: secretsDomain.SecretContent{EncryptedContent: validEnvelope},
		},
		{
			Series:  secretsDomain.SecretSeries{ID: 2, Name: "broken"},
			Content: secretsDomain.SecretContent{EncryptedContent: "garbage"},
		},
	}

	_, err := SanitizeAll(secrets)
	assert.Error(t, err)
}
