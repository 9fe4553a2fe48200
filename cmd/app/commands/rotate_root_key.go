package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"time"

	cryptoService "github.com/allisson/keywhiz-core/internal/crypto/service"
)

// RunRotateRootKey generates a new root key for the envelope encryption
// scheme (spec.md §4.1) and prints the ROOT_KEYS/ACTIVE_ROOT_KEY_ID
// environment variables to configure. When existingRootKeys is empty this
// bootstraps the first root key; otherwise the new key is appended so
// envelopes tagged with the old kid remain decryptable after rotation.
//
// When kmsProvider/kmsKeyURI are set, the generated key is encrypted with
// KMS before being printed; otherwise it is emitted as plaintext base64,
// suitable only for local development.
func RunRotateRootKey(
	ctx context.Context,
	writer io.Writer,
	keyID string,
	kmsProvider string,
	kmsKeyURI string,
	existingRootKeys string,
	existingActiveKeyID string,
) error {
	if keyID == "" {
		keyID = fmt.Sprintf("root-key-%s", time.Now().Format("2006-01-02"))
	}

	rootKey := make([]byte, 32)
	if _, err := rand.Read(rootKey); err != nil {
		return fmt.Errorf("failed to generate root key: %w", err)
	}
	defer func() {
		for i := range rootKey {
			rootKey[i] = 0
		}
	}()

	var encodedKey string
	if kmsProvider != "" {
		if kmsKeyURI == "" {
			return fmt.Errorf("--kms-key-uri is required when --kms-provider is set")
		}

		kmsService := cryptoService.NewKMSService()
		keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
		if err != nil {
			return fmt.Errorf("failed to open KMS keeper: %w", err)
		}
		defer func() {
			if closeErr := keeper.Close(); closeErr != nil {
				_, _ = fmt.Fprintf(writer, "Warning: failed to close KMS keeper: %v\n", closeErr)
			}
		}()

		encrypter, ok := keeper.(interface {
			Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
		})
		if !ok {
			return fmt.Errorf("KMS keeper does not support encryption")
		}

		ciphertext, err := encrypter.Encrypt(ctx, rootKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt root key with KMS: %w", err)
		}
		encodedKey = base64.StdEncoding.EncodeToString(ciphertext)

		_, _ = fmt.Fprintln(writer, "# KMS mode: root key encrypted before being written out")
		_, _ = fmt.Fprintf(writer, "# KMS provider: %s\n", kmsProvider)
	} else {
		encodedKey = base64.StdEncoding.EncodeToString(rootKey)
		_, _ = fmt.Fprintln(writer, "# Plaintext mode: for local development only")
	}
	_, _ = fmt.Fprintln(writer)

	newRootKeys := fmt.Sprintf("%s:%s", keyID, encodedKey)
	if existingRootKeys != "" {
		newRootKeys = fmt.Sprintf("%s,%s", strings.TrimRight(existingRootKeys, ","), newRootKeys)
	}

	_, _ = fmt.Fprintln(writer, "# Root Key Configuration")
	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(writer)
	if kmsProvider != "" {
		_, _ = fmt.Fprintf(writer, "KMS_PROVIDER=\"%s\"\n", kmsProvider)
		_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	}
	_, _ = fmt.Fprintf(writer, "ROOT_KEYS=\"%s\"\n", newRootKeys)
	_, _ = fmt.Fprintf(writer, "ACTIVE_ROOT_KEY_ID=\"%s\"\n", keyID)

	if existingRootKeys != "" {
		_, _ = fmt.Fprintln(writer)
		_, _ = fmt.Fprintln(writer, "# Rotation workflow:")
		_, _ = fmt.Fprintln(writer, "# 1. Update the above environment variables and restart the application")
		_, _ = fmt.Fprintf(
			writer,
			"# 2. Previous active key %q remains in ROOT_KEYS so existing envelopes stay decryptable\n",
			existingActiveKeyID,
		)
		_, _ = fmt.Fprintln(writer, "# 3. Once no envelope references the old kid, drop it from ROOT_KEYS")
	}

	return nil
}
