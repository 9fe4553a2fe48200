// Package domain defines the core domain models for secret series and
// content revisions.
//
// # Secret Versioning Model
//
// A SecretSeries is the stable identity of a named secret; a SecretContent
// is one immutable ciphertext revision of that series, distinguished by a
// version token (the empty string is a valid, distinct version denoting the
// unversioned revision). A series may have any number of content rows; it
// is deleted only by an explicit series-delete, which cascades to every
// content row it owns.
//
// Secret is the read-model join of exactly one SecretSeries with exactly
// one SecretContent, used to carry a fully-resolved (series + selected
// revision) result out of the controller. Decryption of its content is
// lazy: Plaintext is populated only when Decrypt is called.
package domain

import "time"

// SecretSeries is the identity of a named secret over time.
type SecretSeries struct {
	ID                int64
	Name              string
	Description       string
	Type              string
	GenerationOptions map[string]string
	Metadata          map[string]string
	CreatedAt         time.Time
	CreatedBy         string
	UpdatedAt         time.Time
	UpdatedBy         string
}

// SecretContent is one immutable ciphertext revision of a series.
type SecretContent struct {
	ID               int64
	SecretSeriesID   int64
	EncryptedContent string
	Version          string
	CreatedAt        time.Time
	CreatedBy        string
	UpdatedAt        time.Time
	UpdatedBy        string
}

// Secret is the derived join of one SecretSeries with one SecretContent. It
// carries decrypted plaintext only transiently, and only after Decrypt has
// been called on it.
type Secret struct {
	Series  SecretSeries
	Content SecretContent

	plaintext []byte
	decrypted bool
}

// Decrypter opens a secret's encrypted content, binding name as AAD.
type Decrypter interface {
	Open(name string, envelope string) ([]byte, error)
}

// Decrypt lazily decrypts the secret's content exactly once per Secret
// value, using the owning series' name as AAD. Subsequent calls return the
// cached plaintext without invoking dec again.
func (s *Secret) Decrypt(dec Decrypter) ([]byte, error) {
	if s.decrypted {
		return s.plaintext, nil
	}
	plaintext, err := dec.Open(s.Series.Name, s.Content.EncryptedContent)
	if err != nil {
		return nil, err
	}
	s.plaintext = plaintext
	s.decrypted = true
	return plaintext, nil
}

// DisplayName renders the "name..version" composite used by CLI-facing
// surfaces. Empty version still yields a trailing "..".
func DisplayName(name, version string) string {
	return name + ".." + version
}

// ParseDisplayName splits a "name..version" composite produced by
// DisplayName, splitting on the last occurrence of "..". ok is false if no
// ".." delimiter is present.
func ParseDisplayName(displayName string) (name, version string, ok bool) {
	idx := lastIndexDoubleDot(displayName)
	if idx < 0 {
		return "", "", false
	}
	return displayName[:idx], displayName[idx+2:], true
}

func lastIndexDoubleDot(s string) int {
	for i := len(s) - 2; i >= 0; i-- {
		if s[i] == '.' && s[i+1] == '.' {
			return i
		}
	}
	return -1
}
