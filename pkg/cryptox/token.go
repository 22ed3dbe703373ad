package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// SecretSize256 provides 256 bits of entropy (43 chars base64url).
const SecretSize256 = 32

// GenerateSecret creates a cryptographically secure random secret of the
// specified byte length, returned as a base64url-encoded string (URL-safe,
// no padding). Used when no signing secret is configured; tokens signed
// with a generated secret do not survive a restart.
func GenerateSecret(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("secret size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random secret: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
