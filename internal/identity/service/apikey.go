package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const apiKeySecretBytes = 32

// generateAPIKey derives a non-expiring client key of the form
// pk_<org>_<base64url secret>. The secret is 32 cryptographically random
// bytes, so collisions are negligible.
func generateAPIKey(orgSlug string) (string, error) {
	secret := make([]byte, apiKeySecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	return fmt.Sprintf("pk_%s_%s", orgSlug, base64.RawURLEncoding.EncodeToString(secret)), nil
}
