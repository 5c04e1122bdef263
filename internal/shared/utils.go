package shared

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// SecretKeySize is the number of random bytes in a generated signing key.
const SecretKeySize = 32

// GenerateSecretKey returns a hex-encoded random HMAC key for signing
// access tokens when none is configured.
func GenerateSecretKey() (string, error) {
	b := make([]byte, SecretKeySize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// WipePassword zeroes a plaintext password once it has been hashed or
// compared. A nil slice is left alone.
func WipePassword(password []byte) {
	clear(password)
}
