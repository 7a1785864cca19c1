package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// OptInTokenBytes yields a 32 character hex token
const OptInTokenBytes = 16

var randomRead = rand.Read

// GenerateRandomToken generates a hex encoded token from length random bytes
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateOptInToken generates a token for a match response link
func GenerateOptInToken() (string, error) {
	return GenerateRandomToken(OptInTokenBytes)
}

// Fingerprint returns the hex sha256 of the joined parts
func Fingerprint(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
