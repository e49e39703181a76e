package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GeneratePassword generates a random password for bootstrap admin accounts.
// 16 random bytes, hex encoded (32 chars).
func GeneratePassword() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
