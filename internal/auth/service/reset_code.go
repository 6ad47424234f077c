package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

const resetCodeBytes = 4

// GenerateResetCode returns an 8-character uppercase hexadecimal one-time
// code drawn from the system CSPRNG.
func GenerateResetCode() (string, error) {
	buf := make([]byte, resetCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}
