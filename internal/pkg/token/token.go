package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const sessionIDBytes = 32

// NewSessionID returns 32 random bytes, hex encoded.
func NewSessionID() (string, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// ValidSessionID reports whether s has the shape NewSessionID produces.
func ValidSessionID(s string) bool {
	if len(s) != hex.EncodedLen(sessionIDBytes) {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
