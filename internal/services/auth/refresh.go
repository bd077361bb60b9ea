package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Session ids and refresh tokens are opaque random hex; only access tokens
// are JWTs.
func newOpaqueHex(byteLen int) (string, error) {
	if byteLen <= 0 {
		return "", fmt.Errorf("invalid token size")
	}

	b := make([]byte, byteLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// NewRefreshToken returns a 64-character refresh token.
func NewRefreshToken() (string, error) {
	return newOpaqueHex(32)
}

// NewSessionID returns a 40-character session id.
func NewSessionID() (string, error) {
	return newOpaqueHex(20)
}
