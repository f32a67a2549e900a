package security

import "encoding/hex"

// TokenSize is the amount of random bytes behind every session token
const TokenSize = 32

// NewSessionToken returns a hex encoded token read from crypto/rand
func NewSessionToken() (string, error) {
	b, err := randBytes(TokenSize)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
