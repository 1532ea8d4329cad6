package utils

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// NewRefreshToken returns the opaque token stored in the sessions table.
// Access tokens are signed JWTs minted by the user service; refresh tokens
// are plain random bytes.
func NewRefreshToken() (string, error) {
	b := make([]byte, 32)

	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", b), nil
}
