package utils

import (
	"regexp"
	"testing"
)

func TestNewRefreshTokenShape(t *testing.T) {
	hex64 := regexp.MustCompile(`^[0-9a-f]{64}$`)

	token, err := NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if !hex64.MatchString(token) {
		t.Fatalf("expected 64 hex chars, got %q", token)
	}

	second, err := NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if token == second {
		t.Fatal("two tokens came out identical")
	}
}
