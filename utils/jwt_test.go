package utils

import (
	"strings"
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-for-jwt")

	token, err := GenerateAccessTokenWithExpiry(42, "user", time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	_, claims, err := ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if id, ok := claims["id"].(float64); !ok || uint(id) != 42 {
		t.Errorf("id claim = %v", claims["id"])
	}
	if role, _ := claims["role"].(string); role != "user" {
		t.Errorf("role claim = %v", claims["role"])
	}
}

func TestAccessTokenExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-for-jwt")

	token, err := GenerateAccessTokenWithExpiry(1, "user", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, _, err := ValidateAccessToken(token); err == nil || !strings.Contains(err.Error(), "expired") {
		t.Fatalf("expected expired error, got %v", err)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-for-jwt")
	token, err := GenerateAccessToken(1, "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	t.Setenv("JWT_SECRET", "a-different-secret")
	if _, _, err := ValidateAccessToken(token); err == nil {
		t.Fatal("expected validation failure with wrong secret")
	}
}

func TestAccessTokenAudiencePinning(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-for-jwt")
	t.Setenv("JWT_AUD", "taskvine-app")

	token, err := GenerateAccessToken(7, "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, _, err := ValidateAccessToken(token); err != nil {
		t.Fatalf("matching audience should pass: %v", err)
	}

	t.Setenv("JWT_AUD", "some-other-app")
	if _, _, err := ValidateAccessToken(token); err == nil {
		t.Fatal("expected audience mismatch to fail")
	}
}
