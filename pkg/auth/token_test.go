package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/wellport/wellport-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "wellport-test",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	userID := uuid.New()

	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID: userID,
		Email:  "member@corp.example",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := ParseAccessToken(cfg, signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("user id mismatch: %s", claims.UserID)
	}
	if claims.Email != "member@corp.example" {
		t.Fatalf("email mismatch: %s", claims.Email)
	}
	if claims.ID == "" {
		t.Fatal("jti should be populated")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := cfg
	bad.Secret = "other"
	if _, err := ParseAccessToken(bad, signed); err == nil {
		t.Fatal("expected verification failure")
	}
}

func TestParseAllowExpired(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{UserID: uuid.New(), JTI: "fixed-jti"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatal("expired token should fail strict parse")
	}

	claims, err := ParseAccessTokenAllowExpired(cfg, signed)
	if err != nil {
		t.Fatalf("lenient parse should succeed: %v", err)
	}
	if claims.ID != "fixed-jti" {
		t.Fatalf("jti mismatch: %s", claims.ID)
	}
}

func TestMintRequiresUserID(t *testing.T) {
	t.Parallel()

	if _, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{}); err == nil {
		t.Fatal("expected error for nil user id")
	}
}
