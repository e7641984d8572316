package security_test

import (
	"strings"
	"testing"

	"github.com/wellport/wellport-backend/pkg/config"
	"github.com/wellport/wellport-backend/pkg/security"
)

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    32768,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := security.HashPassword("hunter2!", testPasswordConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format %q", hash)
	}

	ok, err := security.VerifyPassword("hunter2!", hash)
	if err != nil || !ok {
		t.Fatalf("expected password to verify, ok=%v err=%v", ok, err)
	}

	ok, err = security.VerifyPassword("wrong", hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("wrong password must not verify")
	}
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	t.Parallel()

	if _, err := security.VerifyPassword("x", "not-a-hash"); err != security.ErrInvalidHash {
		t.Fatalf("expected ErrInvalidHash, got %v", err)
	}
}

func TestGenerateOfflineCode(t *testing.T) {
	t.Parallel()

	code, err := security.GenerateOfflineCode(8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(code) != 8 {
		t.Fatalf("expected 8 chars, got %q", code)
	}
	if strings.ContainsAny(code, "01IO") {
		t.Fatalf("code contains ambiguous glyphs: %q", code)
	}

	other, err := security.GenerateOfflineCode(8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code == other {
		t.Fatal("two generated codes should differ")
	}
}
