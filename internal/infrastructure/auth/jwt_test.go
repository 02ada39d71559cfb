package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/Sharans23/LenDenClub/internal/domain"
)

func testAccount() *domain.Account {
	return &domain.Account{ID: 7, Username: "alice"}
}

func TestGenerateAndVerify(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour)

	token, err := mgr.Generate(testAccount())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := mgr.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("Username = %q, want alice", claims.Username)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	mgr := NewJWTManager("test-secret", -time.Minute)

	token, err := mgr.Generate(testAccount())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	_, err = mgr.Verify(token)
	if !errors.Is(err, domain.ErrExpiredToken) {
		t.Errorf("err = %v, want ErrExpiredToken", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("other-secret", time.Hour)

	token, err := mgr.Generate(testAccount())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	_, err = other.Verify(token)
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour)

	_, err := mgr.Verify("not-a-token")
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}
