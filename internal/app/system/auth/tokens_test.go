package auth_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/tasktracker/internal/app/system/auth"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const testSecret = "test-jwt-secret-must-be-32-chars-long"

func newTestTokens(t *testing.T) *auth.TokenManager {
	t.Helper()
	tm, err := auth.NewTokenManager(testSecret, "tasktracker-test", 24*time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}
	return tm
}

func testUser() auth.SessionUser {
	return auth.SessionUser{
		ID:    primitive.NewObjectID().Hex(),
		Email: "jane@example.com",
		Roles: []string{"user", "manager"},
	}
}

func TestNewTokenManager_EmptySecret(t *testing.T) {
	if _, err := auth.NewTokenManager("", "x", time.Hour, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestNewTokenManager_DefaultTTL(t *testing.T) {
	tm, err := auth.NewTokenManager(testSecret, "x", 0, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}
	if tm.TTL() != auth.DefaultTokenTTL {
		t.Errorf("TTL() = %v, want %v", tm.TTL(), auth.DefaultTokenTTL)
	}
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	tm := newTestTokens(t)
	u := testUser()

	tok, exp, err := tm.Issue(u)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if time.Until(exp) < 23*time.Hour {
		t.Errorf("expiry too soon: %v", exp)
	}

	got, err := tm.Verify(tok)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if got.ID != u.ID || got.Email != u.Email {
		t.Errorf("Verify() = %+v, want %+v", got, u)
	}
	if len(got.Roles) != 2 || got.Roles[0] != "user" || got.Roles[1] != "manager" {
		t.Errorf("roles = %v", got.Roles)
	}
}

func TestVerify_ExpiryWindow(t *testing.T) {
	tm := newTestTokens(t)
	issuedAt := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	tm.SetClock(func() time.Time { return issuedAt })
	tok, _, err := tm.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tm.SetClock(func() time.Time { return issuedAt.Add(23*time.Hour + 59*time.Minute) })
	if _, err := tm.Verify(tok); err != nil {
		t.Errorf("token should still be valid at T+23h59m: %v", err)
	}

	tm.SetClock(func() time.Time { return issuedAt.Add(24*time.Hour + time.Minute) })
	if _, err := tm.Verify(tok); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("token should be rejected at T+24h01m, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	tm := newTestTokens(t)
	other, err := auth.NewTokenManager("another-secret-that-is-32-chars-long!", "tasktracker-test", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}

	tok, _, err := other.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := tm.Verify(tok); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_WrongIssuer(t *testing.T) {
	tm := newTestTokens(t)
	other, err := auth.NewTokenManager(testSecret, "someone-else", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}

	tok, _, err := other.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := tm.Verify(tok); err == nil {
		t.Error("expected issuer mismatch to fail")
	}
}

func TestVerify_RejectsNoneAlg(t *testing.T) {
	tm := newTestTokens(t)
	claims := auth.Claims{
		UserID: primitive.NewObjectID().Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "tasktracker-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none failed: %v", err)
	}
	if _, err := tm.Verify(tok); err == nil {
		t.Error("expected alg=none token to be rejected")
	}
}

func TestVerify_MalformedUserID(t *testing.T) {
	tm := newTestTokens(t)
	u := testUser()
	u.ID = "not-an-object-id"

	tok, _, err := tm.Issue(u)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := tm.Verify(tok); err == nil {
		t.Error("expected malformed user id to be rejected")
	}
}

func TestVerify_Garbage(t *testing.T) {
	tm := newTestTokens(t)
	if _, err := tm.Verify(strings.Repeat("x", 40)); err == nil {
		t.Error("expected garbage token to be rejected")
	}
}

func TestPassword_HashAndCheck(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plain password")
	}
	if err := auth.CheckPassword(hash, "s3cret-pass"); err != nil {
		t.Errorf("CheckPassword(correct) = %v", err)
	}
	if err := auth.CheckPassword(hash, "wrong"); !errors.Is(err, auth.ErrPasswordMismatch) {
		t.Errorf("CheckPassword(wrong) = %v, want ErrPasswordMismatch", err)
	}
}

func TestHashPassword_ByteLimit(t *testing.T) {
	if _, err := auth.HashPassword(strings.Repeat("€", 72)); !errors.Is(err, auth.ErrPasswordTooLong) {
		t.Errorf("HashPassword(216 bytes) = %v, want ErrPasswordTooLong", err)
	}
	if !auth.PasswordTooLong(strings.Repeat("a", 73)) {
		t.Error("73 bytes should be too long")
	}
	if auth.PasswordTooLong(strings.Repeat("a", 72)) {
		t.Error("72 bytes should be accepted")
	}
}
