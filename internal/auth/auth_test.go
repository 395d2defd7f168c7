package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !CheckPassword(hash, "s3cret") {
		t.Error("CheckPassword() = false for the right password")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("CheckPassword() = true for a wrong password")
	}
	if CheckPassword("not-a-hash", "s3cret") {
		t.Error("CheckPassword() = true for a malformed hash")
	}
}

func TestNewTokenManager_RejectsNonHMAC(t *testing.T) {
	if _, err := NewTokenManager("secret", "RS256", time.Minute); err == nil {
		t.Error("expected error for RS256")
	}
	if _, err := NewTokenManager("", "HS256", time.Minute); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestTokenManager_IssueVerify(t *testing.T) {
	m, err := NewTokenManager("secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}

	token, err := m.Issue(42)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	userID, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if userID != 42 {
		t.Errorf("Verify() = %d, want 42", userID)
	}
}

func TestTokenManager_VerifyFailures(t *testing.T) {
	m, _ := NewTokenManager("secret", "HS256", time.Hour)
	valid, _ := m.Issue(7)

	expired, _ := NewTokenManager("secret", "HS256", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _ := expired.Issue(7)

	otherSecret, _ := NewTokenManager("other", "HS256", time.Hour)
	foreignToken, _ := otherSecret.Issue(7)

	otherAlg, _ := NewTokenManager("secret", "HS512", time.Hour)
	algToken, _ := otherAlg.Issue(7)

	noneToken, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "7"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "tampered", token: valid + "x"},
		{name: "expired", token: expiredToken},
		{name: "wrong secret", token: foreignToken},
		{name: "wrong algorithm", token: algToken},
		{name: "none algorithm", token: noneToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verify(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}
