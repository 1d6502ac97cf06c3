package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/campushub/identity/internal/common"
	"github.com/campushub/identity/internal/server/models"
)

func testUser() *models.User {
	return &models.User{
		ID:         "user-123",
		Name:       "Ada",
		Email:      "ada@example.com",
		StudentID:  "S-1",
		University: "MIT",
		Role:       "user",
	}
}

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	user := testUser()

	tok, err := GenerateToken(user, secret, 5*time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("userID mismatch: got %q want %q", claims.UserID, user.ID)
	}
	if claims.Email != user.Email || claims.StudentID != user.StudentID {
		t.Fatalf("claims snapshot mismatch: %+v", claims)
	}
	if claims.University != user.University || claims.Role != user.Role || claims.Name != user.Name {
		t.Fatalf("claims snapshot mismatch: %+v", claims)
	}

	exp := claims.ExpiresAt.Time
	if d := time.Until(exp); d < 4*time.Hour+59*time.Minute || d > 5*time.Hour {
		t.Fatalf("expiry horizon off: %v", d)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken(testUser(), secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseToken(tok, secret)
	if err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(testUser(), []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not.a.jwt", []byte("k"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}
