// Package auth implements the stateless token service: HS256-signed JWTs
// carrying a snapshot of the account's identity at issuance time.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/campushub/identity/internal/common"
	"github.com/campushub/identity/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed payload embedded in every access token. The identity
// fields are denormalized at issuance; a role change after issuance is not
// reflected until the token expires (the re-resolving gate exists for routes
// that cannot tolerate that staleness).
type Claims struct {
	jwt.RegisteredClaims
	UserID     string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	StudentID  string `json:"studentId"`
	University string `json:"university"`
	Role       string `json:"role"`
}

// GenerateToken signs a token for the given account, expiring
// validityDuration after issuance.
func GenerateToken(user *models.User, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID:     user.ID,
		Name:       user.Name,
		Email:      user.Email,
		StudentID:  user.StudentID,
		University: user.University,
		Role:       user.Role,
	})

	return token.SignedString(secretKey)
}

// ParseToken verifies the signature and expiry of tokenString and returns its
// claims. Expired tokens yield common.ErrTokenExpired; any other failure
// (bad signature, malformed token, unexpected algorithm) yields
// common.ErrInvalidToken. There is no partial validation.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
