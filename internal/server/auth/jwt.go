// Package auth issues and checks the portal's access tokens.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/tixgo/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard claims (sub, iat, exp) and the user's role.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

func GenerateToken(subject, role string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Role: role,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies tokenString and returns its claims. An expired
// token yields shared.ErrorTokenExpired; anything else that is wrong
// yields shared.ErrorInvalidToken. The subject is not checked here.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, shared.ErrorTokenExpired
		}
		return nil, shared.ErrorInvalidToken
	}

	if !token.Valid {
		return nil, shared.ErrorInvalidToken
	}

	return claims, nil
}
