package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the session identity. Role is included for quick checks,
// but the DB row is the source of truth on every request.
type Claims struct {
	AccountID string `json:"account_id"`
	Role      string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// GenerateJWT signs a session token for an authenticated account.
func GenerateJWT(accountID, role, secretKey string, expiryMinutes int) (string, error) {
	if secretKey == "" {
		return "", errors.New("jwt secret key is empty")
	}
	now := time.Now()
	claims := &Claims{
		AccountID: accountID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiryMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "elite-fire-ledger",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secretKey))
}

// ValidateJWT parses, validates, and returns claims from a token string.
func ValidateJWT(tokenString, secretKey string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("token string is empty")
	}
	if secretKey == "" {
		return nil, errors.New("jwt secret key is empty")
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token has expired")
		}
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return nil, errors.New("token signature is invalid")
		}
		return nil, fmt.Errorf("could not parse token: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.AccountID == "" {
		return nil, errors.New("account_id claim is missing")
	}
	return claims, nil
}
