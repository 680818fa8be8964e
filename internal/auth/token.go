package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers malformed, tampered and expired session tokens.
// Callers that treat an invalid session as anonymous should not distinguish
// further.
var ErrInvalidToken = errors.New("invalid session token")

// Claims is the session token payload: the owning account and its profile,
// plus the registered iat/exp claims.
type Claims struct {
	jwt.RegisteredClaims
	AccountID int64 `json:"accountId"`
	ProfileID int64 `json:"profileId"`
}

// GenerateToken signs a session token for the given identity. The expiry is
// embedded in the token; nothing is tracked server-side.
func GenerateToken(accountID, profileID int64, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		AccountID: accountID,
		ProfileID: profileID,
	})
	return token.SignedString(secret)
}

// ParseToken verifies signature and expiry and returns the claims.
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
