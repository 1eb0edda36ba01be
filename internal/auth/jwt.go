// Package auth issues and checks the optional admin bearer token gating
// destructive endpoints. When no passcode is configured the gate is off
// and the package is unused at runtime.
package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const roleAdmin = "admin"

// Claims is the JWT payload for admin tokens.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ErrBadPasscode is returned when the supplied passcode does not match.
var ErrBadPasscode = errors.New("passcode mismatch")

// IssueAdmin exchanges a correct passcode for a signed HS256 admin token.
func IssueAdmin(passcode, expected, issuer, key string, ttl time.Duration) (string, time.Time, error) {
	if expected == "" || subtle.ConstantTimeCompare([]byte(passcode), []byte(expected)) != 1 {
		return "", time.Time{}, ErrBadPasscode
	}

	exp := time.Now().Add(ttl)
	claims := Claims{
		Role: roleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   roleAdmin,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// Parse validates a token and returns its claims.
func Parse(tokenStr, key, issuer string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(key), nil
	})
	if err != nil {
		return Claims{}, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Claims{}, errors.New("invalid token")
	}
	if issuer != "" && claims.Issuer != issuer {
		return Claims{}, errors.New("issuer mismatch")
	}
	if claims.Role != roleAdmin {
		return Claims{}, errors.New("not an admin token")
	}
	return *claims, nil
}
