package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingSubject is returned for a well-signed token that names no actor.
var ErrMissingSubject = errors.New("token subject missing")

// GenerateJWT signs an HS256 access token for userID. Ledger mutations record the subject as
// their actor, so userID must be non-empty.
func GenerateJWT(userID, secret, issuer string, expiryDuration time.Duration, now time.Time) (string, error) {
	if userID == "" {
		return "", ErrMissingSubject
	}
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT checks the signature, algorithm and time claims of tokenString.
// When issuer is non-empty the iss claim must match it.
func ParseAndValidateJWT(tokenString, secretKey, issuer string) (*jwt.RegisteredClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.NewParser(opts...).ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}
