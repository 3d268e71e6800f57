package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims bind a token to the user it was issued for.
type Claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

var (
	// ErrTokenInvalid covers a token that parsed but did not validate.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrMissingSubject covers a valid signature over a payload without a user id.
	ErrMissingSubject = errors.New("token has no user id")
)

// IssueToken signs an HS256 token for userID, valid for ttl from now.
func IssueToken(userID int, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyToken checks the signature and structure of tokenString and returns the
// user id it was issued for. The error distinguishes malformed tokens, bad
// signatures, and missing subjects for logging; callers must surface all of
// them as the same unauthorized response.
func VerifyToken(tokenString string, secret []byte) (int, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, ErrTokenInvalid
	}
	if claims.UserID <= 0 {
		return 0, ErrMissingSubject
	}

	return claims.UserID, nil
}
