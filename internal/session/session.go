// Package session issues and verifies the signed tokens that identify an
// authenticated user between requests. A token carries nothing but the user
// ID; no ambient "current user" state exists anywhere in the application.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is the authenticated identity attached to a request context.
type User struct {
	ID string
}

// Claims are the claims carried by a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

type contextKey int

const userKey contextKey = iota

// NewContext returns a context carrying the given user.
func NewContext(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// FromContext extracts the authenticated user from the context.
func FromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(userKey).(*User)
	return u, ok
}

// BuildToken creates a signed session token for the given user ID
// with the given expiration time.
func BuildToken(userID, secret string, expiration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
		},
		UserID: userID,
	})

	return token.SignedString([]byte(secret))
}

// GetUserID extracts the user ID from a session token. An optional
// "Bearer " prefix, as carried by Authorization headers, is accepted.
func GetUserID(tokenString, secret string) (string, error) {
	claims := new(Claims)

	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf(
					"unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	if !token.Valid {
		return "", errors.New("invalid token")
	}

	return claims.UserID, nil
}
