package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Cookie carries the signed cart-session token. The session id keys the
// persisted cart blob; no user identity is attached.
const Cookie = "cartSession"

const tokenTTL = 30 * 24 * time.Hour

func Sign(sessionID string, secret []byte) (string, error) {
	exp := time.Now().Add(tokenTTL)
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": exp.Unix(),
		"typ": "cart",
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// Parse validates a cart-session token and returns the session id.
func Parse(rawToken string, secret []byte) (string, error) {
	t, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !t.Valid {
		return "", fmt.Errorf("invalid cart session token: %w", err)
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("cannot parse claims")
	}
	if typ, ok := claims["typ"]; !ok || typ != "cart" {
		return "", fmt.Errorf("not a cart session token")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", fmt.Errorf("missing session id")
	}
	return sid, nil
}

func NewID() string {
	return uuid.NewString()
}
