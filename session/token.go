// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The backend signs the token; the client only reads claims, so parsing is
// unverified here. The server remains authoritative on every call.

func parseClaims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// identityFromToken reads userId and username claims for auth responses that
// return only the token.
func identityFromToken(token string) (int64, string, error) {
	claims, err := parseClaims(token)
	if err != nil {
		return 0, "", err
	}

	var userID int64
	switch v := claims["userId"].(type) {
	case float64:
		userID = int64(v)
	case nil:
		return 0, "", errors.New("token missing userId claim")
	}

	username, _ := claims["username"].(string)
	if username == "" {
		return 0, "", errors.New("token missing username claim")
	}

	return userID, username, nil
}

// expired reports whether the token carries an exp claim in the past.
// Tokens without exp are treated as live.
func expired(token string) bool {
	claims, err := parseClaims(token)
	if err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
