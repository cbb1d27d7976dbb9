package api

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/midaytech/brainloop/internal/models"
)

// ParseToken decodes the identity claims of an API token. The signature
// is not verified; the API does that on every request.
func ParseToken(token string) (models.User, error) {
	claims := jwt.MapClaims{}

	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return models.User{}, fmt.Errorf("decoding token: %w", err)
	}

	var u models.User

	u.Username = claimString(claims, "username", "name")
	u.Email = claimString(claims, "email")
	u.ID = claimString(claims, "id", "userId", "user_id", "sub")

	exp, err := claims.GetExpirationTime()
	if err == nil && exp != nil {
		u.ExpiresAt = exp.Time
	}

	return u, nil
}

// Expired reports whether the user's token has expired at now. Tokens
// without an expiry never expire.
func Expired(u *models.User, now time.Time) bool {
	return !u.ExpiresAt.IsZero() && !now.Before(u.ExpiresAt)
}

func claimString(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		switch v := claims[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}

	return ""
}
