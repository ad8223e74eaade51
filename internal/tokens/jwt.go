package tokens

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionExpiry extracts the exp claim from a backend session JWT.
//
// The signature is NOT verified; the backend is the authority on validity and
// the client only needs the timestamp to know when to re-prompt for login.
// Returns a zero time if the token carries no exp claim.
func SessionExpiry(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()

	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse session token: %w", err)
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}
