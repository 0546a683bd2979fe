package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SessionTTL is the fixed lifetime of an admin session token.  The cookie
// carrying the token uses the same 24h max-age so both expire together.
const SessionTTL = 24 * time.Hour

// AdminToken represents a signed HS256 session token along with its expiry.
// The Token field contains the JWT string handed to the client inside the
// session cookie; Exp is the UTC expiration time.
type AdminToken struct {
	Token string
	Exp   time.Time
}

// ErrInvalidToken is returned by ParseAdminToken for any token that does
// not verify: bad signature, wrong algorithm, malformed claims or past
// expiry.  Callers never learn which; they all mean "log in again".
var ErrInvalidToken = errors.New("invalid or expired token")

// NewAdminToken builds and signs an HS256 JWT binding the admin username
// and the issuance time.  The token is valid for SessionTTL from issuance.
func NewAdminToken(secret, username string) (AdminToken, error) {
	now := time.Now().UTC()
	exp := now.Add(SessionTTL)
	claims := jwt.MapClaims{
		"username": username,
		"iat":      now.Unix(),
		"exp":      exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AdminToken{}, err
	}
	return AdminToken{Token: signed, Exp: exp}, nil
}

// ParseAdminToken verifies a session token and returns the bound username.
// Verification is a pure function of the token, the secret and the current
// time; no server-side state is consulted.
func ParseAdminToken(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject any signing method other than HMAC to prevent algorithm
		// confusion with the shared secret.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", ErrInvalidToken
	}
	return username, nil
}
