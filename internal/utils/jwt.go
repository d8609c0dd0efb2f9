package utils // package utils provides helper functions for hashing and session tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionToken represents a signed JWT session token along with its
// expiry.  Login issues one; admin-gated requests carry it in the
// Authorization header.  There is exactly one token kind: a short-lived
// session token whose subject is the numeric user id.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// ErrInvalidToken is returned by ParseSessionToken for any token that
// fails signature, method or expiry checks, or whose subject is not a
// numeric user id.
var ErrInvalidToken = errors.New("invalid session token")

// NewSessionToken builds and signs an HS256 JWT for a user.  The JWT
// carries standard claims: subject (sub = user id), role, expiration
// (exp) and issued at (iat).
func NewSessionToken(secret string, userID int64, role string, ttlMin int) (SessionToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken validates a raw token string and returns the user id
// it was issued for.  Only HMAC-signed tokens are accepted; anything
// else, including expired tokens, yields ErrInvalidToken.  The role
// claim is deliberately not returned: callers must re-resolve the user
// and read the current role from the store.
func ParseSessionToken(secret, raw string) (int64, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	// JWT numbers decode as float64.
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, ErrInvalidToken
	}
	return int64(sub), nil
}
