package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/projectdesk/projectdesk/internal/model"
)

// Token verification errors. Callers treat both the same way: the request
// is unauthenticated.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims are the JWT claims carried by issued tokens. Subject holds the
// user ID; Role is the user's role at issuance time.
type Claims struct {
	jwt.RegisteredClaims
	Role model.Role `json:"role"`
}

// Tokens issues and verifies signed bearer tokens. The signing key is
// process-wide configuration loaded once at startup and never logged.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
}

// NewTokens creates a token issuer/verifier with the given HMAC secret
// and token lifetime. Parsing is strict: only HS256 is accepted, and
// non-canonical base64 is rejected so any alteration of the signature,
// including its padding bits, fails verification.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
		parser: jwt.NewParser(
			jwt.WithStrictDecoding(),
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		),
	}
}

// Issue signs a new token for the given user ID and role.
func (t *Tokens) Issue(userID string, role model.Role) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		Role: role,
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a token string, returning its claims.
// Expired tokens yield ErrTokenExpired; everything else that fails
// validation (malformed input, bad signature, wrong algorithm, missing
// subject) yields ErrInvalidToken.
func (t *Tokens) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := t.parser.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
