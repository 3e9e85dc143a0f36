package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every token decode failure: bad signature, algorithm
// mismatch, malformed structure or expiry.
var ErrInvalidToken = errors.New("invalid token")

// TokenClaims is the verified identity claim carried inside a token. It only
// exists in memory; nothing is persisted server-side.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// TokenCodec issues and verifies signed, expiring identity tokens using a
// process-wide HMAC secret.
type TokenCodec struct {
	secret []byte
	method jwt.SigningMethod
}

// NewTokenCodec builds a codec for the given secret and HMAC algorithm name
// (HS256, HS384 or HS512).
func NewTokenCodec(secret, algorithm string) (*TokenCodec, error) {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("auth: unsupported signing algorithm %q", algorithm)
	}
	return &TokenCodec{secret: []byte(secret), method: method}, nil
}

// Issue signs a claim for subject expiring ttl from now.
func (c *TokenCodec) Issue(subject string, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies signature, algorithm and expiry before exposing any claim
// field. All failures collapse into ErrInvalidToken.
func (c *TokenCodec) Decode(token string) (TokenClaims, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid || claims.ExpiresAt == nil {
		return TokenClaims{}, ErrInvalidToken
	}
	return TokenClaims{Subject: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, nil
}
