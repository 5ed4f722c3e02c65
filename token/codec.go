// Package token encodes and verifies the HS256 bearer tokens issued at login.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrVerification is wrapped by every Decode failure.
	ErrVerification = errors.New("token verification failed")
	// ErrMalformedClaims is returned when claims are missing an id or role.
	ErrMalformedClaims = errors.New("malformed claims")
	// ErrInvalidConfig is returned by NewCodec for unusable settings.
	ErrInvalidConfig = errors.New("invalid token codec config")
)

// Claims is the token payload. Registered claims are only populated when the
// codec is configured with a TTL or an issuer, so a default token carries just
// {"id","role"}.
type Claims struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) wellFormed() bool {
	return c.ID > 0 && c.Role != ""
}

// Config configures a Codec.
type Config struct {
	Secret []byte
	// TTL adds exp/iat claims when positive. Zero issues non-expiring tokens.
	TTL    time.Duration
	Issuer string
	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}

// Codec signs and verifies tokens with a single shared secret.
// It holds no mutable state and is safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
	parser *jwt.Parser
}

// NewCodec validates cfg and returns a ready Codec.
func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.Secret) == 0 {
		return nil, fmt.Errorf("%w: secret is required", ErrInvalidConfig)
	}
	if cfg.TTL < 0 {
		return nil, fmt.Errorf("%w: ttl must not be negative", ErrInvalidConfig)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(now),
	}
	if cfg.TTL > 0 {
		opts = append(opts, jwt.WithExpirationRequired())
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)

	return &Codec{
		secret: secret,
		ttl:    cfg.TTL,
		issuer: cfg.Issuer,
		now:    now,
		parser: jwt.NewParser(opts...),
	}, nil
}

// Encode signs id and role into a compact token.
func (c *Codec) Encode(id int64, role string) (string, error) {
	claims := Claims{ID: id, Role: role}
	if !claims.wellFormed() {
		return "", ErrMalformedClaims
	}

	if c.ttl > 0 {
		now := c.now()
		claims.IssuedAt = jwt.NewNumericDate(now)
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))
	}
	if c.issuer != "" {
		claims.Issuer = c.issuer
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature, algorithm and registered claims of raw and
// returns its payload. Every failure wraps ErrVerification.
func (c *Codec) Decode(raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := c.parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerification, err)
	}
	if !tok.Valid {
		return nil, ErrVerification
	}
	if !claims.wellFormed() {
		return nil, fmt.Errorf("%w: %w", ErrVerification, ErrMalformedClaims)
	}
	return claims, nil
}
