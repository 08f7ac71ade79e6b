package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"

	DefaultTTL       = 30 * time.Minute
	RefreshTTL       = 7 * 24 * time.Hour
	DefaultAlgorithm = "HS256"
	MinSecretLength  = 32

	defaultIssuer = "translation-practice"
)

// Claims carries the subject (the user's email) and the token type on top of
// the registered claims.
type Claims struct {
	Type string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// Manager issues and validates HMAC-signed bearer tokens. It holds no
// per-token state: validity is signature plus expiry.
type Manager struct {
	secret []byte
	method jwt.SigningMethod
	issuer string
	ttl    time.Duration
	parser *jwt.Parser
}

// Config configures a Manager.
type Config struct {
	// Secret is the shared HMAC key, at least MinSecretLength bytes.
	Secret string
	// Algorithm is one of HS256, HS384, HS512. Defaults to HS256.
	Algorithm string
	// Issuer is written to and required in every token.
	Issuer string
	// TTL is the access token lifetime. Defaults to 30 minutes.
	TTL time.Duration
}

// NewManager validates cfg and returns a token manager.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("%w: jwt secret is required", ErrMissingKey)
	}
	if len(cfg.Secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: minimum of %d bytes", ErrWeakKey, MinSecretLength)
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = DefaultAlgorithm
	}
	if cfg.Issuer == "" {
		cfg.Issuer = defaultIssuer
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}

	method, ok := jwt.GetSigningMethod(cfg.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidSigningMethod, cfg.Algorithm)
	}

	return &Manager{
		secret: []byte(cfg.Secret),
		method: method,
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		parser: jwt.NewParser(
			jwt.WithExpirationRequired(),
			jwt.WithIssuer(cfg.Issuer),
		),
	}, nil
}

// TTL reports the access token lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Sign issues an access token for subject with the configured lifetime.
func (m *Manager) Sign(subject string) (string, error) {
	return m.SignWithTTL(subject, m.ttl)
}

// SignWithTTL issues an access token expiring ttl from now. A ttl of zero or
// less yields a token that is already expired.
func (m *Manager) SignWithTTL(subject string, ttl time.Duration) (string, error) {
	return m.sign(subject, TypeAccess, ttl)
}

// SignRefresh issues a long-lived refresh token. Refresh tokens are rejected
// by Validate.
func (m *Manager) SignRefresh(subject string) (string, error) {
	return m.sign(subject, TypeRefresh, RefreshTTL)
}

func (m *Manager) sign(subject, typ string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrMalformedToken)
	}

	now := time.Now()
	claims := Claims{
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(m.method, claims)
	return token.SignedString(m.secret)
}

// Validate verifies an access token and returns its claims.
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type == TypeRefresh {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrWrongTokenType)
	}
	return claims, nil
}

// ValidateRefresh verifies a refresh token and returns its claims.
func (m *Manager) ValidateRefresh(tokenString string) (*Claims, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != TypeRefresh {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrWrongTokenType)
	}
	return claims, nil
}

func (m *Manager) parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrMalformedToken)
	}

	claims := &Claims{}
	token, err := m.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != m.method.Alg() {
			return nil, fmt.Errorf("%w: expected %s, got %v", ErrInvalidSigningMethod, m.method.Alg(), token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: %w: missing subject", ErrInvalidToken, ErrMalformedToken)
	}

	return claims, nil
}

// classify maps library errors onto this package's sentinels.
func classify(err error) error {
	switch {
	case errors.Is(err, ErrInvalidSigningMethod):
		return fmt.Errorf("%w: %w", ErrInvalidToken, ErrInvalidSigningMethod)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrInvalidToken, ErrExpiredToken)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrInvalidToken, ErrInvalidSignature)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", ErrInvalidToken, ErrMalformedToken)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
}
