package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-0123456789abcdefghijklmnop"

func newTestManager(t *testing.T, cfg Config) *Manager {
	t.Helper()
	if cfg.Secret == "" {
		cfg.Secret = testSecret
	}
	manager, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	return manager
}

func TestNewManager(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:   "valid config with defaults",
			config: Config{Secret: testSecret},
		},
		{
			name:   "valid config with HS512",
			config: Config{Secret: testSecret, Algorithm: "HS512", Issuer: "test-issuer", TTL: time.Hour},
		},
		{
			name:    "missing secret",
			config:  Config{},
			wantErr: ErrMissingKey,
		},
		{
			name:    "short secret",
			config:  Config{Secret: "short"},
			wantErr: ErrWeakKey,
		},
		{
			name:    "asymmetric algorithm",
			config:  Config{Secret: testSecret, Algorithm: "RS256"},
			wantErr: ErrInvalidSigningMethod,
		},
		{
			name:    "unknown algorithm",
			config:  Config{Secret: testSecret, Algorithm: "XX999"},
			wantErr: ErrInvalidSigningMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, err := NewManager(tt.config)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewManager() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewManager() unexpected error = %v", err)
			}
			if manager == nil {
				t.Error("NewManager() returned nil manager without error")
			}
		})
	}
}

func TestManager_DefaultTTL(t *testing.T) {
	manager := newTestManager(t, Config{})
	if manager.TTL() != 30*time.Minute {
		t.Errorf("TTL() = %v, want 30m", manager.TTL())
	}
}

func TestManager_Sign(t *testing.T) {
	manager := newTestManager(t, Config{Issuer: "test-issuer", TTL: time.Hour})

	before := time.Now().Truncate(time.Second)
	token, err := manager.Sign("user@example.com")
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if token == "" {
		t.Fatal("Sign() returned empty token")
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.Subject != "user@example.com" {
		t.Errorf("Validate() Subject = %v, want user@example.com", claims.Subject)
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("Validate() Issuer = %v, want test-issuer", claims.Issuer)
	}
	if claims.Type != TypeAccess {
		t.Errorf("Validate() Type = %v, want %v", claims.Type, TypeAccess)
	}
	if claims.ID == "" {
		t.Error("Validate() ID is empty")
	}
	exp := claims.ExpiresAt.Time
	if exp.Before(before.Add(time.Hour)) || exp.After(time.Now().Add(time.Hour)) {
		t.Errorf("ExpiresAt = %v, want about one hour from now", exp)
	}
}

func TestManager_Sign_EmptySubject(t *testing.T) {
	manager := newTestManager(t, Config{})
	if _, err := manager.Sign(""); !errors.Is(err, ErrMalformedToken) {
		t.Errorf("Sign(\"\") error = %v, want %v", err, ErrMalformedToken)
	}
}

func TestManager_SignWithTTL_NonPositiveIsRejected(t *testing.T) {
	manager := newTestManager(t, Config{})

	for _, ttl := range []time.Duration{0, -time.Minute} {
		token, err := manager.SignWithTTL("user@example.com", ttl)
		if err != nil {
			t.Fatalf("SignWithTTL(%v) error = %v", ttl, err)
		}

		_, err = manager.Validate(token)
		if !errors.Is(err, ErrExpiredToken) {
			t.Errorf("Validate() ttl=%v error = %v, want %v", ttl, err, ErrExpiredToken)
		}
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate() ttl=%v error = %v, want wrapped %v", ttl, err, ErrInvalidToken)
		}
	}
}

func TestManager_Validate_InvalidToken(t *testing.T) {
	manager := newTestManager(t, Config{})

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user@example.com",
			Issuer:    defaultIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign HS512 token: %v", err)
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user@example.com",
			Issuer:    defaultIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to sign none token: %v", err)
	}

	other := newTestManager(t, Config{Secret: "another-secret-0123456789abcdefghijkl"})
	foreign, err := other.Sign("user@example.com")
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:    "empty token",
			token:   "",
			wantErr: ErrMalformedToken,
		},
		{
			name:    "invalid format",
			token:   "not.a.valid.token",
			wantErr: ErrMalformedToken,
		},
		{
			name:    "malformed token",
			token:   "invalid",
			wantErr: ErrMalformedToken,
		},
		{
			name:    "token with wrong algorithm",
			token:   hs512,
			wantErr: ErrInvalidSigningMethod,
		},
		{
			name:    "unsigned token",
			token:   none,
			wantErr: ErrInvalidSigningMethod,
		},
		{
			name:    "token signed with another secret",
			token:   foreign,
			wantErr: ErrInvalidSignature,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.Validate(tt.token)
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Validate() error = %v, want wrapped %v", err, ErrInvalidToken)
			}
		})
	}
}

func TestManager_Validate_ExpiredToken(t *testing.T) {
	manager := newTestManager(t, Config{TTL: 1 * time.Nanosecond})

	token, err := manager.Sign("user@example.com")
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	_, err = manager.Validate(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Validate() error = %v, want %v", err, ErrExpiredToken)
	}
}

func TestManager_Validate_WrongIssuer(t *testing.T) {
	manager1 := newTestManager(t, Config{Issuer: "issuer-1"})
	manager2 := newTestManager(t, Config{Issuer: "issuer-2"})

	token, err := manager1.Sign("user@example.com")
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	_, err = manager2.Validate(token)
	if err == nil {
		t.Fatal("Validate() expected error for wrong issuer, got nil")
	}
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate() error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestManager_Validate_MissingSubject(t *testing.T) {
	manager := newTestManager(t, Config{})

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Type: TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    defaultIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := manager.Validate(token); !errors.Is(err, ErrMalformedToken) {
		t.Errorf("Validate() error = %v, want %v", err, ErrMalformedToken)
	}
}

func TestManager_Validate_MissingExpiry(t *testing.T) {
	manager := newTestManager(t, Config{})

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "user@example.com",
			Issuer:  defaultIssuer,
		},
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate() error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestManager_RefreshToken(t *testing.T) {
	manager := newTestManager(t, Config{})

	refresh, err := manager.SignRefresh("user@example.com")
	if err != nil {
		t.Fatalf("SignRefresh() error = %v", err)
	}

	claims, err := manager.ValidateRefresh(refresh)
	if err != nil {
		t.Fatalf("ValidateRefresh() error = %v", err)
	}
	if claims.Type != TypeRefresh {
		t.Errorf("Type = %v, want %v", claims.Type, TypeRefresh)
	}
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != RefreshTTL {
		t.Errorf("lifetime = %v, want %v", lifetime, RefreshTTL)
	}

	if _, err := manager.Validate(refresh); !errors.Is(err, ErrWrongTokenType) {
		t.Errorf("Validate(refresh) error = %v, want %v", err, ErrWrongTokenType)
	}

	access, err := manager.Sign("user@example.com")
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if _, err := manager.ValidateRefresh(access); !errors.Is(err, ErrWrongTokenType) {
		t.Errorf("ValidateRefresh(access) error = %v, want %v", err, ErrWrongTokenType)
	}
}
