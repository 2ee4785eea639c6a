package auth

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/listenupapp/colorhash/internal/id"
)

const (
	tokenIssuer   = "colorhash-server"
	tokenAudience = "colorhash-admin"

	// ScopePresetsWrite allows creating, updating and deleting presets.
	ScopePresetsWrite = "presets:write"
)

var (
	// ErrInvalidToken covers malformed, forged and expired tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingScope is returned for a valid token that lacks the scope.
	ErrMissingScope = errors.New("token lacks required scope")
)

// TokenService issues and verifies PASETO v4.local admin tokens.
type TokenService struct {
	key      paseto.V4SymmetricKey
	duration time.Duration
	now      func() time.Time
}

// NewTokenService creates a token service from a 32-byte key.
func NewTokenService(key []byte, duration time.Duration) (*TokenService, error) {
	if len(key) != keyLength {
		return nil, fmt.Errorf("PASETO v4 key must be exactly %d bytes, got %d", keyLength, len(key))
	}

	k, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}

	return &TokenService{key: k, duration: duration, now: time.Now}, nil
}

// IssueAdminToken creates a token for subject carrying scopes. With no
// scopes the token gets ScopePresetsWrite.
func (s *TokenService) IssueAdminToken(subject string, scopes ...string) (string, time.Time, error) {
	if len(scopes) == 0 {
		scopes = []string{ScopePresetsWrite}
	}

	now := s.now()
	expires := now.Add(s.duration)

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetAudience(tokenAudience)
	token.SetSubject(subject)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(expires)

	jti, err := id.Generate("token")
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate token ID: %w", err)
	}
	token.SetJti(jti)

	if err := token.Set("scopes", scopes); err != nil {
		return "", time.Time{}, fmt.Errorf("set scopes claim: %w", err)
	}

	return token.V4Encrypt(s.key, nil), expires, nil
}

// VerifyAdminToken decrypts and checks the token and, when scope is not
// empty, that it was granted scope.
func (s *TokenService) VerifyAdminToken(tokenString, scope string) (*AdminClaims, error) {
	parser := paseto.NewParserWithoutExpiryCheck()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.ValidAt(s.now()))

	token, err := parser.ParseV4Local(s.key, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	var claims AdminClaims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, fmt.Errorf("%w: parse claims: %w", ErrInvalidToken, err)
	}

	if scope != "" && !claims.HasScope(scope) {
		return nil, ErrMissingScope
	}
	return &claims, nil
}

// Duration returns the configured token lifetime.
func (s *TokenService) Duration() time.Duration {
	return s.duration
}
