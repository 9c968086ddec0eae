package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned when a token fails parsing or signature checks
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenRevoked is returned when a token has been logged out
	ErrTokenRevoked = errors.New("token revoked")
)

// TokenManager issues, validates and revokes the HS256 tokens used by
// the API. Revocation goes through the blacklist so logged-out tokens
// stop working before they expire.
type TokenManager interface {
	GenerateToken(userID uuid.UUID) (string, error)
	ValidateToken(ctx context.Context, tokenStr string) (uuid.UUID, error)
	RevokeToken(ctx context.Context, tokenStr string) error
}

type tokenManagerImpl struct {
	secret    []byte
	ttl       time.Duration
	blacklist Blacklist
}

// NewTokenManager creates a TokenManager. Pass a nil blacklist to
// disable revocation checks (tokens then stay valid until expiry).
func NewTokenManager(secret string, ttl time.Duration, blacklist Blacklist) TokenManager {
	if blacklist == nil {
		blacklist = NoopBlacklist{}
	}
	return &tokenManagerImpl{
		secret:    []byte(secret),
		ttl:       ttl,
		blacklist: blacklist,
	}
}

// GenerateToken signs a new token carrying the user's ID
func (m *tokenManagerImpl) GenerateToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies the token, rejects revoked tokens,
// and returns the user ID it carries
func (m *tokenManagerImpl) ValidateToken(ctx context.Context, tokenStr string) (uuid.UUID, error) {
	claims, err := m.parseClaims(tokenStr)
	if err != nil {
		return uuid.Nil, err
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	revoked, err := m.blacklist.Contains(ctx, tokenStr)
	if err != nil {
		return uuid.Nil, err
	}
	if revoked {
		return uuid.Nil, ErrTokenRevoked
	}

	return userID, nil
}

// RevokeToken blacklists the token for its remaining lifetime
func (m *tokenManagerImpl) RevokeToken(ctx context.Context, tokenStr string) error {
	claims, err := m.parseClaims(tokenStr)
	if err != nil {
		return err
	}

	remaining := m.ttl
	if exp, ok := claims["exp"].(float64); ok {
		remaining = time.Until(time.Unix(int64(exp), 0))
	}
	if remaining <= 0 {
		// Already expired, nothing to blacklist
		return nil
	}

	return m.blacklist.Add(ctx, tokenStr, remaining)
}

func (m *tokenManagerImpl) parseClaims(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
