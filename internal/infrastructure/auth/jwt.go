// Package auth issues and validates the service's own HS256 access tokens.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"friendbot/companion-api/internal/domain/user"
)

// PrincipalClaims represent the subset of JWT claims we care about.
type PrincipalClaims struct {
	UserID    uint
	Username  string
	Email     string
	Issuer    string
	ExpiresAt time.Time
	IssuedAt  time.Time
	NotBefore time.Time
	TokenID   string
}

// TokenService signs and validates access tokens with a shared secret.
type TokenService struct {
	secret    []byte
	issuer    string
	ttl       time.Duration
	clockSkew time.Duration
	logger    zerolog.Logger
}

// NewTokenService returns a token service configured for HS256.
func NewTokenService(secret, issuer string, ttl, clockSkew time.Duration, logger zerolog.Logger) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}

	return &TokenService{
		secret:    []byte(secret),
		issuer:    issuer,
		ttl:       ttl,
		clockSkew: clockSkew,
		logger:    logger,
	}, nil
}

// Issue creates a signed token for the user and returns it with its expiry.
func (s *TokenService) Issue(_ context.Context, usr *user.User) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.ttl)

	claims := jwt.MapClaims{
		"iss":      s.issuer,
		"sub":      strconv.FormatUint(uint64(usr.ID), 10),
		"username": usr.Username,
		"email":    usr.Email,
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"exp":      expiresAt.Unix(),
		"jti":      uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate parses and validates the given JWT returning principal claims.
func (s *TokenService) Validate(_ context.Context, rawToken string) (*PrincipalClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithLeeway(s.clockSkew),
	)
	token, err := parser.ParseWithClaims(rawToken, jwt.MapClaims{}, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	iss, _ := mapClaims["iss"].(string)
	if s.issuer != "" && iss != s.issuer {
		return nil, fmt.Errorf("issuer mismatch %s", iss)
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return nil, errors.New("sub claim missing")
	}
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("sub claim not a user id: %w", err)
	}

	username := claimString(mapClaims["username"])
	email := claimString(mapClaims["email"])

	expires := jwtNumericTime(mapClaims["exp"])
	issued := jwtNumericTime(mapClaims["iat"])
	notBefore := jwtNumericTime(mapClaims["nbf"])

	now := time.Now().UTC()
	if !expires.IsZero() && now.After(expires.Add(s.clockSkew)) {
		return nil, errors.New("token expired")
	}
	if !notBefore.IsZero() && now.Add(s.clockSkew).Before(notBefore) {
		return nil, errors.New("token not yet valid")
	}

	return &PrincipalClaims{
		UserID:    uint(userID),
		Username:  username,
		Email:     email,
		Issuer:    iss,
		ExpiresAt: expires,
		IssuedAt:  issued,
		NotBefore: notBefore,
		TokenID:   claimString(mapClaims["jti"]),
	}, nil
}

func jwtNumericTime(value any) time.Time {
	switch timeValue := value.(type) {
	case float64:
		return time.Unix(int64(timeValue), 0).UTC()
	case int64:
		return time.Unix(timeValue, 0).UTC()
	case json.Number:
		if unixTime, err := timeValue.Int64(); err == nil {
			return time.Unix(unixTime, 0).UTC()
		}
	}
	return time.Time{}
}

func claimString(value any) string {
	if str, ok := value.(string); ok {
		return str
	}
	return ""
}
