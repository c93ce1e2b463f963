// Package service contains infrastructure implementations of application-level
// service interfaces.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fitsphere/fitsphere-api/internal/application"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

// JWTTokenService implements application.TokenService with HS256-signed JWTs.
type JWTTokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewJWTTokenService creates a token service. TTL defaults to 24h.
func NewJWTTokenService(secret string, ttl time.Duration) (*JWTTokenService, error) {
	if secret == "" {
		return nil, errors.New("service: jwt secret cannot be empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTTokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "fitsphere",
	}, nil
}

// Issue creates a signed access token for the user.
func (s *JWTTokenService) Issue(userID, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iss":  s.issuer,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("service: sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify parses and validates a token, returning its claims.
func (s *JWTTokenService) Verify(tokenString string) (*application.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, shared.NewDomainError("auth", "verify_token", shared.ErrUnauthorized, "invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, shared.NewDomainError("auth", "verify_token", shared.ErrUnauthorized, "invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return nil, shared.NewDomainError("auth", "verify_token", shared.ErrUnauthorized, "token missing subject")
	}

	var expiresAt time.Time
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}

	return &application.TokenClaims{
		UserID:    sub,
		Role:      role,
		ExpiresAt: expiresAt,
	}, nil
}
