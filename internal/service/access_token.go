package service

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"mpass/internal/config"
	"mpass/internal/domain"
)

const accessAudience = "autofill-api"

// CallerClaims identifies a platform bridge allowed to call the autofill API.
// The caller name is carried in the subject.
type CallerClaims struct {
	jwt.RegisteredClaims
}

// AccessTokenService issues and validates caller access tokens.
type AccessTokenService interface {
	IssueToken(caller string) (string, error)
	ValidateToken(tokenString string) (*CallerClaims, error)
}

type accessTokenService struct {
	cfg config.TokenConfig
	now func() time.Time
}

// NewAccessTokenService creates an HS256 AccessTokenService.
func NewAccessTokenService(cfg config.TokenConfig) AccessTokenService {
	return &accessTokenService{cfg: cfg, now: time.Now}
}

func (s *accessTokenService) IssueToken(caller string) (string, error) {
	caller = strings.TrimSpace(caller)
	if caller == "" {
		return "", fmt.Errorf("issuing access token: caller is required")
	}

	now := s.now()
	claims := &CallerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  caller,
			Issuer:   s.cfg.Issuer,
			IssuedAt: jwt.NewNumericDate(now),
			ID:       uuid.New().String(),
			Audience: jwt.ClaimStrings{accessAudience},
		},
	}
	if s.cfg.AccessExpiry > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.cfg.AccessExpiry))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}

func (s *accessTokenService) ValidateToken(tokenString string) (*CallerClaims, error) {
	claims := &CallerClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithIssuer(s.cfg.Issuer))
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w: %w", domain.ErrUnauthorized, err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	// Round-trip tokens share the secret and must not grant access.
	aud, _ := claims.GetAudience()
	if !slices.Contains(aud, accessAudience) {
		return nil, domain.ErrUnauthorized
	}
	if claims.Subject == "" {
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}
