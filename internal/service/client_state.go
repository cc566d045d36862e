package service

import (
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"mpass/internal/config"
	"mpass/internal/domain"
)

const clientStateAudience = "autofill-state"

// ClientStateClaims is the signed payload of a save round-trip token.
type ClientStateClaims struct {
	jwt.RegisteredClaims
	Domain      *string  `json:"domain,omitempty"`
	FormURL     *string  `json:"form_url,omitempty"`
	RequiredIDs []string `json:"required_ids"`
}

// ClientStateCodec turns the state recorded at fill time into an opaque token
// and back.
type ClientStateCodec interface {
	Encode(state domain.ClientState) (string, error)
	Decode(token string) (*domain.ClientState, error)
}

type jwtClientStateCodec struct {
	cfg config.TokenConfig
	now func() time.Time
}

// NewClientStateCodec creates an HS256 ClientStateCodec.
func NewClientStateCodec(cfg config.TokenConfig) ClientStateCodec {
	return &jwtClientStateCodec{cfg: cfg, now: time.Now}
}

func (c *jwtClientStateCodec) Encode(state domain.ClientState) (string, error) {
	now := c.now()
	claims := &ClientStateClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   c.cfg.Issuer,
			IssuedAt: jwt.NewNumericDate(now),
			ID:       uuid.New().String(),
			Audience: jwt.ClaimStrings{clientStateAudience},
		},
		Domain:      state.Domain,
		FormURL:     state.FormURL,
		RequiredIDs: state.RequiredFieldIDs,
	}
	// The token has to survive until the matching save, however late.
	if c.cfg.Expiry > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.cfg.Expiry))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(c.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing client state: %w", err)
	}
	return signed, nil
}

func (c *jwtClientStateCodec) Decode(tokenString string) (*domain.ClientState, error) {
	if tokenString == "" {
		return nil, domain.ErrInvalidClientState
	}

	claims := &ClientStateClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(c.cfg.Secret), nil
	}, jwt.WithTimeFunc(c.now), jwt.WithIssuer(c.cfg.Issuer))
	if err != nil {
		return nil, fmt.Errorf("parsing client state: %w: %w", domain.ErrInvalidClientState, err)
	}
	if !token.Valid {
		return nil, domain.ErrInvalidClientState
	}

	aud, _ := claims.GetAudience()
	if !slices.Contains(aud, clientStateAudience) {
		return nil, domain.ErrInvalidClientState
	}

	return &domain.ClientState{
		Domain:           claims.Domain,
		FormURL:          claims.FormURL,
		RequiredFieldIDs: claims.RequiredIDs,
	}, nil
}
