package service

import (
	"time"

	"mpass/internal/config"
)

// NewClientStateCodecWithClock exposes the clock seam to tests.
func NewClientStateCodecWithClock(cfg config.TokenConfig, now func() time.Time) ClientStateCodec {
	return &jwtClientStateCodec{cfg: cfg, now: now}
}

// NewAccessTokenServiceWithClock exposes the clock seam to tests.
func NewAccessTokenServiceWithClock(cfg config.TokenConfig, now func() time.Time) AccessTokenService {
	return &accessTokenService{cfg: cfg, now: now}
}
