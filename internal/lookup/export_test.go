package lookup

import (
	"time"

	"mpass/internal/port"
)

// NewCachedLookupWithClock exposes the clock seam to tests.
func NewCachedLookupWithClock(next port.CredentialLookup, size int, ttl time.Duration, now func() time.Time) (port.CredentialLookup, error) {
	return newCachedLookup(next, size, ttl, now)
}
