// Package lookup decorates credential lookups.
package lookup

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"mpass/internal/domain"
	"mpass/internal/port"
)

type cacheEntry struct {
	summaries []domain.CredentialSummary
	expires   time.Time
}

type cachedLookup struct {
	next  port.CredentialLookup
	cache *lru.Cache[string, cacheEntry]
	ttl   time.Duration
	now   func() time.Time
}

// NewCachedLookup wraps next with a bounded LRU cache whose entries expire
// after ttl. Failed lookups are not cached. A non-positive size or ttl
// returns next unchanged.
func NewCachedLookup(next port.CredentialLookup, size int, ttl time.Duration) (port.CredentialLookup, error) {
	return newCachedLookup(next, size, ttl, time.Now)
}

func newCachedLookup(next port.CredentialLookup, size int, ttl time.Duration, now func() time.Time) (port.CredentialLookup, error) {
	if size <= 0 || ttl <= 0 {
		return next, nil
	}
	cache, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("lookup.NewCachedLookup: %w", err)
	}
	return &cachedLookup{next: next, cache: cache, ttl: ttl, now: now}, nil
}

func (l *cachedLookup) Lookup(ctx context.Context, input port.LookupInput) ([]domain.CredentialSummary, error) {
	key := cacheKey(input)
	if e, ok := l.cache.Get(key); ok {
		if l.now().Before(e.expires) {
			return append([]domain.CredentialSummary(nil), e.summaries...), nil
		}
		l.cache.Remove(key)
	}

	summaries, err := l.next.Lookup(ctx, input)
	if err != nil {
		return nil, err
	}
	l.cache.Add(key, cacheEntry{
		summaries: append([]domain.CredentialSummary(nil), summaries...),
		expires:   l.now().Add(l.ttl),
	})
	return summaries, nil
}

func cacheKey(input port.LookupInput) string {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return input.Identity + "\x00" + deref(input.Domain) + "\x00" + deref(input.FormURL)
}
