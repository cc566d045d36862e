package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/net/publicsuffix"

	"mpass/internal/autofill"
	"mpass/internal/domain"
	"mpass/internal/port"
)

// CredentialRepo is the PostgreSQL-backed credential store. It serves both
// summary lookups and secret reads.
type CredentialRepo interface {
	port.CredentialLookup
	port.SecretReader
}

type credentialRepo struct {
	db *sqlx.DB
}

// NewCredentialRepo creates a new PostgreSQL-backed CredentialRepo.
func NewCredentialRepo(db *sqlx.DB) CredentialRepo {
	return &credentialRepo{db: db}
}

// Lookup matches web surfaces by registrable domain and app surfaces by
// package name.
func (r *credentialRepo) Lookup(ctx context.Context, input port.LookupInput) ([]domain.CredentialSummary, error) {
	var (
		query string
		arg   string
	)
	if site := SiteKey(input); site != "" {
		query = "SELECT id, title FROM credentials WHERE site = $1 ORDER BY title, id"
		arg = site
	} else if input.Identity != "" {
		query = "SELECT id, title FROM credentials WHERE app_package = $1 ORDER BY title, id"
		arg = input.Identity
	} else {
		return []domain.CredentialSummary{}, nil
	}

	summaries := []domain.CredentialSummary{}
	if err := r.db.SelectContext(ctx, &summaries, query, arg); err != nil {
		return nil, fmt.Errorf("credentialRepo.Lookup: %w", err)
	}
	return summaries, nil
}

func (r *credentialRepo) Reveal(ctx context.Context, credentialID string) (*domain.Credential, error) {
	var cred domain.Credential
	err := r.db.GetContext(ctx, &cred, "SELECT username, password FROM credentials WHERE id = $1", credentialID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("credentialRepo.Reveal: %w", err)
	}
	return &cred, nil
}

// SiteKey returns the registrable domain ("eTLD+1") a lookup is scoped to:
// the web domain when present, else the form URL host. It returns "" for app
// surfaces.
func SiteKey(input port.LookupInput) string {
	var host string
	switch {
	case input.Domain != nil && strings.TrimSpace(*input.Domain) != "":
		host = *input.Domain
	case input.FormURL != nil && strings.TrimSpace(*input.FormURL) != "":
		host = autofill.HostOf(strings.TrimSpace(*input.FormURL))
	default:
		return ""
	}

	host = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(host), "."))
	if site, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return site
	}
	return host
}
