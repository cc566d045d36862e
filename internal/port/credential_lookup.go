package port

import (
	"context"

	"mpass/internal/domain"
)

// LookupInput identifies the surface asking for credentials.
type LookupInput struct {
	// Identity is the requesting package name.
	Identity string
	Domain   *string
	FormURL  *string
}

// CredentialLookup searches the credential store for matching entries.
type CredentialLookup interface {
	Lookup(ctx context.Context, input LookupInput) ([]domain.CredentialSummary, error)
}
