package port

import (
	"context"

	"mpass/internal/domain"
)

// Authorizer reveals the secret behind a selected dataset. Implementations
// return domain.ErrAuthorizationCancelled when the user backs out.
type Authorizer interface {
	Authenticate(ctx context.Context, dataset domain.DatasetContext) (*domain.Credential, error)
}

// SecretReader reads a stored credential by id.
type SecretReader interface {
	Reveal(ctx context.Context, credentialID string) (*domain.Credential, error)
}
