// Package vault reveals stored secrets for a selected dataset.
package vault

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"mpass/internal/domain"
	"mpass/internal/port"
)

type storeAuthorizer struct {
	secrets port.SecretReader
	logger  *zap.Logger
}

// NewStoreAuthorizer creates an Authorizer that reads the selected
// credential straight from the store. Datasets without a credential id need
// an interactive picker, which this authorizer does not provide, so they are
// reported as cancelled.
func NewStoreAuthorizer(secrets port.SecretReader, logger *zap.Logger) port.Authorizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &storeAuthorizer{secrets: secrets, logger: logger}
}

func (a *storeAuthorizer) Authenticate(ctx context.Context, dataset domain.DatasetContext) (*domain.Credential, error) {
	if dataset.CredentialID == nil || *dataset.CredentialID == "" {
		return nil, domain.ErrAuthorizationCancelled
	}

	cred, err := a.secrets.Reveal(ctx, *dataset.CredentialID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.logger.Info("selected credential no longer exists", zap.String("credential_id", *dataset.CredentialID))
			return nil, fmt.Errorf("vault.Authenticate: %w", domain.ErrAuthorizationCancelled)
		}
		return nil, fmt.Errorf("vault.Authenticate: %w", err)
	}
	return cred, nil
}
