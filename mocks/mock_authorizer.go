package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mpass/internal/domain"
)

// MockAuthorizer is a mock implementation of port.Authorizer.
type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) Authenticate(ctx context.Context, dataset domain.DatasetContext) (*domain.Credential, error) {
	args := m.Called(ctx, dataset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

// MockSecretReader is a mock implementation of port.SecretReader.
type MockSecretReader struct {
	mock.Mock
}

func (m *MockSecretReader) Reveal(ctx context.Context, credentialID string) (*domain.Credential, error) {
	args := m.Called(ctx, credentialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}
