package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mpass/internal/domain"
	"mpass/internal/port"
)

// MockCredentialLookup is a mock implementation of port.CredentialLookup.
type MockCredentialLookup struct {
	mock.Mock
}

func (m *MockCredentialLookup) Lookup(ctx context.Context, input port.LookupInput) ([]domain.CredentialSummary, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CredentialSummary), args.Error(1)
}
