package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mpass/internal/port"
)

// MockSnapshotArchive is a mock implementation of port.SnapshotArchive.
type MockSnapshotArchive struct {
	mock.Mock
}

func (m *MockSnapshotArchive) Archive(ctx context.Context, input port.SnapshotInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}
