package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mpass/internal/domain"
	"mpass/internal/service"
)

// MockAutofillService is a mock implementation of service.AutofillService.
type MockAutofillService struct {
	mock.Mock
}

func (m *MockAutofillService) Fill(ctx context.Context, input service.FillInput) (*domain.FillResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FillResponse), args.Error(1)
}

func (m *MockAutofillService) Save(ctx context.Context, input service.SaveInput) (*service.SaveOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SaveOutput), args.Error(1)
}

func (m *MockAutofillService) Authorize(ctx context.Context, input service.AuthorizeInput) (*service.AuthorizeOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthorizeOutput), args.Error(1)
}

func (m *MockAutofillService) Classify(ctx context.Context, input service.ClassifyInput) (*service.ClassifyOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ClassifyOutput), args.Error(1)
}
