// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	signingDomain "github.com/nvish-ganesh/contentful-embargoed-api/internal/signing/domain"
)

// MockSignURLUseCase is a mock implementation of SignURLUseCase for testing.
type MockSignURLUseCase struct {
	mock.Mock
}

// SignURL mocks the SignURL method of SignURLUseCase.
func (m *MockSignURLUseCase) SignURL(
	ctx context.Context,
	input *signingDomain.SignURLInput,
) (*signingDomain.SignURLOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*signingDomain.SignURLOutput), args.Error(1)
}
