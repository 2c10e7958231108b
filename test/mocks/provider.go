package mocks

import (
	"context"

	"github.com/flightlinehq/courser/internal/models"
	"github.com/stretchr/testify/mock"
)

// Provider is a mock for locality.Provider.
type Provider struct {
	mock.Mock
}

// NewProvider creates a new locality provider mock and registers its
// expectation check as a test cleanup.
func NewProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *Provider {
	m := &Provider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *Provider) Locality(ctx context.Context, coords models.Coordinate) (string, error) {
	args := m.Called(ctx, coords)

	return args.String(0), args.Error(1)
}
