// Package mocks holds hand-maintained testify mocks for the service-level
// interfaces.
package mocks

import (
	"context"

	"github.com/flightlinehq/courser/internal/models"
	"github.com/stretchr/testify/mock"
)

// Interface is a mock for repository.Interface.
type Interface struct {
	mock.Mock
}

// NewInterface creates a new repository mock and registers its expectation
// check as a test cleanup.
func NewInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *Interface {
	m := &Interface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *Interface) FetchPendingCourses(ctx context.Context, limit int) ([]models.Course, error) {
	args := m.Called(ctx, limit)

	var courses []models.Course
	if args.Get(0) != nil {
		courses, _ = args.Get(0).([]models.Course)
	}

	return courses, args.Error(1)
}

func (m *Interface) SaveTurningPoints(ctx context.Context, courseID int, points []models.TurningPoint) error {
	args := m.Called(ctx, courseID, points)

	return args.Error(0)
}

func (m *Interface) IncrementFailureCount(ctx context.Context, courseID int, errMsg string) error {
	args := m.Called(ctx, courseID, errMsg)

	return args.Error(0)
}
