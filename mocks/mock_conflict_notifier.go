package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"partsync/internal/port"
)

// MockConflictNotifier is a mock implementation of port.ConflictNotifier.
type MockConflictNotifier struct {
	mock.Mock
}

func (m *MockConflictNotifier) NotifyConflicts(ctx context.Context, alert port.ConflictAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}
