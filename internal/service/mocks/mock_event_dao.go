package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/orgflow/raci-management-api/internal/database"
	"github.com/orgflow/raci-management-api/internal/models"
)

// MockEventDAO is a mock implementation of the EventStore interface
type MockEventDAO struct {
	mock.Mock
}

func (m *MockEventDAO) GetByID(ctx context.Context, eventID, companyID string) (*models.Event, error) {
	args := m.Called(ctx, eventID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventDAO) GetByIDWithTx(ctx context.Context, tx *database.Transaction, eventID, companyID string) (*models.Event, error) {
	args := m.Called(ctx, tx, eventID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventDAO) UpdateGateWithTx(ctx context.Context, tx *database.Transaction, event *models.Event) error {
	args := m.Called(ctx, tx, event)
	return args.Error(0)
}

func (m *MockEventDAO) GetTaskByID(ctx context.Context, taskID, companyID string) (*models.Task, error) {
	args := m.Called(ctx, taskID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockEventDAO) GetTaskByIDWithTx(ctx context.Context, tx *database.Transaction, taskID, companyID string) (*models.Task, error) {
	args := m.Called(ctx, tx, taskID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockEventDAO) GetTasksByEventID(ctx context.Context, eventID, companyID string) ([]models.Task, error) {
	args := m.Called(ctx, eventID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockEventDAO) ListEventsMissingRequests(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

// MockUserDAO is a mock implementation of the UserDirectory interface
type MockUserDAO struct {
	mock.Mock
}

func (m *MockUserDAO) GetByID(ctx context.Context, userID, companyID string) (*models.User, error) {
	args := m.Called(ctx, userID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
