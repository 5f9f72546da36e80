package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/orgflow/raci-management-api/internal/database"
	"github.com/orgflow/raci-management-api/internal/models"
)

// MockAssignmentDAO is a mock implementation of the AssignmentStore interface
type MockAssignmentDAO struct {
	mock.Mock
}

func (m *MockAssignmentDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, assignment *models.Assignment) error {
	args := m.Called(ctx, tx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentDAO) DeleteByTaskIDWithTx(ctx context.Context, tx *database.Transaction, taskID, companyID string) error {
	args := m.Called(ctx, tx, taskID, companyID)
	return args.Error(0)
}

func (m *MockAssignmentDAO) GetByTaskID(ctx context.Context, taskID, companyID string) ([]models.Assignment, error) {
	args := m.Called(ctx, taskID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Assignment), args.Error(1)
}

func (m *MockAssignmentDAO) GetByEventID(ctx context.Context, eventID, companyID string) ([]models.Assignment, error) {
	args := m.Called(ctx, eventID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Assignment), args.Error(1)
}

func (m *MockAssignmentDAO) GetByEventIDWithTx(ctx context.Context, tx *database.Transaction, eventID, companyID string) ([]models.Assignment, error) {
	args := m.Called(ctx, tx, eventID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Assignment), args.Error(1)
}

func (m *MockAssignmentDAO) CountByEventID(ctx context.Context, eventID, companyID string) (int, error) {
	args := m.Called(ctx, eventID, companyID)
	return args.Int(0), args.Error(1)
}
