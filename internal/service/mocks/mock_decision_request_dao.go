package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/orgflow/raci-management-api/internal/database"
	"github.com/orgflow/raci-management-api/internal/models"
)

// MockDecisionRequestDAO is a mock implementation of the DecisionRequestStore interface
type MockDecisionRequestDAO struct {
	mock.Mock
}

func (m *MockDecisionRequestDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, request *models.DecisionRequest) error {
	args := m.Called(ctx, tx, request)
	return args.Error(0)
}

func (m *MockDecisionRequestDAO) DeleteByEventIDWithTx(ctx context.Context, tx *database.Transaction, eventID, companyID string) error {
	args := m.Called(ctx, tx, eventID, companyID)
	return args.Error(0)
}

func (m *MockDecisionRequestDAO) GetByEventID(ctx context.Context, eventID, companyID string) ([]models.DecisionRequest, error) {
	args := m.Called(ctx, eventID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DecisionRequest), args.Error(1)
}

func (m *MockDecisionRequestDAO) CountByEventID(ctx context.Context, eventID, companyID string) (int, error) {
	args := m.Called(ctx, eventID, companyID)
	return args.Int(0), args.Error(1)
}

func (m *MockDecisionRequestDAO) CountByEventIDWithTx(ctx context.Context, tx *database.Transaction, eventID, companyID string) (int, error) {
	args := m.Called(ctx, tx, eventID, companyID)
	return args.Int(0), args.Error(1)
}

func (m *MockDecisionRequestDAO) CountPendingByApproverWithTx(ctx context.Context, tx *database.Transaction, eventID, approverID, companyID string) (int, error) {
	args := m.Called(ctx, tx, eventID, approverID, companyID)
	return args.Int(0), args.Error(1)
}

func (m *MockDecisionRequestDAO) DecidePendingByApproverWithTx(ctx context.Context, tx *database.Transaction, eventID, approverID string, status models.DecisionStatus, reason *string, decidedTime int64, companyID string) (int64, error) {
	args := m.Called(ctx, tx, eventID, approverID, status, reason, decidedTime, companyID)
	return args.Get(0).(int64), args.Error(1)
}
