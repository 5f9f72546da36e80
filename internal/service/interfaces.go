package service

import (
	"context"

	"github.com/orgflow/raci-management-api/internal/database"
	"github.com/orgflow/raci-management-api/internal/models"
)

// Store interfaces consumed by the services. The dao package provides the
// production implementations; the mocks package provides test doubles.

// AssignmentStore owns the per-task RACI assignment rows
type AssignmentStore interface {
	CreateWithTx(ctx context.Context, tx *database.Transaction, assignment *models.Assignment) error
	DeleteByTaskIDWithTx(ctx context.Context, tx *database.Transaction, taskID, companyID string) error
	GetByTaskID(ctx context.Context, taskID, companyID string) ([]models.Assignment, error)
	GetByEventID(ctx context.Context, eventID, companyID string) ([]models.Assignment, error)
	GetByEventIDWithTx(ctx context.Context, tx *database.Transaction, eventID, companyID string) ([]models.Assignment, error)
	CountByEventID(ctx context.Context, eventID, companyID string) (int, error)
}

// DecisionRequestStore owns the decision request rows
type DecisionRequestStore interface {
	CreateWithTx(ctx context.Context, tx *database.Transaction, request *models.DecisionRequest) error
	DeleteByEventIDWithTx(ctx context.Context, tx *database.Transaction, eventID, companyID string) error
	GetByEventID(ctx context.Context, eventID, companyID string) ([]models.DecisionRequest, error)
	CountByEventID(ctx context.Context, eventID, companyID string) (int, error)
	CountByEventIDWithTx(ctx context.Context, tx *database.Transaction, eventID, companyID string) (int, error)
	CountPendingByApproverWithTx(ctx context.Context, tx *database.Transaction, eventID, approverID, companyID string) (int, error)
	DecidePendingByApproverWithTx(ctx context.Context, tx *database.Transaction, eventID, approverID string, status models.DecisionStatus, reason *string, decidedTime int64, companyID string) (int64, error)
}

// EventStore reads event and task records and writes the event gate fields
type EventStore interface {
	GetByID(ctx context.Context, eventID, companyID string) (*models.Event, error)
	GetByIDWithTx(ctx context.Context, tx *database.Transaction, eventID, companyID string) (*models.Event, error)
	UpdateGateWithTx(ctx context.Context, tx *database.Transaction, event *models.Event) error
	GetTaskByID(ctx context.Context, taskID, companyID string) (*models.Task, error)
	GetTaskByIDWithTx(ctx context.Context, tx *database.Transaction, taskID, companyID string) (*models.Task, error)
	GetTasksByEventID(ctx context.Context, eventID, companyID string) ([]models.Task, error)
	ListEventsMissingRequests(ctx context.Context) ([]models.Event, error)
}

// UserDirectory resolves directory users for approver validation and
// authorization checks
type UserDirectory interface {
	GetByID(ctx context.Context, userID, companyID string) (*models.User, error)
}
