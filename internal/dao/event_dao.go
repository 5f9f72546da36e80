package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/orgflow/raci-management-api/internal/database"
	"github.com/orgflow/raci-management-api/internal/models"
)

// EventDAO handles database operations for events and their tasks
type EventDAO struct {
	db *database.DB
}

// NewEventDAO creates a new EventDAO instance
func NewEventDAO(db *database.DB) *EventDAO {
	return &EventDAO{db: db}
}

const eventColumns = `
	EVENT_ID, EVENT_NAME, DEPARTMENT_ID, HOD_ID, APPROVAL_STATUS,
	APPROVER_ID, APPROVAL_COMMENTS, DECIDED_TIME, CREATED_TIME, UPDATED_TIME, COMPANY_ID
`

// GetByID retrieves an event by ID and company ID
func (dao *EventDAO) GetByID(ctx context.Context, eventID, companyID string) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM WF_EVENT WHERE EVENT_ID = ? AND COMPANY_ID = ?`

	var event models.Event
	err := dao.db.GetContext(ctx, &event, query, eventID, companyID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event %s: %w", eventID, err)
	}

	return &event, nil
}

// GetByIDWithTx retrieves an event inside a transaction
func (dao *EventDAO) GetByIDWithTx(ctx context.Context, tx *database.Transaction, eventID, companyID string) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM WF_EVENT WHERE EVENT_ID = ? AND COMPANY_ID = ?`

	var event models.Event
	err := tx.GetContext(ctx, &event, query, eventID, companyID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event %s: %w", eventID, err)
	}

	return &event, nil
}

// UpdateGateWithTx writes the event's gate approval fields
func (dao *EventDAO) UpdateGateWithTx(ctx context.Context, tx *database.Transaction, event *models.Event) error {
	query := `
		UPDATE WF_EVENT
		SET APPROVAL_STATUS = ?, APPROVER_ID = ?, APPROVAL_COMMENTS = ?,
		    DECIDED_TIME = ?, UPDATED_TIME = ?
		WHERE EVENT_ID = ? AND COMPANY_ID = ?
	`

	result, err := tx.ExecContext(
		ctx,
		query,
		event.ApprovalStatus,
		event.ApproverID,
		event.ApprovalComments,
		event.DecidedTime,
		event.UpdatedTime,
		event.EventID,
		event.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event gate: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("event not found: %s", event.EventID)
	}

	return nil
}

// GetTaskByID retrieves a task by ID and company ID
func (dao *EventDAO) GetTaskByID(ctx context.Context, taskID, companyID string) (*models.Task, error) {
	query := `
		SELECT TASK_ID, EVENT_ID, TASK_NAME, DESCRIPTION, TASK_STATUS,
		       CREATED_TIME, UPDATED_TIME, COMPANY_ID
		FROM WF_TASK
		WHERE TASK_ID = ? AND COMPANY_ID = ?
	`

	var task models.Task
	err := dao.db.GetContext(ctx, &task, query, taskID, companyID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task %s: %w", taskID, err)
	}

	return &task, nil
}

// GetTaskByIDWithTx retrieves a task inside a transaction
func (dao *EventDAO) GetTaskByIDWithTx(ctx context.Context, tx *database.Transaction, taskID, companyID string) (*models.Task, error) {
	query := `
		SELECT TASK_ID, EVENT_ID, TASK_NAME, DESCRIPTION, TASK_STATUS,
		       CREATED_TIME, UPDATED_TIME, COMPANY_ID
		FROM WF_TASK
		WHERE TASK_ID = ? AND COMPANY_ID = ?
	`

	var task models.Task
	err := tx.GetContext(ctx, &task, query, taskID, companyID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task %s: %w", taskID, err)
	}

	return &task, nil
}

// GetTasksByEventID retrieves all tasks of an event
func (dao *EventDAO) GetTasksByEventID(ctx context.Context, eventID, companyID string) ([]models.Task, error) {
	query := `
		SELECT TASK_ID, EVENT_ID, TASK_NAME, DESCRIPTION, TASK_STATUS,
		       CREATED_TIME, UPDATED_TIME, COMPANY_ID
		FROM WF_TASK
		WHERE EVENT_ID = ? AND COMPANY_ID = ?
		ORDER BY CREATED_TIME, TASK_ID
	`

	var tasks []models.Task
	if err := dao.db.SelectContext(ctx, &tasks, query, eventID, companyID); err != nil {
		return nil, fmt.Errorf("failed to get tasks for event %s: %w", eventID, err)
	}

	return tasks, nil
}

// ListEventsMissingRequests finds events that have at least one assignment
// but no decision requests at all. Only these are eligible for the recovery
// sweep; an event with any existing request is never touched.
func (dao *EventDAO) ListEventsMissingRequests(ctx context.Context) ([]models.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM WF_EVENT e
		WHERE EXISTS (
			SELECT 1 FROM WF_RACI_ASSIGNMENT a
			JOIN WF_TASK t ON a.TASK_ID = t.TASK_ID
			WHERE t.EVENT_ID = e.EVENT_ID
		)
		AND NOT EXISTS (
			SELECT 1 FROM WF_DECISION_REQUEST dr
			JOIN WF_RACI_ASSIGNMENT a2 ON dr.ASSIGNMENT_ID = a2.ASSIGNMENT_ID
			JOIN WF_TASK t2 ON a2.TASK_ID = t2.TASK_ID
			WHERE t2.EVENT_ID = e.EVENT_ID
		)
	`

	var events []models.Event
	if err := dao.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("failed to list events missing decision requests: %w", err)
	}

	return events, nil
}
