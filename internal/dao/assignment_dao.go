package dao

import (
	"context"
	"fmt"

	"github.com/orgflow/raci-management-api/internal/database"
	"github.com/orgflow/raci-management-api/internal/models"
)

// AssignmentDAO handles database operations for RACI assignment rows
type AssignmentDAO struct {
	db *database.DB
}

// NewAssignmentDAO creates a new AssignmentDAO instance
func NewAssignmentDAO(db *database.DB) *AssignmentDAO {
	return &AssignmentDAO{db: db}
}

// CreateWithTx inserts a new assignment row using a transaction
func (dao *AssignmentDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, assignment *models.Assignment) error {
	query := `
		INSERT INTO WF_RACI_ASSIGNMENT (
			ASSIGNMENT_ID, TASK_ID, RACI_ROLE, USER_ID, APPROVAL_LEVEL,
			FINANCIAL_LIMIT_MIN, FINANCIAL_LIMIT_MAX, CREATED_TIME, COMPANY_ID
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		assignment.AssignmentID,
		assignment.TaskID,
		assignment.RACIRole,
		assignment.UserID,
		assignment.ApprovalLevel,
		assignment.FinancialLimitMin,
		assignment.FinancialLimitMax,
		assignment.CreatedTime,
		assignment.CompanyID,
	)

	if err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	return nil
}

// DeleteByTaskIDWithTx removes the whole assignment generation for a task.
// Roster replacement is delete-then-insert, never a merge.
func (dao *AssignmentDAO) DeleteByTaskIDWithTx(ctx context.Context, tx *database.Transaction, taskID, companyID string) error {
	query := `DELETE FROM WF_RACI_ASSIGNMENT WHERE TASK_ID = ? AND COMPANY_ID = ?`

	_, err := tx.ExecContext(ctx, query, taskID, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete assignments for task %s: %w", taskID, err)
	}

	return nil
}

// GetByTaskID retrieves all assignment rows for a task
func (dao *AssignmentDAO) GetByTaskID(ctx context.Context, taskID, companyID string) ([]models.Assignment, error) {
	query := `
		SELECT ASSIGNMENT_ID, TASK_ID, RACI_ROLE, USER_ID, APPROVAL_LEVEL,
		       FINANCIAL_LIMIT_MIN, FINANCIAL_LIMIT_MAX, CREATED_TIME, COMPANY_ID
		FROM WF_RACI_ASSIGNMENT
		WHERE TASK_ID = ? AND COMPANY_ID = ?
		ORDER BY RACI_ROLE, USER_ID
	`

	var assignments []models.Assignment
	if err := dao.db.SelectContext(ctx, &assignments, query, taskID, companyID); err != nil {
		return nil, fmt.Errorf("failed to get assignments for task %s: %w", taskID, err)
	}

	return assignments, nil
}

// GetByEventID retrieves all assignment rows belonging to an event's tasks
func (dao *AssignmentDAO) GetByEventID(ctx context.Context, eventID, companyID string) ([]models.Assignment, error) {
	query := `
		SELECT a.ASSIGNMENT_ID, a.TASK_ID, a.RACI_ROLE, a.USER_ID, a.APPROVAL_LEVEL,
		       a.FINANCIAL_LIMIT_MIN, a.FINANCIAL_LIMIT_MAX, a.CREATED_TIME, a.COMPANY_ID
		FROM WF_RACI_ASSIGNMENT a
		JOIN WF_TASK t ON a.TASK_ID = t.TASK_ID
		WHERE t.EVENT_ID = ? AND a.COMPANY_ID = ?
		ORDER BY a.TASK_ID, a.RACI_ROLE, a.USER_ID
	`

	var assignments []models.Assignment
	if err := dao.db.SelectContext(ctx, &assignments, query, eventID, companyID); err != nil {
		return nil, fmt.Errorf("failed to get assignments for event %s: %w", eventID, err)
	}

	return assignments, nil
}

// GetByEventIDWithTx retrieves an event's assignment rows inside a transaction
func (dao *AssignmentDAO) GetByEventIDWithTx(ctx context.Context, tx *database.Transaction, eventID, companyID string) ([]models.Assignment, error) {
	query := `
		SELECT a.ASSIGNMENT_ID, a.TASK_ID, a.RACI_ROLE, a.USER_ID, a.APPROVAL_LEVEL,
		       a.FINANCIAL_LIMIT_MIN, a.FINANCIAL_LIMIT_MAX, a.CREATED_TIME, a.COMPANY_ID
		FROM WF_RACI_ASSIGNMENT a
		JOIN WF_TASK t ON a.TASK_ID = t.TASK_ID
		WHERE t.EVENT_ID = ? AND a.COMPANY_ID = ?
		ORDER BY a.TASK_ID, a.RACI_ROLE, a.USER_ID
	`

	var assignments []models.Assignment
	if err := tx.SelectContext(ctx, &assignments, query, eventID, companyID); err != nil {
		return nil, fmt.Errorf("failed to get assignments for event %s: %w", eventID, err)
	}

	return assignments, nil
}

// CountByEventID counts assignment rows belonging to an event
func (dao *AssignmentDAO) CountByEventID(ctx context.Context, eventID, companyID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM WF_RACI_ASSIGNMENT a
		JOIN WF_TASK t ON a.TASK_ID = t.TASK_ID
		WHERE t.EVENT_ID = ? AND a.COMPANY_ID = ?
	`

	var count int
	if err := dao.db.GetContext(ctx, &count, query, eventID, companyID); err != nil {
		return 0, fmt.Errorf("failed to count assignments for event %s: %w", eventID, err)
	}

	return count, nil
}
