package dao

import (
	"context"
	"fmt"

	"github.com/orgflow/raci-management-api/internal/database"
	"github.com/orgflow/raci-management-api/internal/models"
)

// DecisionRequestDAO handles database operations for decision requests
type DecisionRequestDAO struct {
	db *database.DB
}

// NewDecisionRequestDAO creates a new DecisionRequestDAO instance
func NewDecisionRequestDAO(db *database.DB) *DecisionRequestDAO {
	return &DecisionRequestDAO{db: db}
}

// CreateWithTx inserts a new decision request using a transaction
func (dao *DecisionRequestDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, request *models.DecisionRequest) error {
	query := `
		INSERT INTO WF_DECISION_REQUEST (
			REQUEST_ID, ASSIGNMENT_ID, APPROVAL_LEVEL, APPROVER_ID,
			REQUEST_STATUS, DECISION_REASON, DECIDED_TIME, CREATED_TIME, COMPANY_ID
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		request.RequestID,
		request.AssignmentID,
		request.ApprovalLevel,
		request.ApproverID,
		request.RequestStatus,
		request.DecisionReason,
		request.DecidedTime,
		request.CreatedTime,
		request.CompanyID,
	)

	if err != nil {
		return fmt.Errorf("failed to create decision request: %w", err)
	}

	return nil
}

// DeleteByEventIDWithTx removes every decision request tied to the event's
// assignments. Regeneration replaces the whole generation.
func (dao *DecisionRequestDAO) DeleteByEventIDWithTx(ctx context.Context, tx *database.Transaction, eventID, companyID string) error {
	query := `
		DELETE dr FROM WF_DECISION_REQUEST dr
		JOIN WF_RACI_ASSIGNMENT a ON dr.ASSIGNMENT_ID = a.ASSIGNMENT_ID
		JOIN WF_TASK t ON a.TASK_ID = t.TASK_ID
		WHERE t.EVENT_ID = ? AND dr.COMPANY_ID = ?
	`

	_, err := tx.ExecContext(ctx, query, eventID, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete decision requests for event %s: %w", eventID, err)
	}

	return nil
}

// GetByEventID retrieves all decision requests tied to an event's assignments
func (dao *DecisionRequestDAO) GetByEventID(ctx context.Context, eventID, companyID string) ([]models.DecisionRequest, error) {
	query := `
		SELECT dr.REQUEST_ID, dr.ASSIGNMENT_ID, dr.APPROVAL_LEVEL, dr.APPROVER_ID,
		       dr.REQUEST_STATUS, dr.DECISION_REASON, dr.DECIDED_TIME, dr.CREATED_TIME, dr.COMPANY_ID
		FROM WF_DECISION_REQUEST dr
		JOIN WF_RACI_ASSIGNMENT a ON dr.ASSIGNMENT_ID = a.ASSIGNMENT_ID
		JOIN WF_TASK t ON a.TASK_ID = t.TASK_ID
		WHERE t.EVENT_ID = ? AND dr.COMPANY_ID = ?
		ORDER BY dr.APPROVAL_LEVEL, dr.APPROVER_ID, dr.ASSIGNMENT_ID
	`

	var requests []models.DecisionRequest
	if err := dao.db.SelectContext(ctx, &requests, query, eventID, companyID); err != nil {
		return nil, fmt.Errorf("failed to get decision requests for event %s: %w", eventID, err)
	}

	return requests, nil
}

// CountByEventID counts decision requests tied to an event's assignments
func (dao *DecisionRequestDAO) CountByEventID(ctx context.Context, eventID, companyID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM WF_DECISION_REQUEST dr
		JOIN WF_RACI_ASSIGNMENT a ON dr.ASSIGNMENT_ID = a.ASSIGNMENT_ID
		JOIN WF_TASK t ON a.TASK_ID = t.TASK_ID
		WHERE t.EVENT_ID = ? AND dr.COMPANY_ID = ?
	`

	var count int
	if err := dao.db.GetContext(ctx, &count, query, eventID, companyID); err != nil {
		return 0, fmt.Errorf("failed to count decision requests for event %s: %w", eventID, err)
	}

	return count, nil
}

// CountByEventIDWithTx counts an event's decision requests inside a
// transaction. The recovery path uses this to ensure it never regenerates
// over existing decisions.
func (dao *DecisionRequestDAO) CountByEventIDWithTx(ctx context.Context, tx *database.Transaction, eventID, companyID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM WF_DECISION_REQUEST dr
		JOIN WF_RACI_ASSIGNMENT a ON dr.ASSIGNMENT_ID = a.ASSIGNMENT_ID
		JOIN WF_TASK t ON a.TASK_ID = t.TASK_ID
		WHERE t.EVENT_ID = ? AND dr.COMPANY_ID = ?
	`

	var count int
	if err := tx.GetContext(ctx, &count, query, eventID, companyID); err != nil {
		return 0, fmt.Errorf("failed to count decision requests for event %s: %w", eventID, err)
	}

	return count, nil
}

// CountPendingByApproverWithTx counts the approver's PENDING requests on the
// event inside a transaction
func (dao *DecisionRequestDAO) CountPendingByApproverWithTx(ctx context.Context, tx *database.Transaction, eventID, approverID, companyID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM WF_DECISION_REQUEST dr
		JOIN WF_RACI_ASSIGNMENT a ON dr.ASSIGNMENT_ID = a.ASSIGNMENT_ID
		JOIN WF_TASK t ON a.TASK_ID = t.TASK_ID
		WHERE t.EVENT_ID = ? AND dr.APPROVER_ID = ? AND dr.REQUEST_STATUS = ? AND dr.COMPANY_ID = ?
	`

	var count int
	if err := tx.GetContext(ctx, &count, query, eventID, approverID, models.DecisionStatusPending, companyID); err != nil {
		return 0, fmt.Errorf("failed to count pending requests for approver %s: %w", approverID, err)
	}

	return count, nil
}

// DecidePendingByApproverWithTx moves all of the approver's PENDING requests
// on the event to a terminal status, recording the reason and decision time.
// Returns the number of rows decided. Only PENDING rows are touched, so a
// decided request can never revert.
func (dao *DecisionRequestDAO) DecidePendingByApproverWithTx(
	ctx context.Context,
	tx *database.Transaction,
	eventID, approverID string,
	status models.DecisionStatus,
	reason *string,
	decidedTime int64,
	companyID string,
) (int64, error) {
	query := `
		UPDATE WF_DECISION_REQUEST dr
		JOIN WF_RACI_ASSIGNMENT a ON dr.ASSIGNMENT_ID = a.ASSIGNMENT_ID
		JOIN WF_TASK t ON a.TASK_ID = t.TASK_ID
		SET dr.REQUEST_STATUS = ?, dr.DECISION_REASON = ?, dr.DECIDED_TIME = ?
		WHERE t.EVENT_ID = ? AND dr.APPROVER_ID = ? AND dr.REQUEST_STATUS = ? AND dr.COMPANY_ID = ?
	`

	result, err := tx.ExecContext(
		ctx,
		query,
		status,
		reason,
		decidedTime,
		eventID,
		approverID,
		models.DecisionStatusPending,
		companyID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to decide pending requests for approver %s: %w", approverID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}
