package dao

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/orgflow/raci-management-api/internal/models"
)

// TestDecisionRequestDAO_CreateWithTx tests the decision request insert
func TestDecisionRequestDAO_CreateWithTx(t *testing.T) {
	db, mock := newTestDB(t)
	dao := NewDecisionRequestDAO(db)
	tx := newTestTx(t, db, mock)

	request := &models.DecisionRequest{
		RequestID:     "DREQ-001",
		AssignmentID:  "ASGN-001",
		ApprovalLevel: 1,
		ApproverID:    "USR-003",
		RequestStatus: models.DecisionStatusPending,
		CreatedTime:   1700000000000,
		CompanyID:     "COMP-001",
	}

	mock.ExpectExec("INSERT INTO WF_DECISION_REQUEST").
		WithArgs("DREQ-001", "ASGN-001", 1, "USR-003",
			models.DecisionStatusPending, nil, nil, int64(1700000000000), "COMP-001").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := dao.CreateWithTx(context.Background(), tx, request)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestDecisionRequestDAO_DeleteByEventIDWithTx tests the generation-wide delete
func TestDecisionRequestDAO_DeleteByEventIDWithTx(t *testing.T) {
	db, mock := newTestDB(t)
	dao := NewDecisionRequestDAO(db)
	tx := newTestTx(t, db, mock)

	mock.ExpectExec("DELETE dr FROM WF_DECISION_REQUEST dr").
		WithArgs("EVT-001", "COMP-001").
		WillReturnResult(sqlmock.NewResult(0, 4))

	err := dao.DeleteByEventIDWithTx(context.Background(), tx, "EVT-001", "COMP-001")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestDecisionRequestDAO_GetByEventID tests row scanning for the audit listing
func TestDecisionRequestDAO_GetByEventID(t *testing.T) {
	db, mock := newTestDB(t)
	dao := NewDecisionRequestDAO(db)

	reason := "budget exceeds department ceiling"
	rows := sqlmock.NewRows([]string{
		"REQUEST_ID", "ASSIGNMENT_ID", "APPROVAL_LEVEL", "APPROVER_ID",
		"REQUEST_STATUS", "DECISION_REASON", "DECIDED_TIME", "CREATED_TIME", "COMPANY_ID",
	}).
		AddRow("DREQ-001", "ASGN-001", 1, "USR-003", "APPROVED", nil, 1700000001000, 1700000000000, "COMP-001").
		AddRow("DREQ-002", "ASGN-001", 2, "USR-004", "REJECTED", reason, 1700000002000, 1700000000000, "COMP-001")

	mock.ExpectQuery("SELECT (.+) FROM WF_DECISION_REQUEST dr").
		WithArgs("EVT-001", "COMP-001").
		WillReturnRows(rows)

	requests, err := dao.GetByEventID(context.Background(), "EVT-001", "COMP-001")

	assert.NoError(t, err)
	assert.Len(t, requests, 2)
	assert.Equal(t, models.DecisionStatusApproved, requests[0].RequestStatus)
	assert.Nil(t, requests[0].DecisionReason)
	assert.NotNil(t, requests[1].DecisionReason)
	assert.Equal(t, reason, *requests[1].DecisionReason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestDecisionRequestDAO_CountPendingByApproverWithTx tests the pending count
// used as the decision precondition
func TestDecisionRequestDAO_CountPendingByApproverWithTx(t *testing.T) {
	db, mock := newTestDB(t)
	dao := NewDecisionRequestDAO(db)
	tx := newTestTx(t, db, mock)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("EVT-001", "USR-003", models.DecisionStatusPending, "COMP-001").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(4))

	count, err := dao.CountPendingByApproverWithTx(context.Background(), tx, "EVT-001", "USR-003", "COMP-001")

	assert.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestDecisionRequestDAO_DecidePendingByApproverWithTx tests the batch status
// update and its affected row count
func TestDecisionRequestDAO_DecidePendingByApproverWithTx(t *testing.T) {
	db, mock := newTestDB(t)
	dao := NewDecisionRequestDAO(db)
	tx := newTestTx(t, db, mock)

	reason := "budget exceeds department ceiling"

	mock.ExpectExec("UPDATE WF_DECISION_REQUEST dr").
		WithArgs(models.DecisionStatusRejected, &reason, int64(1700000005000),
			"EVT-001", "USR-004", models.DecisionStatusPending, "COMP-001").
		WillReturnResult(sqlmock.NewResult(0, 4))

	decided, err := dao.DecidePendingByApproverWithTx(
		context.Background(), tx, "EVT-001", "USR-004",
		models.DecisionStatusRejected, &reason, 1700000005000, "COMP-001")

	assert.NoError(t, err)
	assert.Equal(t, int64(4), decided)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestDecisionRequestDAO_DecidePendingByApproverWithTx_NoRows tests the
// zero-row update path
func TestDecisionRequestDAO_DecidePendingByApproverWithTx_NoRows(t *testing.T) {
	db, mock := newTestDB(t)
	dao := NewDecisionRequestDAO(db)
	tx := newTestTx(t, db, mock)

	mock.ExpectExec("UPDATE WF_DECISION_REQUEST dr").
		WithArgs(models.DecisionStatusApproved, nil, int64(1700000005000),
			"EVT-001", "USR-009", models.DecisionStatusPending, "COMP-001").
		WillReturnResult(sqlmock.NewResult(0, 0))

	decided, err := dao.DecidePendingByApproverWithTx(
		context.Background(), tx, "EVT-001", "USR-009",
		models.DecisionStatusApproved, nil, 1700000005000, "COMP-001")

	assert.NoError(t, err)
	assert.Equal(t, int64(0), decided)
	assert.NoError(t, mock.ExpectationsWereMet())
}
