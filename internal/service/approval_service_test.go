package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/orgflow/raci-management-api/internal/models"
	"github.com/orgflow/raci-management-api/internal/service/mocks"
	"github.com/orgflow/raci-management-api/internal/serviceerror"
)

const (
	testCompanyID = "COMP-001"
	testEventID   = "EVT-001"
)

func testEvent() *models.Event {
	return &models.Event{
		EventID:        testEventID,
		EventName:      "Q3 Budget Review",
		DepartmentID:   "DEPT-001",
		HodID:          "USR-HOD",
		ApprovalStatus: models.GateStatusNotSubmitted,
		CompanyID:      testCompanyID,
	}
}

func testAssignments(n int) []models.Assignment {
	assignments := make([]models.Assignment, 0, n)
	roles := []models.RACIRole{models.RoleResponsible, models.RoleAccountable, models.RoleConsulted, models.RoleInformed}
	for i := 0; i < n; i++ {
		assignments = append(assignments, models.Assignment{
			AssignmentID: "ASGN-00" + string(rune('1'+i)),
			TaskID:       "TASK-001",
			RACIRole:     roles[i%len(roles)],
			UserID:       "USR-00" + string(rune('1'+i)),
			CompanyID:    testCompanyID,
		})
	}
	return assignments
}

// TestGenerateRequests_FanOut tests that every approver gets one pending
// request per assignment row
func TestGenerateRequests_FanOut(t *testing.T) {
	db, dbMock := newTestDB(t)
	decisionDAO := new(mocks.MockDecisionRequestDAO)
	assignmentDAO := new(mocks.MockAssignmentDAO)
	eventDAO := new(mocks.MockEventDAO)

	service := NewApprovalService(decisionDAO, assignmentDAO, eventDAO, db, newTestLogger())

	eventDAO.On("GetByID", mock.Anything, testEventID, testCompanyID).Return(testEvent(), nil)

	dbMock.ExpectBegin()
	assignmentDAO.On("GetByEventIDWithTx", mock.Anything, mock.Anything, testEventID, testCompanyID).
		Return(testAssignments(2), nil)
	decisionDAO.On("DeleteByEventIDWithTx", mock.Anything, mock.Anything, testEventID, testCompanyID).
		Return(nil)

	var created []models.DecisionRequest
	decisionDAO.On("CreateWithTx", mock.Anything, mock.Anything, mock.AnythingOfType("*models.DecisionRequest")).
		Run(func(args mock.Arguments) {
			created = append(created, *args.Get(2).(*models.DecisionRequest))
		}).
		Return(nil)
	dbMock.ExpectCommit()

	approvers := []models.ApproverAssignment{
		{UserID: "USR-003", ApprovalLevel: 1},
		{UserID: "USR-004", ApprovalLevel: 2},
	}

	count, err := service.GenerateRequests(context.Background(), testCompanyID, testEventID, approvers)

	assert.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.Len(t, created, 4)
	for _, req := range created {
		assert.Equal(t, models.DecisionStatusPending, req.RequestStatus)
		assert.NotEmpty(t, req.RequestID)
	}

	perApprover := make(map[string]int)
	for _, req := range created {
		perApprover[req.ApproverID]++
	}
	assert.Equal(t, 2, perApprover["USR-003"])
	assert.Equal(t, 2, perApprover["USR-004"])

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

// TestGenerateRequests_EmptyRosterFails tests that an event without RACI
// assignments cannot get decision requests
func TestGenerateRequests_EmptyRosterFails(t *testing.T) {
	db, dbMock := newTestDB(t)
	decisionDAO := new(mocks.MockDecisionRequestDAO)
	assignmentDAO := new(mocks.MockAssignmentDAO)
	eventDAO := new(mocks.MockEventDAO)

	service := NewApprovalService(decisionDAO, assignmentDAO, eventDAO, db, newTestLogger())

	eventDAO.On("GetByID", mock.Anything, testEventID, testCompanyID).Return(testEvent(), nil)

	dbMock.ExpectBegin()
	assignmentDAO.On("GetByEventIDWithTx", mock.Anything, mock.Anything, testEventID, testCompanyID).
		Return([]models.Assignment{}, nil)
	dbMock.ExpectRollback()

	approvers := []models.ApproverAssignment{{UserID: "USR-003", ApprovalLevel: 1}}

	count, err := service.GenerateRequests(context.Background(), testCompanyID, testEventID, approvers)

	assert.Error(t, err)
	assert.Equal(t, 0, count)
	assert.True(t, serviceerror.Is(err, serviceerror.NoAssignmentsError))
	decisionDAO.AssertNotCalled(t, "DeleteByEventIDWithTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

// TestGenerateRequests_RequiresApprovers tests the empty approver list guard
func TestGenerateRequests_RequiresApprovers(t *testing.T) {
	db, _ := newTestDB(t)
	service := NewApprovalService(new(mocks.MockDecisionRequestDAO), new(mocks.MockAssignmentDAO), new(mocks.MockEventDAO), db, newTestLogger())

	count, err := service.GenerateRequests(context.Background(), testCompanyID, testEventID, nil)

	assert.Error(t, err)
	assert.Equal(t, 0, count)
	assert.True(t, serviceerror.Is(err, serviceerror.InvalidInputError))
}

// TestGenerateRequests_EventNotFound tests request generation for an unknown event
func TestGenerateRequests_EventNotFound(t *testing.T) {
	db, _ := newTestDB(t)
	eventDAO := new(mocks.MockEventDAO)
	service := NewApprovalService(new(mocks.MockDecisionRequestDAO), new(mocks.MockAssignmentDAO), eventDAO, db, newTestLogger())

	eventDAO.On("GetByID", mock.Anything, "EVT-MISSING", testCompanyID).Return(nil, nil)

	count, err := service.GenerateRequests(context.Background(), testCompanyID, "EVT-MISSING",
		[]models.ApproverAssignment{{UserID: "USR-003", ApprovalLevel: 1}})

	assert.Error(t, err)
	assert.Equal(t, 0, count)
	assert.True(t, serviceerror.Is(err, serviceerror.NotFoundError))
}

// TestRecoverMissingRequests_GeneratesAtBothLevels tests that recovery places
// the acting user at levels 1 and 2
func TestRecoverMissingRequests_GeneratesAtBothLevels(t *testing.T) {
	db, dbMock := newTestDB(t)
	decisionDAO := new(mocks.MockDecisionRequestDAO)
	assignmentDAO := new(mocks.MockAssignmentDAO)
	eventDAO := new(mocks.MockEventDAO)

	service := NewApprovalService(decisionDAO, assignmentDAO, eventDAO, db, newTestLogger())

	eventDAO.On("GetByID", mock.Anything, testEventID, testCompanyID).Return(testEvent(), nil)

	dbMock.ExpectBegin()
	decisionDAO.On("CountByEventIDWithTx", mock.Anything, mock.Anything, testEventID, testCompanyID).
		Return(0, nil)
	assignmentDAO.On("GetByEventIDWithTx", mock.Anything, mock.Anything, testEventID, testCompanyID).
		Return(testAssignments(1), nil)
	decisionDAO.On("DeleteByEventIDWithTx", mock.Anything, mock.Anything, testEventID, testCompanyID).
		Return(nil)

	var created []models.DecisionRequest
	decisionDAO.On("CreateWithTx", mock.Anything, mock.Anything, mock.AnythingOfType("*models.DecisionRequest")).
		Run(func(args mock.Arguments) {
			created = append(created, *args.Get(2).(*models.DecisionRequest))
		}).
		Return(nil)
	dbMock.ExpectCommit()

	count, err := service.RecoverMissingRequests(context.Background(), testCompanyID, testEventID, "USR-HOD")

	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, created, 2)

	levels := []int{created[0].ApprovalLevel, created[1].ApprovalLevel}
	assert.ElementsMatch(t, []int{1, 2}, levels)
	for _, req := range created {
		assert.Equal(t, "USR-HOD", req.ApproverID)
	}
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

// TestRecoverMissingRequests_ExistingRequestsConflict tests that recovery
// never overwrites an event that already has requests
func TestRecoverMissingRequests_ExistingRequestsConflict(t *testing.T) {
	db, dbMock := newTestDB(t)
	decisionDAO := new(mocks.MockDecisionRequestDAO)
	assignmentDAO := new(mocks.MockAssignmentDAO)
	eventDAO := new(mocks.MockEventDAO)

	service := NewApprovalService(decisionDAO, assignmentDAO, eventDAO, db, newTestLogger())

	eventDAO.On("GetByID", mock.Anything, testEventID, testCompanyID).Return(testEvent(), nil)

	dbMock.ExpectBegin()
	decisionDAO.On("CountByEventIDWithTx", mock.Anything, mock.Anything, testEventID, testCompanyID).
		Return(6, nil)
	dbMock.ExpectRollback()

	count, err := service.RecoverMissingRequests(context.Background(), testCompanyID, testEventID, "USR-HOD")

	assert.Error(t, err)
	assert.Equal(t, 0, count)
	assert.True(t, serviceerror.Is(err, serviceerror.ConflictError))
	assignmentDAO.AssertNotCalled(t, "GetByEventIDWithTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

// TestComputeStatus_VetoDominates tests that a single rejection forces the
// overall status to REJECTED regardless of remaining approvals
func TestComputeStatus_VetoDominates(t *testing.T) {
	db, _ := newTestDB(t)
	decisionDAO := new(mocks.MockDecisionRequestDAO)
	eventDAO := new(mocks.MockEventDAO)

	service := NewApprovalService(decisionDAO, new(mocks.MockAssignmentDAO), eventDAO, db, newTestLogger())

	eventDAO.On("GetByID", mock.Anything, testEventID, testCompanyID).Return(testEvent(), nil)

	reason := "budget exceeds department ceiling"
	requests := []models.DecisionRequest{
		{RequestID: "DREQ-1", AssignmentID: "ASGN-001", ApproverID: "USR-003", ApprovalLevel: 1, RequestStatus: models.DecisionStatusApproved},
		{RequestID: "DREQ-2", AssignmentID: "ASGN-002", ApproverID: "USR-003", ApprovalLevel: 1, RequestStatus: models.DecisionStatusApproved},
		{RequestID: "DREQ-3", AssignmentID: "ASGN-001", ApproverID: "USR-004", ApprovalLevel: 2, RequestStatus: models.DecisionStatusRejected, DecisionReason: &reason},
		{RequestID: "DREQ-4", AssignmentID: "ASGN-002", ApproverID: "USR-004", ApprovalLevel: 2, RequestStatus: models.DecisionStatusRejected, DecisionReason: &reason},
	}
	decisionDAO.On("GetByEventID", mock.Anything, testEventID, testCompanyID).Return(requests, nil)

	result, err := service.ComputeStatus(context.Background(), testCompanyID, testEventID)

	assert.NoError(t, err)
	assert.Equal(t, models.DecisionStatusRejected, result.Overall)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Approved)
	assert.Equal(t, 2, result.Rejected)
	assert.Equal(t, 0, result.Pending)
}

// TestComputeStatus_PartialApprovalStaysPending tests that approvals alone do
// not close the consensus while other requests are still pending
func TestComputeStatus_PartialApprovalStaysPending(t *testing.T) {
	db, _ := newTestDB(t)
	decisionDAO := new(mocks.MockDecisionRequestDAO)
	eventDAO := new(mocks.MockEventDAO)

	service := NewApprovalService(decisionDAO, new(mocks.MockAssignmentDAO), eventDAO, db, newTestLogger())

	eventDAO.On("GetByID", mock.Anything, testEventID, testCompanyID).Return(testEvent(), nil)

	requests := []models.DecisionRequest{
		{RequestID: "DREQ-1", ApproverID: "USR-003", ApprovalLevel: 1, RequestStatus: models.DecisionStatusApproved},
		{RequestID: "DREQ-2", ApproverID: "USR-003", ApprovalLevel: 1, RequestStatus: models.DecisionStatusApproved},
		{RequestID: "DREQ-3", ApproverID: "USR-004", ApprovalLevel: 2, RequestStatus: models.DecisionStatusPending},
		{RequestID: "DREQ-4", ApproverID: "USR-004", ApprovalLevel: 2, RequestStatus: models.DecisionStatusPending},
	}
	decisionDAO.On("GetByEventID", mock.Anything, testEventID, testCompanyID).Return(requests, nil)

	result, err := service.ComputeStatus(context.Background(), testCompanyID, testEventID)

	assert.NoError(t, err)
	assert.Equal(t, models.DecisionStatusPending, result.Overall)
	assert.Equal(t, 2, result.Approved)
	assert.Equal(t, 2, result.Pending)
	assert.Len(t, result.ByLevel, 2)
	assert.Equal(t, 1, result.ByLevel[0].Level)
	assert.Equal(t, 2, result.ByLevel[0].Approved)
	assert.Equal(t, 2, result.ByLevel[1].Pending)
}

// TestRecordDecision_ApprovesWholeBatch tests that one approve call moves all
// of the approver's pending requests
func TestRecordDecision_ApprovesWholeBatch(t *testing.T) {
	db, dbMock := newTestDB(t)
	decisionDAO := new(mocks.MockDecisionRequestDAO)
	eventDAO := new(mocks.MockEventDAO)

	service := NewApprovalService(decisionDAO, new(mocks.MockAssignmentDAO), eventDAO, db, newTestLogger())

	eventDAO.On("GetByID", mock.Anything, testEventID, testCompanyID).Return(testEvent(), nil)

	dbMock.ExpectBegin()
	decisionDAO.On("CountPendingByApproverWithTx", mock.Anything, mock.Anything, testEventID, "USR-003", testCompanyID).
		Return(4, nil)
	decisionDAO.On("DecidePendingByApproverWithTx",
		mock.Anything, mock.Anything, testEventID, "USR-003",
		models.DecisionStatusApproved, (*string)(nil), mock.AnythingOfType("int64"), testCompanyID).
		Return(int64(4), nil)
	dbMock.ExpectCommit()

	decided, err := service.RecordDecision(context.Background(), testCompanyID, testEventID, "USR-003", models.ActionApprove, "")

	assert.NoError(t, err)
	assert.Equal(t, int64(4), decided)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

// TestRecordDecision_RejectRequiresReason tests the rejection reason guard
func TestRecordDecision_RejectRequiresReason(t *testing.T) {
	db, _ := newTestDB(t)
	decisionDAO := new(mocks.MockDecisionRequestDAO)
	service := NewApprovalService(decisionDAO, new(mocks.MockAssignmentDAO), new(mocks.MockEventDAO), db, newTestLogger())

	decided, err := service.RecordDecision(context.Background(), testCompanyID, testEventID, "USR-003", models.ActionReject, "   ")

	assert.Error(t, err)
	assert.Equal(t, int64(0), decided)
	assert.True(t, serviceerror.Is(err, serviceerror.InvalidInputError))
	assert.Contains(t, err.Error(), "reason")
	decisionDAO.AssertNotCalled(t, "DecidePendingByApproverWithTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestRecordDecision_RejectCarriesReason tests that a rejection records the
// reason on the batch
func TestRecordDecision_RejectCarriesReason(t *testing.T) {
	db, dbMock := newTestDB(t)
	decisionDAO := new(mocks.MockDecisionRequestDAO)
	eventDAO := new(mocks.MockEventDAO)

	service := NewApprovalService(decisionDAO, new(mocks.MockAssignmentDAO), eventDAO, db, newTestLogger())

	eventDAO.On("GetByID", mock.Anything, testEventID, testCompanyID).Return(testEvent(), nil)

	reason := "budget exceeds department ceiling"

	dbMock.ExpectBegin()
	decisionDAO.On("CountPendingByApproverWithTx", mock.Anything, mock.Anything, testEventID, "USR-004", testCompanyID).
		Return(2, nil)
	decisionDAO.On("DecidePendingByApproverWithTx",
		mock.Anything, mock.Anything, testEventID, "USR-004",
		models.DecisionStatusRejected, &reason, mock.AnythingOfType("int64"), testCompanyID).
		Return(int64(2), nil)
	dbMock.ExpectCommit()

	decided, err := service.RecordDecision(context.Background(), testCompanyID, testEventID, "USR-004", models.ActionReject, reason)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), decided)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

// TestRecordDecision_UnknownAction tests the action enumeration guard
func TestRecordDecision_UnknownAction(t *testing.T) {
	db, _ := newTestDB(t)
	service := NewApprovalService(new(mocks.MockDecisionRequestDAO), new(mocks.MockAssignmentDAO), new(mocks.MockEventDAO), db, newTestLogger())

	decided, err := service.RecordDecision(context.Background(), testCompanyID, testEventID, "USR-003", "defer", "")

	assert.Error(t, err)
	assert.Equal(t, int64(0), decided)
	assert.True(t, serviceerror.Is(err, serviceerror.InvalidInputError))
}

// TestRecordDecision_NoPendingRows tests that an approver without pending
// requests gets a distinct error instead of a silent no-op
func TestRecordDecision_NoPendingRows(t *testing.T) {
	db, dbMock := newTestDB(t)
	decisionDAO := new(mocks.MockDecisionRequestDAO)
	eventDAO := new(mocks.MockEventDAO)

	service := NewApprovalService(decisionDAO, new(mocks.MockAssignmentDAO), eventDAO, db, newTestLogger())

	eventDAO.On("GetByID", mock.Anything, testEventID, testCompanyID).Return(testEvent(), nil)

	dbMock.ExpectBegin()
	decisionDAO.On("CountPendingByApproverWithTx", mock.Anything, mock.Anything, testEventID, "USR-009", testCompanyID).
		Return(0, nil)
	dbMock.ExpectRollback()

	decided, err := service.RecordDecision(context.Background(), testCompanyID, testEventID, "USR-009", models.ActionApprove, "")

	assert.Error(t, err)
	assert.Equal(t, int64(0), decided)
	assert.True(t, serviceerror.Is(err, serviceerror.NoPendingDecisionError))
	decisionDAO.AssertNotCalled(t, "DecidePendingByApproverWithTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

// TestListDecisions_EmptyEventReturnsEmptyList tests the audit listing for an
// event with no requests
func TestListDecisions_EmptyEventReturnsEmptyList(t *testing.T) {
	db, _ := newTestDB(t)
	decisionDAO := new(mocks.MockDecisionRequestDAO)
	eventDAO := new(mocks.MockEventDAO)

	service := NewApprovalService(decisionDAO, new(mocks.MockAssignmentDAO), eventDAO, db, newTestLogger())

	eventDAO.On("GetByID", mock.Anything, testEventID, testCompanyID).Return(testEvent(), nil)
	decisionDAO.On("GetByEventID", mock.Anything, testEventID, testCompanyID).Return([]models.DecisionRequest{}, nil)

	response, err := service.ListDecisions(context.Background(), testCompanyID, testEventID)

	assert.NoError(t, err)
	assert.Equal(t, 0, response.Total)
	assert.NotNil(t, response.Data)
	assert.Empty(t, response.Data)
}

// TestSweepMissingRequests_RecoversListedEvents tests the scheduled sweep over
// events that have assignments but no requests
func TestSweepMissingRequests_RecoversListedEvents(t *testing.T) {
	db, dbMock := newTestDB(t)
	decisionDAO := new(mocks.MockDecisionRequestDAO)
	assignmentDAO := new(mocks.MockAssignmentDAO)
	eventDAO := new(mocks.MockEventDAO)

	service := NewApprovalService(decisionDAO, assignmentDAO, eventDAO, db, newTestLogger())

	event := testEvent()
	eventDAO.On("ListEventsMissingRequests", mock.Anything).Return([]models.Event{*event}, nil)
	eventDAO.On("GetByID", mock.Anything, testEventID, testCompanyID).Return(event, nil)

	dbMock.ExpectBegin()
	decisionDAO.On("CountByEventIDWithTx", mock.Anything, mock.Anything, testEventID, testCompanyID).
		Return(0, nil)
	assignmentDAO.On("GetByEventIDWithTx", mock.Anything, mock.Anything, testEventID, testCompanyID).
		Return(testAssignments(1), nil)
	decisionDAO.On("DeleteByEventIDWithTx", mock.Anything, mock.Anything, testEventID, testCompanyID).
		Return(nil)
	decisionDAO.On("CreateWithTx", mock.Anything, mock.Anything, mock.AnythingOfType("*models.DecisionRequest")).
		Return(nil)
	dbMock.ExpectCommit()

	recovered := service.SweepMissingRequests(context.Background())

	assert.Equal(t, 1, recovered)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
