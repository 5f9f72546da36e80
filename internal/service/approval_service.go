package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/orgflow/raci-management-api/internal/database"
	"github.com/orgflow/raci-management-api/internal/models"
	"github.com/orgflow/raci-management-api/internal/serviceerror"
	"github.com/orgflow/raci-management-api/pkg/utils"
)

// recoveryLevels are the approval levels assigned to the acting user when the
// recovery path regenerates requests for an event that never had any.
var recoveryLevels = []int{1, 2}

// ApprovalService drives decision request generation and the consensus state
// machine over an event's RACI matrix.
type ApprovalService struct {
	decisionDAO   DecisionRequestStore
	assignmentDAO AssignmentStore
	eventDAO      EventStore
	db            *database.DB
	logger        *logrus.Logger
}

// NewApprovalService creates a new approval service instance
func NewApprovalService(
	decisionDAO DecisionRequestStore,
	assignmentDAO AssignmentStore,
	eventDAO EventStore,
	db *database.DB,
	logger *logrus.Logger,
) *ApprovalService {
	return &ApprovalService{
		decisionDAO:   decisionDAO,
		assignmentDAO: assignmentDAO,
		eventDAO:      eventDAO,
		db:            db,
		logger:        logger,
	}
}

// GenerateRequests materializes one PENDING decision request per
// (assignment x approver) pair for the event. Every approver rules on every
// individual RACI line, so an event with N assignments and M approvers gets
// exactly N*M requests. The previous request generation is deleted first;
// decision history does not survive regeneration.
func (s *ApprovalService) GenerateRequests(
	ctx context.Context,
	companyID, eventID string,
	approvers []models.ApproverAssignment,
) (int, error) {
	if err := utils.ValidateEventID(eventID); err != nil {
		return 0, serviceerror.New(serviceerror.InvalidInputError, err.Error())
	}
	if len(approvers) == 0 {
		return 0, serviceerror.New(serviceerror.InvalidInputError, "at least one approver is required")
	}
	for _, approver := range approvers {
		if err := utils.ValidateUserID(approver.UserID); err != nil {
			return 0, serviceerror.New(serviceerror.InvalidInputError, err.Error())
		}
		if err := utils.ValidateApprovalLevel(approver.ApprovalLevel); err != nil {
			return 0, serviceerror.New(serviceerror.InvalidInputError, err.Error())
		}
	}

	event, err := s.getEvent(ctx, companyID, eventID)
	if err != nil {
		return 0, err
	}

	created := 0
	err = s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		created, err = s.generateInTx(ctx, tx, event, approvers)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"event_id":       eventID,
		"approver_count": len(approvers),
		"request_count":  created,
	}).Info("Generated decision requests")

	return created, nil
}

// generateInTx deletes the existing request generation and inserts the new
// one inside the caller's transaction.
func (s *ApprovalService) generateInTx(
	ctx context.Context,
	tx *database.Transaction,
	event *models.Event,
	approvers []models.ApproverAssignment,
) (int, error) {
	assignments, err := s.assignmentDAO.GetByEventIDWithTx(ctx, tx, event.EventID, event.CompanyID)
	if err != nil {
		return 0, serviceerror.New(serviceerror.DatabaseError, err.Error())
	}
	if len(assignments) == 0 {
		return 0, serviceerror.Newf(serviceerror.NoAssignmentsError,
			"event %s has no RACI assignments", event.EventID)
	}

	if err := s.decisionDAO.DeleteByEventIDWithTx(ctx, tx, event.EventID, event.CompanyID); err != nil {
		return 0, serviceerror.New(serviceerror.DatabaseError, err.Error())
	}

	now := utils.GetCurrentTimeMillis()
	created := 0
	for i := range assignments {
		for _, approver := range approvers {
			request := &models.DecisionRequest{
				RequestID:     utils.GenerateRequestID(),
				AssignmentID:  assignments[i].AssignmentID,
				ApprovalLevel: approver.ApprovalLevel,
				ApproverID:    approver.UserID,
				RequestStatus: models.DecisionStatusPending,
				CreatedTime:   now,
				CompanyID:     event.CompanyID,
			}
			if err := s.decisionDAO.CreateWithTx(ctx, tx, request); err != nil {
				return 0, serviceerror.New(serviceerror.DatabaseError, err.Error())
			}
			created++
		}
	}

	return created, nil
}

// RecoverMissingRequests regenerates decision requests for an event whose
// roster has none at all, using the acting user as the approver at every
// recovery level. An event with any existing request is never overwritten.
func (s *ApprovalService) RecoverMissingRequests(ctx context.Context, companyID, eventID, actorID string) (int, error) {
	if err := utils.ValidateEventID(eventID); err != nil {
		return 0, serviceerror.New(serviceerror.InvalidInputError, err.Error())
	}
	if err := utils.ValidateUserID(actorID); err != nil {
		return 0, serviceerror.New(serviceerror.InvalidInputError, err.Error())
	}

	event, err := s.getEvent(ctx, companyID, eventID)
	if err != nil {
		return 0, err
	}

	approvers := make([]models.ApproverAssignment, 0, len(recoveryLevels))
	for _, level := range recoveryLevels {
		approvers = append(approvers, models.ApproverAssignment{UserID: actorID, ApprovalLevel: level})
	}

	created := 0
	err = s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		existing, err := s.decisionDAO.CountByEventIDWithTx(ctx, tx, eventID, companyID)
		if err != nil {
			return serviceerror.New(serviceerror.DatabaseError, err.Error())
		}
		if existing > 0 {
			return serviceerror.Newf(serviceerror.ConflictError,
				"event %s already has %d decision requests", eventID, existing)
		}

		created, err = s.generateInTx(ctx, tx, event, approvers)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"event_id":      eventID,
		"actor_id":      actorID,
		"request_count": created,
	}).Info("Recovered missing decision requests")

	return created, nil
}

// SweepMissingRequests finds events that have assignments but zero decision
// requests and regenerates for each with the event's HOD as the approver.
// Individual failures are logged and skipped; the sweep is a convenience
// fallback, not a correctness requirement.
func (s *ApprovalService) SweepMissingRequests(ctx context.Context) int {
	events, err := s.eventDAO.ListEventsMissingRequests(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Recovery sweep failed to list events")
		return 0
	}

	recovered := 0
	for i := range events {
		event := &events[i]
		if _, err := s.RecoverMissingRequests(ctx, event.CompanyID, event.EventID, event.HodID); err != nil {
			s.logger.WithError(err).WithField("event_id", event.EventID).
				Warn("Recovery sweep skipped event")
			continue
		}
		recovered++
	}

	if recovered > 0 {
		s.logger.WithField("event_count", recovered).Info("Recovery sweep regenerated decision requests")
	}

	return recovered
}

// ComputeStatus derives the consensus state of the event's RACI matrix from
// its decision requests. The result is recomputed on every call; nothing is
// cached because decision request mutation is the only source of truth.
func (s *ApprovalService) ComputeStatus(ctx context.Context, companyID, eventID string) (*models.ConsensusResult, error) {
	if err := utils.ValidateEventID(eventID); err != nil {
		return nil, serviceerror.New(serviceerror.InvalidInputError, err.Error())
	}

	if _, err := s.getEvent(ctx, companyID, eventID); err != nil {
		return nil, err
	}

	requests, err := s.decisionDAO.GetByEventID(ctx, eventID, companyID)
	if err != nil {
		return nil, serviceerror.New(serviceerror.DatabaseError, err.Error())
	}

	result := models.ComputeConsensus(eventID, requests)
	return &result, nil
}

// RecordDecision applies an approver's decision to all of their PENDING
// requests on the event in one batch. An approver rules on the matrix as a
// whole on their own behalf, never on individual lines.
func (s *ApprovalService) RecordDecision(
	ctx context.Context,
	companyID, eventID, approverID string,
	action models.DecisionAction,
	reason string,
) (int64, error) {
	if err := utils.ValidateEventID(eventID); err != nil {
		return 0, serviceerror.New(serviceerror.InvalidInputError, err.Error())
	}
	if err := utils.ValidateUserID(approverID); err != nil {
		return 0, serviceerror.New(serviceerror.InvalidInputError, err.Error())
	}

	var status models.DecisionStatus
	switch action {
	case models.ActionApprove:
		status = models.DecisionStatusApproved
	case models.ActionReject:
		if err := utils.ValidateDecisionReason(reason); err != nil {
			return 0, serviceerror.New(serviceerror.InvalidInputError, "rejection requires a reason: "+err.Error())
		}
		status = models.DecisionStatusRejected
	default:
		return 0, serviceerror.Newf(serviceerror.InvalidInputError, "unknown decision action: %s", action)
	}

	if _, err := s.getEvent(ctx, companyID, eventID); err != nil {
		return 0, err
	}

	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}

	var decided int64
	err := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		pending, err := s.decisionDAO.CountPendingByApproverWithTx(ctx, tx, eventID, approverID, companyID)
		if err != nil {
			return serviceerror.New(serviceerror.DatabaseError, err.Error())
		}
		if pending == 0 {
			return serviceerror.Newf(serviceerror.NoPendingDecisionError,
				"approver %s has no pending decision requests on event %s", approverID, eventID)
		}

		decided, err = s.decisionDAO.DecidePendingByApproverWithTx(
			ctx, tx, eventID, approverID, status, reasonPtr, utils.GetCurrentTimeMillis(), companyID)
		if err != nil {
			return serviceerror.New(serviceerror.DatabaseError, err.Error())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"event_id":    eventID,
		"approver_id": approverID,
		"action":      action,
		"row_count":   decided,
	}).Info("Recorded approver decision")

	return decided, nil
}

// ListDecisions returns the event's decision requests for audit and
// dashboard use.
func (s *ApprovalService) ListDecisions(ctx context.Context, companyID, eventID string) (*models.DecisionListResponse, error) {
	if err := utils.ValidateEventID(eventID); err != nil {
		return nil, serviceerror.New(serviceerror.InvalidInputError, err.Error())
	}

	if _, err := s.getEvent(ctx, companyID, eventID); err != nil {
		return nil, err
	}

	requests, err := s.decisionDAO.GetByEventID(ctx, eventID, companyID)
	if err != nil {
		return nil, serviceerror.New(serviceerror.DatabaseError, err.Error())
	}
	if requests == nil {
		requests = []models.DecisionRequest{}
	}

	return &models.DecisionListResponse{
		EventID: eventID,
		Total:   len(requests),
		Data:    requests,
	}, nil
}

// getEvent loads the event or returns a NotFound service error
func (s *ApprovalService) getEvent(ctx context.Context, companyID, eventID string) (*models.Event, error) {
	event, err := s.eventDAO.GetByID(ctx, eventID, companyID)
	if err != nil {
		return nil, serviceerror.New(serviceerror.DatabaseError, err.Error())
	}
	if event == nil {
		return nil, serviceerror.Newf(serviceerror.NotFoundError, "event not found: %s", eventID)
	}
	return event, nil
}
