package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/orgflow/raci-management-api/internal/database"
	"github.com/orgflow/raci-management-api/internal/models"
	"github.com/orgflow/raci-management-api/internal/serviceerror"
	"github.com/orgflow/raci-management-api/pkg/utils"
)

// EventService drives the event gate: the event's own single-approver,
// one-shot approval, upstream of and independent from the RACI consensus.
type EventService struct {
	eventDAO EventStore
	userDAO  UserDirectory
	db       *database.DB
	logger   *logrus.Logger
}

// NewEventService creates a new event service instance
func NewEventService(
	eventDAO EventStore,
	userDAO UserDirectory,
	db *database.DB,
	logger *logrus.Logger,
) *EventService {
	return &EventService{
		eventDAO: eventDAO,
		userDAO:  userDAO,
		db:       db,
		logger:   logger,
	}
}

// GetEvent returns the event record with its gate status
func (s *EventService) GetEvent(ctx context.Context, companyID, eventID string) (*models.Event, error) {
	if err := utils.ValidateEventID(eventID); err != nil {
		return nil, serviceerror.New(serviceerror.InvalidInputError, err.Error())
	}

	event, err := s.eventDAO.GetByID(ctx, eventID, companyID)
	if err != nil {
		return nil, serviceerror.New(serviceerror.DatabaseError, err.Error())
	}
	if event == nil {
		return nil, serviceerror.Newf(serviceerror.NotFoundError, "event not found: %s", eventID)
	}

	return event, nil
}

// SubmitForApproval transitions the event gate from NOT_SUBMITTED to PENDING
// and assigns the sole decision-maker. When no approver is named the event's
// department head is assigned.
func (s *EventService) SubmitForApproval(ctx context.Context, companyID, eventID, approverID string) (*models.Event, error) {
	event, err := s.GetEvent(ctx, companyID, eventID)
	if err != nil {
		return nil, err
	}

	if event.ApprovalStatus != models.GateStatusNotSubmitted {
		return nil, serviceerror.Newf(serviceerror.ConflictError,
			"event %s is already %s", eventID, event.ApprovalStatus)
	}

	if approverID == "" {
		approverID = event.HodID
	}

	approver, err := s.userDAO.GetByID(ctx, approverID, companyID)
	if err != nil {
		return nil, serviceerror.New(serviceerror.DatabaseError, err.Error())
	}
	if approver == nil {
		return nil, serviceerror.Newf(serviceerror.NotFoundError, "approver not found in directory: %s", approverID)
	}

	event.ApprovalStatus = models.GateStatusPending
	event.ApproverID = &approverID
	event.UpdatedTime = utils.GetCurrentTimeMillis()

	err = s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		if err := s.eventDAO.UpdateGateWithTx(ctx, tx, event); err != nil {
			return serviceerror.New(serviceerror.DatabaseError, err.Error())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"event_id":    eventID,
		"approver_id": approverID,
	}).Info("Event submitted for gate approval")

	return event, nil
}

// DecideEvent performs the one-shot gate transition from PENDING to APPROVED
// or REJECTED. The transition is terminal; it cannot be reversed through
// this operation, and it never touches the RACI consensus state.
func (s *EventService) DecideEvent(ctx context.Context, caller models.CallerContext, eventID string, approved bool, comments string) (*models.Event, error) {
	event, err := s.GetEvent(ctx, caller.CompanyID, eventID)
	if err != nil {
		return nil, err
	}

	if event.ApprovalStatus != models.GateStatusPending {
		return nil, serviceerror.Newf(serviceerror.ConflictError,
			"event %s gate is %s, not PENDING", eventID, event.ApprovalStatus)
	}

	if caller.UserRole != models.RoleCompanyAdmin &&
		(event.ApproverID == nil || caller.UserID != *event.ApproverID) {
		return nil, serviceerror.Newf(serviceerror.UnauthorizedError,
			"user %s is not the assigned approver for event %s", caller.UserID, eventID)
	}

	now := utils.GetCurrentTimeMillis()
	if approved {
		event.ApprovalStatus = models.GateStatusApproved
	} else {
		event.ApprovalStatus = models.GateStatusRejected
	}
	if comments != "" {
		event.ApprovalComments = &comments
	}
	event.DecidedTime = &now
	event.UpdatedTime = now

	err = s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		if err := s.eventDAO.UpdateGateWithTx(ctx, tx, event); err != nil {
			return serviceerror.New(serviceerror.DatabaseError, err.Error())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"event_id": eventID,
		"status":   event.ApprovalStatus,
	}).Info("Event gate decided")

	return event, nil
}
