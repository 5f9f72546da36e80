package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/orgflow/raci-management-api/internal/config"
	"github.com/orgflow/raci-management-api/internal/database"
	"github.com/orgflow/raci-management-api/internal/models"
	"github.com/orgflow/raci-management-api/internal/serviceerror"
	"github.com/orgflow/raci-management-api/pkg/utils"
)

// AssignmentService handles business logic for RACI roster replacement
type AssignmentService struct {
	assignmentDAO AssignmentStore
	eventDAO      EventStore
	userDAO       UserDirectory
	db            *database.DB
	logger        *logrus.Logger
}

// NewAssignmentService creates a new assignment service instance
func NewAssignmentService(
	assignmentDAO AssignmentStore,
	eventDAO EventStore,
	userDAO UserDirectory,
	db *database.DB,
	logger *logrus.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignmentDAO: assignmentDAO,
		eventDAO:      eventDAO,
		userDAO:       userDAO,
		db:            db,
		logger:        logger,
	}
}

// defaultApprovalLevel reads the configured default for roster entries that
// omit a level, falling back to 1 when no config is loaded.
func defaultApprovalLevel() int {
	if cfg := config.Get(); cfg != nil && cfg.Approval.DefaultApprovalLevel > 0 {
		return cfg.Approval.DefaultApprovalLevel
	}
	return 1
}

// ReplaceTaskRoster replaces the full RACI roster of one task. The previous
// assignment generation is hard-deleted before the new one is inserted, so
// after the call the task's roster exactly equals the request.
func (s *AssignmentService) ReplaceTaskRoster(
	ctx context.Context,
	caller models.CallerContext,
	eventID, taskID string,
	roster *models.TaskRosterRequest,
) ([]models.Assignment, error) {
	if err := utils.ValidateEventID(eventID); err != nil {
		return nil, serviceerror.New(serviceerror.InvalidInputError, err.Error())
	}
	if err := utils.ValidateTaskID(taskID); err != nil {
		return nil, serviceerror.New(serviceerror.InvalidInputError, err.Error())
	}

	event, err := s.authorizeEventAccess(ctx, caller, eventID)
	if err != nil {
		return nil, err
	}

	var inserted []models.Assignment
	err = s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		inserted, err = s.replaceTaskRosterInTx(ctx, tx, event, taskID, roster)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"event_id":   eventID,
		"task_id":    taskID,
		"row_count":  len(inserted),
		"company_id": caller.CompanyID,
	}).Info("Replaced task RACI roster")

	return inserted, nil
}

// ReplaceEventRoster replaces the rosters of several tasks in one
// all-or-nothing unit of work. Any task lookup failure aborts the whole batch
// with no assignments changed.
func (s *AssignmentService) ReplaceEventRoster(
	ctx context.Context,
	caller models.CallerContext,
	eventID string,
	taskRosters []models.TaskRosterItem,
) (int, error) {
	if err := utils.ValidateEventID(eventID); err != nil {
		return 0, serviceerror.New(serviceerror.InvalidInputError, err.Error())
	}
	if len(taskRosters) == 0 {
		return 0, serviceerror.New(serviceerror.InvalidInputError, "at least one task roster is required")
	}

	event, err := s.authorizeEventAccess(ctx, caller, eventID)
	if err != nil {
		return 0, err
	}

	total := 0
	err = s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		for i := range taskRosters {
			item := &taskRosters[i]
			inserted, err := s.replaceTaskRosterInTx(ctx, tx, event, item.TaskID, &item.Roster)
			if err != nil {
				return err
			}
			total += len(inserted)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"event_id":   eventID,
		"task_count": len(taskRosters),
		"row_count":  total,
	}).Info("Replaced event RACI rosters")

	return total, nil
}

// replaceTaskRosterInTx performs the delete-then-insert replacement for one
// task within the caller's transaction.
func (s *AssignmentService) replaceTaskRosterInTx(
	ctx context.Context,
	tx *database.Transaction,
	event *models.Event,
	taskID string,
	roster *models.TaskRosterRequest,
) ([]models.Assignment, error) {
	task, err := s.eventDAO.GetTaskByIDWithTx(ctx, tx, taskID, event.CompanyID)
	if err != nil {
		return nil, serviceerror.New(serviceerror.DatabaseError, err.Error())
	}
	if task == nil || task.EventID != event.EventID {
		return nil, serviceerror.Newf(serviceerror.NotFoundError, "task %s does not belong to event %s", taskID, event.EventID)
	}

	rows, err := s.buildAssignmentRows(task, roster, event.CompanyID)
	if err != nil {
		return nil, err
	}

	if err := s.assignmentDAO.DeleteByTaskIDWithTx(ctx, tx, taskID, event.CompanyID); err != nil {
		return nil, serviceerror.New(serviceerror.DatabaseError, err.Error())
	}

	for i := range rows {
		if err := s.assignmentDAO.CreateWithTx(ctx, tx, &rows[i]); err != nil {
			return nil, serviceerror.New(serviceerror.DatabaseError, err.Error())
		}
	}

	return rows, nil
}

// buildAssignmentRows expands the four roster lists into assignment rows.
// Levels default to the configured value; financial limits coerce leniently,
// so a malformed ceiling becomes NULL instead of failing the replacement.
func (s *AssignmentService) buildAssignmentRows(task *models.Task, roster *models.TaskRosterRequest, companyID string) ([]models.Assignment, error) {
	now := utils.GetCurrentTimeMillis()
	rows := make([]models.Assignment, 0)

	for _, group := range roster.ByRole() {
		for _, entry := range group.Entries {
			if err := utils.ValidateUserID(entry.UserID); err != nil {
				return nil, serviceerror.New(serviceerror.InvalidInputError, err.Error())
			}

			level := defaultApprovalLevel()
			if entry.ApprovalLevel != nil {
				level = *entry.ApprovalLevel
			}
			if err := utils.ValidateApprovalLevel(level); err != nil {
				return nil, serviceerror.New(serviceerror.InvalidInputError, err.Error())
			}

			rows = append(rows, models.Assignment{
				AssignmentID:      utils.GenerateAssignmentID(),
				TaskID:            task.TaskID,
				RACIRole:          group.Role,
				UserID:            entry.UserID,
				ApprovalLevel:     level,
				FinancialLimitMin: entry.FinancialLimitMin.Float(),
				FinancialLimitMax: entry.FinancialLimitMax.Float(),
				CreatedTime:       now,
				CompanyID:         companyID,
			})
		}
	}

	return rows, nil
}

// GetEventMatrix returns the event's full RACI matrix grouped per task
func (s *AssignmentService) GetEventMatrix(ctx context.Context, companyID, eventID string) (*models.EventMatrixResponse, error) {
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

	tasks, err := s.eventDAO.GetTasksByEventID(ctx, eventID, companyID)
	if err != nil {
		return nil, serviceerror.New(serviceerror.DatabaseError, err.Error())
	}

	assignments, err := s.assignmentDAO.GetByEventID(ctx, eventID, companyID)
	if err != nil {
		return nil, serviceerror.New(serviceerror.DatabaseError, err.Error())
	}

	byTask := make(map[string][]models.Assignment)
	for _, a := range assignments {
		byTask[a.TaskID] = append(byTask[a.TaskID], a)
	}

	response := &models.EventMatrixResponse{
		EventID: eventID,
		Total:   len(assignments),
		Tasks:   make([]models.TaskMatrixResponse, 0, len(tasks)),
	}
	for _, task := range tasks {
		taskAssignments := byTask[task.TaskID]
		if taskAssignments == nil {
			taskAssignments = []models.Assignment{}
		}
		response.Tasks = append(response.Tasks, models.TaskMatrixResponse{
			TaskID:      task.TaskID,
			TaskName:    task.TaskName,
			TaskStatus:  task.TaskStatus,
			Assignments: taskAssignments,
		})
	}

	return response, nil
}

// authorizeEventAccess loads the event and verifies the caller is the event's
// head of department or a company administrator.
func (s *AssignmentService) authorizeEventAccess(ctx context.Context, caller models.CallerContext, eventID string) (*models.Event, error) {
	if err := utils.ValidateUserID(caller.UserID); err != nil {
		return nil, serviceerror.New(serviceerror.InvalidInputError, err.Error())
	}
	if err := utils.ValidateCompanyID(caller.CompanyID); err != nil {
		return nil, serviceerror.New(serviceerror.InvalidInputError, err.Error())
	}

	event, err := s.eventDAO.GetByID(ctx, eventID, caller.CompanyID)
	if err != nil {
		return nil, serviceerror.New(serviceerror.DatabaseError, err.Error())
	}
	if event == nil {
		return nil, serviceerror.Newf(serviceerror.NotFoundError, "event not found: %s", eventID)
	}

	if caller.UserRole == models.RoleCompanyAdmin {
		return event, nil
	}
	if caller.UserID == event.HodID {
		return event, nil
	}

	// Fall back to the directory: an HOD of the event's department qualifies
	// even when the event record carries a different head.
	user, err := s.userDAO.GetByID(ctx, caller.UserID, caller.CompanyID)
	if err != nil {
		return nil, serviceerror.New(serviceerror.DatabaseError, err.Error())
	}
	if user != nil && user.UserRole == models.RoleCompanyAdmin {
		return event, nil
	}
	if user != nil && user.UserRole == models.RoleHOD && user.DepartmentID == event.DepartmentID {
		return event, nil
	}

	return nil, serviceerror.Newf(serviceerror.UnauthorizedError,
		"user %s is not the HOD or a company admin for event %s", caller.UserID, eventID)
}
