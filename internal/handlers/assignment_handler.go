package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/orgflow/raci-management-api/internal/models"
	"github.com/orgflow/raci-management-api/internal/service"
	"github.com/orgflow/raci-management-api/internal/utils"
)

// AssignmentHandler handles RACI roster HTTP requests
type AssignmentHandler struct {
	assignmentService *service.AssignmentService
}

// NewAssignmentHandler creates a new assignment handler instance
func NewAssignmentHandler(assignmentService *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// ReplaceTaskRoster handles PUT /events/{eventId}/tasks/{taskId}/assignments
func (h *AssignmentHandler) ReplaceTaskRoster(c *gin.Context) {
	eventID := c.Param("eventId")
	taskID := c.Param("taskId")

	var roster models.TaskRosterRequest
	if err := c.ShouldBindJSON(&roster); err != nil {
		utils.SendBadRequestError(c, "Invalid roster body", err.Error())
		return
	}

	caller := utils.GetCallerFromContext(c)

	assignments, err := h.assignmentService.ReplaceTaskRoster(c.Request.Context(), caller, eventID, taskID, &roster)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, models.TaskMatrixResponse{
		TaskID:      taskID,
		Assignments: assignments,
	})
}

// ReplaceEventRoster handles PUT /events/{eventId}/assignments
func (h *AssignmentHandler) ReplaceEventRoster(c *gin.Context) {
	eventID := c.Param("eventId")

	var request models.EventRosterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequestError(c, "Invalid roster body", err.Error())
		return
	}

	caller := utils.GetCallerFromContext(c)

	total, err := h.assignmentService.ReplaceEventRoster(c.Request.Context(), caller, eventID, request.Tasks)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, models.NewSuccessResponse("Event roster replaced", gin.H{
		"eventId":         eventID,
		"taskCount":       len(request.Tasks),
		"assignmentCount": total,
	}))
}

// GetEventMatrix handles GET /events/{eventId}/assignments
func (h *AssignmentHandler) GetEventMatrix(c *gin.Context) {
	eventID := c.Param("eventId")
	companyID := utils.GetCompanyIDFromContext(c)

	matrix, err := h.assignmentService.GetEventMatrix(c.Request.Context(), companyID, eventID)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, matrix)
}
