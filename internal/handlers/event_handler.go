package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/orgflow/raci-management-api/internal/models"
	"github.com/orgflow/raci-management-api/internal/service"
	"github.com/orgflow/raci-management-api/internal/utils"
)

// EventHandler handles event gate HTTP requests
type EventHandler struct {
	eventService *service.EventService
}

// NewEventHandler creates a new event handler instance
func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// GetEvent handles GET /events/{eventId}
func (h *EventHandler) GetEvent(c *gin.Context) {
	eventID := c.Param("eventId")
	companyID := utils.GetCompanyIDFromContext(c)

	event, err := h.eventService.GetEvent(c.Request.Context(), companyID, eventID)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, event)
}

// SubmitForApproval handles POST /events/{eventId}/submit
func (h *EventHandler) SubmitForApproval(c *gin.Context) {
	eventID := c.Param("eventId")

	// The body is optional; an empty submit assigns the department head.
	var request models.SubmitEventRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			utils.SendBadRequestError(c, "Invalid submit body", err.Error())
			return
		}
	}

	companyID := utils.GetCompanyIDFromContext(c)

	event, err := h.eventService.SubmitForApproval(c.Request.Context(), companyID, eventID, request.ApproverID)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, event)
}

// DecideEvent handles POST /events/{eventId}/gate-decision
func (h *EventHandler) DecideEvent(c *gin.Context) {
	eventID := c.Param("eventId")

	var request models.GateDecisionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequestError(c, "Invalid decision body", err.Error())
		return
	}

	caller := utils.GetCallerFromContext(c)

	event, err := h.eventService.DecideEvent(c.Request.Context(), caller, eventID, *request.Approved, request.Comments)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, event)
}
