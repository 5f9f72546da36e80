package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/orgflow/raci-management-api/internal/models"
	"github.com/orgflow/raci-management-api/internal/service"
	"github.com/orgflow/raci-management-api/internal/utils"
)

// ApprovalHandler handles decision request and consensus HTTP requests
type ApprovalHandler struct {
	approvalService *service.ApprovalService
}

// NewApprovalHandler creates a new approval handler instance
func NewApprovalHandler(approvalService *service.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

// GenerateRequests handles POST /events/{eventId}/approval-requests
func (h *ApprovalHandler) GenerateRequests(c *gin.Context) {
	eventID := c.Param("eventId")

	var request models.GenerateRequestsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	companyID := utils.GetCompanyIDFromContext(c)

	created, err := h.approvalService.GenerateRequests(c.Request.Context(), companyID, eventID, request.Approvers)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendCreatedResponse(c, models.NewSuccessResponse("Decision requests generated", gin.H{
		"eventId":      eventID,
		"requestCount": created,
	}))
}

// RecoverRequests handles POST /events/{eventId}/approval-requests/recover
func (h *ApprovalHandler) RecoverRequests(c *gin.Context) {
	eventID := c.Param("eventId")
	companyID := utils.GetCompanyIDFromContext(c)
	actorID := utils.GetUserIDFromContext(c)

	created, err := h.approvalService.RecoverMissingRequests(c.Request.Context(), companyID, eventID, actorID)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendCreatedResponse(c, models.NewSuccessResponse("Decision requests recovered", gin.H{
		"eventId":      eventID,
		"requestCount": created,
	}))
}

// GetApprovalStatus handles GET /events/{eventId}/approval-status
func (h *ApprovalHandler) GetApprovalStatus(c *gin.Context) {
	eventID := c.Param("eventId")
	companyID := utils.GetCompanyIDFromContext(c)

	result, err := h.approvalService.ComputeStatus(c.Request.Context(), companyID, eventID)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, result)
}

// RecordDecision handles POST /events/{eventId}/decisions
func (h *ApprovalHandler) RecordDecision(c *gin.Context) {
	eventID := c.Param("eventId")

	var request models.RecordDecisionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequestError(c, "Invalid decision body", err.Error())
		return
	}

	companyID := utils.GetCompanyIDFromContext(c)
	approverID := utils.GetUserIDFromContext(c)

	decided, err := h.approvalService.RecordDecision(
		c.Request.Context(), companyID, eventID, approverID, request.Action, request.Reason)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, models.NewSuccessResponse("Decision recorded", gin.H{
		"eventId":      eventID,
		"approverId":   approverID,
		"action":       request.Action,
		"decidedCount": decided,
	}))
}

// ListDecisions handles GET /events/{eventId}/decisions
func (h *ApprovalHandler) ListDecisions(c *gin.Context) {
	eventID := c.Param("eventId")
	companyID := utils.GetCompanyIDFromContext(c)

	list, err := h.approvalService.ListDecisions(c.Request.Context(), companyID, eventID)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, list)
}
