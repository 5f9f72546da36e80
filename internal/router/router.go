package router

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orgflow/raci-management-api/internal/config"
	"github.com/orgflow/raci-management-api/internal/handlers"
	"github.com/orgflow/raci-management-api/internal/middleware"
	"github.com/orgflow/raci-management-api/internal/service"
	"github.com/orgflow/raci-management-api/internal/utils"
)

// SetupRouter configures all API routes
func SetupRouter(
	assignmentService *service.AssignmentService,
	approvalService *service.ApprovalService,
	eventService *service.EventService,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CorrelationIDMiddleware())

	if cfg := config.Get(); cfg != nil && cfg.CORS.Enabled {
		router.Use(corsMiddleware(&cfg.CORS))
	}

	// Global middleware to extract caller identity headers and set context
	router.Use(func(c *gin.Context) {
		if companyID := c.GetHeader("company-id"); companyID != "" {
			utils.SetContextValue(c, "companyID", companyID)
		}
		if userID := c.GetHeader("user-id"); userID != "" {
			utils.SetContextValue(c, "userID", userID)
		}
		if userRole := c.GetHeader("user-role"); userRole != "" {
			utils.SetContextValue(c, "userRole", userRole)
		}
		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	approvalHandler := handlers.NewApprovalHandler(approvalService)
	eventHandler := handlers.NewEventHandler(eventService)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		events := v1.Group("/events")
		{
			events.GET("/:eventId", eventHandler.GetEvent)
			events.POST("/:eventId/submit", eventHandler.SubmitForApproval)
			events.POST("/:eventId/gate-decision", eventHandler.DecideEvent)

			// RACI roster routes
			events.PUT("/:eventId/assignments", assignmentHandler.ReplaceEventRoster)
			events.GET("/:eventId/assignments", assignmentHandler.GetEventMatrix)
			events.PUT("/:eventId/tasks/:taskId/assignments", assignmentHandler.ReplaceTaskRoster)

			// Decision request and consensus routes
			events.POST("/:eventId/approval-requests", approvalHandler.GenerateRequests)
			events.POST("/:eventId/approval-requests/recover", approvalHandler.RecoverRequests)
			events.GET("/:eventId/approval-status", approvalHandler.GetApprovalStatus)
			events.POST("/:eventId/decisions", approvalHandler.RecordDecision)
			events.GET("/:eventId/decisions", approvalHandler.ListDecisions)
		}
	}

	return router
}

func corsMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := "*"
		if len(cfg.AllowedOrigins) > 0 {
			origin = strings.Join(cfg.AllowedOrigins, ", ")
		}
		c.Header("Access-Control-Allow-Origin", origin)
		if len(cfg.AllowedMethods) > 0 {
			c.Header("Access-Control-Allow-Methods", strings.Join(cfg.AllowedMethods, ", "))
		}
		if len(cfg.AllowedHeaders) > 0 {
			c.Header("Access-Control-Allow-Headers", strings.Join(cfg.AllowedHeaders, ", "))
		}
		if cfg.AllowCredentials {
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		if cfg.MaxAge > 0 {
			c.Header("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
