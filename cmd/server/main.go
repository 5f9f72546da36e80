package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/orgflow/raci-management-api/internal/config"
	"github.com/orgflow/raci-management-api/internal/dao"
	"github.com/orgflow/raci-management-api/internal/database"
	"github.com/orgflow/raci-management-api/internal/router"
	"github.com/orgflow/raci-management-api/internal/scheduler"
	"github.com/orgflow/raci-management-api/internal/service"
)

// Version information (set by build script)
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Set Gin to release mode by default (can be overridden by GIN_MODE env var)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	logger.WithFields(logrus.Fields{
		"version":    version,
		"build_date": buildDate,
	}).Info("Starting RACI Management API Server...")

	configPath := os.Getenv("CONFIG_PATH")

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	}

	logger.WithFields(logrus.Fields{
		"config_path": configPath,
		"log_level":   logger.GetLevel().String(),
	}).Info("Configuration loaded successfully")

	db, err := database.Initialize(&cfg.Database.Workflow, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.HealthCheck(ctx); err != nil {
		logger.WithError(err).Fatal("Database health check failed")
	}

	logger.Info("Database connection established successfully")

	// Initialize DAOs
	assignmentDAO := dao.NewAssignmentDAO(db)
	decisionDAO := dao.NewDecisionRequestDAO(db)
	eventDAO := dao.NewEventDAO(db)
	userDAO := dao.NewUserDAO(db)

	// Initialize services
	assignmentService := service.NewAssignmentService(assignmentDAO, eventDAO, userDAO, db, logger)
	approvalService := service.NewApprovalService(decisionDAO, assignmentDAO, eventDAO, db, logger)
	eventService := service.NewEventService(eventDAO, userDAO, db, logger)

	logger.Info("Services initialized successfully")

	// Scheduled recovery sweep for events whose roster never got decision requests
	if cfg.Approval.RecoverySweep.Enabled {
		sched := scheduler.New(logger)
		if _, err := sched.ScheduleInterval("recovery-sweep", cfg.Approval.RecoverySweep.Interval, func(jobCtx context.Context) {
			approvalService.SweepMissingRequests(jobCtx)
		}); err != nil {
			logger.WithError(err).Fatal("Failed to schedule recovery sweep")
		}
		sched.Start()
		defer sched.Stop()

		logger.WithField("interval", cfg.Approval.RecoverySweep.Interval.String()).
			Info("Recovery sweep scheduled")
	}

	ginRouter := router.SetupRouter(assignmentService, approvalService, eventService)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Hostname, cfg.Server.Port)
	server := &http.Server{
		Addr:           serverAddr,
		Handler:        ginRouter,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"hostname": cfg.Server.Hostname,
			"port":     cfg.Server.Port,
			"addr":     serverAddr,
		}).Info("Starting HTTP server...")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	logger.WithField("address", serverAddr).Info("Server is running")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exited gracefully")
}
