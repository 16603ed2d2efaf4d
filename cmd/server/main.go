package main

import (
	"log"
	"time"

	"estate_manager/internal/config"
	"estate_manager/internal/database"
	"estate_manager/internal/handlers"
	"estate_manager/internal/logger"
	"estate_manager/internal/migrations"
	"estate_manager/internal/redis"
	"estate_manager/internal/repository"
	"estate_manager/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()
	appLog := logger.New(cfg.LogLevel)

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize repositories
	projectRepo := repository.NewProjectRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	salesRepo := repository.NewSalesRepository(db)

	// Initialize services
	cacheTTL := time.Duration(cfg.ProgressCacheTTL) * time.Second
	progressService := services.NewProgressService(projectRepo, scheduleRepo, redisClient, cacheTTL, appLog)
	unitScheduleService := services.NewUnitScheduleService(unitRepo, scheduleRepo, paymentRepo)
	paymentService := services.NewPaymentService(db, unitRepo, paymentRepo, unitScheduleService, redisClient, appLog)
	milestoneService := services.NewMilestoneService(db, scheduleRepo, projectRepo, progressService, paymentService, appLog)
	unitService := services.NewUnitService(db, unitRepo, projectRepo, unitScheduleService, redisClient, cacheTTL, appLog)
	projectService := services.NewProjectService(projectRepo, salesRepo)
	salesService := services.NewSalesService(salesRepo)

	// Initialize handlers
	projectHandler := handlers.NewProjectHandler(projectService, milestoneService, progressService)
	unitHandler := handlers.NewUnitHandler(unitService, paymentService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	salesHandler := handlers.NewSalesHandler(salesService)

	// Setup routes
	router := gin.Default()

	api := router.Group("/api")
	{
		api.POST("/projects", projectHandler.CreateProject)
		api.GET("/projects", projectHandler.GetAllProjects)
		api.GET("/projects/:id", projectHandler.GetProject)
		api.PUT("/projects/:id", projectHandler.UpdateProject)
		api.DELETE("/projects/:id", projectHandler.DeleteProject)
		api.GET("/projects/:id/progress", projectHandler.GetProjectProgress)
		api.POST("/projects/:id/schedules", projectHandler.CreateSchedule)
		api.GET("/projects/:id/schedules", projectHandler.GetSchedules)
		api.GET("/projects/:id/units", unitHandler.GetUnitsByProject)

		api.POST("/milestones", projectHandler.AddMilestone)
		api.PUT("/milestones/:id", projectHandler.UpdateMilestone)
		api.DELETE("/milestones/:id", projectHandler.DeleteMilestone)

		api.POST("/units", unitHandler.CreateUnit)
		api.GET("/units", unitHandler.GetAllUnits)
		api.GET("/units/:id", unitHandler.GetUnit)
		api.PUT("/units/:id", unitHandler.UpdateUnit)
		api.DELETE("/units/:id", unitHandler.DeleteUnit)
		api.GET("/units/:id/summary", unitHandler.GetUnitSummary)
		api.GET("/units/:id/schedules", unitHandler.GetUnitSchedules)
		api.GET("/units/:id/payment-requests", unitHandler.GetUnitPaymentRequests)
		api.POST("/units/:id/receipts", paymentHandler.AddReceipt)
		api.GET("/units/:id/receipts", paymentHandler.GetUnitReceipts)
		api.PUT("/receipts/:id", paymentHandler.UpdateReceipt)
		api.DELETE("/receipts/:id", paymentHandler.DeleteReceipt)

		api.POST("/leads", salesHandler.CreateLead)
		api.GET("/leads", salesHandler.GetLeads)
		api.GET("/leads/:id", salesHandler.GetLead)
		api.PUT("/leads/:id", salesHandler.UpdateLead)
		api.DELETE("/leads/:id", salesHandler.DeleteLead)
		api.POST("/leads/:id/convert", salesHandler.ConvertLead)

		api.POST("/clients", salesHandler.CreateClient)
		api.GET("/clients", salesHandler.GetClients)
		api.GET("/clients/:id", salesHandler.GetClient)
		api.PUT("/clients/:id", salesHandler.UpdateClient)
		api.DELETE("/clients/:id", salesHandler.DeleteClient)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
