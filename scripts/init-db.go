package main

import (
	"fmt"
	"log"
	"time"

	"estate_manager/internal/config"
	"estate_manager/internal/database"
	"estate_manager/internal/logger"
	"estate_manager/internal/migrations"
	"estate_manager/internal/models"
	"estate_manager/internal/repository"
	"estate_manager/internal/services"

	"github.com/shopspring/decimal"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()
	appLog := logger.New(cfg.LogLevel)

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Force recreate all tables
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.Company{},
		&models.Lead{},
		&models.Client{},
		&models.Project{},
		&models.ProjectSchedule{},
		&models.Milestone{},
		&models.UnitFlat{},
		&models.UnitCustomerSchedule{},
		&models.UnitPaymentRequest{},
		&models.UnitPaymentReceipt{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed demo data through the services so every derived field comes out
	// consistent with the live mutation paths.
	projectRepo := repository.NewProjectRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	salesRepo := repository.NewSalesRepository(db)

	progressService := services.NewProgressService(projectRepo, scheduleRepo, nil, 0, appLog)
	unitScheduleService := services.NewUnitScheduleService(unitRepo, scheduleRepo, paymentRepo)
	paymentService := services.NewPaymentService(db, unitRepo, paymentRepo, unitScheduleService, nil, appLog)
	milestoneService := services.NewMilestoneService(db, scheduleRepo, projectRepo, progressService, paymentService, appLog)
	unitService := services.NewUnitService(db, unitRepo, projectRepo, unitScheduleService, nil, 0, appLog)
	projectService := services.NewProjectService(projectRepo, salesRepo)

	company, err := salesRepo.GetCompanyByName("Default Company")
	if err != nil {
		log.Fatal("Default company missing:", err)
	}

	project := &models.Project{
		Name:        "Green Meadows Phase 1",
		Description: "Demo residential project",
		TotalBudget: decimal.NewFromInt(50000000),
		CompanyID:   company.ID,
	}
	if err := projectService.CreateProject(project); err != nil {
		log.Fatal("Failed to seed project:", err)
	}

	milestones := []models.Milestone{
		{MilestoneName: "Foundation", CompletionPercentage: decimal.NewFromInt(20)},
		{MilestoneName: "Plinth", CompletionPercentage: decimal.NewFromInt(10)},
		{MilestoneName: "Slab", CompletionPercentage: decimal.NewFromInt(30)},
		{MilestoneName: "Brickwork", CompletionPercentage: decimal.NewFromInt(20)},
		{MilestoneName: "Finishing", CompletionPercentage: decimal.NewFromInt(20)},
	}
	if _, err := milestoneService.AddScheduleWithMilestones(project.ID, time.Now(), milestones); err != nil {
		log.Fatal("Failed to seed schedule:", err)
	}

	units := []models.UnitFlat{
		{FlatNo: "A-101", ProjectID: project.ID, AreaSqft: decimal.NewFromInt(1000), RatePerSqft: decimal.NewFromInt(5000)},
		{FlatNo: "A-102", ProjectID: project.ID, AreaSqft: decimal.NewFromInt(1200), RatePerSqft: decimal.NewFromInt(5000)},
		{FlatNo: "B-201", ProjectID: project.ID, AreaSqft: decimal.NewFromFloat(850.5), RatePerSqft: decimal.NewFromInt(5500)},
	}
	for i := range units {
		if err := unitService.CreateUnit(&units[i]); err != nil {
			log.Fatal("Failed to seed unit:", err)
		}
	}

	fmt.Printf("Seeded project %d with %d milestones and %d units\n", project.ID, len(milestones), len(units))
	fmt.Println("Database initialization completed!")
}
