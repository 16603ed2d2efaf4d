package migrations

import (
	"errors"
	"log"

	"estate_manager/internal/models"

	"gorm.io/gorm"
)

// RunMigrations migrates the schema and seeds the default company.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
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
		return err
	}

	if err := createDefaultData(db); err != nil {
		log.Printf("Warning: Failed to create default data: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

func createDefaultData(db *gorm.DB) error {
	var company models.Company
	err := db.Where("name = ?", "Default Company").First(&company).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	company = models.Company{Name: "Default Company"}
	if err := db.Create(&company).Error; err != nil {
		return err
	}
	log.Printf("Created default company (id %d)", company.ID)
	return nil
}
