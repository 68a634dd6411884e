package config

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"saloonhub-backend/models"
	"saloonhub-backend/repository"
)

var DB *gorm.DB

func ConnectDB(dsn string) error {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	DB = db
	return nil
}

// Migrate creates the schema. The auto-admin index cannot be expressed as a
// gorm tag (it is partial), so it is created with raw SQL: it is what
// arbitrates concurrent first-admin promotion in the store.
func Migrate() error {
	if err := DB.AutoMigrate(
		&models.Account{},
		&models.Saloon{},
		&models.Offering{},
		&models.Category{},
		&models.Booking{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	err := DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uniq_accounts_auto_admin
		ON accounts (is_admin) WHERE is_admin AND NOT is_service AND deleted_at IS NULL`).Error
	if err != nil {
		return fmt.Errorf("create auto-admin index: %w", err)
	}
	return nil
}

// EnsureServiceAccount seeds the synthetic machine-to-machine account.
// IsService keeps it out of the automatic-promotion admin count.
func EnsureServiceAccount(email string) (*models.Account, error) {
	var account models.Account
	err := DB.Where("is_service = ?", true).First(&account).Error
	if err == nil {
		return &account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup service account: %w", err)
	}

	account = models.Account{
		Email:     email,
		Name:      "Service Account",
		IsService: true,
	}
	if err := DB.Create(&account).Error; err != nil {
		// Another instance starting at the same time may have seeded it
		// first; its row is authoritative.
		if repository.IsUniqueViolation(err) {
			var existing models.Account
			if ferr := DB.Where("is_service = ?", true).First(&existing).Error; ferr == nil {
				return &existing, nil
			}
		}
		return nil, fmt.Errorf("create service account: %w", err)
	}
	return &account, nil
}
