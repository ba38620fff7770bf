package database

import (
	"log"
	"strings"

	"github.com/gdg-garage/equipment-purchase/internal/config"
	"github.com/gdg-garage/equipment-purchase/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(dialector(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto Migrate
	err = db.AutoMigrate(&models.SheetColumn{}, &models.SheetRow{})
	if err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	return db
}

func dialector(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return postgres.Open(dsn)
	}
	log.Println("Using SQLite database:", dsn)
	return sqlite.Open(dsn)
}
