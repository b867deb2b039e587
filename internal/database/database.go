package database

import (
	"fmt"

	"github.com/ctgula/vibe-sub002/internal/config"
	"github.com/ctgula/vibe-sub002/internal/logger"
	"github.com/ctgula/vibe-sub002/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config, log *logger.Logger) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}

	log.Infow("database connected", "host", cfg.DBHost, "name", cfg.DBName)
	return db
}

func AutoMigrate(db *gorm.DB, log *logger.Logger) {
	err := db.AutoMigrate(
		&models.Profile{},
		&models.Room{},
		&models.Participant{},
		&models.ActivityLog{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalw("failed to auto-migrate", "error", err)
	}
	log.Infow("database migrated")
}
