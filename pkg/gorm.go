package pkg

import (
	"fmt"

	"github.com/kishansingy/ielts-backend-sub000/internal/config"
	"github.com/kishansingy/ielts-backend-sub000/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Info
	if cfg.IsProduction() {
		logLevel = logger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.ScoreRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate score records: %w", err)
	}

	return db, nil
}
