package config

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/utils"
)

var CmsGorm *gorm.DB

func InitDB(s *Settings) error {
	gormLogger := logger.Default.LogMode(logger.Info)
	if s.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}
	if s.CmsDBURL == "" {
		utils.Log.Warn("⚠️ CMS_DB_URL not set, using DB_* settings")
	}

	db, err := gorm.Open(postgres.Open(s.DSN()), &gorm.Config{
		Logger:         gormLogger,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database with GORM: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}

	if err := Migrate(db); err != nil {
		return err
	}

	CmsGorm = db
	utils.Log.Info("✅ Database connected (GORM)")
	return nil
}

// Migrate creates or updates every table the storefront uses
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Product{},
		&models.Category{},
		&models.Filter{},
		&models.User{},
		&models.FeedConfigRecord{},
		&models.ActivityLog{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func CloseDB() {
	if CmsGorm == nil {
		return
	}
	if sqlDB, _ := CmsGorm.DB(); sqlDB != nil {
		sqlDB.Close()
		utils.Log.Info("✅ Database connection closed (GORM)")
	}
}

// WithTimeout returns a context with a 10s timeout (Neon cold starts)
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}
