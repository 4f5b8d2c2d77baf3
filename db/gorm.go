package db

import (
	"context"
	"fmt"
	"time"

	"streammusic/config"
	"streammusic/logger"
	"streammusic/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to MySQL and configures the pool. The handle is returned to
// the caller and shared by every request.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	gdb, err := gorm.Open(mysql.Open(dsn), GormConfig(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to connect database with GORM: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logger.Info("connected to database",
		logger.String("host", cfg.DBHost),
		logger.String("name", cfg.DBName))
	return gdb, nil
}

// GormConfig is shared by the MySQL and test dialectors.
func GormConfig(logLevel string) *gorm.Config {
	level := gormlogger.Warn
	switch logger.ParseLevel(logLevel) {
	case logger.DebugLevel:
		level = gormlogger.Info
	case logger.ErrorLevel:
		level = gormlogger.Error
	}
	return &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(level),
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	}
}

// Close releases the pool.
func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate creates or updates every table.
func AutoMigrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(model.AllModels()...); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	logger.Info("models migrated")
	return nil
}

// SeedPlans inserts the default subscription plans, leaving existing ids untouched.
func SeedPlans(ctx context.Context, gdb *gorm.DB) error {
	plans := make([]model.SubscriptionPlan, len(model.DefaultPlans))
	copy(plans, model.DefaultPlans)
	err := gdb.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&plans).Error
	if err != nil {
		return fmt.Errorf("seed subscription plans: %w", err)
	}
	return nil
}
