package database

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"propertyhub/internal/model"
)

// Models lists every table owned by the service, in dependency order
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Property{},
		&model.Unit{},
		&model.RoleAssignment{},
		&model.MaintenanceRequest{},
		&model.Payment{},
		&model.Receipt{},
		&model.Announcement{},
		&model.Message{},
		&model.Notification{},
		&model.ActivityLog{},
	}
}

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string, autoMigrate bool, log *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if autoMigrate {
		if err := db.AutoMigrate(Models()...); err != nil {
			log.WithError(err).Warn("failed to auto-migrate models")
		}
	}

	return db, nil
}
