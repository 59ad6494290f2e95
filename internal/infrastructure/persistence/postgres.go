package persistence

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"flight-intent-service/internal/interface/repository"
)

// NewPostgresDB opens the master data database and makes sure the airline
// and airport tables exist
func NewPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&repository.Airlines{}, &repository.Airports{}); err != nil {
		return nil, err
	}
	return db, nil
}
