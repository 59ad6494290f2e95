package repository

import (
	"context"
	"time"

	"flight-intent-service/internal/domain/entity"
	"flight-intent-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirlineRepository implements the AirlineRepository interface
type GormAirlineRepository struct {
	db *gorm.DB
}

// NewGormAirlineRepository creates a new GORM airline repository
func NewGormAirlineRepository(db *gorm.DB) repository.AirlineRepository {
	return &GormAirlineRepository{
		db: db,
	}
}

// Airlines GORM model for database mapping
type Airlines struct {
	ID        uint           `gorm:"primaryKey"`
	Code      string         `gorm:"column:code;unique"`
	Name      string         `gorm:"column:name;unique"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Airlines) TableName() string {
	return "m_airlines"
}

func (a Airlines) toEntity() *entity.Airline {
	return &entity.Airline{
		ID:        a.ID,
		Code:      a.Code,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
		DeletedAt: a.DeletedAt,
	}
}

// ListAll returns every airline not soft-deleted, ordered by name
func (r *GormAirlineRepository) ListAll(ctx context.Context) ([]*entity.Airline, error) {
	var rows []Airlines
	result := r.db.WithContext(ctx).Order("name").Find(&rows)

	if result.Error != nil {
		return nil, result.Error
	}

	airlines := make([]*entity.Airline, 0, len(rows))
	for _, row := range rows {
		airlines = append(airlines, row.toEntity())
	}
	return airlines, nil
}
