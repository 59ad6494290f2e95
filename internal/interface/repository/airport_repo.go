package repository

import (
	"context"
	"strings"
	"time"

	"flight-intent-service/internal/domain/entity"
	"flight-intent-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirportRepository implements the AirportRepository interface
type GormAirportRepository struct {
	db *gorm.DB
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(db *gorm.DB) repository.AirportRepository {
	return &GormAirportRepository{
		db: db,
	}
}

// Airports GORM model for database mapping
type Airports struct {
	ID          uint           `gorm:"primaryKey"`
	AirportCode string         `gorm:"column:airportcode;unique"`
	AirportName string         `gorm:"column:airport_name"`
	CityName    string         `gorm:"column:cityname;index"`
	CountryCode string         `gorm:"column:countrycode"`
	AllAirports bool           `gorm:"column:all_airports"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the default table name
func (Airports) TableName() string {
	return "m_airports"
}

func (a Airports) toEntity() entity.Airport {
	return entity.Airport{
		IATA:        a.AirportCode,
		Name:        a.AirportName,
		CityName:    a.CityName,
		CountryCode: a.CountryCode,
		AllAirports: a.AllAirports,
	}
}

// FindByCity lists the airports of a city, matched case-insensitively. Umbrella
// rows come first.
func (r *GormAirportRepository) FindByCity(ctx context.Context, city string) ([]entity.Airport, error) {
	var rows []Airports
	result := r.db.WithContext(ctx).
		Where("LOWER(cityname) = ?", strings.ToLower(strings.TrimSpace(city))).
		Order("all_airports DESC, airportcode").
		Find(&rows)

	if result.Error != nil {
		return nil, result.Error
	}

	airports := make([]entity.Airport, 0, len(rows))
	for _, row := range rows {
		airports = append(airports, row.toEntity())
	}
	return airports, nil
}
