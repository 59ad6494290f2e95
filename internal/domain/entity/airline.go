package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airline is a carrier known to the parser in addition to the built-in list.
type Airline struct {
	ID        uint
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
