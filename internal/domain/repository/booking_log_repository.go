package repository

import (
	"context"
	"errors"

	"flight-intent-service/internal/domain/entity"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")

// BookingLogRepository defines the interface for the processed request log
type BookingLogRepository interface {
	Save(ctx context.Context, log *entity.BookingLog) error
	FindByID(ctx context.Context, id string) (*entity.BookingLog, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.BookingLog, error)
	FindBySourceRefs(ctx context.Context, source string, refs []string) (map[string]*entity.BookingLog, error)
	GetLatest(ctx context.Context, source string) (*entity.BookingLog, error)
}
