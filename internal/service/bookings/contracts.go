package bookings

import (
	"context"
	"time"

	"github.com/dkurganov/BSS-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListForStationBetween(ctx context.Context, filter domain.StationBookingsFilter) ([]*domain.Booking, error)
	ListOperatorUpcoming(ctx context.Context, operatorID int64, now time.Time) ([]*domain.Booking, error)
	ListOperatorHistory(ctx context.Context, operatorID int64, now time.Time) ([]*domain.Booking, error)
	CancelOwned(ctx context.Context, id, operatorID int64, reason *string, earliestStart time.Time) error
	CompleteForStation(ctx context.Context, id, stationID int64) error
	MarkExpiredNoShows(ctx context.Context, now time.Time) (int64, error)
}

// StationRepository интерфейс репозитория станций
type StationRepository interface {
	IsManagerAssigned(ctx context.Context, stationID, managerID int64) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
