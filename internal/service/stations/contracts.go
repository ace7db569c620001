package stations

import (
	"context"

	"github.com/dkurganov/BSS-BookingService/internal/domain"
)

// StationRepository интерфейс репозитория станций
type StationRepository interface {
	Create(ctx context.Context, s *domain.Station) (*domain.Station, error)
	GetByID(ctx context.Context, id int64) (*domain.Station, error)
	List(ctx context.Context) ([]*domain.Station, error)
	ListForManager(ctx context.Context, managerID int64) ([]*domain.Station, error)
	Update(ctx context.Context, s *domain.Station) error
	AssignManager(ctx context.Context, stationID, managerID int64) (*domain.ManagerAssignment, error)
	UnassignManager(ctx context.Context, stationID, managerID int64) error
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
