package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkurganov/BSS-BookingService/internal/capacity"
	"github.com/dkurganov/BSS-BookingService/internal/domain"
	stationRepo "github.com/dkurganov/BSS-BookingService/internal/infra/storage/station"
	"github.com/dkurganov/BSS-BookingService/pkg/timeutil"
)

// UseCase use case для получения таблицы слотов станции на скользящее окно
//
// Таблица слотов каждый раз пересчитывается аллокатором из hourly_capacity
// станции и накладывается на текущие бронирования. Admission control в
// create_booking использует тот же аллокатор, поэтому показанная доступность
// и проверка при бронировании не могут разойтись
type UseCase struct {
	bookingRepo  BookingRepository
	stationRepo  StationRepository
	timeProvider TimeProvider
	logger       Logger
	windowHours  int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	stationRepo StationRepository,
	windowHours int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		stationRepo:  stationRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		windowHours:  windowHours,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: station=%d", req.StationID)

	if req.StationID <= 0 {
		uc.logger.Warn("GetAvailableSlots: invalid stationID=%d", req.StationID)
		return nil, fmt.Errorf("%w: stationID must be positive", ErrInvalidInput)
	}

	station, err := uc.stationRepo.GetByID(ctx, req.StationID)
	if err != nil {
		if errors.Is(err, stationRepo.ErrStationNotFound) {
			uc.logger.Warn("GetAvailableSlots: station id=%d not found", req.StationID)
			return nil, ErrStationNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get station id=%d: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now().UTC()
	windowStart := timeutil.CeilToNextQuarterHour(now)
	windowEnd := windowStart.Add(time.Duration(uc.windowHours) * time.Hour)

	slots, err := capacity.BuildSlotsForWindow(station.HourlyCapacity, windowStart, uc.windowHours)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build slots for station id=%d: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	filter := domain.StationBookingsFilter{
		StationID: req.StationID,
		FromUTC:   &windowStart,
		ToUTC:     &windowEnd,
		Statuses:  domain.CountedStatuses,
	}

	bookings, err := uc.bookingRepo.ListForStationBetween(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for station id=%d: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	overlaid := overlayOccupancy(slots, countBySlotStart(bookings))

	uc.logger.Info("GetAvailableSlots: generated %d slots for station=%d, window=[%s, %s)",
		len(overlaid), req.StationID, windowStart.Format(time.RFC3339), windowEnd.Format(time.RFC3339))

	return &Response{
		StationID: req.StationID,
		Slots:     overlaid,
	}, nil
}
