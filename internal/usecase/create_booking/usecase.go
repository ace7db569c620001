package create_booking

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

// UseCase use case для создания бронирования (admission control)
type UseCase struct {
	bookingRepo  BookingRepository
	stationRepo  StationRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
	windowHours  int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	stationRepo StationRepository,
	txManager TransactionManager,
	windowHours int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		stationRepo:  stationRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		windowHours:  windowHours,
	}
}

// Execute выполняет use case создания бронирования
// Проверка занятости слота и вставка выполняются в одной сериализуемой
// транзакции с блокировкой строк окна (FOR UPDATE), поэтому два параллельных
// запроса на последнее место в слоте не могут пройти оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: station=%d, operator=%d, slot=%s",
		req.StationID, req.OperatorID, req.SlotStartUTC.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и границы окна
	now := uc.timeProvider.Now().UTC()
	windowStart := timeutil.CeilToNextQuarterHour(now)
	windowEnd := windowStart.Add(time.Duration(uc.windowHours) * time.Hour)
	slotStart := req.SlotStartUTC.UTC()

	// 3. Получаем станцию
	station, err := uc.stationRepo.GetByID(ctx, req.StationID)
	if err != nil {
		if errors.Is(err, stationRepo.ErrStationNotFound) {
			uc.logger.Warn("CreateBooking: station id=%d not found", req.StationID)
			return nil, ErrStationNotFound
		}
		uc.logger.Error("CreateBooking: failed to get station id=%d: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
	}

	// 4. Проверяем попадание в окно бронирования
	if err := validateWindow(slotStart, windowStart, windowEnd); err != nil {
		uc.logger.Warn("CreateBooking: slot %s outside window [%s, %s)",
			slotStart.Format(time.RFC3339), windowStart.Format(time.RFC3339), windowEnd.Format(time.RFC3339))
		return nil, err
	}

	var result *domain.Booking

	// 5. Admission control в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Строим таблицу слотов тем же аллокатором, что и выдача доступности
		slots, err := capacity.BuildSlotsForWindow(station.HourlyCapacity, windowStart, uc.windowHours)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to build slots: %v", err)
			return fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
		}

		// 5.2. Начало должно совпадать с границей слота из таблицы
		targetSlot := capacity.FindSlot(slots, slotStart)
		if targetSlot == nil {
			uc.logger.Warn("CreateBooking: slot %s does not align to any boundary", slotStart.Format(time.RFC3339))
			return ErrInvalidSlot
		}

		// 5.3. Читаем занимающие место бронирования окна с блокировкой (FOR UPDATE)
		filter := domain.StationBookingsFilter{
			StationID: req.StationID,
			FromUTC:   &windowStart,
			ToUTC:     &windowEnd,
			Statuses:  domain.CountedStatuses,
		}

		bookings, err := uc.bookingRepo.ListForStationBetween(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 5.4. Считаем занятость целевого слота
		used := 0
		for _, b := range bookings {
			if b.CountsTowardCapacity() && b.SlotStartUTC.UTC().Equal(slotStart) {
				used++
			}
		}

		if used >= targetSlot.MaxCapacity {
			uc.logger.Warn("CreateBooking: slot full, %d/%d spots taken", used, targetSlot.MaxCapacity)
			return ErrSlotFull
		}

		uc.logger.Info("CreateBooking: slot available, %d/%d spots taken", used, targetSlot.MaxCapacity)

		// 5.5. Создаем бронирование с производными дедлайнами
		booking := &domain.Booking{
			StationID:          req.StationID,
			OperatorID:         req.OperatorID,
			SlotStartUTC:       slotStart,
			SlotEndUTC:         slotStart.Add(domain.SlotDuration),
			ArrivalDeadlineUTC: slotStart.Add(domain.SlotDuration + domain.ArrivalGrace),
			Status:             domain.StatusConfirmed,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return FromDomain(result), nil
}
