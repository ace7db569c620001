package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkurganov/BSS-BookingService/internal/capacity"
	"github.com/dkurganov/BSS-BookingService/internal/domain"
	bookingRepo "github.com/dkurganov/BSS-BookingService/internal/infra/storage/booking"
	stationRepo "github.com/dkurganov/BSS-BookingService/internal/infra/storage/station"
	"github.com/dkurganov/BSS-BookingService/pkg/ptr"
	"github.com/dkurganov/BSS-BookingService/pkg/timeutil"
)

// rescheduleReason причина отмены, записываемая в исходное бронирование
const rescheduleReason = "rescheduled"

// UseCase use case переноса бронирования
//
// Перенос выполняется как создание нового бронирования и отмена исходного
// внутри одной сериализуемой транзакции. Промежуточное состояние, в котором
// оба бронирования CONFIRMED, существует только внутри транзакции и снаружи
// не наблюдаемо; при любом отказе (слот занят, отмена запрещена) вся
// операция откатывается. Исходное бронирование при admission control нового
// слота еще занимает место, поэтому перенос в тот же слот подчиняется
// обычной проверке емкости
type UseCase struct {
	bookingRepo    BookingRepository
	stationRepo    StationRepository
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
	windowHours    int
	cancelLeadTime time.Duration
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	stationRepo StationRepository,
	txManager TransactionManager,
	windowHours int,
	cancelLeadTime time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		stationRepo:    stationRepo,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
		windowHours:    windowHours,
		cancelLeadTime: cancelLeadTime,
	}
}

// Execute выполняет use case переноса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, operator=%d, newSlot=%s",
		req.BookingID, req.OperatorID, req.NewSlotStartUTC.Format(time.RFC3339))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().UTC()
	windowStart := timeutil.CeilToNextQuarterHour(now)
	windowEnd := windowStart.Add(time.Duration(uc.windowHours) * time.Hour)
	newSlotStart := req.NewSlotStartUTC.UTC()

	if newSlotStart.Before(windowStart) || !newSlotStart.Before(windowEnd) {
		uc.logger.Warn("RescheduleBooking: slot %s outside window [%s, %s)",
			newSlotStart.Format(time.RFC3339), windowStart.Format(time.RFC3339), windowEnd.Format(time.RFC3339))
		return nil, ErrOutOfWindow
	}

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Исходное бронирование
		original, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Чужое или терминальное бронирование отклоняем сразу, не трогая слот
		if original.OperatorID != req.OperatorID || !original.CanBeCancelled() {
			uc.logger.Warn("RescheduleBooking: booking id=%d cannot be cancelled by operator=%d",
				req.BookingID, req.OperatorID)
			return ErrCancelNotAllowed
		}

		// 2. Станция исходного бронирования
		station, err := uc.stationRepo.GetByID(txCtx, original.StationID)
		if err != nil {
			if errors.Is(err, stationRepo.ErrStationNotFound) {
				return ErrStationNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get station id=%d: %v", original.StationID, err)
			return fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
		}

		// 3. Admission control нового слота тем же аллокатором
		slots, err := capacity.BuildSlotsForWindow(station.HourlyCapacity, windowStart, uc.windowHours)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to build slots: %v", err)
			return fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
		}

		targetSlot := capacity.FindSlot(slots, newSlotStart)
		if targetSlot == nil {
			uc.logger.Warn("RescheduleBooking: slot %s does not align to any boundary",
				newSlotStart.Format(time.RFC3339))
			return ErrInvalidSlot
		}

		filter := domain.StationBookingsFilter{
			StationID: original.StationID,
			FromUTC:   &windowStart,
			ToUTC:     &windowEnd,
			Statuses:  domain.CountedStatuses,
		}

		bookings, err := uc.bookingRepo.ListForStationBetween(txCtx, filter)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		used := 0
		for _, b := range bookings {
			if b.CountsTowardCapacity() && b.SlotStartUTC.UTC().Equal(newSlotStart) {
				used++
			}
		}

		if used >= targetSlot.MaxCapacity {
			uc.logger.Warn("RescheduleBooking: slot full, %d/%d spots taken", used, targetSlot.MaxCapacity)
			return ErrSlotFull
		}

		// 4. Создаем новое бронирование со ссылкой на исходное
		replacement := &domain.Booking{
			StationID:                original.StationID,
			OperatorID:               req.OperatorID,
			SlotStartUTC:             newSlotStart,
			SlotEndUTC:               newSlotStart.Add(domain.SlotDuration),
			ArrivalDeadlineUTC:       newSlotStart.Add(domain.SlotDuration + domain.ArrivalGrace),
			Status:                   domain.StatusConfirmed,
			RescheduledFromBookingID: &original.ID,
		}

		created, err := uc.bookingRepo.Create(txCtx, replacement)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to create replacement booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 5. Отменяем исходное тем же условным UPDATE, что и обычная отмена
		// (lead time включительно); отказ откатывает и созданное бронирование
		earliestStart := now.Add(uc.cancelLeadTime)
		err = uc.bookingRepo.CancelOwned(txCtx, original.ID, req.OperatorID, ptr.Ptr(rescheduleReason), earliestStart)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrCancelNotAllowed) {
				uc.logger.Warn("RescheduleBooking: cancel of booking id=%d not allowed", original.ID)
				return ErrCancelNotAllowed
			}
			uc.logger.Error("RescheduleBooking: failed to cancel booking id=%d: %v", original.ID, err)
			return fmt.Errorf("%w: failed to cancel original booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d rescheduled to new booking id=%d",
		req.BookingID, result.ID)

	return FromDomain(result), nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.OperatorID <= 0 {
		return fmt.Errorf("%w: operatorID must be positive", ErrInvalidInput)
	}

	if req.NewSlotStartUTC.IsZero() {
		return fmt.Errorf("%w: newSlotStartUtc is required", ErrInvalidInput)
	}

	return nil
}
