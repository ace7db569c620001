package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkurganov/BSS-BookingService/internal/domain"
	bookingRepo "github.com/dkurganov/BSS-BookingService/internal/infra/storage/booking"
	"github.com/dkurganov/BSS-BookingService/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo    BookingRepository
	stationRepo    StationRepository
	timeProvider   TimeProvider
	logger         Logger
	cancelLeadTime time.Duration
}

// New создает новый сервис бронирований
func New(
	bookingRepository BookingRepository,
	stationRepository StationRepository,
	timeProvider TimeProvider,
	logger Logger,
	cancelLeadTime time.Duration,
) *Service {
	return &Service{
		bookingRepo:    bookingRepository,
		stationRepo:    stationRepository,
		timeProvider:   timeProvider,
		logger:         logger,
		cancelLeadTime: cancelLeadTime,
	}
}

// GetOperatorBookings возвращает предстоящие и прошедшие бронирования оператора.
// Перед чтением помечает просроченные бронирования как NO_SHOW, чтобы оператор
// не видел в "предстоящих" слоты, на которые он уже не успел
func (s *Service) GetOperatorBookings(ctx context.Context, operatorID int64) (*models.OperatorBookingsResponse, error) {
	if operatorID <= 0 {
		return nil, fmt.Errorf("%w: GetOperatorBookings - invalid operator ID: %d", ErrInvalidInput, operatorID)
	}

	now := s.timeProvider.Now().UTC()

	swept, err := s.bookingRepo.MarkExpiredNoShows(ctx, now)
	if err != nil {
		s.logger.Error("[BookingsService] Failed to sweep expired bookings for operator %d: %v", operatorID, err)
		return nil, fmt.Errorf("%w: GetOperatorBookings - failed to sweep expired bookings: %v", ErrInternal, err)
	}
	if swept > 0 {
		s.logger.Info("[BookingsService] Marked %d expired bookings as NO_SHOW", swept)
	}

	upcoming, err := s.bookingRepo.ListOperatorUpcoming(ctx, operatorID, now)
	if err != nil {
		s.logger.Error("[BookingsService] Failed to list upcoming bookings for operator %d: %v", operatorID, err)
		return nil, fmt.Errorf("%w: GetOperatorBookings - failed to list upcoming bookings: %v", ErrInternal, err)
	}

	history, err := s.bookingRepo.ListOperatorHistory(ctx, operatorID, now)
	if err != nil {
		s.logger.Error("[BookingsService] Failed to list booking history for operator %d: %v", operatorID, err)
		return nil, fmt.Errorf("%w: GetOperatorBookings - failed to list booking history: %v", ErrInternal, err)
	}

	return &models.OperatorBookingsResponse{
		Upcoming: models.FromDomainBookingList(upcoming),
		History:  models.FromDomainBookingList(history),
	}, nil
}

// Cancel отменяет бронирование оператора. Отмена разрешена только для
// CONFIRMED бронирований, до начала которых осталось не меньше lead time.
// Все причины отказа схлопываются в ErrCancelNotAllowed
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	if err := validateCancelRequest(bookingID, req); err != nil {
		return err
	}

	earliestStart := s.timeProvider.Now().UTC().Add(s.cancelLeadTime)

	err := s.bookingRepo.CancelOwned(ctx, bookingID, req.OperatorID, req.Reason, earliestStart)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrCancelNotAllowed) {
			s.logger.Warn("[BookingsService] Cancel rejected for booking %d by operator %d", bookingID, req.OperatorID)
			return fmt.Errorf("%w: Cancel - booking %d", ErrCancelNotAllowed, bookingID)
		}
		s.logger.Error("[BookingsService] Failed to cancel booking %d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - failed to cancel booking: %v", ErrInternal, err)
	}

	s.logger.Info("[BookingsService] Booking %d cancelled by operator %d", bookingID, req.OperatorID)
	return nil
}

// Complete завершает бронирование менеджером станции. Менеджер должен быть
// привязан к станции, бронирование должно относиться к этой станции и быть
// в статусе CONFIRMED
func (s *Service) Complete(ctx context.Context, bookingID int64, req *models.CompleteBookingRequest) error {
	if err := validateCompleteRequest(bookingID, req); err != nil {
		return err
	}

	assigned, err := s.stationRepo.IsManagerAssigned(ctx, req.StationID, req.ManagerID)
	if err != nil {
		s.logger.Error("[BookingsService] Failed to check manager %d assignment to station %d: %v", req.ManagerID, req.StationID, err)
		return fmt.Errorf("%w: Complete - failed to check manager assignment: %v", ErrInternal, err)
	}
	if !assigned {
		s.logger.Warn("[BookingsService] Manager %d is not assigned to station %d", req.ManagerID, req.StationID)
		return fmt.Errorf("%w: Complete - manager %d is not assigned to station %d", ErrAccessDenied, req.ManagerID, req.StationID)
	}

	err = s.bookingRepo.CompleteForStation(ctx, bookingID, req.StationID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrCompleteNotAllowed) {
			s.logger.Warn("[BookingsService] Complete rejected for booking %d at station %d", bookingID, req.StationID)
			return fmt.Errorf("%w: Complete - booking %d", ErrCompleteNotAllowed, bookingID)
		}
		s.logger.Error("[BookingsService] Failed to complete booking %d: %v", bookingID, err)
		return fmt.Errorf("%w: Complete - failed to complete booking: %v", ErrInternal, err)
	}

	s.logger.Info("[BookingsService] Booking %d completed by manager %d at station %d", bookingID, req.ManagerID, req.StationID)
	return nil
}

// GetStationBookings возвращает бронирования станции за период для менеджера
func (s *Service) GetStationBookings(ctx context.Context, req *models.GetStationBookingsRequest) (*models.BookingListResponse, error) {
	if err := validateStationBookingsRequest(req); err != nil {
		return nil, err
	}

	assigned, err := s.stationRepo.IsManagerAssigned(ctx, req.StationID, req.ManagerID)
	if err != nil {
		s.logger.Error("[BookingsService] Failed to check manager %d assignment to station %d: %v", req.ManagerID, req.StationID, err)
		return nil, fmt.Errorf("%w: GetStationBookings - failed to check manager assignment: %v", ErrInternal, err)
	}
	if !assigned {
		s.logger.Warn("[BookingsService] Manager %d is not assigned to station %d", req.ManagerID, req.StationID)
		return nil, fmt.Errorf("%w: GetStationBookings - manager %d is not assigned to station %d", ErrAccessDenied, req.ManagerID, req.StationID)
	}

	bookings, err := s.bookingRepo.ListForStationBetween(ctx, domain.StationBookingsFilter{
		StationID: req.StationID,
		FromUTC:   req.FromUTC,
		ToUTC:     req.ToUTC,
	})
	if err != nil {
		s.logger.Error("[BookingsService] Failed to list bookings for station %d: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: GetStationBookings - failed to list station bookings: %v", ErrInternal, err)
	}

	return &models.BookingListResponse{
		Bookings: models.FromDomainBookingList(bookings),
	}, nil
}

// SweepExpiredNoShows помечает просроченные CONFIRMED бронирования как NO_SHOW.
// Операция идемпотентна: повторный вызов без новых просроченных бронирований
// возвращает 0. Вызывается фоновым тикером и лениво перед чтением списков
func (s *Service) SweepExpiredNoShows(ctx context.Context) (int64, error) {
	now := s.timeProvider.Now().UTC()

	swept, err := s.bookingRepo.MarkExpiredNoShows(ctx, now)
	if err != nil {
		s.logger.Error("[BookingsService] Failed to sweep expired bookings: %v", err)
		return 0, fmt.Errorf("%w: SweepExpiredNoShows - failed to sweep expired bookings: %v", ErrInternal, err)
	}

	if swept > 0 {
		s.logger.Info("[BookingsService] Marked %d expired bookings as NO_SHOW", swept)
	}
	return swept, nil
}
