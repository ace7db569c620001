package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dkurganov/BSS-BookingService/internal/api/handlers"
	"github.com/dkurganov/BSS-BookingService/internal/api/middleware"
	rescheduleBooking "github.com/dkurganov/BSS-BookingService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotStart   = "некорректный формат начала слота, ожидается RFC3339"
	msgBookingNotFound    = "бронирование не найдено"
	msgStationNotFound    = "станция не найдена"
	msgOutOfWindow        = "новый слот вне окна бронирования"
	msgInvalidSlot        = "начало не совпадает с границей слота"
	msgSlotFull           = "в выбранном слоте нет свободных мест"
	msgCancelNotAllowed   = "исходное бронирование нельзя отменить"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{id}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgInvalidInput)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, user.ID)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Failed to parse slot start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rescheduleBooking.ErrStationNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule - Station not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgStationNotFound)

		case errors.Is(err, rescheduleBooking.ErrOutOfWindow):
			h.logger.Warn("POST /bookings/{id}/reschedule - Slot out of window: booking_id=%d, slot=%s", bookingID, req.NewSlotStartUTC)
			handlers.RespondBadRequest(w, msgOutOfWindow)

		case errors.Is(err, rescheduleBooking.ErrInvalidSlot):
			h.logger.Warn("POST /bookings/{id}/reschedule - Invalid slot boundary: booking_id=%d, slot=%s", bookingID, req.NewSlotStartUTC)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, rescheduleBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings/{id}/reschedule - Slot full: booking_id=%d, slot=%s", bookingID, req.NewSlotStartUTC)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, rescheduleBooking.ErrCancelNotAllowed):
			h.logger.Warn("POST /bookings/{id}/reschedule - Cancel not allowed: booking_id=%d, operator_id=%d", bookingID, user.ID)
			handlers.RespondConflict(w, msgCancelNotAllowed)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/{id}/reschedule - Failed to reschedule booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reschedule - Booking rescheduled: old_booking_id=%d, new_booking_id=%d, operator_id=%d",
		bookingID, result.ID, user.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
