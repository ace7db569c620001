package cancel_booking

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dkurganov/BSS-BookingService/internal/api/handlers"
	"github.com/dkurganov/BSS-BookingService/internal/api/middleware"
	"github.com/dkurganov/BSS-BookingService/internal/service/bookings"
	"github.com/dkurganov/BSS-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgCancelNotAllowed   = "бронирование нельзя отменить"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	service CancelBookingService
	logger  Logger
}

func NewHandler(service CancelBookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgInvalidInput)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Тело опционально: отмена без причины допустима
	var req CancelBookingRequest
	if decodeErr := handlers.DecodeJSON(r, &req); decodeErr != nil && !errors.Is(decodeErr, io.EOF) {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid request body: %v", decodeErr)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.Cancel(r.Context(), bookingID, &models.CancelBookingRequest{
		OperatorID: user.ID,
		Reason:     req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrCancelNotAllowed):
			// Не раскрываем, существует ли бронирование и чье оно
			h.logger.Warn("POST /bookings/{id}/cancel - Cancel not allowed: booking_id=%d, operator_id=%d", bookingID, user.ID)
			handlers.RespondConflict(w, msgCancelNotAllowed)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancel - Booking cancelled: booking_id=%d, operator_id=%d", bookingID, user.ID)
	handlers.RespondNoContent(w)
}
