package complete_booking

import (
	"errors"
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
	msgCompleteNotAllowed = "бронирование нельзя завершить"
	msgAccessDenied       = "менеджер не привязан к станции"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	service CompleteBookingService
	logger  Logger
}

func NewHandler(service CompleteBookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{id}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgInvalidInput)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/complete - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req CompleteBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/complete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.Complete(r.Context(), bookingID, &models.CompleteBookingRequest{
		ManagerID: user.ID,
		StationID: req.StationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/complete - Access denied: manager_id=%d, station_id=%d", user.ID, req.StationID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrCompleteNotAllowed):
			h.logger.Warn("POST /bookings/{id}/complete - Complete not allowed: booking_id=%d, station_id=%d", bookingID, req.StationID)
			handlers.RespondConflict(w, msgCompleteNotAllowed)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/complete - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/{id}/complete - Failed to complete booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/complete - Booking completed: booking_id=%d, manager_id=%d", bookingID, user.ID)
	handlers.RespondNoContent(w)
}
