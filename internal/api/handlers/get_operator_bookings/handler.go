package get_operator_bookings

import (
	"errors"
	"net/http"

	"github.com/dkurganov/BSS-BookingService/internal/api/handlers"
	"github.com/dkurganov/BSS-BookingService/internal/api/middleware"
	"github.com/dkurganov/BSS-BookingService/internal/service/bookings"
)

const msgInvalidInput = "некорректные данные запроса"

type Handler struct {
	service OperatorBookingsService
	logger  Logger
}

func NewHandler(service OperatorBookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/my
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgInvalidInput)
		return
	}

	result, err := h.service.GetOperatorBookings(r.Context(), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /bookings/my - Failed to get bookings: operator_id=%d, error=%v", user.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
