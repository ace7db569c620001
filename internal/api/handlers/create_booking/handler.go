package create_booking

import (
	"errors"
	"net/http"

	"github.com/dkurganov/BSS-BookingService/internal/api/handlers"
	"github.com/dkurganov/BSS-BookingService/internal/api/middleware"
	createBooking "github.com/dkurganov/BSS-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotStart   = "некорректный формат начала слота, ожидается RFC3339"
	msgStationNotFound    = "станция не найдена"
	msgOutOfWindow        = "слот вне окна бронирования"
	msgInvalidSlot        = "начало не совпадает с границей слота"
	msgSlotFull           = "в выбранном слоте нет свободных мест"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgInvalidInput)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(user.ID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse slot start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrStationNotFound):
			h.logger.Warn("POST /bookings - Station not found: station_id=%d", req.StationID)
			handlers.RespondNotFound(w, msgStationNotFound)

		case errors.Is(err, createBooking.ErrOutOfWindow):
			h.logger.Warn("POST /bookings - Slot out of window: station_id=%d, slot=%s", req.StationID, req.SlotStartUTC)
			handlers.RespondBadRequest(w, msgOutOfWindow)

		case errors.Is(err, createBooking.ErrInvalidSlot):
			h.logger.Warn("POST /bookings - Invalid slot boundary: station_id=%d, slot=%s", req.StationID, req.SlotStartUTC)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot full: station_id=%d, slot=%s", req.StationID, req.SlotStartUTC)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: operator_id=%d, station_id=%d, error=%v",
				user.ID, req.StationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, operator_id=%d, station_id=%d",
		result.ID, user.ID, req.StationID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
