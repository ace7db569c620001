package get_station_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/dkurganov/BSS-BookingService/internal/api/handlers"
	"github.com/dkurganov/BSS-BookingService/internal/api/middleware"
	"github.com/dkurganov/BSS-BookingService/internal/service/bookings"
	"github.com/dkurganov/BSS-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidStationID = "некорректный ID станции"
	msgInvalidTimeRange = "некорректный временной диапазон, ожидается RFC3339 и from < to"
	msgAccessDenied     = "менеджер не привязан к станции"
	msgInvalidInput     = "некорректные данные запроса"
)

type Handler struct {
	service StationBookingsService
	logger  Logger
}

func NewHandler(service StationBookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stations/{id}/bookings?from=...&to=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgInvalidInput)
		return
	}

	stationID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /stations/{id}/bookings - Invalid station ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStationID)
		return
	}

	from, err := parseTimeParam(r, "from")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTimeRange)
		return
	}
	to, err := parseTimeParam(r, "to")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTimeRange)
		return
	}

	result, err := h.service.GetStationBookings(r.Context(), &models.GetStationBookingsRequest{
		ManagerID: user.ID,
		StationID: stationID,
		FromUTC:   from,
		ToUTC:     to,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /stations/{id}/bookings - Access denied: manager_id=%d, station_id=%d", user.ID, stationID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrInvalidTimeRange):
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /stations/{id}/bookings - Failed to get bookings: station_id=%d, error=%v", stationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseTimeParam читает опциональный RFC3339 query-параметр
func parseTimeParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}

	t = t.UTC()
	return &t, nil
}
