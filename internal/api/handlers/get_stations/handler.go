package get_stations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dkurganov/BSS-BookingService/internal/api/handlers"
	"github.com/dkurganov/BSS-BookingService/internal/api/middleware"
	"github.com/dkurganov/BSS-BookingService/internal/domain"
	"github.com/dkurganov/BSS-BookingService/internal/service/stations"
)

const (
	msgInvalidStationID = "некорректный ID станции"
	msgStationNotFound  = "станция не найдена"
	msgInvalidInput     = "некорректные данные запроса"
)

type Handler struct {
	service StationsService
	logger  Logger
}

func NewHandler(service StationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stations
// Менеджер видит только свои станции, остальные роли - все
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgInvalidInput)
		return
	}

	var err error
	var result interface{}
	if user.Role == domain.RoleManager {
		result, err = h.service.ListForManager(r.Context(), user.ID)
	} else {
		result, err = h.service.List(r.Context())
	}
	if err != nil {
		h.logger.Error("GET /stations - Failed to list stations: user_id=%d, error=%v", user.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleByID GET /api/v1/stations/{id}
func (h *Handler) HandleByID(w http.ResponseWriter, r *http.Request) {
	stationID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /stations/{id} - Invalid station ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStationID)
		return
	}

	result, err := h.service.Get(r.Context(), stationID)
	if err != nil {
		switch {
		case errors.Is(err, stations.ErrStationNotFound):
			handlers.RespondNotFound(w, msgStationNotFound)

		case errors.Is(err, stations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidStationID)

		default:
			h.logger.Error("GET /stations/{id} - Failed to get station: station_id=%d, error=%v", stationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
