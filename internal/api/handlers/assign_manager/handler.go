package assign_manager

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dkurganov/BSS-BookingService/internal/api/handlers"
	"github.com/dkurganov/BSS-BookingService/internal/service/stations"
)

const (
	msgInvalidStationID   = "некорректный ID станции"
	msgInvalidManagerID   = "некорректный ID менеджера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgStationNotFound    = "станция не найдена"
	msgUserNotFound       = "пользователь не найден"
	msgNotAManager        = "пользователь не является менеджером"
	msgAlreadyAssigned    = "менеджер уже привязан к станции"
	msgAssignmentNotFound = "привязка менеджера не найдена"
	msgInvalidInput       = "некорректные данные запроса"
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

// Handle POST /api/v1/stations/{id}/managers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stationID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /stations/{id}/managers - Invalid station ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStationID)
		return
	}

	var req AssignManagerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /stations/{id}/managers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AssignManager(r.Context(), stationID, req.ManagerID)
	if err != nil {
		switch {
		case errors.Is(err, stations.ErrStationNotFound):
			h.logger.Warn("POST /stations/{id}/managers - Station not found: station_id=%d", stationID)
			handlers.RespondNotFound(w, msgStationNotFound)

		case errors.Is(err, stations.ErrUserNotFound):
			h.logger.Warn("POST /stations/{id}/managers - User not found: manager_id=%d", req.ManagerID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, stations.ErrNotAManager):
			h.logger.Warn("POST /stations/{id}/managers - User is not a manager: manager_id=%d", req.ManagerID)
			handlers.RespondBadRequest(w, msgNotAManager)

		case errors.Is(err, stations.ErrAlreadyAssigned):
			h.logger.Warn("POST /stations/{id}/managers - Already assigned: station_id=%d, manager_id=%d", stationID, req.ManagerID)
			handlers.RespondConflict(w, msgAlreadyAssigned)

		case errors.Is(err, stations.ErrInvalidInput):
			h.logger.Warn("POST /stations/{id}/managers - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /stations/{id}/managers - Failed to assign manager: station_id=%d, manager_id=%d, error=%v",
				stationID, req.ManagerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /stations/{id}/managers - Manager assigned: station_id=%d, manager_id=%d", stationID, req.ManagerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleUnassign DELETE /api/v1/stations/{id}/managers/{managerId}
func (h *Handler) HandleUnassign(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	stationID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidStationID)
		return
	}

	managerID, err := strconv.ParseInt(vars["managerId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidManagerID)
		return
	}

	if err := h.service.UnassignManager(r.Context(), stationID, managerID); err != nil {
		switch {
		case errors.Is(err, stations.ErrAssignmentNotFound):
			h.logger.Warn("DELETE /stations/{id}/managers/{managerId} - Assignment not found: station_id=%d, manager_id=%d",
				stationID, managerID)
			handlers.RespondNotFound(w, msgAssignmentNotFound)

		case errors.Is(err, stations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("DELETE /stations/{id}/managers/{managerId} - Failed to unassign manager: station_id=%d, manager_id=%d, error=%v",
				stationID, managerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /stations/{id}/managers/{managerId} - Manager unassigned: station_id=%d, manager_id=%d",
		stationID, managerID)
	handlers.RespondNoContent(w)
}
