package create_user

import (
	"errors"
	"net/http"

	"github.com/dkurganov/BSS-BookingService/internal/api/handlers"
	"github.com/dkurganov/BSS-BookingService/internal/service/users"
	"github.com/dkurganov/BSS-BookingService/internal/service/users/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDuplicateEmail     = "email уже используется"
	msgInvalidRole        = "некорректная роль"
	msgInvalidInput       = "некорректные данные пользователя"
)

type Handler struct {
	service UsersService
	logger  Logger
}

func NewHandler(service UsersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/users
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrDuplicateEmail):
			h.logger.Warn("POST /users - Duplicate email: %s", req.Email)
			handlers.RespondConflict(w, msgDuplicateEmail)

		case errors.Is(err, users.ErrInvalidRole):
			h.logger.Warn("POST /users - Invalid role: %s", req.Role)
			handlers.RespondBadRequest(w, msgInvalidRole)

		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("POST /users - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /users - Failed to create user: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /users - User created: user_id=%d, role=%s", result.ID, result.Role)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/users?role=MANAGER
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	var roleFilter *string
	if raw := r.URL.Query().Get("role"); raw != "" {
		roleFilter = &raw
	}

	result, err := h.service.List(r.Context(), roleFilter)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidRole):
			handlers.RespondBadRequest(w, msgInvalidRole)

		default:
			h.logger.Error("GET /users - Failed to list users: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
