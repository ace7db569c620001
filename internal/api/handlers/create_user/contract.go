package create_user

import (
	"context"

	"github.com/dkurganov/BSS-BookingService/internal/service/users/models"
)

type UsersService interface {
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error)
	List(ctx context.Context, roleFilter *string) (*models.UserListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
