package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dkurganov/BSS-BookingService/internal/domain"
	userRepo "github.com/dkurganov/BSS-BookingService/internal/infra/storage/user"
	"github.com/dkurganov/BSS-BookingService/internal/service/users/models"
)

// Service сервис учетных записей
type Service struct {
	userRepo UserRepository
	logger   Logger
}

// New создает новый сервис учетных записей
func New(userRepository UserRepository, logger Logger) *Service {
	return &Service{
		userRepo: userRepository,
		logger:   logger,
	}
}

// Create создает учетную запись с одной из ролей: ADMIN, MANAGER, OPERATOR
func (s *Service) Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Name:  req.Name,
		Email: strings.ToLower(req.Email),
		Role:  domain.UserRole(req.Role),
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%w: Create - email %q", ErrDuplicateEmail, req.Email)
		}
		s.logger.Error("[UsersService] Failed to create user %q: %v", req.Email, err)
		return nil, fmt.Errorf("%w: Create - failed to create user: %v", ErrInternal, err)
	}

	s.logger.Info("[UsersService] User %d created with role %s", user.ID, user.Role)
	return models.FromDomainUser(user), nil
}

// Get возвращает учетную запись по ID
func (s *Service) Get(ctx context.Context, userID int64) (*models.UserResponse, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: Get - invalid user ID: %d", ErrInvalidInput, userID)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: Get - user %d", ErrUserNotFound, userID)
		}
		s.logger.Error("[UsersService] Failed to get user %d: %v", userID, err)
		return nil, fmt.Errorf("%w: Get - failed to get user: %v", ErrInternal, err)
	}

	return models.FromDomainUser(user), nil
}

// List возвращает учетные записи, опционально отфильтрованные по роли
func (s *Service) List(ctx context.Context, roleFilter *string) (*models.UserListResponse, error) {
	var role *domain.UserRole
	if roleFilter != nil {
		r := domain.UserRole(strings.ToUpper(*roleFilter))
		if !domain.ValidRole(r) {
			return nil, fmt.Errorf("%w: List - role %q", ErrInvalidRole, *roleFilter)
		}
		role = &r
	}

	users, err := s.userRepo.List(ctx, role)
	if err != nil {
		s.logger.Error("[UsersService] Failed to list users: %v", err)
		return nil, fmt.Errorf("%w: List - failed to list users: %v", ErrInternal, err)
	}

	return &models.UserListResponse{Users: models.FromDomainUserList(users)}, nil
}

func validateCreateRequest(req *models.CreateUserRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	if !domain.ValidRole(domain.UserRole(req.Role)) {
		return fmt.Errorf("%w: %q", ErrInvalidRole, req.Role)
	}
	return nil
}
