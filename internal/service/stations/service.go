package stations

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/dkurganov/BSS-BookingService/internal/domain"
	stationRepo "github.com/dkurganov/BSS-BookingService/internal/infra/storage/station"
	userRepo "github.com/dkurganov/BSS-BookingService/internal/infra/storage/user"
	"github.com/dkurganov/BSS-BookingService/internal/service/stations/models"
)

// Service сервис управления станциями и привязками менеджеров
type Service struct {
	stationRepo StationRepository
	userRepo    UserRepository
	logger      Logger
}

// New создает новый сервис станций
func New(stationRepository StationRepository, userRepository UserRepository, logger Logger) *Service {
	return &Service{
		stationRepo: stationRepository,
		userRepo:    userRepository,
		logger:      logger,
	}
}

// Create создает новую станцию
func (s *Service) Create(ctx context.Context, req *models.CreateStationRequest) (*models.StationResponse, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	station, err := s.stationRepo.Create(ctx, &domain.Station{
		Name:           req.Name,
		Location:       req.Location,
		HourlyCapacity: req.HourlyCapacity,
	})
	if err != nil {
		s.logger.Error("[StationsService] Failed to create station %q: %v", req.Name, err)
		return nil, fmt.Errorf("%w: Create - failed to create station: %v", ErrInternal, err)
	}

	s.logger.Info("[StationsService] Station %d created: %q, capacity %.2f/hour", station.ID, station.Name, station.HourlyCapacity)
	return models.FromDomainStation(station), nil
}

// Get возвращает станцию по ID
func (s *Service) Get(ctx context.Context, stationID int64) (*models.StationResponse, error) {
	if stationID <= 0 {
		return nil, fmt.Errorf("%w: Get - invalid station ID: %d", ErrInvalidInput, stationID)
	}

	station, err := s.stationRepo.GetByID(ctx, stationID)
	if err != nil {
		if errors.Is(err, stationRepo.ErrStationNotFound) {
			return nil, fmt.Errorf("%w: Get - station %d", ErrStationNotFound, stationID)
		}
		s.logger.Error("[StationsService] Failed to get station %d: %v", stationID, err)
		return nil, fmt.Errorf("%w: Get - failed to get station: %v", ErrInternal, err)
	}

	return models.FromDomainStation(station), nil
}

// List возвращает все станции
func (s *Service) List(ctx context.Context) (*models.StationListResponse, error) {
	stations, err := s.stationRepo.List(ctx)
	if err != nil {
		s.logger.Error("[StationsService] Failed to list stations: %v", err)
		return nil, fmt.Errorf("%w: List - failed to list stations: %v", ErrInternal, err)
	}

	return &models.StationListResponse{Stations: models.FromDomainStationList(stations)}, nil
}

// ListForManager возвращает станции, к которым привязан менеджер
func (s *Service) ListForManager(ctx context.Context, managerID int64) (*models.StationListResponse, error) {
	if managerID <= 0 {
		return nil, fmt.Errorf("%w: ListForManager - invalid manager ID: %d", ErrInvalidInput, managerID)
	}

	stations, err := s.stationRepo.ListForManager(ctx, managerID)
	if err != nil {
		s.logger.Error("[StationsService] Failed to list stations for manager %d: %v", managerID, err)
		return nil, fmt.Errorf("%w: ListForManager - failed to list stations: %v", ErrInternal, err)
	}

	return &models.StationListResponse{Stations: models.FromDomainStationList(stations)}, nil
}

// Update обновляет станцию. Изменение пропускной способности влияет только на
// будущие запросы доступности, уже созданные бронирования не пересматриваются
func (s *Service) Update(ctx context.Context, stationID int64, req *models.UpdateStationRequest) (*models.StationResponse, error) {
	if err := validateUpdateRequest(stationID, req); err != nil {
		return nil, err
	}

	station, err := s.stationRepo.GetByID(ctx, stationID)
	if err != nil {
		if errors.Is(err, stationRepo.ErrStationNotFound) {
			return nil, fmt.Errorf("%w: Update - station %d", ErrStationNotFound, stationID)
		}
		s.logger.Error("[StationsService] Failed to get station %d for update: %v", stationID, err)
		return nil, fmt.Errorf("%w: Update - failed to get station: %v", ErrInternal, err)
	}

	if req.Name != nil {
		station.Name = *req.Name
	}
	if req.Location != nil {
		station.Location = *req.Location
	}
	if req.HourlyCapacity != nil {
		station.HourlyCapacity = *req.HourlyCapacity
	}

	if err := s.stationRepo.Update(ctx, station); err != nil {
		if errors.Is(err, stationRepo.ErrStationNotFound) {
			return nil, fmt.Errorf("%w: Update - station %d", ErrStationNotFound, stationID)
		}
		s.logger.Error("[StationsService] Failed to update station %d: %v", stationID, err)
		return nil, fmt.Errorf("%w: Update - failed to update station: %v", ErrInternal, err)
	}

	s.logger.Info("[StationsService] Station %d updated", stationID)
	return models.FromDomainStation(station), nil
}

// AssignManager привязывает менеджера к станции. Пользователь должен
// существовать и иметь роль MANAGER
func (s *Service) AssignManager(ctx context.Context, stationID, managerID int64) (*models.AssignmentResponse, error) {
	if stationID <= 0 || managerID <= 0 {
		return nil, fmt.Errorf("%w: AssignManager - invalid station ID %d or manager ID %d", ErrInvalidInput, stationID, managerID)
	}

	if _, err := s.stationRepo.GetByID(ctx, stationID); err != nil {
		if errors.Is(err, stationRepo.ErrStationNotFound) {
			return nil, fmt.Errorf("%w: AssignManager - station %d", ErrStationNotFound, stationID)
		}
		s.logger.Error("[StationsService] Failed to get station %d: %v", stationID, err)
		return nil, fmt.Errorf("%w: AssignManager - failed to get station: %v", ErrInternal, err)
	}

	manager, err := s.userRepo.GetByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: AssignManager - user %d", ErrUserNotFound, managerID)
		}
		s.logger.Error("[StationsService] Failed to get user %d: %v", managerID, err)
		return nil, fmt.Errorf("%w: AssignManager - failed to get user: %v", ErrInternal, err)
	}
	if manager.Role != domain.RoleManager {
		return nil, fmt.Errorf("%w: AssignManager - user %d has role %s", ErrNotAManager, managerID, manager.Role)
	}

	assignment, err := s.stationRepo.AssignManager(ctx, stationID, managerID)
	if err != nil {
		if errors.Is(err, stationRepo.ErrDuplicateAssignment) {
			return nil, fmt.Errorf("%w: AssignManager - manager %d, station %d", ErrAlreadyAssigned, managerID, stationID)
		}
		s.logger.Error("[StationsService] Failed to assign manager %d to station %d: %v", managerID, stationID, err)
		return nil, fmt.Errorf("%w: AssignManager - failed to assign manager: %v", ErrInternal, err)
	}

	s.logger.Info("[StationsService] Manager %d assigned to station %d", managerID, stationID)
	return models.FromDomainAssignment(assignment), nil
}

// UnassignManager отвязывает менеджера от станции
func (s *Service) UnassignManager(ctx context.Context, stationID, managerID int64) error {
	if stationID <= 0 || managerID <= 0 {
		return fmt.Errorf("%w: UnassignManager - invalid station ID %d or manager ID %d", ErrInvalidInput, stationID, managerID)
	}

	err := s.stationRepo.UnassignManager(ctx, stationID, managerID)
	if err != nil {
		if errors.Is(err, stationRepo.ErrAssignmentNotFound) {
			return fmt.Errorf("%w: UnassignManager - manager %d, station %d", ErrAssignmentNotFound, managerID, stationID)
		}
		s.logger.Error("[StationsService] Failed to unassign manager %d from station %d: %v", managerID, stationID, err)
		return fmt.Errorf("%w: UnassignManager - failed to unassign manager: %v", ErrInternal, err)
	}

	s.logger.Info("[StationsService] Manager %d unassigned from station %d", managerID, stationID)
	return nil
}

func validateCreateRequest(req *models.CreateStationRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.Name == "" || len(req.Name) > domain.MaxStationNameLength {
		return fmt.Errorf("%w: station name must be 1-%d characters", ErrInvalidInput, domain.MaxStationNameLength)
	}
	if len(req.Location) > domain.MaxStationLocationLength {
		return fmt.Errorf("%w: station location exceeds %d characters", ErrInvalidInput, domain.MaxStationLocationLength)
	}
	return validateCapacity(req.HourlyCapacity)
}

func validateUpdateRequest(stationID int64, req *models.UpdateStationRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if stationID <= 0 {
		return fmt.Errorf("%w: invalid station ID: %d", ErrInvalidInput, stationID)
	}
	if req.Name != nil && (*req.Name == "" || len(*req.Name) > domain.MaxStationNameLength) {
		return fmt.Errorf("%w: station name must be 1-%d characters", ErrInvalidInput, domain.MaxStationNameLength)
	}
	if req.Location != nil && len(*req.Location) > domain.MaxStationLocationLength {
		return fmt.Errorf("%w: station location exceeds %d characters", ErrInvalidInput, domain.MaxStationLocationLength)
	}
	if req.HourlyCapacity != nil {
		return validateCapacity(*req.HourlyCapacity)
	}
	return nil
}

func validateCapacity(capacity float64) error {
	if math.IsNaN(capacity) || math.IsInf(capacity, 0) {
		return fmt.Errorf("%w: hourly capacity must be a finite number", ErrInvalidInput)
	}
	if capacity < 0 || capacity > domain.MaxHourlyCapacity {
		return fmt.Errorf("%w: hourly capacity must be between 0 and %d", ErrInvalidInput, domain.MaxHourlyCapacity)
	}
	return nil
}
