package models

import (
	"time"

	"github.com/dkurganov/BSS-BookingService/internal/domain"
)

// Request модели

// CreateStationRequest запрос на создание станции
type CreateStationRequest struct {
	Name           string  `json:"name"`
	Location       string  `json:"location"`
	HourlyCapacity float64 `json:"hourlyCapacity"`
}

// UpdateStationRequest запрос на обновление станции. Nil поля не меняются
type UpdateStationRequest struct {
	Name           *string  `json:"name,omitempty"`
	Location       *string  `json:"location,omitempty"`
	HourlyCapacity *float64 `json:"hourlyCapacity,omitempty"`
}

// Response модели

// StationResponse ответ с данными станции
type StationResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Location       string    `json:"location"`
	HourlyCapacity float64   `json:"hourlyCapacity"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// StationListResponse ответ со списком станций
type StationListResponse struct {
	Stations []StationResponse `json:"stations"`
}

// AssignmentResponse ответ с данными привязки менеджера
type AssignmentResponse struct {
	ID        int64     `json:"id"`
	StationID int64     `json:"stationId"`
	ManagerID int64     `json:"managerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Методы конвертации

// FromDomainStation конвертирует domain модель в DTO
func FromDomainStation(s *domain.Station) *StationResponse {
	if s == nil {
		return nil
	}

	return &StationResponse{
		ID:             s.ID,
		Name:           s.Name,
		Location:       s.Location,
		HourlyCapacity: s.HourlyCapacity,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// FromDomainStationList конвертирует список domain моделей в DTO
func FromDomainStationList(stations []*domain.Station) []StationResponse {
	result := make([]StationResponse, 0, len(stations))
	for _, s := range stations {
		if resp := FromDomainStation(s); resp != nil {
			result = append(result, *resp)
		}
	}
	return result
}

// FromDomainAssignment конвертирует привязку менеджера в DTO
func FromDomainAssignment(a *domain.ManagerAssignment) *AssignmentResponse {
	if a == nil {
		return nil
	}

	return &AssignmentResponse{
		ID:        a.ID,
		StationID: a.StationID,
		ManagerID: a.ManagerID,
		CreatedAt: a.CreatedAt,
	}
}
