package get_available_slots

import (
	"time"

	getAvailableSlots "github.com/dkurganov/BSS-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	StartUTC          string `json:"startUtc"`
	EndUTC            string `json:"endUtc"`
	AvailableCapacity int    `json:"availableCapacity"`
	MaxCapacity       int    `json:"maxCapacity"`
}

// SlotsResponse HTTP модель таблицы слотов
type SlotsResponse struct {
	StationID int64          `json:"stationId"`
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			StartUTC:          s.StartUTC.Format(time.RFC3339),
			EndUTC:            s.EndUTC.Format(time.RFC3339),
			AvailableCapacity: s.AvailableCapacity,
			MaxCapacity:       s.MaxCapacity,
		}
	}

	return &SlotsResponse{
		StationID: resp.StationID,
		Slots:     slots,
	}
}
