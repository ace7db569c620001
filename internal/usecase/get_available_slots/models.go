package get_available_slots

import (
	"github.com/dkurganov/BSS-BookingService/internal/domain"
)

// Request модель запроса на получение таблицы слотов станции
type Request struct {
	StationID int64 // ID станции
}

// Response модель ответа с таблицей слотов скользящего окна
type Response struct {
	StationID int64                  // ID станции
	Slots     []domain.AvailableSlot // Слоты окна с наложенной занятостью
}
