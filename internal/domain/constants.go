package domain

import "time"

// Slot geometry constants
const (
	SlotsPerHour        = 4
	SlotDurationMinutes = 15
	// Грейс-период после конца слота до перевода в NO_SHOW
	ArrivalGraceMinutes = 15
)

const (
	SlotDuration = SlotDurationMinutes * time.Minute
	ArrivalGrace = ArrivalGraceMinutes * time.Minute
)

// Default booking window configuration
const (
	DefaultBookingWindowHours    = 24
	DefaultCancelLeadTimeMinutes = 60 // 1 hour
	DefaultSweepIntervalSeconds  = 60
)

// Business validation constants
const (
	MaxHourlyCapacity              = 1000
	MaxCancellationReasonLength    = 500
	MaxStationNameLength           = 200
	MaxStationLocationLength       = 500
)

// CountedStatuses статусы, занимающие место в слоте
// Используются при расчёте занятости слота и в admission control
var CountedStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCompleted,
}

// TerminalStatuses терминальные статусы state machine бронирования
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusNoShow,
	StatusCancelled,
}
