package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkurganov/BSS-BookingService/internal/domain"
	stationStorage "github.com/dkurganov/BSS-BookingService/internal/infra/storage/station"
)

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

type mockBookingRepo struct {
	bookings  []*domain.Booking
	gotFilter domain.StationBookingsFilter
}

func (m *mockBookingRepo) ListForStationBetween(ctx context.Context, filter domain.StationBookingsFilter) ([]*domain.Booking, error) {
	m.gotFilter = filter
	return m.bookings, nil
}

type mockStationRepo struct {
	station *domain.Station
}

func (m *mockStationRepo) GetByID(ctx context.Context, id int64) (*domain.Station, error) {
	if m.station == nil || m.station.ID != id {
		return nil, stationStorage.ErrStationNotFound
	}
	return m.station, nil
}

func newTestUseCase(repo *mockBookingRepo, station *domain.Station, now time.Time) *UseCase {
	uc := NewUseCase(repo, &mockStationRepo{station: station}, 24, &noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func findSlot(t *testing.T, slots []domain.AvailableSlot, start time.Time) domain.AvailableSlot {
	t.Helper()
	for _, s := range slots {
		if s.StartUTC.Equal(start) {
			return s
		}
	}
	t.Fatalf("slot %s not found", start.Format(time.RFC3339))
	return domain.AvailableSlot{}
}

func TestExecute_FullWindowFromQuarterBoundary(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	station := &domain.Station{ID: 1, HourlyCapacity: 4}
	uc := newTestUseCase(&mockBookingRepo{}, station, now)

	resp, err := uc.Execute(context.Background(), &Request{StationID: 1})
	require.NoError(t, err)

	// 24 часа по 4 слота, окно начинается ровно на границе часа
	assert.Len(t, resp.Slots, 96)
	assert.Equal(t, now, resp.Slots[0].StartUTC)
	for _, s := range resp.Slots {
		assert.Equal(t, 1, s.MaxCapacity)
		assert.Equal(t, 1, s.AvailableCapacity)
	}
}

func TestExecute_PartialFirstHourClipped(t *testing.T) {
	// 09:20 -> окно начинается в 09:30, слоты 09:00 и 09:15 отброшены
	now := time.Date(2026, 1, 10, 9, 20, 0, 0, time.UTC)
	station := &domain.Station{ID: 1, HourlyCapacity: 4}
	uc := newTestUseCase(&mockBookingRepo{}, station, now)

	resp, err := uc.Execute(context.Background(), &Request{StationID: 1})
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 94)
	assert.Equal(t, time.Date(2026, 1, 10, 9, 30, 0, 0, time.UTC), resp.Slots[0].StartUTC)
}

func TestExecute_OccupancyOverlay(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	station := &domain.Station{ID: 1, HourlyCapacity: 8}
	slotStart := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)

	repo := &mockBookingRepo{bookings: []*domain.Booking{
		{ID: 1, StationID: 1, SlotStartUTC: slotStart, Status: domain.StatusConfirmed},
		{ID: 2, StationID: 1, SlotStartUTC: slotStart, Status: domain.StatusCompleted},
		{ID: 3, StationID: 1, SlotStartUTC: slotStart, Status: domain.StatusCancelled},
		{ID: 4, StationID: 1, SlotStartUTC: slotStart, Status: domain.StatusNoShow},
	}}
	uc := newTestUseCase(repo, station, now)

	resp, err := uc.Execute(context.Background(), &Request{StationID: 1})
	require.NoError(t, err)

	// CONFIRMED и COMPLETED занимают место, CANCELLED и NO_SHOW - нет
	slot := findSlot(t, resp.Slots, slotStart)
	assert.Equal(t, 2, slot.MaxCapacity)
	assert.Equal(t, 0, slot.AvailableCapacity)
}

func TestExecute_OverbookedSlotClampedToZero(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	station := &domain.Station{ID: 1, HourlyCapacity: 4}
	slotStart := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)

	// Занятость выше емкости (например, после снижения hourly_capacity станции)
	repo := &mockBookingRepo{bookings: []*domain.Booking{
		{ID: 1, StationID: 1, SlotStartUTC: slotStart, Status: domain.StatusConfirmed},
		{ID: 2, StationID: 1, SlotStartUTC: slotStart, Status: domain.StatusConfirmed},
	}}
	uc := newTestUseCase(repo, station, now)

	resp, err := uc.Execute(context.Background(), &Request{StationID: 1})
	require.NoError(t, err)

	slot := findSlot(t, resp.Slots, slotStart)
	assert.Equal(t, 1, slot.MaxCapacity)
	assert.Equal(t, 0, slot.AvailableCapacity)
}

func TestExecute_FractionalCapacityDistribution(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	// 2.5/час: часы чередуются между емкостью 2 и 3
	station := &domain.Station{ID: 1, HourlyCapacity: 2.5}
	uc := newTestUseCase(&mockBookingRepo{}, station, now)

	resp, err := uc.Execute(context.Background(), &Request{StationID: 1})
	require.NoError(t, err)

	firstHour := 0
	secondHour := 0
	for _, s := range resp.Slots[:4] {
		firstHour += s.MaxCapacity
	}
	for _, s := range resp.Slots[4:8] {
		secondHour += s.MaxCapacity
	}
	assert.Equal(t, 2, firstHour)
	assert.Equal(t, 3, secondHour)
}

func TestExecute_FilterUsesCountedStatuses(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	station := &domain.Station{ID: 1, HourlyCapacity: 4}
	repo := &mockBookingRepo{}
	uc := newTestUseCase(repo, station, now)

	_, err := uc.Execute(context.Background(), &Request{StationID: 1})
	require.NoError(t, err)

	assert.Equal(t, domain.CountedStatuses, repo.gotFilter.Statuses)
	require.NotNil(t, repo.gotFilter.FromUTC)
	require.NotNil(t, repo.gotFilter.ToUTC)
	assert.Equal(t, now, *repo.gotFilter.FromUTC)
	assert.Equal(t, now.Add(24*time.Hour), *repo.gotFilter.ToUTC)
}

func TestExecute_StationNotFound(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, nil, time.Now())

	_, err := uc.Execute(context.Background(), &Request{StationID: 42})
	require.ErrorIs(t, err, ErrStationNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, nil, time.Now())

	_, err := uc.Execute(context.Background(), &Request{StationID: 0})
	require.ErrorIs(t, err, ErrInvalidInput)
}
