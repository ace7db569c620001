package create_booking

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
	bookings []*domain.Booking
	nextID   int64
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	m.nextID++
	created := *booking
	created.ID = m.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	m.bookings = append(m.bookings, &created)
	return &created, nil
}

func (m *mockBookingRepo) ListForStationBetween(ctx context.Context, filter domain.StationBookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.StationID != filter.StationID {
			continue
		}
		if filter.FromUTC != nil && b.SlotStartUTC.Before(*filter.FromUTC) {
			continue
		}
		if filter.ToUTC != nil && !b.SlotStartUTC.Before(*filter.ToUTC) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
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

// passthroughTxManager выполняет fn без транзакции
type passthroughTxManager struct{}

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestUseCase(repo *mockBookingRepo, station *domain.Station, now time.Time) *UseCase {
	uc := NewUseCase(repo, &mockStationRepo{station: station}, &passthroughTxManager{}, 24, &noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_Success(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	station := &domain.Station{ID: 1, HourlyCapacity: 4}
	repo := &mockBookingRepo{}
	uc := newTestUseCase(repo, station, now)

	slotStart := time.Date(2026, 1, 10, 10, 15, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{
		StationID:    1,
		OperatorID:   100,
		SlotStartUTC: slotStart,
	})
	require.NoError(t, err)

	assert.Equal(t, slotStart, resp.SlotStartUTC)
	assert.Equal(t, slotStart.Add(15*time.Minute), resp.SlotEndUTC)
	assert.Equal(t, slotStart.Add(30*time.Minute), resp.ArrivalDeadlineUTC)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestExecute_SlotFull(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	// Емкость 4/час: каждый 15-минутный слот вмещает ровно одно бронирование
	station := &domain.Station{ID: 1, HourlyCapacity: 4}
	repo := &mockBookingRepo{}
	uc := newTestUseCase(repo, station, now)

	slotStart := time.Date(2026, 1, 10, 10, 15, 0, 0, time.UTC)
	req := &Request{StationID: 1, OperatorID: 100, SlotStartUTC: slotStart}

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	req.OperatorID = 200
	_, err = uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotFull)
}

func TestExecute_SecondSpotInWiderSlot(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	// Емкость 8/час: по два места в каждом слоте
	station := &domain.Station{ID: 1, HourlyCapacity: 8}
	repo := &mockBookingRepo{}
	uc := newTestUseCase(repo, station, now)

	slotStart := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)
	req := &Request{StationID: 1, OperatorID: 100, SlotStartUTC: slotStart}

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	req.OperatorID = 200
	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)

	req.OperatorID = 300
	_, err = uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotFull)
}

func TestExecute_CancelledBookingFreesSpot(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	station := &domain.Station{ID: 1, HourlyCapacity: 4}
	slotStart := time.Date(2026, 1, 10, 10, 15, 0, 0, time.UTC)

	// Отмененное бронирование не занимает место
	repo := &mockBookingRepo{bookings: []*domain.Booking{{
		ID:           1,
		StationID:    1,
		OperatorID:   100,
		SlotStartUTC: slotStart,
		Status:       domain.StatusCancelled,
	}}, nextID: 1}
	uc := newTestUseCase(repo, station, now)

	_, err := uc.Execute(context.Background(), &Request{
		StationID:    1,
		OperatorID:   200,
		SlotStartUTC: slotStart,
	})
	require.NoError(t, err)
}

func TestExecute_OutOfWindow(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	station := &domain.Station{ID: 1, HourlyCapacity: 4}
	uc := newTestUseCase(&mockBookingRepo{}, station, now)

	// Слот в прошлом
	_, err := uc.Execute(context.Background(), &Request{
		StationID:    1,
		OperatorID:   100,
		SlotStartUTC: time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, ErrOutOfWindow)

	// Слот за горизонтом окна (24 часа)
	_, err = uc.Execute(context.Background(), &Request{
		StationID:    1,
		OperatorID:   100,
		SlotStartUTC: time.Date(2026, 1, 11, 9, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, ErrOutOfWindow)
}

func TestExecute_WindowStartCeiledToQuarter(t *testing.T) {
	// 09:05 -> окно начинается в 09:15, слот 09:00 уже недоступен
	now := time.Date(2026, 1, 10, 9, 5, 0, 0, time.UTC)
	station := &domain.Station{ID: 1, HourlyCapacity: 4}
	uc := newTestUseCase(&mockBookingRepo{}, station, now)

	_, err := uc.Execute(context.Background(), &Request{
		StationID:    1,
		OperatorID:   100,
		SlotStartUTC: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, ErrOutOfWindow)

	_, err = uc.Execute(context.Background(), &Request{
		StationID:    1,
		OperatorID:   100,
		SlotStartUTC: time.Date(2026, 1, 10, 9, 15, 0, 0, time.UTC),
	})
	require.NoError(t, err)
}

func TestExecute_InvalidSlotBoundary(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	station := &domain.Station{ID: 1, HourlyCapacity: 4}
	uc := newTestUseCase(&mockBookingRepo{}, station, now)

	// Не кратно 15 минутам
	_, err := uc.Execute(context.Background(), &Request{
		StationID:    1,
		OperatorID:   100,
		SlotStartUTC: time.Date(2026, 1, 10, 10, 7, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, ErrInvalidSlot)
}

func TestExecute_ZeroCapacitySlotRejected(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	// Емкость 1/час: место есть только в первом слоте каждого часа
	station := &domain.Station{ID: 1, HourlyCapacity: 1}
	uc := newTestUseCase(&mockBookingRepo{}, station, now)

	_, err := uc.Execute(context.Background(), &Request{
		StationID:    1,
		OperatorID:   100,
		SlotStartUTC: time.Date(2026, 1, 10, 10, 30, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, ErrSlotFull)
}

func TestExecute_StationNotFound(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&mockBookingRepo{}, nil, now)

	_, err := uc.Execute(context.Background(), &Request{
		StationID:    42,
		OperatorID:   100,
		SlotStartUTC: time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, ErrStationNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	station := &domain.Station{ID: 1, HourlyCapacity: 4}
	uc := newTestUseCase(&mockBookingRepo{}, station, now)

	_, err := uc.Execute(context.Background(), &Request{StationID: 0, OperatorID: 100, SlotStartUTC: now})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{StationID: 1, OperatorID: 0, SlotStartUTC: now})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{StationID: 1, OperatorID: 100})
	require.ErrorIs(t, err, ErrInvalidInput)
}
