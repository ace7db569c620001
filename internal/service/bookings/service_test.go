package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkurganov/BSS-BookingService/internal/domain"
	bookingRepo "github.com/dkurganov/BSS-BookingService/internal/infra/storage/booking"
	"github.com/dkurganov/BSS-BookingService/internal/service/bookings/models"
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

	cancelErr           error
	gotEarliestStart    time.Time
	gotCancelReason     *string
	completeErr         error
	sweepCount          int64
	sweepErr            error
	sweepCalls          int
	listStationErr      error
	gotStationFilter    domain.StationBookingsFilter
	upcoming            []*domain.Booking
	history             []*domain.Booking
	listOperatorErr     error
	gotListOperatorTime time.Time
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	for _, b := range m.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (m *mockBookingRepo) ListForStationBetween(ctx context.Context, filter domain.StationBookingsFilter) ([]*domain.Booking, error) {
	m.gotStationFilter = filter
	if m.listStationErr != nil {
		return nil, m.listStationErr
	}
	return m.bookings, nil
}

func (m *mockBookingRepo) ListOperatorUpcoming(ctx context.Context, operatorID int64, now time.Time) ([]*domain.Booking, error) {
	m.gotListOperatorTime = now
	if m.listOperatorErr != nil {
		return nil, m.listOperatorErr
	}
	return m.upcoming, nil
}

func (m *mockBookingRepo) ListOperatorHistory(ctx context.Context, operatorID int64, now time.Time) ([]*domain.Booking, error) {
	if m.listOperatorErr != nil {
		return nil, m.listOperatorErr
	}
	return m.history, nil
}

func (m *mockBookingRepo) CancelOwned(ctx context.Context, id, operatorID int64, reason *string, earliestStart time.Time) error {
	m.gotEarliestStart = earliestStart
	m.gotCancelReason = reason
	if m.cancelErr != nil {
		return m.cancelErr
	}
	for _, b := range m.bookings {
		if b.ID == id && b.OperatorID == operatorID && b.Status == domain.StatusConfirmed && b.SlotStartUTC.After(earliestStart) {
			b.Status = domain.StatusCancelled
			b.CancellationReason = reason
			return nil
		}
	}
	return bookingRepo.ErrCancelNotAllowed
}

func (m *mockBookingRepo) CompleteForStation(ctx context.Context, id, stationID int64) error {
	if m.completeErr != nil {
		return m.completeErr
	}
	for _, b := range m.bookings {
		if b.ID == id && b.StationID == stationID && b.Status == domain.StatusConfirmed {
			b.Status = domain.StatusCompleted
			return nil
		}
	}
	return bookingRepo.ErrCompleteNotAllowed
}

func (m *mockBookingRepo) MarkExpiredNoShows(ctx context.Context, now time.Time) (int64, error) {
	m.sweepCalls++
	if m.sweepErr != nil {
		return 0, m.sweepErr
	}
	var count int64
	for _, b := range m.bookings {
		if b.Status == domain.StatusConfirmed && b.ArrivalDeadlineUTC.Before(now) {
			b.Status = domain.StatusNoShow
			count++
		}
	}
	if count == 0 {
		return m.sweepCount, nil
	}
	return count, nil
}

type mockStationRepo struct {
	assigned    map[int64]int64 // stationID -> managerID
	assignedErr error
}

func (m *mockStationRepo) IsManagerAssigned(ctx context.Context, stationID, managerID int64) (bool, error) {
	if m.assignedErr != nil {
		return false, m.assignedErr
	}
	return m.assigned[stationID] == managerID, nil
}

func newTestService(repo *mockBookingRepo, stations *mockStationRepo, now time.Time, leadTime time.Duration) *Service {
	return New(repo, stations, &fixedTimeProvider{now: now}, &noopLogger{}, leadTime)
}

func confirmedBooking(id, stationID, operatorID int64, slotStart time.Time) *domain.Booking {
	return &domain.Booking{
		ID:                 id,
		StationID:          stationID,
		OperatorID:         operatorID,
		SlotStartUTC:       slotStart,
		SlotEndUTC:         slotStart.Add(domain.SlotDuration),
		ArrivalDeadlineUTC: slotStart.Add(domain.SlotDuration + domain.ArrivalGrace),
		Status:             domain.StatusConfirmed,
	}
}

func TestCancel_AllowedBeforeLeadTime(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	// Начало слота через 90 минут, lead time 1 час: отмена разрешена
	repo := &mockBookingRepo{bookings: []*domain.Booking{
		confirmedBooking(1, 10, 100, now.Add(90*time.Minute)),
	}}
	svc := newTestService(repo, &mockStationRepo{}, now, time.Hour)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{OperatorID: 100})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[0].Status)
	assert.Equal(t, now.Add(time.Hour), repo.gotEarliestStart)
}

func TestCancel_RejectedInsideLeadTime(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	// Начало слота через 30 минут, lead time 1 час: отмена запрещена
	repo := &mockBookingRepo{bookings: []*domain.Booking{
		confirmedBooking(1, 10, 100, now.Add(30*time.Minute)),
	}}
	svc := newTestService(repo, &mockStationRepo{}, now, time.Hour)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{OperatorID: 100})
	require.ErrorIs(t, err, ErrCancelNotAllowed)
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[0].Status)
}

func TestCancel_RejectedForForeignBooking(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	repo := &mockBookingRepo{bookings: []*domain.Booking{
		confirmedBooking(1, 10, 100, now.Add(3*time.Hour)),
	}}
	svc := newTestService(repo, &mockStationRepo{}, now, time.Hour)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{OperatorID: 200})
	// Чужое бронирование неотличимо от несуществующего
	require.ErrorIs(t, err, ErrCancelNotAllowed)
}

func TestCancel_StoresReason(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	repo := &mockBookingRepo{bookings: []*domain.Booking{
		confirmedBooking(1, 10, 100, now.Add(2*time.Hour)),
	}}
	svc := newTestService(repo, &mockStationRepo{}, now, time.Hour)

	reason := "plans changed"
	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{OperatorID: 100, Reason: &reason})
	require.NoError(t, err)
	require.NotNil(t, repo.gotCancelReason)
	assert.Equal(t, reason, *repo.gotCancelReason)
}

func TestCancel_InvalidInput(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, &mockStationRepo{}, time.Now(), time.Hour)

	err := svc.Cancel(context.Background(), 0, &models.CancelBookingRequest{OperatorID: 100})
	require.ErrorIs(t, err, ErrInvalidInput)

	err = svc.Cancel(context.Background(), 1, nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestComplete_Success(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	repo := &mockBookingRepo{bookings: []*domain.Booking{
		confirmedBooking(1, 10, 100, now.Add(-10*time.Minute)),
	}}
	stations := &mockStationRepo{assigned: map[int64]int64{10: 500}}
	svc := newTestService(repo, stations, now, time.Hour)

	err := svc.Complete(context.Background(), 1, &models.CompleteBookingRequest{ManagerID: 500, StationID: 10})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, repo.bookings[0].Status)
}

func TestComplete_AccessDeniedForUnassignedManager(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	repo := &mockBookingRepo{bookings: []*domain.Booking{
		confirmedBooking(1, 10, 100, now),
	}}
	stations := &mockStationRepo{assigned: map[int64]int64{10: 500}}
	svc := newTestService(repo, stations, now, time.Hour)

	err := svc.Complete(context.Background(), 1, &models.CompleteBookingRequest{ManagerID: 999, StationID: 10})
	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[0].Status)
}

func TestComplete_RejectedForWrongStation(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	repo := &mockBookingRepo{bookings: []*domain.Booking{
		confirmedBooking(1, 10, 100, now),
	}}
	stations := &mockStationRepo{assigned: map[int64]int64{20: 500}}
	svc := newTestService(repo, stations, now, time.Hour)

	err := svc.Complete(context.Background(), 1, &models.CompleteBookingRequest{ManagerID: 500, StationID: 20})
	require.ErrorIs(t, err, ErrCompleteNotAllowed)
}

func TestComplete_RejectedForTerminalBooking(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	b := confirmedBooking(1, 10, 100, now)
	b.Status = domain.StatusCancelled
	repo := &mockBookingRepo{bookings: []*domain.Booking{b}}
	stations := &mockStationRepo{assigned: map[int64]int64{10: 500}}
	svc := newTestService(repo, stations, now, time.Hour)

	err := svc.Complete(context.Background(), 1, &models.CompleteBookingRequest{ManagerID: 500, StationID: 10})
	require.ErrorIs(t, err, ErrCompleteNotAllowed)
}

func TestSweepExpiredNoShows(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	expired := confirmedBooking(1, 10, 100, now.Add(-time.Hour))
	active := confirmedBooking(2, 10, 100, now.Add(time.Hour))
	repo := &mockBookingRepo{bookings: []*domain.Booking{expired, active}}
	svc := newTestService(repo, &mockStationRepo{}, now, time.Hour)

	swept, err := svc.SweepExpiredNoShows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), swept)
	assert.Equal(t, domain.StatusNoShow, expired.Status)
	assert.Equal(t, domain.StatusConfirmed, active.Status)

	// Повторный вызов идемпотентен
	swept, err = svc.SweepExpiredNoShows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), swept)
}

func TestGetOperatorBookings_SweepsBeforeListing(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	repo := &mockBookingRepo{
		upcoming: []*domain.Booking{confirmedBooking(2, 10, 100, now.Add(time.Hour))},
		history:  []*domain.Booking{confirmedBooking(1, 10, 100, now.Add(-2*time.Hour))},
	}
	svc := newTestService(repo, &mockStationRepo{}, now, time.Hour)

	resp, err := svc.GetOperatorBookings(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.sweepCalls)
	assert.Len(t, resp.Upcoming, 1)
	assert.Len(t, resp.History, 1)
	assert.Equal(t, now, repo.gotListOperatorTime)
}

func TestGetOperatorBookings_SweepErrorFails(t *testing.T) {
	repo := &mockBookingRepo{sweepErr: errors.New("db down")}
	svc := newTestService(repo, &mockStationRepo{}, time.Now(), time.Hour)

	_, err := svc.GetOperatorBookings(context.Background(), 100)
	require.ErrorIs(t, err, ErrInternal)
}

func TestGetStationBookings_Success(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	repo := &mockBookingRepo{bookings: []*domain.Booking{
		confirmedBooking(1, 10, 100, now.Add(time.Hour)),
	}}
	stations := &mockStationRepo{assigned: map[int64]int64{10: 500}}
	svc := newTestService(repo, stations, now, time.Hour)

	from := now
	to := now.Add(24 * time.Hour)
	resp, err := svc.GetStationBookings(context.Background(), &models.GetStationBookingsRequest{
		ManagerID: 500,
		StationID: 10,
		FromUTC:   &from,
		ToUTC:     &to,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(10), repo.gotStationFilter.StationID)
}

func TestGetStationBookings_AccessDenied(t *testing.T) {
	stations := &mockStationRepo{assigned: map[int64]int64{10: 500}}
	svc := newTestService(&mockBookingRepo{}, stations, time.Now(), time.Hour)

	_, err := svc.GetStationBookings(context.Background(), &models.GetStationBookingsRequest{
		ManagerID: 999,
		StationID: 10,
	})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetStationBookings_InvalidTimeRange(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, &mockStationRepo{}, time.Now(), time.Hour)

	from := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)
	_, err := svc.GetStationBookings(context.Background(), &models.GetStationBookingsRequest{
		ManagerID: 500,
		StationID: 10,
		FromUTC:   &from,
		ToUTC:     &to,
	})
	require.ErrorIs(t, err, ErrInvalidTimeRange)
}
