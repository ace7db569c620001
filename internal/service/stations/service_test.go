package stations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkurganov/BSS-BookingService/internal/domain"
	stationRepo "github.com/dkurganov/BSS-BookingService/internal/infra/storage/station"
	userRepo "github.com/dkurganov/BSS-BookingService/internal/infra/storage/user"
	"github.com/dkurganov/BSS-BookingService/internal/service/stations/models"
)

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

type mockStationRepo struct {
	stations    map[int64]*domain.Station
	assignments map[int64]int64 // stationID -> managerID
	nextID      int64
}

func newMockStationRepo() *mockStationRepo {
	return &mockStationRepo{
		stations:    make(map[int64]*domain.Station),
		assignments: make(map[int64]int64),
		nextID:      1,
	}
}

func (m *mockStationRepo) Create(ctx context.Context, s *domain.Station) (*domain.Station, error) {
	created := *s
	created.ID = m.nextID
	m.nextID++
	m.stations[created.ID] = &created
	return &created, nil
}

func (m *mockStationRepo) GetByID(ctx context.Context, id int64) (*domain.Station, error) {
	s, ok := m.stations[id]
	if !ok {
		return nil, stationRepo.ErrStationNotFound
	}
	return s, nil
}

func (m *mockStationRepo) List(ctx context.Context) ([]*domain.Station, error) {
	result := make([]*domain.Station, 0, len(m.stations))
	for _, s := range m.stations {
		result = append(result, s)
	}
	return result, nil
}

func (m *mockStationRepo) ListForManager(ctx context.Context, managerID int64) ([]*domain.Station, error) {
	var result []*domain.Station
	for stationID, mgr := range m.assignments {
		if mgr == managerID {
			result = append(result, m.stations[stationID])
		}
	}
	return result, nil
}

func (m *mockStationRepo) Update(ctx context.Context, s *domain.Station) error {
	if _, ok := m.stations[s.ID]; !ok {
		return stationRepo.ErrStationNotFound
	}
	m.stations[s.ID] = s
	return nil
}

func (m *mockStationRepo) AssignManager(ctx context.Context, stationID, managerID int64) (*domain.ManagerAssignment, error) {
	if m.assignments[stationID] == managerID {
		return nil, stationRepo.ErrDuplicateAssignment
	}
	m.assignments[stationID] = managerID
	return &domain.ManagerAssignment{ID: 1, StationID: stationID, ManagerID: managerID}, nil
}

func (m *mockStationRepo) UnassignManager(ctx context.Context, stationID, managerID int64) error {
	if m.assignments[stationID] != managerID {
		return stationRepo.ErrAssignmentNotFound
	}
	delete(m.assignments, stationID)
	return nil
}

type mockUserRepo struct {
	users map[int64]*domain.User
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

func newTestService(stations *mockStationRepo, users *mockUserRepo) *Service {
	return New(stations, users, &noopLogger{})
}

func TestCreate_Success(t *testing.T) {
	svc := newTestService(newMockStationRepo(), &mockUserRepo{})

	resp, err := svc.Create(context.Background(), &models.CreateStationRequest{
		Name:           "Station North",
		Location:       "Industrial zone, gate 3",
		HourlyCapacity: 2.5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, 2.5, resp.HourlyCapacity)
}

func TestCreate_InvalidCapacity(t *testing.T) {
	svc := newTestService(newMockStationRepo(), &mockUserRepo{})

	_, err := svc.Create(context.Background(), &models.CreateStationRequest{
		Name:           "Station North",
		HourlyCapacity: -1,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_EmptyName(t *testing.T) {
	svc := newTestService(newMockStationRepo(), &mockUserRepo{})

	_, err := svc.Create(context.Background(), &models.CreateStationRequest{HourlyCapacity: 1})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_PartialFields(t *testing.T) {
	repo := newMockStationRepo()
	svc := newTestService(repo, &mockUserRepo{})

	created, err := svc.Create(context.Background(), &models.CreateStationRequest{
		Name:           "Station North",
		Location:       "Gate 3",
		HourlyCapacity: 2.5,
	})
	require.NoError(t, err)

	newCapacity := 4.0
	updated, err := svc.Update(context.Background(), created.ID, &models.UpdateStationRequest{
		HourlyCapacity: &newCapacity,
	})
	require.NoError(t, err)
	assert.Equal(t, 4.0, updated.HourlyCapacity)
	assert.Equal(t, "Station North", updated.Name)
	assert.Equal(t, "Gate 3", updated.Location)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(newMockStationRepo(), &mockUserRepo{})

	name := "Renamed"
	_, err := svc.Update(context.Background(), 42, &models.UpdateStationRequest{Name: &name})
	require.ErrorIs(t, err, ErrStationNotFound)
}

func TestAssignManager_Success(t *testing.T) {
	repo := newMockStationRepo()
	users := &mockUserRepo{users: map[int64]*domain.User{
		500: {ID: 500, Role: domain.RoleManager},
	}}
	svc := newTestService(repo, users)

	created, err := svc.Create(context.Background(), &models.CreateStationRequest{Name: "S", HourlyCapacity: 1})
	require.NoError(t, err)

	assignment, err := svc.AssignManager(context.Background(), created.ID, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(500), assignment.ManagerID)
}

func TestAssignManager_RejectsNonManager(t *testing.T) {
	repo := newMockStationRepo()
	users := &mockUserRepo{users: map[int64]*domain.User{
		100: {ID: 100, Role: domain.RoleOperator},
	}}
	svc := newTestService(repo, users)

	created, err := svc.Create(context.Background(), &models.CreateStationRequest{Name: "S", HourlyCapacity: 1})
	require.NoError(t, err)

	_, err = svc.AssignManager(context.Background(), created.ID, 100)
	require.ErrorIs(t, err, ErrNotAManager)
}

func TestAssignManager_Duplicate(t *testing.T) {
	repo := newMockStationRepo()
	users := &mockUserRepo{users: map[int64]*domain.User{
		500: {ID: 500, Role: domain.RoleManager},
	}}
	svc := newTestService(repo, users)

	created, err := svc.Create(context.Background(), &models.CreateStationRequest{Name: "S", HourlyCapacity: 1})
	require.NoError(t, err)

	_, err = svc.AssignManager(context.Background(), created.ID, 500)
	require.NoError(t, err)

	_, err = svc.AssignManager(context.Background(), created.ID, 500)
	require.ErrorIs(t, err, ErrAlreadyAssigned)
}

func TestUnassignManager_NotFound(t *testing.T) {
	svc := newTestService(newMockStationRepo(), &mockUserRepo{})

	err := svc.UnassignManager(context.Background(), 1, 500)
	require.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestListForManager(t *testing.T) {
	repo := newMockStationRepo()
	users := &mockUserRepo{users: map[int64]*domain.User{
		500: {ID: 500, Role: domain.RoleManager},
	}}
	svc := newTestService(repo, users)

	first, err := svc.Create(context.Background(), &models.CreateStationRequest{Name: "A", HourlyCapacity: 1})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), &models.CreateStationRequest{Name: "B", HourlyCapacity: 1})
	require.NoError(t, err)

	_, err = svc.AssignManager(context.Background(), first.ID, 500)
	require.NoError(t, err)

	resp, err := svc.ListForManager(context.Background(), 500)
	require.NoError(t, err)
	require.Len(t, resp.Stations, 1)
	assert.Equal(t, "A", resp.Stations[0].Name)
}
