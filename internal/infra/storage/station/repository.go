package station

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/dkurganov/BSS-BookingService/internal/domain"
	"github.com/dkurganov/BSS-BookingService/pkg/dbmetrics"
	"github.com/dkurganov/BSS-BookingService/pkg/psqlbuilder"
)

// uniqueViolation код PostgreSQL для нарушения уникального ограничения
const uniqueViolation = "23505"

var stationColumns = []string{
	"id",
	"name",
	"location",
	"hourly_capacity",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со станциями и привязками менеджеров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория станций
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую станцию
func (r *Repository) Create(ctx context.Context, s *domain.Station) (*domain.Station, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("swap_stations").
		Columns("name", "location", "hourly_capacity").
		Values(s.Name, s.Location, s.HourlyCapacity).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает станцию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Station, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(stationColumns...).
		From("swap_stations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanStation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrStationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan station: %v", ErrScanRow, err)
	}

	return s, nil
}

// List получает все станции, отсортированные по имени
func (r *Repository) List(ctx context.Context) ([]*domain.Station, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(stationColumns...).
		From("swap_stations").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanStations(rows)
}

// ListForManager получает станции, к которым привязан менеджер
func (r *Repository) ListForManager(ctx context.Context, managerID int64) ([]*domain.Station, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.name",
		"s.location",
		"s.hourly_capacity",
		"s.created_at",
		"s.updated_at",
	).
		From("swap_stations s").
		Join("station_manager_assignments a ON a.station_id = s.id").
		Where(squirrel.Eq{"a.manager_id": managerID}).
		OrderBy("s.name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListForManager - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForManager - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanStations(rows)
}

// Update обновляет имя, расположение и пропускную способность станции
func (r *Repository) Update(ctx context.Context, s *domain.Station) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("swap_stations").
		Set("name", s.Name).
		Set("location", s.Location).
		Set("hourly_capacity", s.HourlyCapacity).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStationNotFound
	}

	return nil
}

// AssignManager привязывает менеджера к станции
func (r *Repository) AssignManager(ctx context.Context, stationID, managerID int64) (*domain.ManagerAssignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("station_manager_assignments").
		Columns("station_id", "manager_id").
		Values(stationID, managerID).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AssignManager - build insert query: %v", ErrBuildQuery, err)
	}

	assignment := domain.ManagerAssignment{
		StationID: stationID,
		ManagerID: managerID,
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&assignment.ID, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateAssignment
		}
		return nil, fmt.Errorf("%w: AssignManager - execute insert: %v", ErrExecQuery, err)
	}

	assignment.CreatedAt = createdAt.Time

	return &assignment, nil
}

// UnassignManager удаляет привязку менеджера к станции
func (r *Repository) UnassignManager(ctx context.Context, stationID, managerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("station_manager_assignments").
		Where(squirrel.Eq{"station_id": stationID}).
		Where(squirrel.Eq{"manager_id": managerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UnassignManager - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UnassignManager - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UnassignManager - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAssignmentNotFound
	}

	return nil
}

// IsManagerAssigned проверяет, привязан ли менеджер к станции
func (r *Repository) IsManagerAssigned(ctx context.Context, stationID, managerID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("station_manager_assignments").
		Where(squirrel.Eq{"station_id": stationID}).
		Where(squirrel.Eq{"manager_id": managerID}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsManagerAssigned - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsManagerAssigned - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStation(row rowScanner) (*domain.Station, error) {
	var s domain.Station
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Location,
		&s.HourlyCapacity,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

func scanStations(rows *sql.Rows) ([]*domain.Station, error) {
	stations := make([]*domain.Station, 0)

	for rows.Next() {
		s, err := scanStation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanStations - scan row: %v", ErrScanRow, err)
		}
		stations = append(stations, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanStations - rows error: %v", ErrScanRow, err)
	}

	return stations, nil
}
