package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/dkurganov/BSS-BookingService/internal/domain"
	"github.com/dkurganov/BSS-BookingService/pkg/dbmetrics"
	"github.com/dkurganov/BSS-BookingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"station_id",
	"operator_id",
	"slot_start_utc",
	"slot_end_utc",
	"arrival_deadline_utc",
	"status",
	"cancellation_reason",
	"rescheduled_from_booking_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Admission control всегда вызывает Create внутри сериализуемой транзакции,
// чтобы проверка занятости слота и вставка были атомарными
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"station_id",
			"operator_id",
			"slot_start_utc",
			"slot_end_utc",
			"arrival_deadline_utc",
			"status",
			"rescheduled_from_booking_id",
		).
		Values(
			b.StationID,
			b.OperatorID,
			b.SlotStartUTC,
			b.SlotEndUTC,
			b.ArrivalDeadlineUTC,
			b.Status,
			b.RescheduledFromBookingID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// ListForStationBetween получает бронирования станции в интервале [from, to)
// по slot_start_utc, с опциональным фильтром по статусам
//
// Используется и для наложения занятости на таблицу слотов, и для отчетности
// менеджера - оба пути считают по одной и той же выборке.
// Внутри транзакции добавляет FOR UPDATE: admission control блокирует строки
// слотового окна на время проверки занятости
func (r *Repository) ListForStationBetween(ctx context.Context, filter domain.StationBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"station_id": filter.StationID})

	if filter.FromUTC != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"slot_start_utc": *filter.FromUTC})
	}
	if filter.ToUTC != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"slot_start_utc": *filter.ToUTC})
	}
	if len(filter.Statuses) > 0 {
		statusStrings := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("slot_start_utc ASC, id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForStationBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForStationBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListOperatorUpcoming получает предстоящие бронирования оператора
// (слот еще не закончился), ближайшие первыми
func (r *Repository) ListOperatorUpcoming(ctx context.Context, operatorID int64, now time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"operator_id": operatorID}).
		Where(squirrel.GtOrEq{"slot_end_utc": now}).
		OrderBy("slot_start_utc ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOperatorUpcoming - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOperatorUpcoming - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListOperatorHistory получает прошедшие бронирования оператора, свежие первыми
func (r *Repository) ListOperatorHistory(ctx context.Context, operatorID int64, now time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"operator_id": operatorID}).
		Where(squirrel.Lt{"slot_end_utc": now}).
		OrderBy("slot_start_utc DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOperatorHistory - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOperatorHistory - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CancelOwned отменяет бронирование условным UPDATE:
// строка должна принадлежать оператору, быть CONFIRMED и начинаться не раньше
// earliestStart (now + lead time). Ноль затронутых строк означает единый
// отказ ErrCancelNotAllowed без различения причины
func (r *Repository) CancelOwned(ctx context.Context, id, operatorID int64, reason *string, earliestStart time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"operator_id": operatorID}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Gt{"slot_start_utc": earliestStart}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelOwned - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CancelOwned - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CancelOwned - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCancelNotAllowed
	}

	return nil
}

// CompleteForStation переводит CONFIRMED бронирование станции в COMPLETED
// условным UPDATE. Ноль затронутых строк - единый отказ ErrCompleteNotAllowed
// (чужая станция и уже терминальный статус не различаются)
func (r *Repository) CompleteForStation(ctx context.Context, id, stationID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"station_id": stationID}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CompleteForStation - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CompleteForStation - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CompleteForStation - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCompleteNotAllowed
	}

	return nil
}

// MarkExpiredNoShows пакетно переводит просроченные CONFIRMED бронирования в NO_SHOW
// Предикатный UPDATE по arrival_deadline_utc < now: идемпотентен, безопасен при
// параллельном запуске и не требует таймера на каждое бронирование.
// Возвращает количество затронутых строк
func (r *Repository) MarkExpiredNoShows(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusNoShow).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Lt{"arrival_deadline_utc": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: MarkExpiredNoShows - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: MarkExpiredNoShows - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkExpiredNoShows - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку результата в бронирование
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.StationID,
		&b.OperatorID,
		&b.SlotStartUTC,
		&b.SlotEndUTC,
		&b.ArrivalDeadlineUTC,
		&b.Status,
		&b.CancellationReason,
		&b.RescheduledFromBookingID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
