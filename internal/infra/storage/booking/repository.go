package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
	"github.com/m04kA/SMC-RealtyService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-RealtyService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RealtyService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"property_id",
	"user_id",
	"agent_id",
	"type",
	"status",
	"date",
	"time_slot",
	"notes",
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

// Create создает новое бронирование, ID генерируется здесь
// Если в контексте передана активная транзакция, использует её.
// Повторная активная запись на тот же слот отклоняется частичным уникальным индексом (ErrSlotTaken)
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	created := *booking
	created.ID = uuid.NewString()
	created.Date = domain.DateOnly(booking.Date)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(bookingColumns...).
		Values(
			created.ID,
			created.PropertyID,
			created.UserID,
			created.AgentID,
			created.Type,
			created.Status,
			created.Date.Format(domain.DateFormat),
			created.TimeSlot,
			created.Notes,
			created.CreatedAt,
			created.UpdatedAt,
		).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return &created, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// CountActiveBySlot считает неотмененные бронирования на (объект, дата, слот)
// Внутри транзакции строки блокируются FOR UPDATE
func (r *Repository) CountActiveBySlot(ctx context.Context, filter domain.SlotFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From("bookings").
		Where(squirrel.Eq{
			"property_id": filter.PropertyID,
			"date":        domain.DateOnly(filter.Date).Format(domain.DateFormat),
			"time_slot":   filter.TimeSlot,
		}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		count++
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - rows error: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetActiveByPropertyAndDate получает неотмененные бронирования объекта на дату, по времени слота
func (r *Repository) GetActiveByPropertyAndDate(ctx context.Context, propertyID string, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"property_id": propertyID,
			"date":        domain.DateOnly(date).Format(domain.DateFormat),
		}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("time_slot ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByPropertyAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByPropertyAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByUser получает бронирования пользователя, новые первыми
// Опционально фильтрует по статусу
func (r *Repository) GetByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": filter.UserID}).
		OrderBy("created_at DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByAgent получает бронирования объектов агента
// Без явного статуса отмененные исключаются, если не задан IncludeCancelled
func (r *Repository) GetByAgent(ctx context.Context, filter domain.AgentBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"agent_id": filter.AgentID}).
		OrderBy("date DESC", "time_slot ASC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAgent - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAgent - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus переводит бронирование из статуса from в статус to
// Если статус уже изменился, возвращает ErrStatusConflict
func (r *Repository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, updatedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var notes sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.PropertyID,
		&booking.UserID,
		&booking.AgentID,
		&booking.Type,
		&booking.Status,
		&booking.Date,
		&booking.TimeSlot,
		&notes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Date = domain.DateOnly(booking.Date)
	if notes.Valid {
		booking.Notes = &notes.String
	}

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
