package calendar

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки postgres при нарушении уникального ограничения
const uniqueViolation = "23505"

var calendarColumns = []string{
	"resource_id",
	"owner_id",
	"weekly_hours",
	"blocked_dates",
	"pricing",
	"slot_duration_minutes",
	"match_duration_minutes",
	"advance_booking_days",
	"allow_cancellation",
	"cancellation_deadline_hours",
	"refund_percent",
	"created_at",
	"updated_at",
}

// Repository репозиторий операционных календарей ресурсов.
// Вложенные структуры (расписание недели, блокировки, прайсинг) хранятся
// в JSONB-колонках, плоские настройки - в обычных колонках.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория календарей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByResourceID получает календарь ресурса
func (r *Repository) GetByResourceID(ctx context.Context, resourceID int64) (*domain.OperatingCalendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(calendarColumns...).
		From("resource_calendars").
		Where(squirrel.Eq{"resource_id": resourceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByResourceID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	cal, err := scanCalendar(row)
	if err == sql.ErrNoRows {
		return nil, ErrCalendarNotFound
	}
	if err != nil {
		return nil, err
	}

	return cal, nil
}

// Create создает календарь ресурса.
// Повторное создание для того же ресурса возвращает ErrCalendarAlreadyExists.
func (r *Repository) Create(ctx context.Context, cal *domain.OperatingCalendar) (*domain.OperatingCalendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	weeklyHours, blockedDates, pricing, err := marshalJSONColumns(cal)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert("resource_calendars").
		Columns(
			"resource_id",
			"owner_id",
			"weekly_hours",
			"blocked_dates",
			"pricing",
			"slot_duration_minutes",
			"match_duration_minutes",
			"advance_booking_days",
			"allow_cancellation",
			"cancellation_deadline_hours",
			"refund_percent",
		).
		Values(
			cal.ResourceID,
			cal.OwnerID,
			weeklyHours,
			blockedDates,
			pricing,
			cal.SlotDurationMinutes,
			cal.MatchDurationMinutes,
			cal.AdvanceBookingDays,
			cal.Cancellation.AllowCancellation,
			cal.Cancellation.DeadlineHours,
			cal.Cancellation.RefundPercent,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: resource_id=%d", ErrCalendarAlreadyExists, cal.ResourceID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	cal.CreatedAt = createdAt.Time
	cal.UpdatedAt = updatedAt.Time

	return cal, nil
}

// Update обновляет календарь ресурса
func (r *Repository) Update(ctx context.Context, cal *domain.OperatingCalendar) (*domain.OperatingCalendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	weeklyHours, blockedDates, pricing, err := marshalJSONColumns(cal)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Update("resource_calendars").
		Set("weekly_hours", weeklyHours).
		Set("blocked_dates", blockedDates).
		Set("pricing", pricing).
		Set("slot_duration_minutes", cal.SlotDurationMinutes).
		Set("match_duration_minutes", cal.MatchDurationMinutes).
		Set("advance_booking_days", cal.AdvanceBookingDays).
		Set("allow_cancellation", cal.Cancellation.AllowCancellation).
		Set("cancellation_deadline_hours", cal.Cancellation.DeadlineHours).
		Set("refund_percent", cal.Cancellation.RefundPercent).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"resource_id": cal.ResourceID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrCalendarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	cal.CreatedAt = createdAt.Time
	cal.UpdatedAt = updatedAt.Time

	return cal, nil
}

func marshalJSONColumns(cal *domain.OperatingCalendar) ([]byte, []byte, []byte, error) {
	weeklyHours, err := json.Marshal(cal.WeeklyHours)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: weekly_hours: %v", ErrMarshal, err)
	}

	blockedDates, err := json.Marshal(cal.BlockedDates)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: blocked_dates: %v", ErrMarshal, err)
	}

	pricing, err := json.Marshal(cal.Pricing)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: pricing: %v", ErrMarshal, err)
	}

	return weeklyHours, blockedDates, pricing, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCalendar(row rowScanner) (*domain.OperatingCalendar, error) {
	var cal domain.OperatingCalendar
	var weeklyHours, blockedDates, pricing []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&cal.ResourceID,
		&cal.OwnerID,
		&weeklyHours,
		&blockedDates,
		&pricing,
		&cal.SlotDurationMinutes,
		&cal.MatchDurationMinutes,
		&cal.AdvanceBookingDays,
		&cal.Cancellation.AllowCancellation,
		&cal.Cancellation.DeadlineHours,
		&cal.Cancellation.RefundPercent,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanCalendar: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(weeklyHours, &cal.WeeklyHours); err != nil {
		return nil, fmt.Errorf("%w: weekly_hours: %v", ErrMarshal, err)
	}
	if err := json.Unmarshal(blockedDates, &cal.BlockedDates); err != nil {
		return nil, fmt.Errorf("%w: blocked_dates: %v", ErrMarshal, err)
	}
	if err := json.Unmarshal(pricing, &cal.Pricing); err != nil {
		return nil, fmt.Errorf("%w: pricing: %v", ErrMarshal, err)
	}

	cal.CreatedAt = createdAt.Time
	cal.UpdatedAt = updatedAt.Time

	return &cal, nil
}
