package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/college-schedule-api/internal/models"
	"github.com/noah-isme/college-schedule-api/pkg/sqlfilter"
)

const holidayColumns = `id, name, holiday_date, description, is_recurring, recurring_year, applicable_departments, applicable_batches, created_at, updated_at`

// HolidayRepository persists holidays.
type HolidayRepository struct {
	db *sqlx.DB
}

// NewHolidayRepository constructs a holiday repository.
func NewHolidayRepository(db *sqlx.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// ListForRange returns one-off holidays inside [from, to] and every recurring holiday,
// ordered by date, name and id.
func (r *HolidayRepository) ListForRange(ctx context.Context, from, to time.Time) ([]models.Holiday, error) {
	query := `SELECT ` + holidayColumns + ` FROM holidays WHERE is_recurring OR (holiday_date >= $1 AND holiday_date <= $2) ORDER BY holiday_date ASC, name ASC, id ASC`
	var holidays []models.Holiday
	if err := r.db.SelectContext(ctx, &holidays, query, models.DateOnly(from), models.DateOnly(to)); err != nil {
		return nil, fmt.Errorf("list holidays for range: %w", err)
	}
	return holidays, nil
}

// List returns holidays matching the filter.
func (r *HolidayRepository) List(ctx context.Context, filter models.HolidayFilter) ([]models.Holiday, int, error) {
	where := sqlfilter.New().
		When(filter.From != nil, func(f *sqlfilter.Filter) { f.Gte("holiday_date", models.DateOnly(*filter.From)) }).
		When(filter.To != nil, func(f *sqlfilter.Filter) { f.Lte("holiday_date", models.DateOnly(*filter.To)) }).
		When(filter.Recurring != nil, func(f *sqlfilter.Filter) { f.Eq("is_recurring", *filter.Recurring) }).
		When(filter.DepartmentID != "", func(f *sqlfilter.Filter) {
			f.Or(
				sqlfilter.EmptyArrayClause("applicable_departments"),
				sqlfilter.ContainsClause("applicable_departments", filter.DepartmentID),
			)
		})
	whereClause, args := where.Build(1)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	base := "FROM holidays"
	if whereClause != "" {
		base += " " + whereClause
	}
	query := fmt.Sprintf("SELECT %s %s ORDER BY holiday_date ASC, name ASC LIMIT %d OFFSET %d", holidayColumns, base, size, offset)
	var holidays []models.Holiday
	if err := r.db.SelectContext(ctx, &holidays, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list holidays: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count holidays: %w", err)
	}
	return holidays, total, nil
}

// GetByID fetches a holiday.
func (r *HolidayRepository) GetByID(ctx context.Context, id string) (*models.Holiday, error) {
	query := `SELECT ` + holidayColumns + ` FROM holidays WHERE id = $1`
	var holiday models.Holiday
	if err := r.db.GetContext(ctx, &holiday, query, id); err != nil {
		return nil, err
	}
	return &holiday, nil
}

// Create inserts a holiday.
func (r *HolidayRepository) Create(ctx context.Context, holiday *models.Holiday) error {
	if holiday.ID == "" {
		holiday.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if holiday.CreatedAt.IsZero() {
		holiday.CreatedAt = now
	}
	holiday.UpdatedAt = now
	holiday.Date = models.DateOnly(holiday.Date)
	const query = `INSERT INTO holidays (id, name, holiday_date, description, is_recurring, recurring_year, applicable_departments, applicable_batches, created_at, updated_at)
VALUES (:id, :name, :holiday_date, :description, :is_recurring, :recurring_year, :applicable_departments, :applicable_batches, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, holiday); err != nil {
		return fmt.Errorf("create holiday: %w", err)
	}
	return nil
}

// Update modifies a holiday.
func (r *HolidayRepository) Update(ctx context.Context, holiday *models.Holiday) error {
	holiday.UpdatedAt = time.Now().UTC()
	holiday.Date = models.DateOnly(holiday.Date)
	const query = `UPDATE holidays SET name = :name, holiday_date = :holiday_date, description = :description, is_recurring = :is_recurring,
recurring_year = :recurring_year, applicable_departments = :applicable_departments, applicable_batches = :applicable_batches, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, holiday); err != nil {
		return fmt.Errorf("update holiday: %w", err)
	}
	return nil
}

// Delete removes a holiday.
func (r *HolidayRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete holiday: %w", err)
	}
	return nil
}
