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

const scheduleEntryColumns = `id, assignment_id, venue_id, class_date, start_time, end_time, topic, is_cancelled, created_by, created_at, updated_at`

// ClassScheduleRepository persists academic_class_schedule rows.
type ClassScheduleRepository struct {
	db *sqlx.DB
}

// NewClassScheduleRepository creates a class schedule repository.
func NewClassScheduleRepository(db *sqlx.DB) *ClassScheduleRepository {
	return &ClassScheduleRepository{db: db}
}

// FindByID loads an entry by id.
func (r *ClassScheduleRepository) FindByID(ctx context.Context, id string) (*models.ScheduleEntry, error) {
	query := `SELECT ` + scheduleEntryColumns + ` FROM academic_class_schedule WHERE id = $1`
	var entry models.ScheduleEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListActiveByVenueDate returns non-cancelled entries for a venue on a day ordered by start time.
func (r *ClassScheduleRepository) ListActiveByVenueDate(ctx context.Context, exec sqlx.ExtContext, venueID string, day time.Time) ([]models.ScheduleEntry, error) {
	if exec == nil {
		exec = r.db
	}
	query := `SELECT ` + scheduleEntryColumns + ` FROM academic_class_schedule WHERE venue_id = $1 AND class_date = $2 AND is_cancelled = FALSE ORDER BY start_time ASC, id ASC`
	var entries []models.ScheduleEntry
	if err := sqlx.SelectContext(ctx, exec, &entries, query, venueID, models.DateOnly(day)); err != nil {
		return nil, fmt.Errorf("list active schedule entries: %w", err)
	}
	return entries, nil
}

// LockVenueDate serialises writers on (venue, date) until the surrounding transaction ends.
func (r *ClassScheduleRepository) LockVenueDate(ctx context.Context, exec sqlx.ExtContext, venueID string, day time.Time, timeout time.Duration) error {
	if timeout > 0 {
		if _, err := exec.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", timeout.Milliseconds())); err != nil {
			return fmt.Errorf("set lock timeout: %w", err)
		}
	}
	key := venueID + "|" + models.DateOnly(day).Format(models.DateLayout)
	if _, err := exec.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return fmt.Errorf("lock venue date: %w", err)
	}
	return nil
}

// Create inserts a new entry.
func (r *ClassScheduleRepository) Create(ctx context.Context, exec sqlx.ExtContext, entry *models.ScheduleEntry) error {
	if exec == nil {
		exec = r.db
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now
	entry.ClassDate = models.DateOnly(entry.ClassDate)

	const query = `INSERT INTO academic_class_schedule (id, assignment_id, venue_id, class_date, start_time, end_time, topic, is_cancelled, created_by, created_at, updated_at) VALUES (:id, :assignment_id, :venue_id, :class_date, :start_time, :end_time, :topic, :is_cancelled, :created_by, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, exec, query, entry); err != nil {
		return fmt.Errorf("create schedule entry: %w", err)
	}
	return nil
}

// Update rewrites venue, date, window, topic and cancelled flag of an entry.
func (r *ClassScheduleRepository) Update(ctx context.Context, exec sqlx.ExtContext, entry *models.ScheduleEntry) error {
	if exec == nil {
		exec = r.db
	}
	entry.UpdatedAt = time.Now().UTC()
	entry.ClassDate = models.DateOnly(entry.ClassDate)
	const query = `UPDATE academic_class_schedule SET venue_id = :venue_id, class_date = :class_date, start_time = :start_time, end_time = :end_time, topic = :topic, is_cancelled = :is_cancelled, updated_at = :updated_at WHERE id = :id`
	if _, err := sqlx.NamedExecContext(ctx, exec, query, entry); err != nil {
		return fmt.Errorf("update schedule entry: %w", err)
	}
	return nil
}

// SetCancelled stores the cancelled flag.
func (r *ClassScheduleRepository) SetCancelled(ctx context.Context, id string, cancelled bool) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE academic_class_schedule SET is_cancelled = $2, updated_at = $3 WHERE id = $1`, id, cancelled, time.Now().UTC()); err != nil {
		return fmt.Errorf("set schedule entry cancelled: %w", err)
	}
	return nil
}

// Delete removes an entry permanently.
func (r *ClassScheduleRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM academic_class_schedule WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete schedule entry: %w", err)
	}
	return nil
}

// List returns entries with assignment and venue descriptors.
func (r *ClassScheduleRepository) List(ctx context.Context, filter models.ScheduleEntryFilter, scope *sqlfilter.Filter) ([]models.ScheduleEntryDetail, int, error) {
	where := sqlfilter.New().
		When(filter.VenueID != "", func(f *sqlfilter.Filter) { f.Eq("e.venue_id", filter.VenueID) }).
		When(filter.AssignmentID != "", func(f *sqlfilter.Filter) { f.Eq("e.assignment_id", filter.AssignmentID) }).
		When(filter.DepartmentID != "", func(f *sqlfilter.Filter) { f.Eq("a.department_id", filter.DepartmentID) }).
		When(filter.From != nil, func(f *sqlfilter.Filter) { f.Gte("e.class_date", models.DateOnly(*filter.From)) }).
		When(filter.To != nil, func(f *sqlfilter.Filter) { f.Lte("e.class_date", models.DateOnly(*filter.To)) }).
		When(!filter.IncludeCancelled, func(f *sqlfilter.Filter) { f.Eq("e.is_cancelled", false) }).
		Merge(scope)
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

	base := "FROM academic_class_schedule e JOIN subject_assignments a ON a.id = e.assignment_id JOIN venues v ON v.id = e.venue_id"
	if whereClause != "" {
		base += " " + whereClause
	}

	query := fmt.Sprintf(`SELECT e.id, e.assignment_id, e.venue_id, e.class_date, e.start_time, e.end_time, e.topic, e.is_cancelled, e.created_by, e.created_at, e.updated_at, a.subject_name, a.department_id, a.section, v.name AS venue_name %s ORDER BY e.class_date ASC, e.start_time ASC LIMIT %d OFFSET %d`, base, size, offset)
	var entries []models.ScheduleEntryDetail
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list schedule entries: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count schedule entries: %w", err)
	}
	return entries, total, nil
}
