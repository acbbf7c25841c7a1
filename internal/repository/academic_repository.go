package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/college-schedule-api/internal/models"
)

// AssignmentRepository reads subject assignments.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs an assignment repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// FindByID loads an assignment.
func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*models.SubjectAssignment, error) {
	const query = `SELECT id, subject_id, subject_name, faculty_id, department_id, academic_year_id, year_of_study, semester, section FROM subject_assignments WHERE id = $1`
	var assignment models.SubjectAssignment
	if err := r.db.GetContext(ctx, &assignment, query, id); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// VenueRepository reads venues.
type VenueRepository struct {
	db *sqlx.DB
}

// NewVenueRepository constructs a venue repository.
func NewVenueRepository(db *sqlx.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

// FindByID loads a venue.
func (r *VenueRepository) FindByID(ctx context.Context, id string) (*models.Venue, error) {
	const query = `SELECT id, name, capacity, active FROM venues WHERE id = $1`
	var venue models.Venue
	if err := r.db.GetContext(ctx, &venue, query, id); err != nil {
		return nil, err
	}
	return &venue, nil
}

// BatchRepository reads batch cohorts.
type BatchRepository struct {
	db *sqlx.DB
}

// NewBatchRepository constructs a batch repository.
func NewBatchRepository(db *sqlx.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// ListActive returns active batches, optionally limited to one department plus department-less batches.
func (r *BatchRepository) ListActive(ctx context.Context, departmentID string) ([]models.Batch, error) {
	query := `SELECT id, name, department_id, admission_year, active FROM batch_years WHERE active = TRUE`
	args := []interface{}{}
	if departmentID != "" {
		query += ` AND (department_id IS NULL OR department_id = $1)`
		args = append(args, departmentID)
	}
	query += ` ORDER BY admission_year DESC, name ASC`
	var batches []models.Batch
	if err := r.db.SelectContext(ctx, &batches, query, args...); err != nil {
		return nil, fmt.Errorf("list active batches: %w", err)
	}
	return batches, nil
}

// AcademicYearRepository reads academic years.
type AcademicYearRepository struct {
	db *sqlx.DB
}

// NewAcademicYearRepository constructs an academic year repository.
func NewAcademicYearRepository(db *sqlx.DB) *AcademicYearRepository {
	return &AcademicYearRepository{db: db}
}

// FindCurrent returns the year flagged as current.
func (r *AcademicYearRepository) FindCurrent(ctx context.Context) (*models.AcademicYear, error) {
	const query = `SELECT id, name, start_date, end_date, is_current FROM academic_years WHERE is_current = TRUE LIMIT 1`
	var year models.AcademicYear
	if err := r.db.GetContext(ctx, &year, query); err != nil {
		return nil, err
	}
	return &year, nil
}

// FindByID loads an academic year.
func (r *AcademicYearRepository) FindByID(ctx context.Context, id string) (*models.AcademicYear, error) {
	const query = `SELECT id, name, start_date, end_date, is_current FROM academic_years WHERE id = $1`
	var year models.AcademicYear
	if err := r.db.GetContext(ctx, &year, query, id); err != nil {
		return nil, err
	}
	return &year, nil
}
