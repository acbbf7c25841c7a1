package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/college-schedule-api/internal/dto"
	"github.com/noah-isme/college-schedule-api/internal/models"
	"github.com/noah-isme/college-schedule-api/pkg/database"
	appErrors "github.com/noah-isme/college-schedule-api/pkg/errors"
	"github.com/noah-isme/college-schedule-api/pkg/sqlfilter"
)

type classScheduleRepository interface {
	venueDayLister
	FindByID(ctx context.Context, id string) (*models.ScheduleEntry, error)
	LockVenueDate(ctx context.Context, exec sqlx.ExtContext, venueID string, day time.Time, timeout time.Duration) error
	Create(ctx context.Context, exec sqlx.ExtContext, entry *models.ScheduleEntry) error
	Update(ctx context.Context, exec sqlx.ExtContext, entry *models.ScheduleEntry) error
	SetCancelled(ctx context.Context, id string, cancelled bool) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.ScheduleEntryFilter, scope *sqlfilter.Filter) ([]models.ScheduleEntryDetail, int, error)
}

type assignmentReader interface {
	FindByID(ctx context.Context, id string) (*models.SubjectAssignment, error)
}

type venueReader interface {
	FindByID(ctx context.Context, id string) (*models.Venue, error)
}

type activeBatchLister interface {
	ListActive(ctx context.Context, departmentID string) ([]models.Batch, error)
}

type holidayCalendarLoader interface {
	Load(ctx context.Context, from, to time.Time) (*HolidayCalendar, error)
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// ClassScheduleConfig governs scheduler behaviour.
type ClassScheduleConfig struct {
	MaxOccurrences int
	LockTimeout    time.Duration
}

// ClassScheduleService turns scheduling commands into class schedule entries.
type ClassScheduleService struct {
	repo        classScheduleRepository
	assignments assignmentReader
	venues      venueReader
	batches     activeBatchLister
	holidays    holidayCalendarLoader
	detector    *ConflictDetector
	tx          txProvider
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
	cfg         ClassScheduleConfig
}

// NewClassScheduleService wires scheduler dependencies.
func NewClassScheduleService(
	repo classScheduleRepository,
	assignments assignmentReader,
	venues venueReader,
	batches activeBatchLister,
	holidays holidayCalendarLoader,
	tx txProvider,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg ClassScheduleConfig,
) *ClassScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxOccurrences <= 0 {
		cfg.MaxOccurrences = 104
	}
	registerScheduleValidations(validate)
	return &ClassScheduleService{
		repo:        repo,
		assignments: assignments,
		venues:      venues,
		batches:     batches,
		holidays:    holidays,
		detector:    NewConflictDetector(repo),
		tx:          tx,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
		cfg:         cfg,
	}
}

// Schedule creates one entry, or one entry per week for recurring commands. Single commands
// fail with ConflictError or StorageError; recurring commands record those per date and carry
// on. Holiday dates are always reported as skips.
func (s *ClassScheduleService) Schedule(ctx context.Context, scope models.AdminScope, academicYear models.AcademicYearContext, req dto.ScheduleCommand) (*dto.ScheduleResult, error) {
	intent, err := normalizeCommand(s.validator, req)
	if err != nil {
		return nil, err
	}
	if intent.EditID != "" {
		return s.update(ctx, scope, intent.EditID, intent)
	}

	assignment, err := s.loadAssignment(ctx, scope, intent.AssignmentID)
	if err != nil {
		return nil, err
	}
	if academicYear.ID != "" && assignment.AcademicYearID != "" && assignment.AcademicYearID != academicYear.ID {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("assignment does not belong to academic year %s", academicYear.Name))
	}
	venue, err := s.loadVenue(ctx, intent.VenueID)
	if err != nil {
		return nil, err
	}

	dates := []time.Time{intent.Date}
	if intent.Recurring {
		if dates, err = ExpandWeekly(intent.Date, intent.RepeatUntil, s.cfg.MaxOccurrences); err != nil {
			return nil, err
		}
	}

	var calendar *HolidayCalendar
	var batches []string
	if !intent.SkipHolidays {
		active, err := s.batches.ListActive(ctx, assignment.DepartmentID)
		if err != nil {
			return nil, appErrors.Storage(err, "failed to load batches")
		}
		batches = batchIDs(BatchesForYear(active, academicYear, assignment.DepartmentID, assignment.YearOfStudy))
		if calendar, err = s.holidays.Load(ctx, dates[0], dates[len(dates)-1]); err != nil {
			return nil, err
		}
	}

	logger := s.logger.With(zap.String("assignment_id", assignment.ID), zap.String("venue_id", venue.ID))
	result := &dto.ScheduleResult{CandidateCount: len(dates), Skipped: []dto.SkippedOccurrence{}}
	for _, day := range dates {
		dayLabel := day.Format(models.DateLayout)

		if match, ok := calendar.LookupAny(day, assignment.DepartmentID, batches); ok {
			result.SkippedHoliday++
			result.Skipped = append(result.Skipped, dto.SkippedOccurrence{
				Date:    dayLabel,
				Reason:  dto.SkipHoliday,
				Detail:  match.Name,
				Holiday: match,
			})
			s.metrics.RecordOccurrence(OutcomeSkippedHoliday)
			logger.Debug("occurrence skipped for holiday", zap.String("date", dayLabel), zap.String("holiday", match.Name))
			continue
		}

		entry := &models.ScheduleEntry{
			AssignmentID: assignment.ID,
			VenueID:      venue.ID,
			ClassDate:    day,
			StartTime:    intent.Window.Start,
			EndTime:      intent.Window.End,
			Topic:        intent.Topic,
			CreatedBy:    scope.UserID,
		}
		if intent.Cancelled != nil {
			entry.Cancelled = *intent.Cancelled
		}

		err := s.commitOccurrence(ctx, entry, "", func(exec sqlx.ExtContext) error {
			return s.repo.Create(ctx, exec, entry)
		})
		if err == nil {
			result.CreatedCount++
			result.Entries = append(result.Entries, *entry)
			s.metrics.RecordOccurrence(OutcomeCreated)
			continue
		}
		if !intent.Recurring {
			s.metrics.RecordOccurrence(outcomeOf(err))
			return nil, err
		}

		var conflictErr *models.ScheduleConflictError
		if errors.As(err, &conflictErr) {
			conflict := conflictErr.Conflict
			result.SkippedConflict++
			result.Skipped = append(result.Skipped, dto.SkippedOccurrence{
				Date:     dayLabel,
				Reason:   dto.SkipConflict,
				Detail:   conflictErr.Message,
				Conflict: &conflict,
			})
			s.metrics.RecordOccurrence(OutcomeSkippedConflict)
			logger.Debug("occurrence skipped for conflict", zap.String("date", dayLabel), zap.String("conflict_entry_id", conflict.EntryID))
			continue
		}

		result.Failed++
		result.Skipped = append(result.Skipped, dto.SkippedOccurrence{
			Date:   dayLabel,
			Reason: dto.SkipError,
			Detail: appErrors.FromError(err).Message,
		})
		s.metrics.RecordOccurrence(OutcomeFailed)
		logger.Warn("occurrence not persisted", zap.String("date", dayLabel), zap.Error(err))
	}

	finalizeResult(result)
	logger.Info("class schedule processed",
		zap.String("status", string(result.Status)),
		zap.Int("created", result.CreatedCount),
		zap.Int("skipped_holiday", result.SkippedHoliday),
		zap.Int("skipped_conflict", result.SkippedConflict),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// Update edits an entry's venue, date, window, topic or cancelled flag. Holidays are not
// consulted; the entry never conflicts with itself.
func (s *ClassScheduleService) Update(ctx context.Context, scope models.AdminScope, id string, req dto.ScheduleCommand) (*dto.ScheduleResult, error) {
	req.Recurring = false
	intent, err := normalizeCommand(s.validator, req)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, scope, id, intent)
}

func (s *ClassScheduleService) update(ctx context.Context, scope models.AdminScope, id string, intent *scheduleIntent) (*dto.ScheduleResult, error) {
	existing, err := s.loadEntry(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if intent.AssignmentID != existing.AssignmentID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "assignment of an existing entry cannot be changed")
	}
	if intent.VenueID != existing.VenueID {
		if _, err := s.loadVenue(ctx, intent.VenueID); err != nil {
			return nil, err
		}
	}

	updated := *existing
	updated.VenueID = intent.VenueID
	updated.ClassDate = intent.Date
	updated.StartTime = intent.Window.Start
	updated.EndTime = intent.Window.End
	updated.Topic = intent.Topic
	if intent.Cancelled != nil {
		updated.Cancelled = *intent.Cancelled
	}

	if err := s.commitOccurrence(ctx, &updated, existing.ID, func(exec sqlx.ExtContext) error {
		return s.repo.Update(ctx, exec, &updated)
	}); err != nil {
		return nil, err
	}
	s.metrics.RecordOccurrence(OutcomeUpdated)

	return &dto.ScheduleResult{
		Status:  dto.StatusUpdated,
		Skipped: []dto.SkippedOccurrence{},
		Entries: []models.ScheduleEntry{updated},
		Message: "class schedule updated",
	}, nil
}

// ToggleCancel flips the cancelled flag without re-validating the window. Restoring an entry
// whose slot has since been taken fails with ConflictError.
func (s *ClassScheduleService) ToggleCancel(ctx context.Context, scope models.AdminScope, id string) (*models.ScheduleEntry, error) {
	entry, err := s.loadEntry(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	cancelled := !entry.Cancelled
	if err := s.repo.SetCancelled(ctx, entry.ID, cancelled); err != nil {
		if database.IsOverlapViolation(err) {
			return nil, newConcurrentConflictError(*entry)
		}
		return nil, appErrors.Storage(err, "failed to update schedule entry")
	}
	entry.Cancelled = cancelled
	return entry, nil
}

// Delete removes an entry permanently.
func (s *ClassScheduleService) Delete(ctx context.Context, scope models.AdminScope, id string) error {
	entry, err := s.loadEntry(ctx, scope, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, entry.ID); err != nil {
		return appErrors.Storage(err, "failed to delete schedule entry")
	}
	return nil
}

// List returns entries visible to scope with pagination metadata.
func (s *ClassScheduleService) List(ctx context.Context, scope models.AdminScope, filter models.ScheduleEntryFilter) ([]models.ScheduleEntryDetail, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 200 {
		filter.PageSize = 50
	}
	entries, total, err := s.repo.List(ctx, filter, scope.Filter("a.department_id"))
	if err != nil {
		return nil, nil, appErrors.Storage(err, "failed to list class schedules")
	}
	return entries, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// CheckAvailability checks a venue window without writing anything.
func (s *ClassScheduleService) CheckAvailability(ctx context.Context, venueID string, day time.Time, window models.Window, excludeID string) (*dto.AvailabilityResult, error) {
	if strings.TrimSpace(venueID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "venue_id is required")
	}
	if !window.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_time must be before end_time")
	}
	conflict, err := s.detector.FindConflict(ctx, nil, venueID, day, window, excludeID)
	if err != nil {
		return nil, err
	}
	if conflict == nil {
		return &dto.AvailabilityResult{Available: true}, nil
	}
	described := models.NewScheduleConflict(*conflict)
	return &dto.AvailabilityResult{Available: false, Conflict: &described}, nil
}

// commitOccurrence serialises writers on (venue, date), re-checks conflicts and runs write in a
// single transaction. Cancelled entries do not occupy the venue and skip the check.
func (s *ClassScheduleService) commitOccurrence(ctx context.Context, entry *models.ScheduleEntry, excludeID string, write func(exec sqlx.ExtContext) error) (err error) {
	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return appErrors.Storage(err, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if !entry.Cancelled {
		start := time.Now()
		if err := s.repo.LockVenueDate(ctx, tx, entry.VenueID, entry.ClassDate, s.cfg.LockTimeout); err != nil {
			if database.IsLockTimeout(err) {
				return appErrors.Storage(err, "venue is busy, retry shortly")
			}
			return appErrors.Storage(err, "failed to lock venue")
		}
		s.metrics.ObserveLockWait(time.Since(start))

		conflict, err := s.detector.FindConflict(ctx, tx, entry.VenueID, entry.ClassDate, entry.Window(), excludeID)
		if err != nil {
			return err
		}
		if conflict != nil {
			return newConflictError(*conflict)
		}
	}

	if err := write(tx); err != nil {
		if database.IsOverlapViolation(err) {
			return newConcurrentConflictError(*entry)
		}
		if database.IsForeignKeyViolation(err) {
			return appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "assignment or venue no longer exists")
		}
		return appErrors.Storage(err, "failed to persist schedule entry")
	}
	if err := tx.Commit(); err != nil {
		if database.IsOverlapViolation(err) {
			return newConcurrentConflictError(*entry)
		}
		return appErrors.Storage(err, "failed to commit schedule entry")
	}
	return nil
}

func (s *ClassScheduleService) loadAssignment(ctx context.Context, scope models.AdminScope, id string) (*models.SubjectAssignment, error) {
	assignment, err := s.assignments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject assignment not found")
		}
		return nil, appErrors.Storage(err, "failed to load subject assignment")
	}
	if !scope.AllowsDepartment(assignment.DepartmentID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "subject assignment belongs to another department")
	}
	return assignment, nil
}

func (s *ClassScheduleService) loadVenue(ctx context.Context, id string) (*models.Venue, error) {
	venue, err := s.venues.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "venue not found")
		}
		return nil, appErrors.Storage(err, "failed to load venue")
	}
	if !venue.Active {
		return nil, appErrors.Clone(appErrors.ErrValidation, "venue is not active")
	}
	return venue, nil
}

// loadEntry fetches an entry and enforces scope through its assignment's department.
func (s *ClassScheduleService) loadEntry(ctx context.Context, scope models.AdminScope, id string) (*models.ScheduleEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class schedule entry not found")
		}
		return nil, appErrors.Storage(err, "failed to load class schedule entry")
	}
	if _, err := s.loadAssignment(ctx, scope, entry.AssignmentID); err != nil {
		return nil, err
	}
	return entry, nil
}

func finalizeResult(result *dto.ScheduleResult) {
	skipped := result.SkippedHoliday + result.SkippedConflict + result.Failed
	switch {
	case result.CreatedCount == 0:
		result.Status = dto.StatusRejected
	case skipped == 0:
		result.Status = dto.StatusCreated
	default:
		result.Status = dto.StatusPartial
	}

	parts := []string{fmt.Sprintf("%d %s scheduled", result.CreatedCount, plural(result.CreatedCount, "class", "classes"))}
	if result.SkippedHoliday > 0 {
		parts = append(parts, fmt.Sprintf("%d holiday %s skipped", result.SkippedHoliday, plural(result.SkippedHoliday, "date", "dates")))
	}
	if result.SkippedConflict > 0 {
		parts = append(parts, fmt.Sprintf("%d conflicting %s skipped", result.SkippedConflict, plural(result.SkippedConflict, "date", "dates")))
	}
	if result.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d %s failed", result.Failed, plural(result.Failed, "date", "dates")))
	}
	result.Message = strings.Join(parts, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func outcomeOf(err error) string {
	var conflictErr *models.ScheduleConflictError
	if errors.As(err, &conflictErr) {
		return OutcomeSkippedConflict
	}
	return OutcomeFailed
}
