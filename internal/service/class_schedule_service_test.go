package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/college-schedule-api/internal/dto"
	"github.com/noah-isme/college-schedule-api/internal/models"
	appErrors "github.com/noah-isme/college-schedule-api/pkg/errors"
	"github.com/noah-isme/college-schedule-api/pkg/sqlfilter"
)

var (
	superAdmin = models.AdminScope{UserID: "admin-1", Role: models.RoleSuperAdmin}
	year2024   = models.AcademicYearContext{ID: "ay-2024", Name: "2024-25", StartYear: 2024}
)

func TestClassScheduleServiceSingleConflict(t *testing.T) {
	fx := newClassScheduleFixture(t)
	fx.repo.seed(entryAt("entry-1", "venue-v", mustDate(t, "2024-06-10"), mustWindow(t, "10:00", "11:00")))

	fx.mock.ExpectBegin()
	fx.mock.ExpectRollback()

	_, err := fx.service.Schedule(context.Background(), superAdmin, year2024, command("2024-06-10", "10:30", "11:30"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	var conflictErr *models.ScheduleConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.Equal(t, "entry-1", conflictErr.Conflict.EntryID)
	assert.Equal(t, "10:00", conflictErr.Conflict.StartTime.String())
	assert.Equal(t, "11:00", conflictErr.Conflict.EndTime.String())
	assert.Len(t, fx.repo.entries, 1)
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestClassScheduleServiceSingleCreated(t *testing.T) {
	fx := newClassScheduleFixture(t)
	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()

	req := command("2024-06-10", "10:00", "11:00")
	topic := "  Limits  "
	req.Topic = &topic
	result, err := fx.service.Schedule(context.Background(), superAdmin, year2024, req)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusCreated, result.Status)
	assert.Equal(t, 1, result.CreatedCount)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "Limits", *result.Entries[0].Topic)
	assert.Equal(t, "admin-1", result.Entries[0].CreatedBy)
	assert.Equal(t, []string{"venue-v|2024-06-10"}, fx.repo.locks)
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestClassScheduleServiceRecurringSkipsHoliday(t *testing.T) {
	fx := newClassScheduleFixture(t)
	fx.holidays.holidays = []models.Holiday{
		{ID: "h1", Name: "Department Day", Date: mustDate(t, "2024-06-17"), ApplicableDepartments: pq.StringArray{"cse"}},
	}
	for i := 0; i < 4; i++ {
		fx.mock.ExpectBegin()
		fx.mock.ExpectCommit()
	}

	req := command("2024-06-03", "09:00", "10:00")
	req.Recurring = true
	req.RepeatUntil = "2024-07-08"
	result, err := fx.service.Schedule(context.Background(), superAdmin, year2024, req)
	require.NoError(t, err)

	assert.Equal(t, 5, result.CandidateCount)
	assert.Equal(t, 4, result.CreatedCount)
	assert.Equal(t, 1, result.SkippedHoliday)
	assert.Equal(t, 0, result.SkippedConflict)
	assert.Equal(t, dto.StatusPartial, result.Status)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "2024-06-17", result.Skipped[0].Date)
	assert.Equal(t, dto.SkipHoliday, result.Skipped[0].Reason)
	assert.Equal(t, "Department Day", result.Skipped[0].Detail)
	assertCountsBalance(t, result)
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestClassScheduleServiceRecurringHolidayOverride(t *testing.T) {
	fx := newClassScheduleFixture(t)
	fx.holidays.holidays = []models.Holiday{{ID: "h1", Name: "Founders Day", Date: mustDate(t, "2024-06-10")}}
	for i := 0; i < 2; i++ {
		fx.mock.ExpectBegin()
		fx.mock.ExpectCommit()
	}

	req := command("2024-06-03", "09:00", "10:00")
	req.Recurring = true
	req.RepeatUntil = "2024-06-17"
	req.SkipHolidays = true
	result, err := fx.service.Schedule(context.Background(), superAdmin, year2024, req)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusCreated, result.Status)
	assert.Equal(t, 2, result.CreatedCount)
	assert.Zero(t, fx.holidays.calls)
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestClassScheduleServiceHolidayOnlyForMappedBatch(t *testing.T) {
	fx := newClassScheduleFixture(t)
	fx.holidays.holidays = []models.Holiday{
		{ID: "h1", Name: "Third year excursion", Date: mustDate(t, "2024-06-10"), ApplicableBatches: pq.StringArray{"b-2022-b"}},
		{ID: "h2", Name: "First year orientation", Date: mustDate(t, "2024-06-17"), ApplicableBatches: pq.StringArray{"b-2024"}},
	}
	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()
	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()

	req := command("2024-06-03", "09:00", "10:00")
	req.Recurring = true
	req.RepeatUntil = "2024-06-18"
	result, err := fx.service.Schedule(context.Background(), superAdmin, year2024, req)
	require.NoError(t, err)

	assert.Equal(t, 2, result.CreatedCount)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "2024-06-10", result.Skipped[0].Date)
	assert.Equal(t, "b-2022-b", result.Skipped[0].Holiday.BatchID)
	assertCountsBalance(t, result)
}

func TestClassScheduleServiceUnmappedYearSkipsOnlyUniversalHolidays(t *testing.T) {
	fx := newClassScheduleFixture(t)
	fx.holidays.holidays = []models.Holiday{
		{ID: "h1", Name: "First year orientation", Date: mustDate(t, "2024-06-10"), ApplicableBatches: pq.StringArray{"b-2024"}},
		{ID: "h2", Name: "Campus closure", Date: mustDate(t, "2024-06-17")},
	}
	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()

	req := command("2024-06-10", "09:00", "10:00")
	req.AssignmentID = "assign-4"
	req.Recurring = true
	req.RepeatUntil = "2024-06-18"
	result, err := fx.service.Schedule(context.Background(), superAdmin, year2024, req)
	require.NoError(t, err)

	assert.Equal(t, dto.StatusPartial, result.Status)
	assert.Equal(t, 1, result.CreatedCount)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "2024-06-17", result.Skipped[0].Date)
	assert.Equal(t, "Campus closure", result.Skipped[0].Detail)
	assertCountsBalance(t, result)
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestClassScheduleServiceRecurringConflictAndStorageSkips(t *testing.T) {
	fx := newClassScheduleFixture(t)
	fx.repo.seed(entryAt("entry-x", "venue-v", mustDate(t, "2024-06-10"), mustWindow(t, "09:30", "10:30")))
	fx.repo.failOn = map[string]error{"2024-06-17": errors.New("disk full")}

	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()
	fx.mock.ExpectBegin()
	fx.mock.ExpectRollback()
	fx.mock.ExpectBegin()
	fx.mock.ExpectRollback()
	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()

	req := command("2024-06-03", "09:00", "10:00")
	req.Recurring = true
	req.RepeatUntil = "2024-06-30"
	result, err := fx.service.Schedule(context.Background(), superAdmin, year2024, req)
	require.NoError(t, err)

	assert.Equal(t, dto.StatusPartial, result.Status)
	assert.Equal(t, 2, result.CreatedCount)
	assert.Equal(t, 1, result.SkippedConflict)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Skipped, 2)
	assert.Equal(t, dto.SkipConflict, result.Skipped[0].Reason)
	require.NotNil(t, result.Skipped[0].Conflict)
	assert.Equal(t, "entry-x", result.Skipped[0].Conflict.EntryID)
	assert.Equal(t, dto.SkipError, result.Skipped[1].Reason)
	assertCountsBalance(t, result)
	assert.Equal(t, "2 classes scheduled, 1 conflicting date skipped, 1 date failed", result.Message)
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestClassScheduleServiceSingleHolidayRejected(t *testing.T) {
	fx := newClassScheduleFixture(t)
	fx.holidays.holidays = []models.Holiday{{ID: "h1", Name: "Republic Day", Date: mustDate(t, "2000-01-26"), IsRecurring: true}}

	result, err := fx.service.Schedule(context.Background(), superAdmin, year2024, command("2025-01-26", "09:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, dto.StatusRejected, result.Status)
	assert.Equal(t, 1, result.SkippedHoliday)
	assert.Equal(t, "Republic Day", result.Skipped[0].Detail)
	assert.Empty(t, fx.repo.entries)
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestClassScheduleServiceConcurrentInsertMapsToConflict(t *testing.T) {
	fx := newClassScheduleFixture(t)
	fx.repo.failOn = map[string]error{"2024-06-10": &pq.Error{Code: "23P01"}}
	fx.mock.ExpectBegin()
	fx.mock.ExpectRollback()

	_, err := fx.service.Schedule(context.Background(), superAdmin, year2024, command("2024-06-10", "10:00", "11:00"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestClassScheduleServiceDanglingReferenceIsNotFound(t *testing.T) {
	fx := newClassScheduleFixture(t)
	fx.repo.failOn = map[string]error{"2024-06-10": &pq.Error{Code: "23503"}}
	fx.mock.ExpectBegin()
	fx.mock.ExpectRollback()

	_, err := fx.service.Schedule(context.Background(), superAdmin, year2024, command("2024-06-10", "10:00", "11:00"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestClassScheduleServiceSingleStorageFailure(t *testing.T) {
	fx := newClassScheduleFixture(t)
	fx.repo.failOn = map[string]error{"2024-06-10": errors.New("connection reset")}
	fx.mock.ExpectBegin()
	fx.mock.ExpectRollback()

	_, err := fx.service.Schedule(context.Background(), superAdmin, year2024, command("2024-06-10", "10:00", "11:00"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStorage.Code, appErrors.FromError(err).Code)
}

func TestClassScheduleServiceValidation(t *testing.T) {
	fx := newClassScheduleFixture(t)

	cases := map[string]dto.ScheduleCommand{
		"end before start":        command("2024-06-10", "11:00", "10:00"),
		"empty window":            command("2024-06-10", "10:00", "10:00"),
		"bad date":                command("10-06-2024", "10:00", "11:00"),
		"missing venue":           func() dto.ScheduleCommand { c := command("2024-06-10", "10:00", "11:00"); c.VenueID = ""; return c }(),
		"recurring without until": func() dto.ScheduleCommand { c := command("2024-06-10", "10:00", "11:00"); c.Recurring = true; return c }(),
		"until before date": func() dto.ScheduleCommand {
			c := command("2024-06-10", "10:00", "11:00")
			c.Recurring = true
			c.RepeatUntil = "2024-06-10"
			return c
		}(),
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := fx.service.Schedule(context.Background(), superAdmin, year2024, req)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestClassScheduleServiceScopeAndReferences(t *testing.T) {
	fx := newClassScheduleFixture(t)
	eceAdmin := models.AdminScope{UserID: "admin-2", Role: models.RoleDepartmentAdmin, DepartmentID: "ece"}

	_, err := fx.service.Schedule(context.Background(), eceAdmin, year2024, command("2024-06-10", "10:00", "11:00"))
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	req := command("2024-06-10", "10:00", "11:00")
	req.AssignmentID = "missing"
	_, err = fx.service.Schedule(context.Background(), superAdmin, year2024, req)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	req = command("2024-06-10", "10:00", "11:00")
	req.VenueID = "venue-closed"
	_, err = fx.service.Schedule(context.Background(), superAdmin, year2024, req)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = fx.service.Schedule(context.Background(), superAdmin, models.AcademicYearContext{ID: "ay-2023", StartYear: 2023}, command("2024-06-10", "10:00", "11:00"))
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestClassScheduleServiceEditKeepsOwnWindow(t *testing.T) {
	fx := newClassScheduleFixture(t)
	fx.repo.seed(entryAt("entry-1", "venue-v", mustDate(t, "2024-06-10"), mustWindow(t, "10:00", "11:00")))
	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()

	req := command("2024-06-10", "10:00", "11:00")
	req.EditID = "entry-1"
	result, err := fx.service.Schedule(context.Background(), superAdmin, year2024, req)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusUpdated, result.Status)
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestClassScheduleServiceEditConflictsWithOthers(t *testing.T) {
	fx := newClassScheduleFixture(t)
	fx.repo.seed(
		entryAt("entry-1", "venue-v", mustDate(t, "2024-06-10"), mustWindow(t, "10:00", "11:00")),
		entryAt("entry-2", "venue-v", mustDate(t, "2024-06-10"), mustWindow(t, "11:00", "12:00")),
	)
	fx.mock.ExpectBegin()
	fx.mock.ExpectRollback()

	_, err := fx.service.Update(context.Background(), superAdmin, "entry-1", command("2024-06-10", "10:30", "11:30"))
	require.Error(t, err)
	var conflictErr *models.ScheduleConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.Equal(t, "entry-2", conflictErr.Conflict.EntryID)
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestClassScheduleServiceEditIgnoresHolidays(t *testing.T) {
	fx := newClassScheduleFixture(t)
	fx.holidays.holidays = []models.Holiday{{ID: "h1", Name: "Founders Day", Date: mustDate(t, "2024-06-11")}}
	fx.repo.seed(entryAt("entry-1", "venue-v", mustDate(t, "2024-06-10"), mustWindow(t, "10:00", "11:00")))
	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()

	result, err := fx.service.Update(context.Background(), superAdmin, "entry-1", command("2024-06-11", "10:00", "11:00"))
	require.NoError(t, err)
	assert.Equal(t, "2024-06-11", result.Entries[0].ClassDate.Format(models.DateLayout))
	assert.Zero(t, fx.holidays.calls)
}

func TestClassScheduleServiceUpdateMissing(t *testing.T) {
	fx := newClassScheduleFixture(t)
	_, err := fx.service.Update(context.Background(), superAdmin, "nope", command("2024-06-10", "10:00", "11:00"))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestClassScheduleServiceToggleCancel(t *testing.T) {
	fx := newClassScheduleFixture(t)
	fx.repo.seed(entryAt("entry-1", "venue-v", mustDate(t, "2024-06-10"), mustWindow(t, "10:00", "11:00")))

	entry, err := fx.service.ToggleCancel(context.Background(), superAdmin, "entry-1")
	require.NoError(t, err)
	assert.True(t, entry.Cancelled)

	fx.repo.cancelErr = &pq.Error{Code: "23P01"}
	_, err = fx.service.ToggleCancel(context.Background(), superAdmin, "entry-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestClassScheduleServiceDelete(t *testing.T) {
	fx := newClassScheduleFixture(t)
	fx.repo.seed(entryAt("entry-1", "venue-v", mustDate(t, "2024-06-10"), mustWindow(t, "10:00", "11:00")))

	require.NoError(t, fx.service.Delete(context.Background(), superAdmin, "entry-1"))
	assert.Empty(t, fx.repo.entries)

	err := fx.service.Delete(context.Background(), superAdmin, "entry-1")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestClassScheduleServiceListAppliesScope(t *testing.T) {
	fx := newClassScheduleFixture(t)
	cseAdmin := models.AdminScope{UserID: "admin-3", Role: models.RoleDepartmentAdmin, DepartmentID: "cse"}

	_, pagination, err := fx.service.List(context.Background(), cseAdmin, models.ScheduleEntryFilter{PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 50, pagination.PageSize)
	assert.Equal(t, 1, pagination.Page)

	where, args := fx.repo.lastScope.Build(1)
	assert.Equal(t, "WHERE a.department_id = $1", where)
	assert.Equal(t, []interface{}{"cse"}, args)
}

func TestClassScheduleServiceCheckAvailability(t *testing.T) {
	fx := newClassScheduleFixture(t)
	day := mustDate(t, "2024-06-10")
	fx.repo.seed(entryAt("entry-1", "venue-v", day, mustWindow(t, "10:00", "11:00")))

	result, err := fx.service.CheckAvailability(context.Background(), "venue-v", day, mustWindow(t, "10:30", "11:30"), "")
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, "entry-1", result.Conflict.EntryID)

	result, err = fx.service.CheckAvailability(context.Background(), "venue-v", day, mustWindow(t, "10:30", "11:30"), "entry-1")
	require.NoError(t, err)
	assert.True(t, result.Available)

	_, err = fx.service.CheckAvailability(context.Background(), "venue-v", day, models.Window{Start: 600, End: 600}, "")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

// --- Fixtures ---

type classScheduleFixture struct {
	service  *ClassScheduleService
	repo     *classScheduleRepoStub
	holidays *holidayRangeReaderStub
	mock     sqlmock.Sqlmock
}

func newClassScheduleFixture(t *testing.T) *classScheduleFixture {
	txProvider, mock := newTxProviderMock(t)
	repo := &classScheduleRepoStub{}
	holidays := &holidayRangeReaderStub{}
	cse := "cse"
	batches := batchListerStub{batches: []models.Batch{
		{ID: "b-2022-a", DepartmentID: &cse, AdmissionYear: 2022, Active: true},
		{ID: "b-2022-b", DepartmentID: &cse, AdmissionYear: 2022, Active: true},
		{ID: "b-2024", DepartmentID: &cse, AdmissionYear: 2024, Active: true},
	}}
	service := NewClassScheduleService(
		repo,
		assignmentReaderStub{
			"assign-1": {ID: "assign-1", DepartmentID: "cse", AcademicYearID: "ay-2024", YearOfStudy: 3},
			"assign-4": {ID: "assign-4", DepartmentID: "cse", AcademicYearID: "ay-2024", YearOfStudy: 4},
		},
		venueReaderStub{"venue-v": {ID: "venue-v", Active: true}, "venue-closed": {ID: "venue-closed"}},
		batches,
		NewHolidayResolver(holidays, nil, 0, nil),
		txProvider,
		NewMetricsService(),
		nil,
		zap.NewNop(),
		ClassScheduleConfig{MaxOccurrences: 104, LockTimeout: time.Second},
	)
	return &classScheduleFixture{service: service, repo: repo, holidays: holidays, mock: mock}
}

func command(day, start, end string) dto.ScheduleCommand {
	return dto.ScheduleCommand{AssignmentID: "assign-1", VenueID: "venue-v", Date: day, StartTime: start, EndTime: end}
}

func assertCountsBalance(t *testing.T, result *dto.ScheduleResult) {
	t.Helper()
	assert.Equal(t, result.CandidateCount, result.CreatedCount+result.SkippedHoliday+result.SkippedConflict+result.Failed)
	assert.Equal(t, result.SkippedHoliday+result.SkippedConflict+result.Failed, len(result.Skipped))
}

type classScheduleRepoStub struct {
	entries   []models.ScheduleEntry
	locks     []string
	failOn    map[string]error
	cancelErr error
	lastScope *sqlfilter.Filter
}

func (r *classScheduleRepoStub) seed(entries ...models.ScheduleEntry) {
	r.entries = append(r.entries, entries...)
}

func (r *classScheduleRepoStub) ListActiveByVenueDate(ctx context.Context, exec sqlx.ExtContext, venueID string, day time.Time) ([]models.ScheduleEntry, error) {
	var out []models.ScheduleEntry
	for _, entry := range r.entries {
		if entry.VenueID == venueID && models.SameDate(entry.ClassDate, day) && !entry.Cancelled {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *classScheduleRepoStub) FindByID(ctx context.Context, id string) (*models.ScheduleEntry, error) {
	for _, entry := range r.entries {
		if entry.ID == id {
			copied := entry
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *classScheduleRepoStub) LockVenueDate(ctx context.Context, exec sqlx.ExtContext, venueID string, day time.Time, timeout time.Duration) error {
	r.locks = append(r.locks, venueID+"|"+day.Format(models.DateLayout))
	return nil
}

func (r *classScheduleRepoStub) Create(ctx context.Context, exec sqlx.ExtContext, entry *models.ScheduleEntry) error {
	if err := r.failOn[entry.ClassDate.Format(models.DateLayout)]; err != nil {
		return err
	}
	entry.ID = uuidString(len(r.entries) + 1)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *classScheduleRepoStub) Update(ctx context.Context, exec sqlx.ExtContext, entry *models.ScheduleEntry) error {
	for i := range r.entries {
		if r.entries[i].ID == entry.ID {
			r.entries[i] = *entry
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *classScheduleRepoStub) SetCancelled(ctx context.Context, id string, cancelled bool) error {
	if r.cancelErr != nil {
		return r.cancelErr
	}
	for i := range r.entries {
		if r.entries[i].ID == id {
			r.entries[i].Cancelled = cancelled
		}
	}
	return nil
}

func (r *classScheduleRepoStub) Delete(ctx context.Context, id string) error {
	for i := range r.entries {
		if r.entries[i].ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *classScheduleRepoStub) List(ctx context.Context, filter models.ScheduleEntryFilter, scope *sqlfilter.Filter) ([]models.ScheduleEntryDetail, int, error) {
	r.lastScope = scope
	return nil, 0, nil
}

type assignmentReaderStub map[string]models.SubjectAssignment

func (s assignmentReaderStub) FindByID(ctx context.Context, id string) (*models.SubjectAssignment, error) {
	if assignment, ok := s[id]; ok {
		return &assignment, nil
	}
	return nil, sql.ErrNoRows
}

type venueReaderStub map[string]models.Venue

func (s venueReaderStub) FindByID(ctx context.Context, id string) (*models.Venue, error) {
	if venue, ok := s[id]; ok {
		return &venue, nil
	}
	return nil, sql.ErrNoRows
}

type batchListerStub struct {
	batches []models.Batch
}

func (s batchListerStub) ListActive(ctx context.Context, departmentID string) ([]models.Batch, error) {
	return s.batches, nil
}

type txProviderMock struct {
	db   *sqlx.DB
	mock sqlmock.Sqlmock
}

func newTxProviderMock(t *testing.T) (txProvider, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { db.Close() })
	return &txProviderMock{db: sqlxdb, mock: mock}, mock
}

func (t *txProviderMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return t.db.BeginTxx(ctx, opts)
}

func uuidString(v int) string {
	return fmt.Sprintf("entry-new-%d", v)
}
