package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-schedule-api/internal/dto"
	"github.com/noah-isme/college-schedule-api/internal/models"
	"github.com/noah-isme/college-schedule-api/pkg/database"
	appErrors "github.com/noah-isme/college-schedule-api/pkg/errors"
)

type holidayRepository interface {
	List(ctx context.Context, filter models.HolidayFilter) ([]models.Holiday, int, error)
	GetByID(ctx context.Context, id string) (*models.Holiday, error)
	Create(ctx context.Context, holiday *models.Holiday) error
	Update(ctx context.Context, holiday *models.Holiday) error
	Delete(ctx context.Context, id string) error
}

type holidayResolver interface {
	Resolve(ctx context.Context, day time.Time, departmentID, batchID string) (*models.HolidayMatch, error)
}

type cacheInvalidator interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, pattern string) error
}

// HolidayService administers the holiday calendar.
type HolidayService struct {
	repo      holidayRepository
	resolver  holidayResolver
	cache     cacheInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewHolidayService constructs a holiday service. cache may be nil.
func NewHolidayService(repo holidayRepository, resolver holidayResolver, cache cacheInvalidator, validate *validator.Validate, logger *zap.Logger) *HolidayService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	registerScheduleValidations(validate)
	return &HolidayService{repo: repo, resolver: resolver, cache: cache, validator: validate, logger: logger}
}

// List returns holidays with pagination metadata.
func (s *HolidayService) List(ctx context.Context, filter models.HolidayFilter) ([]models.Holiday, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 200 {
		filter.PageSize = 50
	}
	holidays, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Storage(err, "failed to list holidays")
	}
	return holidays, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// Get returns a holiday by id.
func (s *HolidayService) Get(ctx context.Context, id string) (*models.Holiday, error) {
	holiday, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "holiday not found")
		}
		return nil, appErrors.Storage(err, "failed to load holiday")
	}
	return holiday, nil
}

// Create registers a holiday.
func (s *HolidayService) Create(ctx context.Context, req dto.HolidayRequest) (*models.Holiday, error) {
	holiday, err := s.buildHoliday(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, holiday); err != nil {
		return nil, s.wrapWriteError(err, "failed to create holiday")
	}
	s.invalidate(ctx)
	s.logger.Info("holiday created", zap.String("holiday_id", holiday.ID), zap.String("name", holiday.Name))
	return holiday, nil
}

// Update replaces a holiday's attributes.
func (s *HolidayService) Update(ctx context.Context, id string, req dto.HolidayRequest) (*models.Holiday, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	holiday, err := s.buildHoliday(req)
	if err != nil {
		return nil, err
	}
	holiday.ID = existing.ID
	holiday.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, holiday); err != nil {
		return nil, s.wrapWriteError(err, "failed to update holiday")
	}
	s.invalidate(ctx)
	return holiday, nil
}

// Delete removes a holiday.
func (s *HolidayService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Storage(err, "failed to delete holiday")
	}
	s.invalidate(ctx)
	return nil
}

// Check reports whether day is a holiday for departmentID and batchID. Empty ids mean "any".
func (s *HolidayService) Check(ctx context.Context, day time.Time, departmentID, batchID string) (*dto.HolidayCheckResult, error) {
	match, err := s.resolver.Resolve(ctx, day, strings.TrimSpace(departmentID), strings.TrimSpace(batchID))
	if err != nil {
		return nil, err
	}
	return &dto.HolidayCheckResult{Date: day.Format(models.DateLayout), Holiday: match != nil, Match: match}, nil
}

func (s *HolidayService) buildHoliday(req dto.HolidayRequest) (*models.Holiday, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid holiday payload")
	}
	if req.RecurringYear != nil && !req.IsRecurring {
		return nil, appErrors.Clone(appErrors.ErrValidation, "recurring_year requires is_recurring")
	}
	day, err := parseDate(req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	return &models.Holiday{
		Name:                  strings.TrimSpace(req.Name),
		Date:                  models.DateOnly(day),
		Description:           strings.TrimSpace(req.Description),
		IsRecurring:           req.IsRecurring,
		RecurringYear:         req.RecurringYear,
		ApplicableDepartments: uniqueTrimmed(req.ApplicableDepartments),
		ApplicableBatches:     uniqueTrimmed(req.ApplicableBatches),
	}, nil
}

func (s *HolidayService) wrapWriteError(err error, message string) error {
	if database.IsCheckViolation(err) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "holiday violates calendar rules")
	}
	return appErrors.Storage(err, message)
}

func (s *HolidayService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, HolidayGenerationKey, time.Now().UnixNano(), holidayGenerationTTL); err != nil {
		s.logger.Warn("holiday cache generation not bumped", zap.Error(err))
	}
	if err := s.cache.Invalidate(ctx, HolidayCachePattern); err != nil {
		s.logger.Warn("holiday cache not invalidated", zap.Error(err))
	}
}

// uniqueTrimmed trims, drops blanks and de-duplicates, returning nil for an empty list.
func uniqueTrimmed(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}
