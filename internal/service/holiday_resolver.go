package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/college-schedule-api/internal/models"
	appErrors "github.com/noah-isme/college-schedule-api/pkg/errors"
)

const (
	holidayCacheNamespace = "holidays"
	// HolidayCachePattern matches every cached holiday calendar.
	HolidayCachePattern = holidayCacheNamespace + ":*"
	// HolidayGenerationKey holds the calendar generation. It sits outside HolidayCachePattern
	// so an invalidation never resets it.
	HolidayGenerationKey = "holiday-generation"
	holidayGenerationTTL = 30 * 24 * time.Hour
)

type holidayRangeReader interface {
	ListForRange(ctx context.Context, from, to time.Time) ([]models.Holiday, error)
}

type holidayCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// HolidayCalendar is an in-memory, ordered view of the holidays relevant to a date range.
// Lookups return the first match by holiday_date, name and id.
type HolidayCalendar struct {
	holidays []models.Holiday
}

// NewHolidayCalendar builds a calendar, sorting holidays into lookup order.
func NewHolidayCalendar(holidays []models.Holiday) *HolidayCalendar {
	sorted := make([]models.Holiday, len(holidays))
	copy(sorted, holidays)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return &HolidayCalendar{holidays: sorted}
}

// Len returns the number of holidays in the calendar.
func (c *HolidayCalendar) Len() int {
	if c == nil {
		return 0
	}
	return len(c.holidays)
}

// Lookup returns the holiday on day that applies to departmentID and batchID. Empty
// arguments mean "any".
func (c *HolidayCalendar) Lookup(day time.Time, departmentID, batchID string) (*models.HolidayMatch, bool) {
	if c == nil {
		return nil, false
	}
	for _, holiday := range c.holidays {
		if holiday.OccursOn(day) && holiday.AppliesTo(departmentID, batchID) {
			return newHolidayMatch(holiday, day, batchID), true
		}
	}
	return nil, false
}

// LookupAny treats day as a holiday when it applies to any of batchIDs. With no batches only
// holidays that name no batch can match.
func (c *HolidayCalendar) LookupAny(day time.Time, departmentID string, batchIDs []string) (*models.HolidayMatch, bool) {
	if c == nil {
		return nil, false
	}
	for _, holiday := range c.holidays {
		if !holiday.OccursOn(day) {
			continue
		}
		if len(batchIDs) == 0 {
			if len(holiday.ApplicableBatches) == 0 && holiday.AppliesTo(departmentID, "") {
				return newHolidayMatch(holiday, day, ""), true
			}
			continue
		}
		for _, batchID := range batchIDs {
			if holiday.AppliesTo(departmentID, batchID) {
				return newHolidayMatch(holiday, day, batchID), true
			}
		}
	}
	return nil, false
}

func newHolidayMatch(holiday models.Holiday, day time.Time, batchID string) *models.HolidayMatch {
	return &models.HolidayMatch{
		HolidayID:   holiday.ID,
		Name:        holiday.Name,
		Description: holiday.Description,
		Date:        models.DateOnly(day),
		BatchID:     batchID,
	}
}

// HolidayResolver loads holiday calendars, through the redis cache when enabled.
type HolidayResolver struct {
	repo   holidayRangeReader
	cache  holidayCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewHolidayResolver constructs a resolver. cache may be nil.
func NewHolidayResolver(repo holidayRangeReader, cache holidayCache, ttl time.Duration, logger *zap.Logger) *HolidayResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HolidayResolver{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// Load returns the calendar covering [from, to]: one-off holidays in range plus every
// recurring holiday.
func (r *HolidayResolver) Load(ctx context.Context, from, to time.Time) (*HolidayCalendar, error) {
	from, to = models.DateOnly(from), models.DateOnly(to)
	if to.Before(from) {
		from, to = to, from
	}
	key := ""
	if r.cache != nil {
		if generation, ok := r.generation(ctx); ok {
			key = holidayRangeKey(generation, from, to)
			var cached []models.Holiday
			hit, err := r.cache.Get(ctx, key, &cached)
			if err == nil && hit {
				return NewHolidayCalendar(cached), nil
			}
		}
	}

	holidays, err := r.repo.ListForRange(ctx, from, to)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to load holidays")
	}
	// A mutation committed during the read bumps the generation, so this entry is never served.
	if key != "" {
		if err := r.cache.Set(ctx, key, holidays, r.ttl); err != nil {
			r.logger.Debug("holiday calendar not cached", zap.String("key", key), zap.Error(err))
		}
	}
	return NewHolidayCalendar(holidays), nil
}

// generation reads the current calendar generation. ok is false when the cache cannot
// answer, in which case the calendar is neither read from nor written to the cache.
func (r *HolidayResolver) generation(ctx context.Context) (int64, bool) {
	var generation int64
	hit, err := r.cache.Get(ctx, HolidayGenerationKey, &generation)
	if err != nil {
		return 0, false
	}
	if !hit {
		return 0, true
	}
	return generation, true
}

// Resolve answers a single-day holiday question.
func (r *HolidayResolver) Resolve(ctx context.Context, day time.Time, departmentID, batchID string) (*models.HolidayMatch, error) {
	calendar, err := r.Load(ctx, day, day)
	if err != nil {
		return nil, err
	}
	match, _ := calendar.Lookup(day, departmentID, batchID)
	return match, nil
}

func holidayRangeKey(generation int64, from, to time.Time) string {
	return fmt.Sprintf("%s:g%d:range:%s:%s", holidayCacheNamespace, generation, from.Format(models.DateLayout), to.Format(models.DateLayout))
}
