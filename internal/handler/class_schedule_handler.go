package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-schedule-api/internal/dto"
	"github.com/noah-isme/college-schedule-api/internal/models"
	appErrors "github.com/noah-isme/college-schedule-api/pkg/errors"
	"github.com/noah-isme/college-schedule-api/pkg/response"
)

type classScheduleService interface {
	Schedule(ctx context.Context, scope models.AdminScope, academicYear models.AcademicYearContext, req dto.ScheduleCommand) (*dto.ScheduleResult, error)
	Update(ctx context.Context, scope models.AdminScope, id string, req dto.ScheduleCommand) (*dto.ScheduleResult, error)
	ToggleCancel(ctx context.Context, scope models.AdminScope, id string) (*models.ScheduleEntry, error)
	Delete(ctx context.Context, scope models.AdminScope, id string) error
	List(ctx context.Context, scope models.AdminScope, filter models.ScheduleEntryFilter) ([]models.ScheduleEntryDetail, *models.Pagination, error)
	CheckAvailability(ctx context.Context, venueID string, day time.Time, window models.Window, excludeID string) (*dto.AvailabilityResult, error)
}

type academicYearReader interface {
	FindCurrent(ctx context.Context) (*models.AcademicYear, error)
	FindByID(ctx context.Context, id string) (*models.AcademicYear, error)
}

// ClassScheduleHandler exposes class scheduling endpoints.
type ClassScheduleHandler struct {
	service classScheduleService
	years   academicYearReader
}

// NewClassScheduleHandler constructs the handler.
func NewClassScheduleHandler(svc classScheduleService, years academicYearReader) *ClassScheduleHandler {
	return &ClassScheduleHandler{service: svc, years: years}
}

// Schedule godoc
// @Summary Schedule a class (single or weekly recurring)
// @Description Holiday dates are skipped unless skip_holidays is set. Single requests fail with 409 on a venue conflict; recurring requests report conflicts per date. An edit_id edits that entry instead.
// @Tags ClassSchedules
// @Accept json
// @Produce json
// @Param academic_year_id query string false "Academic year (defaults to the current one)"
// @Param payload body dto.ScheduleCommand true "Scheduling command"
// @Success 201 {object} response.Envelope
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /class-schedules [post]
func (h *ClassScheduleHandler) Schedule(c *gin.Context) {
	scope, err := scopeFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.ScheduleCommand
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	year, err := h.academicYear(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.Schedule(c.Request.Context(), scope, year, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusOK
	if result.CreatedCount > 0 {
		status = http.StatusCreated
	}
	response.JSON(c, status, result, nil)
}

// List godoc
// @Summary List class schedule entries
// @Tags ClassSchedules
// @Produce json
// @Param venue_id query string false "Venue"
// @Param assignment_id query string false "Subject assignment"
// @Param department_id query string false "Department"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param include_cancelled query bool false "Include cancelled entries"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /class-schedules [get]
func (h *ClassScheduleHandler) List(c *gin.Context) {
	scope, err := scopeFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var query dto.ScheduleListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	from, err := optionalDate(query.From, "from")
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := optionalDate(query.To, "to")
	if err != nil {
		response.Error(c, err)
		return
	}

	entries, pagination, err := h.service.List(c.Request.Context(), scope, models.ScheduleEntryFilter{
		VenueID:          query.VenueID,
		AssignmentID:     query.AssignmentID,
		DepartmentID:     query.DepartmentID,
		From:             from,
		To:               to,
		IncludeCancelled: query.IncludeCancelled,
		Page:             query.Page,
		PageSize:         query.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, pagination)
}

// Availability godoc
// @Summary Check whether a venue window is free
// @Tags ClassSchedules
// @Produce json
// @Param venue_id query string true "Venue"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param start_time query string true "Start (HH:MM)"
// @Param end_time query string true "End (HH:MM)"
// @Param exclude_id query string false "Entry to ignore, for edits"
// @Success 200 {object} response.Envelope
// @Router /class-schedules/availability [get]
func (h *ClassScheduleHandler) Availability(c *gin.Context) {
	var query dto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	day, err := requiredDate(query.Date, "date")
	if err != nil {
		response.Error(c, err)
		return
	}
	start, err := models.ParseTimeOfDay(query.StartTime)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "start_time must be HH:MM"))
		return
	}
	end, err := models.ParseTimeOfDay(query.EndTime)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "end_time must be HH:MM"))
		return
	}

	result, err := h.service.CheckAvailability(c.Request.Context(), query.VenueID, day, models.Window{Start: start, End: end}, query.ExcludeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Update godoc
// @Summary Edit a class schedule entry
// @Tags ClassSchedules
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param payload body dto.ScheduleCommand true "New venue, date, window and topic"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /class-schedules/{id} [put]
func (h *ClassScheduleHandler) Update(c *gin.Context) {
	scope, err := scopeFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.ScheduleCommand
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	result, err := h.service.Update(c.Request.Context(), scope, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ToggleCancel godoc
// @Summary Cancel or restore a class schedule entry
// @Tags ClassSchedules
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /class-schedules/{id}/cancel [patch]
func (h *ClassScheduleHandler) ToggleCancel(c *gin.Context) {
	scope, err := scopeFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	entry, err := h.service.ToggleCancel(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Delete godoc
// @Summary Permanently delete a class schedule entry
// @Tags ClassSchedules
// @Param id path string true "Entry ID"
// @Success 204
// @Router /class-schedules/{id} [delete]
func (h *ClassScheduleHandler) Delete(c *gin.Context) {
	scope, err := scopeFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), scope, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// academicYear resolves the academic_year_id override or the current year, once per request.
func (h *ClassScheduleHandler) academicYear(c *gin.Context) (models.AcademicYearContext, error) {
	ctx := c.Request.Context()
	var (
		year *models.AcademicYear
		err  error
	)
	if id := strings.TrimSpace(c.Query("academic_year_id")); id != "" {
		year, err = h.years.FindByID(ctx, id)
	} else {
		year, err = h.years.FindCurrent(ctx)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AcademicYearContext{}, appErrors.Clone(appErrors.ErrNotFound, "academic year not found")
		}
		return models.AcademicYearContext{}, appErrors.Storage(err, "failed to load academic year")
	}
	return year.Context(), nil
}
