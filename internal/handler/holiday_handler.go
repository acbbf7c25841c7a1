package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-schedule-api/internal/dto"
	"github.com/noah-isme/college-schedule-api/internal/models"
	"github.com/noah-isme/college-schedule-api/pkg/response"
)

type holidayService interface {
	List(ctx context.Context, filter models.HolidayFilter) ([]models.Holiday, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Holiday, error)
	Create(ctx context.Context, req dto.HolidayRequest) (*models.Holiday, error)
	Update(ctx context.Context, id string, req dto.HolidayRequest) (*models.Holiday, error)
	Delete(ctx context.Context, id string) error
	Check(ctx context.Context, day time.Time, departmentID, batchID string) (*dto.HolidayCheckResult, error)
}

// HolidayHandler exposes the holiday calendar.
type HolidayHandler struct {
	service holidayService
}

// NewHolidayHandler constructs the handler.
func NewHolidayHandler(svc holidayService) *HolidayHandler {
	return &HolidayHandler{service: svc}
}

// List godoc
// @Summary List holidays
// @Tags Holidays
// @Produce json
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param department_id query string false "Only holidays applying to this department"
// @Param recurring query bool false "Filter by recurrence"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /holidays [get]
func (h *HolidayHandler) List(c *gin.Context) {
	var query dto.HolidayListQuery
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

	holidays, pagination, err := h.service.List(c.Request.Context(), models.HolidayFilter{
		From:         from,
		To:           to,
		DepartmentID: strings.TrimSpace(query.DepartmentID),
		Recurring:    query.Recurring,
		Page:         query.Page,
		PageSize:     query.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, holidays, pagination)
}

// Check godoc
// @Summary Check whether a date is a holiday
// @Tags Holidays
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param department_id query string false "Department"
// @Param batch_id query string false "Batch"
// @Success 200 {object} response.Envelope
// @Router /holidays/check [get]
func (h *HolidayHandler) Check(c *gin.Context) {
	day, err := requiredDate(c.Query("date"), "date")
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.Check(c.Request.Context(), day, strings.TrimSpace(c.Query("department_id")), strings.TrimSpace(c.Query("batch_id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Get godoc
// @Summary Get a holiday
// @Tags Holidays
// @Produce json
// @Param id path string true "Holiday ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /holidays/{id} [get]
func (h *HolidayHandler) Get(c *gin.Context) {
	holiday, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, holiday, nil)
}

// Create godoc
// @Summary Create a holiday
// @Tags Holidays
// @Accept json
// @Produce json
// @Param payload body dto.HolidayRequest true "Holiday"
// @Success 201 {object} response.Envelope
// @Router /holidays [post]
func (h *HolidayHandler) Create(c *gin.Context) {
	var req dto.HolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	holiday, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, holiday)
}

// Update godoc
// @Summary Replace a holiday
// @Tags Holidays
// @Accept json
// @Produce json
// @Param id path string true "Holiday ID"
// @Param payload body dto.HolidayRequest true "Holiday"
// @Success 200 {object} response.Envelope
// @Router /holidays/{id} [put]
func (h *HolidayHandler) Update(c *gin.Context) {
	var req dto.HolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	holiday, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, holiday, nil)
}

// Delete godoc
// @Summary Delete a holiday
// @Tags Holidays
// @Param id path string true "Holiday ID"
// @Success 204
// @Router /holidays/{id} [delete]
func (h *HolidayHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
