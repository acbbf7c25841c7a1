package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-schedule-api/internal/middleware"
	"github.com/noah-isme/college-schedule-api/internal/models"
	appErrors "github.com/noah-isme/college-schedule-api/pkg/errors"
)

func scopeFromContext(c *gin.Context) (models.AdminScope, error) {
	scope, ok := middleware.ScopeFrom(c)
	if !ok {
		return models.AdminScope{}, appErrors.ErrUnauthorized
	}
	return scope, nil
}

// optionalDate parses a YYYY-MM-DD query value; empty yields nil.
func optionalDate(raw, field string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	day, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, field+" must be YYYY-MM-DD")
	}
	return &day, nil
}

func requiredDate(raw, field string) (time.Time, error) {
	day, err := optionalDate(raw, field)
	if err != nil {
		return time.Time{}, err
	}
	if day == nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, field+" is required")
	}
	return *day, nil
}

func invalidPayload(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
}
