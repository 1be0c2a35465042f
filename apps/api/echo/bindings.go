package echoapi

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dev-mario/raspored/core"
)

const dateLayout = "2006-01-02"

// timeNow is swapped out in tests.
var timeNow = time.Now

// bindDateParam parses a YYYY-MM-DD path parameter into a UTC midnight date.
func bindDateParam(ctx echo.Context, name string) (time.Time, error) {
	raw := ctx.Param(name)
	date, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, core.NewValidationError(nil, core.FieldError{Field: name, Error: "must be a date in YYYY-MM-DD format"})
	}
	return date, nil
}

// bindDateQuery parses an optional YYYY-MM-DD query parameter, falling back
// to def when absent.
func bindDateQuery(ctx echo.Context, name string, def time.Time) (time.Time, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	date, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, core.NewValidationError(nil, core.FieldError{Field: name, Error: "must be a date in YYYY-MM-DD format"})
	}
	return date, nil
}
