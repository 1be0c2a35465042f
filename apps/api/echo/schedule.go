package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dev-mario/raspored/core"
	"github.com/dev-mario/raspored/core/breaks"
	"github.com/dev-mario/raspored/core/calendar"
	"github.com/dev-mario/raspored/core/schedule"
)

// Resolution statuses reported by the day endpoint.
const (
	statusActive  = "active"
	statusOnBreak = "break"
	statusNone    = "none"
)

type (
	scheduleApi struct {
		svc  *schedule.Service
		conf *core.Config
	}

	// resolutionResponse is the informational payload of GET /schedule/day/:date.
	// A day without a timetable is a regular answer, never a 404.
	resolutionResponse struct {
		Date    string              `json:"date"`
		Week    calendar.WeekParity `json:"week"`
		Day     calendar.Weekday    `json:"day"`
		Status  string              `json:"status"`
		Slots   []schedule.Slot     `json:"slots,omitempty"`
		Break   *breaks.Break       `json:"break,omitempty"`
		Message string              `json:"message,omitempty"`
	}
)

func registerScheduleAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, svc *schedule.Service, conf *core.Config) {
	api := scheduleApi{svc: svc, conf: conf}

	sg := g.Group("/schedule")
	sg.POST("", api.timetableCreate, jwt, admin)
	sg.GET("", api.timetableQuery)
	sg.GET("/day/:date", api.resolveDay)
	sg.GET("/occurrences/:classID", api.occurrences)
	sg.GET("/:week/:day", api.timetableByDay)
	sg.DELETE("/:id", api.timetableDestroy, jwt, admin)
}

func (api *scheduleApi) timetableCreate(ctx echo.Context) error {
	data := new(schedule.NewTimetable)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := ctx.Validate(data); err != nil {
		return err
	}

	tt, err := api.svc.Create(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, tt)
}

func (api *scheduleApi) timetableQuery(ctx echo.Context) error {
	tts, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tts)
}

func (api *scheduleApi) timetableByDay(ctx echo.Context) error {
	week, err := calendar.ParseWeekParity(ctx.Param("week"))
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "week", Error: err.Error()})
	}
	day, err := calendar.ParseWeekday(ctx.Param("day"))
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "day", Error: err.Error()})
	}

	tt, err := api.svc.GetByDay(ctx.Request().Context(), week, day)
	if err != nil {
		if err == schedule.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, tt)
}

func (api *scheduleApi) resolveDay(ctx echo.Context) error {
	date, err := bindDateParam(ctx, "date")
	if err != nil {
		return err
	}

	res, err := api.svc.Resolve(ctx.Request().Context(), date)
	if err != nil {
		return err
	}

	resp := resolutionResponse{
		Date: date.Format(dateLayout),
		Week: calendar.WeekParityOf(date),
		Day:  calendar.WeekdayOf(date),
	}
	switch {
	case res.Active():
		resp.Status = statusActive
		resp.Slots = res.Slots
	case res.OnBreak():
		resp.Status = statusOnBreak
		brk := res.Break
		resp.Break = &brk
	default:
		resp.Status = statusNone
		resp.Message = "nema rasporeda za ovaj dan"
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *scheduleApi) occurrences(ctx echo.Context) error {
	from, err := bindDateQuery(ctx, "from", calendar.Midnight(timeNow()))
	if err != nil {
		return err
	}

	days := 0 // 0 falls back to the configured horizon
	if raw := ctx.QueryParam("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days < 0 {
			return core.NewValidationError(nil, core.FieldError{Field: "days", Error: "must be a non-negative integer"})
		}
	}

	occs, err := api.svc.ProjectOccurrences(ctx.Request().Context(), ctx.Param("classID"), from, days)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, occs)
}

func (api *scheduleApi) timetableDestroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if err == schedule.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
