package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dev-mario/raspored/core/change"
	"github.com/dev-mario/raspored/core/schedule"
)

type changeApi struct {
	svc      *change.Service
	schedSvc *schedule.Service
}

func registerChangeAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, svc *change.Service, schedSvc *schedule.Service) {
	api := changeApi{svc: svc, schedSvc: schedSvc}

	cg := g.Group("/changes")
	cg.POST("", api.changeCreate, jwt, admin)
	cg.GET("/:date", api.changeQueryMerged)
	cg.PUT("/:id", api.changeUpdate, jwt, admin)
	cg.DELETE("/:id", api.changeDestroy, jwt, admin)
}

func (api *changeApi) changeCreate(ctx echo.Context) error {
	data := new(change.NewChange)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := ctx.Validate(data); err != nil {
		return err
	}

	chg, err := api.svc.Create(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, chg)
}

// changeQueryMerged returns the day's changes reconciled against the regular
// timetable: substitute names resolved, cancellations annotated with the slot
// they cancel.
func (api *changeApi) changeQueryMerged(ctx echo.Context) error {
	date, err := bindDateParam(ctx, "date")
	if err != nil {
		return err
	}

	merged, err := api.schedSvc.MergeChanges(ctx.Request().Context(), date)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, merged)
}

func (api *changeApi) changeUpdate(ctx echo.Context) error {
	data := new(change.UpdateChange)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := ctx.Validate(data); err != nil {
		return err
	}

	chg, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), *data)
	if err != nil {
		if err == change.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, chg)
}

func (api *changeApi) changeDestroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if err == change.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
