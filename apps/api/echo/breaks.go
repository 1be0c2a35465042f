package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dev-mario/raspored/core/breaks"
)

type (
	breakApi struct {
		svc *breaks.Service
	}

	// activeBreakResponse is informational: a date outside any break period
	// answers with active=false, never a 404.
	activeBreakResponse struct {
		Active bool          `json:"active"`
		Break  *breaks.Break `json:"break,omitempty"`
	}
)

func registerBreakAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, svc *breaks.Service) {
	api := breakApi{svc: svc}

	bg := g.Group("/breaks")
	bg.POST("", api.breakCreate, jwt, admin)
	bg.GET("", api.breakQuery)
	bg.GET("/:date", api.breakActive)
	bg.DELETE("/:id", api.breakDestroy, jwt, admin)
}

func (api *breakApi) breakCreate(ctx echo.Context) error {
	data := new(breaks.NewBreak)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := ctx.Validate(data); err != nil {
		return err
	}

	brk, err := api.svc.Create(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, brk)
}

func (api *breakApi) breakQuery(ctx echo.Context) error {
	brks, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, brks)
}

func (api *breakApi) breakActive(ctx echo.Context) error {
	date, err := bindDateParam(ctx, "date")
	if err != nil {
		return err
	}

	brk, err := api.svc.FindActive(ctx.Request().Context(), date)
	if err != nil {
		if err == breaks.ErrNotFound {
			return ctx.JSON(http.StatusOK, activeBreakResponse{Active: false})
		}
		return err
	}
	return ctx.JSON(http.StatusOK, activeBreakResponse{Active: true, Break: &brk})
}

func (api *breakApi) breakDestroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if err == breaks.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
