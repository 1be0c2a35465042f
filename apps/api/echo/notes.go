package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dev-mario/raspored/core/note"
)

type noteApi struct {
	svc *note.Service
}

func registerNoteAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, svc *note.Service) {
	api := noteApi{svc: svc}

	ng := g.Group("/notes")
	ng.POST("", api.noteCreate, jwt, admin)
	ng.GET("/:date", api.noteQueryByDate)
	ng.PUT("/:id", api.noteUpdate, jwt, admin)
	ng.DELETE("/:id", api.noteDestroy, jwt, admin)
}

func (api *noteApi) noteCreate(ctx echo.Context) error {
	data := new(note.NewNote)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := ctx.Validate(data); err != nil {
		return err
	}

	nte, err := api.svc.Create(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, nte)
}

func (api *noteApi) noteQueryByDate(ctx echo.Context) error {
	date, err := bindDateParam(ctx, "date")
	if err != nil {
		return err
	}

	notes, err := api.svc.FindByDate(ctx.Request().Context(), date)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, notes)
}

func (api *noteApi) noteUpdate(ctx echo.Context) error {
	data := new(note.UpdateNote)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := ctx.Validate(data); err != nil {
		return err
	}

	nte, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), *data)
	if err != nil {
		if err == note.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, nte)
}

func (api *noteApi) noteDestroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if err == note.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
