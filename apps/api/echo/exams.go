package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dev-mario/raspored/core/exam"
)

type examApi struct {
	svc *exam.Service
}

func registerExamAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, svc *exam.Service) {
	api := examApi{svc: svc}

	eg := g.Group("/exams")
	eg.POST("", api.examCreate, jwt, admin)
	eg.GET("/:date", api.examQueryByDate)
	eg.PUT("/:id", api.examUpdate, jwt, admin)
	eg.DELETE("/:id", api.examDestroy, jwt, admin)
}

func (api *examApi) examCreate(ctx echo.Context) error {
	data := new(exam.NewExam)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := ctx.Validate(data); err != nil {
		return err
	}

	exm, err := api.svc.Create(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, exm)
}

func (api *examApi) examQueryByDate(ctx echo.Context) error {
	date, err := bindDateParam(ctx, "date")
	if err != nil {
		return err
	}

	exams, err := api.svc.FindByDate(ctx.Request().Context(), date)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, exams)
}

func (api *examApi) examUpdate(ctx echo.Context) error {
	data := new(exam.UpdateExam)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := ctx.Validate(data); err != nil {
		return err
	}

	exm, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), *data)
	if err != nil {
		if err == exam.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, exm)
}

func (api *examApi) examDestroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if err == exam.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
