package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dev-mario/raspored/core/class"
)

type classApi struct {
	svc *class.Service
}

func registerClassAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, svc *class.Service) {
	api := classApi{svc: svc}

	cg := g.Group("/classes")
	cg.POST("", api.classCreate, jwt, admin)
	cg.GET("", api.classQuery)
	cg.GET("/:id", api.classRetrieve)
	cg.DELETE("/:id", api.classDestroy, jwt, admin)

	tg := g.Group("/teachers")
	tg.POST("", api.teacherCreate, jwt, admin)
	tg.GET("", api.teacherQuery)
	tg.GET("/:id", api.teacherRetrieve)
	tg.PUT("/:id", api.teacherUpdate, jwt, admin)
	tg.DELETE("/:id", api.teacherDestroy, jwt, admin)
}

func (api *classApi) classCreate(ctx echo.Context) error {
	data := new(class.NewClass)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := ctx.Validate(data); err != nil {
		return err
	}

	cls, err := api.svc.Create(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, cls)
}

func (api *classApi) classQuery(ctx echo.Context) error {
	classes, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *classApi) classRetrieve(ctx echo.Context) error {
	cls, err := api.svc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if err == class.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) classDestroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if err == class.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *classApi) teacherCreate(ctx echo.Context) error {
	data := new(class.NewTeacher)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := ctx.Validate(data); err != nil {
		return err
	}

	tch, err := api.svc.CreateTeacher(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, tch)
}

func (api *classApi) teacherQuery(ctx echo.Context) error {
	teachers, err := api.svc.QueryAllTeachers(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *classApi) teacherRetrieve(ctx echo.Context) error {
	tch, err := api.svc.GetTeacher(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if err == class.ErrTeacherNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, tch)
}

func (api *classApi) teacherUpdate(ctx echo.Context) error {
	data := new(class.UpdateTeacher)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := ctx.Validate(data); err != nil {
		return err
	}

	tch, err := api.svc.UpdateTeacher(ctx.Request().Context(), ctx.Param("id"), *data)
	if err != nil {
		if err == class.ErrTeacherNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, tch)
}

func (api *classApi) teacherDestroy(ctx echo.Context) error {
	if err := api.svc.DeleteTeacher(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if err == class.ErrTeacherNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
