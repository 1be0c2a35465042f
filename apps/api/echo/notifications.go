package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dev-mario/raspored/core/notification"
)

type (
	notificationApi struct {
		svc *notification.Service
	}

	// activeNotificationResponse is informational: a day without an active
	// notice answers with active=false, never a 404.
	activeNotificationResponse struct {
		Active       bool                       `json:"active"`
		Notification *notification.Notification `json:"notification,omitempty"`
	}
)

func registerNotificationAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, svc *notification.Service) {
	api := notificationApi{svc: svc}

	ng := g.Group("/notifications")
	ng.POST("", api.notificationCreate, jwt, admin)
	ng.GET("/all", api.notificationQuery)
	ng.GET("/day/:date", api.notificationActive)
	ng.GET("/id/:id", api.notificationRetrieve)
	ng.PUT("/id/:id", api.notificationUpdate, jwt, admin)
	ng.DELETE("/id/:id", api.notificationDestroy, jwt, admin)
}

func (api *notificationApi) notificationCreate(ctx echo.Context) error {
	data := new(notification.NewNotification)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := ctx.Validate(data); err != nil {
		return err
	}

	ntf, err := api.svc.Create(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, ntf)
}

func (api *notificationApi) notificationQuery(ctx echo.Context) error {
	ntfs, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ntfs)
}

func (api *notificationApi) notificationActive(ctx echo.Context) error {
	date, err := bindDateParam(ctx, "date")
	if err != nil {
		return err
	}

	ntf, err := api.svc.FindActive(ctx.Request().Context(), date)
	if err != nil {
		if err == notification.ErrNotFound {
			return ctx.JSON(http.StatusOK, activeNotificationResponse{Active: false})
		}
		return err
	}
	return ctx.JSON(http.StatusOK, activeNotificationResponse{Active: true, Notification: &ntf})
}

func (api *notificationApi) notificationRetrieve(ctx echo.Context) error {
	ntf, err := api.svc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if err == notification.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, ntf)
}

func (api *notificationApi) notificationUpdate(ctx echo.Context) error {
	data := new(notification.UpdateNotification)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := ctx.Validate(data); err != nil {
		return err
	}

	ntf, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), *data)
	if err != nil {
		if err == notification.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, ntf)
}

func (api *notificationApi) notificationDestroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if err == notification.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
