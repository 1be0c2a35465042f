package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dev-mario/raspored/core/subscriber"
)

type (
	subscriberApi struct {
		svc *subscriber.Service
	}

	accessLinkRequest struct {
		Email string `json:"email" validate:"required,email"`
	}
)

func registerSubscriberAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, svc *subscriber.Service) {
	api := subscriberApi{svc: svc}

	sg := g.Group("/subscribers")
	sg.POST("", api.subscriberRegister)
	sg.POST("/admin", api.subscriberSendAccessLink)
	sg.GET("/me/:accessKey", api.subscriberRetrieve)
	sg.PUT("/me/:accessKey", api.subscriberUpdate)
	sg.DELETE("/me/:accessKey", api.subscriberDestroy)
}

func (api *subscriberApi) subscriberRegister(ctx echo.Context) error {
	data := new(subscriber.NewSubscriber)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := ctx.Validate(data); err != nil {
		return err
	}

	sub, err := api.svc.Register(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, sub)
}

// subscriberSendAccessLink mails the subscription-management link to an
// existing subscriber. The answer does not reveal whether the email exists.
func (api *subscriberApi) subscriberSendAccessLink(ctx echo.Context) error {
	data := new(accessLinkRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := ctx.Validate(data); err != nil {
		return err
	}

	if err := api.svc.SendAccessLink(ctx.Request().Context(), data.Email); err != nil && err != subscriber.ErrNotFound {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *subscriberApi) subscriberRetrieve(ctx echo.Context) error {
	sub, err := api.svc.GetByKey(ctx.Request().Context(), ctx.Param("accessKey"))
	if err != nil {
		if err == subscriber.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *subscriberApi) subscriberUpdate(ctx echo.Context) error {
	data := new(subscriber.UpdateSubscriber)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := ctx.Validate(data); err != nil {
		return err
	}

	sub, err := api.svc.UpdateByKey(ctx.Request().Context(), ctx.Param("accessKey"), *data)
	if err != nil {
		if err == subscriber.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *subscriberApi) subscriberDestroy(ctx echo.Context) error {
	if err := api.svc.DeleteByKey(ctx.Request().Context(), ctx.Param("accessKey")); err != nil {
		if err == subscriber.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
