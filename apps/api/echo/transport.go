package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shuledash/shuledash/core/transport"
)

type transportApi struct {
	svc *transport.Service
}

func registerTransportAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *transport.Service) {
	api := transportApi{svc: svc}

	tg := g.Group("/transport", jwt)
	tg.GET("/routes", api.routes)
	tg.GET("/registrations", api.registrations)
	tg.POST("/registrations", api.register)
	tg.PUT("/registrations/:id", api.update)
}

func (api *transportApi) routes(ctx echo.Context) error {
	routes, err := api.svc.Routes(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, routes)
}

func (api *transportApi) registrations(ctx echo.Context) error {
	regs, err := api.svc.Registrations(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, regs)
}

func (api *transportApi) register(ctx echo.Context) error {
	var edit transport.RegistrationEdit
	if err := ctx.Bind(&edit); err != nil {
		return errors.Wrap(err, "binding to RegistrationEdit")
	}

	reg, err := api.svc.Register(ctx.Request().Context(), edit)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, reg)
}

func (api *transportApi) update(ctx echo.Context) error {
	var edit transport.RegistrationEdit
	if err := ctx.Bind(&edit); err != nil {
		return errors.Wrap(err, "binding to RegistrationEdit")
	}

	reg, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), edit)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, reg)
}
