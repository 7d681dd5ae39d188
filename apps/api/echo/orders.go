package echoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shuledash/shuledash/core/orders"
)

type orderApi struct {
	svc *orders.Service
}

func registerOrderAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *orders.Service) {
	api := orderApi{svc: svc}

	og := g.Group("/orders", jwt)
	og.GET("", api.list)
	og.DELETE("/:id", api.destroy)
}

func (api *orderApi) list(ctx echo.Context) error {
	kind := strings.ToUpper(ctx.QueryParam("kind"))
	if kind == "" {
		kind = orders.KindOrder
	}
	if kind != orders.KindOrder && kind != orders.KindQuote {
		return echo.NewHTTPError(http.StatusBadRequest, "kind must be ORDER or QUOTE")
	}

	list, err := api.svc.List(ctx.Request().Context(), kind)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, list)
}

func (api *orderApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
