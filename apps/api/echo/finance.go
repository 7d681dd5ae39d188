package echoapi

import (
	"net/http"
	"net/mail"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shuledash/shuledash/core/finance"
)

type financeApi struct {
	svc *finance.Service
}

func registerFinanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *finance.Service) {
	api := financeApi{svc: svc}

	fg := g.Group("/finance", jwt)
	fg.GET("/statements/:studentID", api.statement)
	fg.POST("/statements/:studentID/email", api.emailStatement)
}

func (api *financeApi) statement(ctx echo.Context) error {
	st, err := api.svc.Statement(ctx.Request().Context(), ctx.Param("studentID"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, st)
}

type emailStatementRequest struct {
	StudentName string `json:"studentName"`
	To          string `json:"to"`
}

func (api *financeApi) emailStatement(ctx echo.Context) error {
	var data emailStatementRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to emailStatementRequest")
	}
	addr, err := mail.ParseAddress(data.To)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid recipient address")
	}

	err = api.svc.EmailStatement(ctx.Request().Context(), ctx.Param("studentID"), data.StudentName, *addr)
	if err != nil {
		return err
	}
	return ctx.NoContent(http.StatusAccepted)
}
