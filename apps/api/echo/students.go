package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shuledash/shuledash/core/student"
)

type studentApi struct {
	svc *student.Service
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *student.Service) {
	api := studentApi{svc: svc}

	sg := g.Group("/students", jwt)
	sg.GET("", api.query)

	dg := sg.Group("/:id")
	dg.PUT("/activate", api.activate)
	dg.PUT("/deactivate", api.deactivate)
	dg.DELETE("", api.destroy)
}

type studentRow struct {
	student.Student
	Photo student.Photo `json:"photo"`
}

func (api *studentApi) query(ctx echo.Context) error {
	filter := student.QueryFilter{
		Search:  ctx.QueryParam("search"),
		ClassID: ctx.QueryParam("classId"),
	}
	if v := ctx.QueryParam("isActive"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "isActive must be a boolean")
		}
		filter.IsActive = &active
	}
	if v := ctx.QueryParam("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "page must be a number")
		}
		filter.Page = page
	}
	if v := ctx.QueryParam("pageSize"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "pageSize must be a number")
		}
		filter.PageSize = size
	}

	students, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return err
	}

	rows := make([]studentRow, 0, len(students))
	for _, s := range students {
		rows = append(rows, studentRow{Student: s, Photo: api.svc.PhotoFor(s)})
	}
	return ctx.JSON(http.StatusOK, rows)
}

func (api *studentApi) activate(ctx echo.Context) error {
	if err := api.svc.Activate(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) deactivate(ctx echo.Context) error {
	if err := api.svc.Deactivate(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
