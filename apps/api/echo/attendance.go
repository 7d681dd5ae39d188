package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shuledash/shuledash/core/attendance"
)

type attendanceApi struct {
	svc *attendance.Service
}

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *attendance.Service) {
	api := attendanceApi{svc: svc}

	ag := g.Group("/attendance", jwt)
	ag.GET("", api.dayReport)
	ag.POST("", api.saveDay)
}

// dayReport returns the day's attendance aggregated by section and class,
// display-formatted (zero counts shown as dashes).
func (api *attendanceApi) dayReport(ctx echo.Context) error {
	filter := attendance.DayFilter{
		Date:           ctx.QueryParam("date"),
		AcademicYearID: ctx.QueryParam("academicYearId"),
		TermID:         ctx.QueryParam("termId"),
	}
	if filter.Date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}

	report, err := api.svc.LoadDay(ctx.Request().Context(), filter)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, report.View())
}

func (api *attendanceApi) saveDay(ctx echo.Context) error {
	var sheet attendance.DaySheet
	if err := ctx.Bind(&sheet); err != nil {
		return errors.Wrap(err, "binding to DaySheet")
	}

	if err := api.svc.SaveDay(ctx.Request().Context(), sheet); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
