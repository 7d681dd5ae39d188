package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shuledash/shuledash/core/marks"
)

type marksApi struct {
	svc *marks.Service
}

func registerMarksAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *marks.Service) {
	api := marksApi{svc: svc}

	mg := g.Group("/marks", jwt)
	mg.GET("", api.existing)
	mg.POST("", api.submit)
}

// existing loads the current marks of the requested students for one
// class/subject/exam scope. Students whose lookup failed are simply absent
// from the result.
func (api *marksApi) existing(ctx echo.Context) error {
	filter := marks.SheetFilter{
		ClassID:        ctx.QueryParam("classId"),
		SubjectID:      ctx.QueryParam("subjectActivityId"),
		ExamID:         ctx.QueryParam("examId"),
		Category:       ctx.QueryParam("category"),
		AcademicYearID: ctx.QueryParam("academicYearId"),
		TermID:         ctx.QueryParam("termId"),
	}
	studentIDs := ctx.QueryParams()["studentId"]
	if len(studentIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one studentId is required")
	}

	found, err := api.svc.Existing(ctx.Request().Context(), filter, studentIDs)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, found)
}

func (api *marksApi) submit(ctx echo.Context) error {
	var sheet marks.Sheet
	if err := ctx.Bind(&sheet); err != nil {
		return errors.Wrap(err, "binding to Sheet")
	}

	if err := api.svc.Submit(ctx.Request().Context(), sheet); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
