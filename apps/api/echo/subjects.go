package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shuledash/shuledash/core/subject"
)

type subjectApi struct {
	svc *subject.Service
}

func registerSubjectAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *subject.Service) {
	api := subjectApi{svc: svc}

	sg := g.Group("/subjects", jwt)
	sg.GET("", api.listGrouped)
	sg.PUT("/:classID", api.applyEdit)
}

func (api *subjectApi) listGrouped(ctx echo.Context) error {
	grouped, err := api.svc.ListGrouped(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grouped)
}

type subjectEdit struct {
	Existing []subject.AssignmentRef `json:"existing"`
	Edited   []subject.AssignmentRef `json:"edited"`
}

// applyEdit diffs the edited selection against the existing assignments and
// submits only the delta. A partial failure surfaces as a 207 with the
// succeeded and failed subject ids.
func (api *subjectApi) applyEdit(ctx echo.Context) error {
	var data subjectEdit
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to subjectEdit")
	}

	changes := subject.Diff(data.Existing, data.Edited)
	if err := api.svc.Apply(ctx.Request().Context(), ctx.Param("classID"), changes); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"added":   len(changes.ToAdd),
		"removed": len(changes.ToRemove),
	})
}
