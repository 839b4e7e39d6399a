package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campusconnect/backend/core/scholarship"
)

type scholarshipApi struct {
	svc *scholarship.Service
}

func registerScholarshipAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *scholarship.Service) {
	api := scholarshipApi{svc: svc}

	sg := g.Group("/scholarships", jwt)
	sg.GET("", api.query)
}

func (api *scholarshipApi) query(ctx echo.Context) error {
	filter := new(scholarship.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []scholarship.Scholarship{})
	}

	scholarships, err := api.svc.Filter(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying scholarships")
	}
	if scholarships == nil {
		scholarships = []scholarship.Scholarship{}
	}
	return ctx.JSON(http.StatusOK, scholarships)
}
