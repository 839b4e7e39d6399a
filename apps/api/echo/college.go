package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campusconnect/backend/core/college"
)

type collegeApi struct {
	svc *college.Service
}

func registerCollegeAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *college.Service) {
	api := collegeApi{svc: svc}

	cg := g.Group("/colleges", jwt)
	cg.GET("", api.query)
	cg.GET("/recent", api.recentlyViewed)
	cg.GET("/:id", api.retrieve)
	cg.POST("/:id/view", api.view)
}

func (api *collegeApi) query(ctx echo.Context) error {
	filter := new(college.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []college.College{})
	}

	colleges, err := api.svc.Filter(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying colleges")
	}
	if colleges == nil {
		colleges = []college.College{}
	}
	return ctx.JSON(http.StatusOK, colleges)
}

func (api *collegeApi) retrieve(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	col, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting college")
	}
	return ctx.JSON(http.StatusOK, col)
}

// view records a college detail view for the caller and awards the
// flat XP bonus.
func (api *collegeApi) view(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	res, err := api.svc.View(ctx.Request().Context(), claims.Subject, id)
	if err != nil {
		return errors.Wrap(err, "recording college view")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *collegeApi) recentlyViewed(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	views, err := api.svc.RecentlyViewed(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying recently viewed")
	}
	if views == nil {
		views = []college.RecentlyViewed{}
	}
	return ctx.JSON(http.StatusOK, views)
}
