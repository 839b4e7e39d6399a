package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campusconnect/backend/core/mission"
)

type missionApi struct {
	svc *mission.Service
}

func registerMissionAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *mission.Service) {
	api := missionApi{svc: svc}

	mg := g.Group("/missions", jwt)
	mg.GET("", api.query)
	mg.PUT("/:id", api.toggle)
}

// query returns the caller's missions, seeding the default weekly set on
// first read.
func (api *missionApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	missions, err := api.svc.QueryForUser(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying missions")
	}
	if missions == nil {
		missions = []mission.Mission{}
	}
	return ctx.JSON(http.StatusOK, missions)
}

func (api *missionApi) toggle(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	var data ToggleMissionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ToggleMissionRequest")
	}
	if data.Completed == nil {
		return errHttpBadRequest
	}

	res, err := api.svc.Toggle(ctx.Request().Context(), id, claims.Subject, *data.Completed)
	if err != nil {
		if errors.Cause(err) == mission.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "toggling mission")
	}
	return ctx.JSON(http.StatusOK, res)
}

type ToggleMissionRequest struct {
	Completed *bool `json:"completed"`
}
