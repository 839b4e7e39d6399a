package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campusconnect/backend/core/mentor"
	"github.com/campusconnect/backend/core/user"
)

type mentorApi struct {
	svc      *mentor.Service
	userSvc  *user.Service
	validate *validator.Validate
}

func registerMentorAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *mentor.Service, userSvc *user.Service, validate *validator.Validate) {
	api := mentorApi{svc: svc, userSvc: userSvc, validate: validate}

	mg := g.Group("/mentors", jwt)
	mg.GET("", api.query)

	sg := g.Group("/sessions", jwt)
	sg.GET("", api.querySessions)
	sg.POST("", api.book)
	sg.DELETE("/:id", api.cancel)
}

func (api *mentorApi) query(ctx echo.Context) error {
	mentors, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying mentors")
	}
	if mentors == nil {
		mentors = []mentor.Mentor{}
	}
	return ctx.JSON(http.StatusOK, mentors)
}

func (api *mentorApi) querySessions(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	sessions, err := api.svc.UserSessions(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying sessions")
	}
	if sessions == nil {
		sessions = []mentor.Session{}
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *mentorApi) book(ctx echo.Context) error {
	var data mentor.NewSession
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSession")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	res, err := api.svc.Book(ctx.Request().Context(), usr, data)
	if err != nil {
		return errors.Wrap(err, "booking session")
	}
	return ctx.JSON(http.StatusCreated, res)
}

// cancel marks the caller's session cancelled; XP granted at booking
// time is kept.
func (api *mentorApi) cancel(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	sess, err := api.svc.Cancel(ctx.Request().Context(), id, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "cancelling session")
	}
	return ctx.JSON(http.StatusOK, sess)
}
