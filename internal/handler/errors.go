package handler

import (
	"net/http"
	"strconv"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/policy"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/middleware"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// writeError is the only place usecase error kinds become HTTP statuses.
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	ae, ok := usecase.AsAppError(err)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Kind: string(usecase.KindTransactionFailed)})
	}
	return c.JSON(statusFor(ae), ErrorResponse{Error: ae.Error(), Kind: string(ae.Kind)})
}

func statusFor(ae *usecase.AppError) int {
	switch ae.Kind {
	case usecase.KindValidationFailed:
		return http.StatusBadRequest
	case usecase.KindUnauthorized:
		return http.StatusUnauthorized
	case usecase.KindForbidden:
		return http.StatusForbidden
	case usecase.KindNotFound:
		return http.StatusNotFound
	case usecase.KindReferenceNotFound:
		//a missing user behind a user-scoped path is a 404; a bad id inside a payload is a 400
		if ae.Entity == "user" {
			return http.StatusNotFound
		}
		return http.StatusBadRequest
	case usecase.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func invalidBody(c echo.Context) error {
	return writeError(c, usecase.Validation("invalid body"))
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Kind: string(usecase.KindUnauthorized)})
}

func currentActor(c echo.Context) (policy.Actor, bool) {
	return middleware.ActorFromContext(c)
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, usecase.Validation("invalid %s", name)
	}
	return id, nil
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, usecase.Validation("invalid %s", name)
	}
	return n, nil
}

func queryInt64Ptr(c echo.Context, name string) (*int64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return nil, usecase.Validation("invalid %s", name)
	}
	return &n, nil
}

// bindAndValidate binds the JSON body and runs the echo validator on it.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return usecase.Validation("invalid body")
	}
	return c.Validate(req)
}
