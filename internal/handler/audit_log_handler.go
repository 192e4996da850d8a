package handler

import (
	"net/http"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/repository"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuditLogHandler struct {
	uc *usecase.AuditLogUsecase
}

func NewAuditLogHandler(uc *usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{uc: uc}
}

func (h *AuditLogHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	e.GET("/admin/audit-logs", h.list, g.Admin...)
}

// GET /admin/audit-logs?action=&resource_type=&resource_id=&actor_user_id=&from=&to=&limit=&offset=
func (h *AuditLogHandler) list(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}

	var f repository.AuditLogFilter
	var err error
	if f.Limit, err = queryInt(c, "limit", 0); err != nil {
		return writeError(c, err)
	}
	if f.Offset, err = queryInt(c, "offset", 0); err != nil {
		return writeError(c, err)
	}
	if f.ResourceID, err = queryInt64Ptr(c, "resource_id"); err != nil {
		return writeError(c, err)
	}
	if f.ActorUserID, err = queryInt64Ptr(c, "actor_user_id"); err != nil {
		return writeError(c, err)
	}
	if f.CreatedFrom, err = queryTime(c, "from"); err != nil {
		return writeError(c, err)
	}
	if f.CreatedTo, err = queryTime(c, "to"); err != nil {
		return writeError(c, err)
	}
	if v := c.QueryParam("action"); v != "" {
		a := model.AuditAction(v)
		f.Action = &a
	}
	if v := c.QueryParam("resource_type"); v != "" {
		r := model.AuditResourceType(v)
		f.ResourceType = &r
	}

	logs, err := h.uc.List(c.Request().Context(), actor, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}
