package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accesshub/rbac-service/internal/core/ports"
)

// AdminHandler serves the read-only administrative views: the role catalog
// and the audit trail.
type AdminHandler struct {
	roles ports.RoleRepository
	audit ports.AuditRecorder
}

func NewAdminHandler(roles ports.RoleRepository, audit ports.AuditRecorder) *AdminHandler {
	return &AdminHandler{roles: roles, audit: audit}
}

// ListRoles returns the seeded role catalog. Admin only.
//
// @Summary      List role definitions
// @Tags         admin
// @Produce      json
// @Success      200  {array}   roleResponse
// @Failure      403  {object}  map[string]string
// @Router       /admin/roles [get]
func (h *AdminHandler) ListRoles(c echo.Context) error {
	roles, err := h.roles.List(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]roleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, toRoleResponse(r))
	}
	return c.JSON(http.StatusOK, out)
}

// ListLogs returns audit entries, newest first. Admin only.
//
// @Summary      List audit log entries
// @Tags         admin
// @Produce      json
// @Param        offset  query     int  false  "Pagination offset"
// @Param        limit   query     int  false  "Page size"
// @Success      200     {array}   auditLogResponse
// @Failure      403     {object}  map[string]string
// @Router       /admin/logs [get]
func (h *AdminHandler) ListLogs(c echo.Context) error {
	offset, limit := pagination(c, 100)
	entries, err := h.audit.List(c.Request().Context(), offset, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAuditLogResponses(entries))
}
