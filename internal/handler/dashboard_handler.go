package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foodforward/internal/service"
)

// DashboardHandler resolves the role-based dashboard redirect and the
// current-user endpoint.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Dispatch godoc
// @Summary Resolve the caller's dashboard by role
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) Dispatch(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	path, err := h.dashboardService.Path(claims.Role)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"dashboard": path,
	})
}

// Me godoc
// @Summary Current authenticated user
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *DashboardHandler) Me(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user_id":   claims.UserID,
		"email":     claims.Email,
		"user_type": claims.Role,
	})
}
