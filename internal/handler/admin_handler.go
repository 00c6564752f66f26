package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "foodforward/internal/errors"
	"foodforward/internal/service"
)

// AdminHandler handles admin-facing endpoints: dashboard, delivery assignment
// and the recipient registry.
type AdminHandler struct {
	deliveryService  service.DeliveryService
	recipientService service.RecipientService
	dashboardService service.DashboardService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(
	deliveryService service.DeliveryService,
	recipientService service.RecipientService,
	dashboardService service.DashboardService,
) *AdminHandler {
	return &AdminHandler{
		deliveryService:  deliveryService,
		recipientService: recipientService,
		dashboardService: dashboardService,
	}
}

// AssignDeliveryRequest selects a delivery person and recipient for a
// pending donation. Missing ids are reported by the service, not the
// validator, so the client gets a MISSING_SELECTION code.
type AssignDeliveryRequest struct {
	DeliveryPersonID uint `json:"delivery_person_id"`
	RecipientID      uint `json:"recipient_id"`
}

// AddRecipientRequest registers a recipient organization.
type AddRecipientRequest struct {
	Name          string `json:"name" validate:"required"`
	ContactPerson string `json:"contact_person" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	Address       string `json:"address" validate:"required"`
	RecipientType string `json:"recipient_type" validate:"required,oneof='NGO' 'Old Age Home' 'Shelter' 'Orphanage' 'Other'"`
}

// Dashboard godoc
// @Summary Admin dashboard: queues, registries and aggregate stats
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.AdminOverview
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	overview, err := h.dashboardService.AdminOverview(c.Request().Context(), claims.Role)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, overview)
}

// AssignDelivery godoc
// @Summary Assign a pending donation to a delivery person and recipient
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donation ID"
// @Param request body AssignDeliveryRequest true "Assignment"
// @Success 201 {object} model.Delivery
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/donations/{id}/assign [post]
func (h *AdminHandler) AssignDelivery(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	donationID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req AssignDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	delivery, err := h.deliveryService.Assign(c.Request().Context(), claims.Role,
		donationID, req.DeliveryPersonID, req.RecipientID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, delivery)
}

// ListRecipients godoc
// @Summary List recipient organizations
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/recipients [get]
func (h *AdminHandler) ListRecipients(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	recipients, err := h.recipientService.List(c.Request().Context(), claims.Role)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"recipients": recipients,
	})
}

// AddRecipient godoc
// @Summary Register a recipient organization
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddRecipientRequest true "Recipient data"
// @Success 201 {object} model.Recipient
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/recipients [post]
func (h *AdminHandler) AddRecipient(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req AddRecipientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	recipient, err := h.recipientService.Add(c.Request().Context(), claims.Role,
		req.Name, req.ContactPerson, req.Phone, req.Address, req.RecipientType)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, recipient)
}
