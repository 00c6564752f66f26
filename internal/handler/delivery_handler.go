package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "foodforward/internal/errors"
	"foodforward/internal/model"
	"foodforward/internal/service"
)

// DeliveryHandler handles courier-facing delivery endpoints.
type DeliveryHandler struct {
	deliveryService service.DeliveryService
}

// NewDeliveryHandler creates a new delivery handler.
func NewDeliveryHandler(deliveryService service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: deliveryService}
}

// UpdateStatusRequest represents a delivery status update.
type UpdateStatusRequest struct {
	Status           string `json:"status" validate:"required,oneof=assigned on_the_way picked_up delivered"`
	ConfirmationType string `json:"confirmation_type" validate:"omitempty,oneof=signature photo feedback"`
	ConfirmationData string `json:"confirmation_data"`
}

// Dashboard godoc
// @Summary Courier dashboard: own deliveries, newest first
// @Tags delivery
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /delivery/dashboard [get]
func (h *DeliveryHandler) Dashboard(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	deliveries, err := h.deliveryService.ListOwn(c.Request().Context(), claims.UserID, claims.Role)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"deliveries": deliveries,
	})
}

// UpdateStatus godoc
// @Summary Update a delivery's status
// @Tags delivery
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Delivery ID"
// @Param request body UpdateStatusRequest true "Status update"
// @Success 200 {object} model.Delivery
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /delivery/deliveries/{id}/status [post]
func (h *DeliveryHandler) UpdateStatus(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	delivery, err := h.deliveryService.UpdateStatus(c.Request().Context(), claims.UserID, claims.Role,
		id, model.DeliveryStatus(req.Status), req.ConfirmationType, req.ConfirmationData)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, delivery)
}
