package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "foodforward/internal/errors"
	"foodforward/internal/service"
)

// DonorHandler handles donor-facing donation endpoints.
type DonorHandler struct {
	donationService service.DonationService
}

// NewDonorHandler creates a new donor handler.
func NewDonorHandler(donationService service.DonationService) *DonorHandler {
	return &DonorHandler{donationService: donationService}
}

// AddDonationRequest represents a new donation submission.
type AddDonationRequest struct {
	FoodType       string `json:"food_type" validate:"required"`
	Quantity       string `json:"quantity" validate:"required"`
	Freshness      string `json:"freshness" validate:"required,oneof='Fresh' 'Day old' 'Packaged'"`
	PickupLocation string `json:"pickup_location"` // blank falls back to the donor's address
}

// Dashboard godoc
// @Summary Donor dashboard: own donations, newest first
// @Tags donor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /donor/dashboard [get]
func (h *DonorHandler) Dashboard(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	donations, err := h.donationService.ListOwn(c.Request().Context(), claims.UserID, claims.Role)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"donations": donations,
	})
}

// AddDonation godoc
// @Summary Submit a new donation
// @Tags donor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddDonationRequest true "Donation data"
// @Success 201 {object} model.Donation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /donor/donations [post]
func (h *DonorHandler) AddDonation(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req AddDonationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	donation, err := h.donationService.Add(c.Request().Context(), claims.UserID, claims.Role,
		req.FoodType, req.Quantity, req.Freshness, req.PickupLocation)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, donation)
}

// GetDonation godoc
// @Summary View a single donation
// @Tags donor
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donation ID"
// @Success 200 {object} model.Donation
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /donor/donations/{id} [get]
func (h *DonorHandler) GetDonation(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	donation, err := h.donationService.Get(c.Request().Context(), claims.UserID, claims.Role, id)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, donation)
}
