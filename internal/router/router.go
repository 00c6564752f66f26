package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"foodforward/internal/auth"
	"foodforward/internal/config"
	"foodforward/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	donorHandler *handler.DonorHandler,
	deliveryHandler *handler.DeliveryHandler,
	adminHandler *handler.AdminHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication). Role checks happen in the
	// services so every operation enforces them regardless of route.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/dashboard", dashboardHandler.Dispatch)
	secured.GET("/me", dashboardHandler.Me)

	// Donor routes
	secured.GET("/donor/dashboard", donorHandler.Dashboard)
	secured.POST("/donor/donations", donorHandler.AddDonation)
	secured.GET("/donor/donations/:id", donorHandler.GetDonation)

	// Delivery person routes
	secured.GET("/delivery/dashboard", deliveryHandler.Dashboard)
	secured.POST("/delivery/deliveries/:id/status", deliveryHandler.UpdateStatus)

	// Admin routes
	secured.GET("/admin/dashboard", adminHandler.Dashboard)
	secured.POST("/admin/donations/:id/assign", adminHandler.AssignDelivery)
	secured.GET("/admin/recipients", adminHandler.ListRecipients)
	secured.POST("/admin/recipients", adminHandler.AddRecipient)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
