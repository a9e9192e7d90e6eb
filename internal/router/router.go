package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"lcenhub/internal/auth"
	"lcenhub/internal/config"
	"lcenhub/internal/handler"
)

// Register wires routes and middleware. Route groups mirror the capability
// tiers: unauthenticated callers reach only the public routes, members the
// session-scoped ones, admins the management console.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	accountHandler *handler.AccountHandler,
	adminHandler *handler.AdminHandler,
	reminderHandler *handler.ReminderHandler,
	marketHandler *handler.MarketHandler,
	chatHandler *handler.ChatHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)
	api.GET("/members/:username", accountHandler.GetMember)
	api.GET("/settings/backup-email", accountHandler.BackupEmail)

	// Member routes (require an active session)
	member := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	member.POST("/auth/logout", authHandler.Logout)
	member.PUT("/profile", accountHandler.UpdateProfile)
	member.PUT("/profile/password", accountHandler.ChangePassword)

	member.GET("/reminders", reminderHandler.List)
	member.POST("/reminders", reminderHandler.Add)
	member.PUT("/reminders/:id/status", reminderHandler.SetCompleted)
	member.DELETE("/reminders/:id", reminderHandler.Delete)

	member.GET("/market/stocks", marketHandler.List)
	member.POST("/market/stocks", marketHandler.Add)
	member.DELETE("/market/stocks/:id", marketHandler.Delete)

	member.GET("/chat/sessions", chatHandler.List)
	member.GET("/chat/sessions/:id", chatHandler.Get)
	member.PUT("/chat/sessions", chatHandler.Save)
	member.DELETE("/chat/sessions/:id", chatHandler.Delete)
	member.POST("/chat/ask", chatHandler.Ask)

	// Admin routes
	admin := member.Group("/admin", auth.RequireAdmin)
	admin.GET("/accounts", adminHandler.ListAccounts)
	admin.POST("/accounts", adminHandler.RegisterMember)
	admin.PUT("/accounts/:id", adminHandler.UpdateAccount)
	admin.DELETE("/accounts/:id", adminHandler.DeleteAccount)
	admin.GET("/audit-log", adminHandler.AuditLog)
	admin.GET("/members/:id/packages", adminHandler.MemberPackages)
	admin.GET("/members/:id/trainings", adminHandler.MemberTrainings)
	admin.GET("/members/:id/feed-orders", adminHandler.MemberFeedOrders)
	admin.PUT("/settings/backup-email", adminHandler.UpdateBackupEmail)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
