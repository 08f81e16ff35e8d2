// Package server assembles the gin engine: middleware, CORS, swagger and the
// /api/v1 route table.
package server

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"projectdesk/internal/handlers"
	"projectdesk/internal/middleware"
)

// Handlers bundles the handlers mounted by NewRouter.
type Handlers struct {
	Charges       *handlers.RecurringChargeHandler
	Payments      *handlers.PaymentHandler
	Notifications *handlers.NotificationHandler
	Reminders     *handlers.ReminderHandler
}

// Options configures NewRouter.
type Options struct {
	Env                string
	CORSAllowedOrigins []string
	// FinancialRoles gate the charge and payment routes.
	FinancialRoles []string
	PipelineAPIKey string
}

// NewRouter builds the HTTP router.
func NewRouter(opts Options, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors.New(corsConfig(opts)))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Machine-to-machine routes
	internal := v1.Group("/internal", middleware.PipelineAuthMiddleware(opts.PipelineAPIKey))
	internal.POST("/reminders/run", h.Reminders.RunReminders)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware())

	notifications := protected.Group("/notifications")
	notifications.GET("", h.Notifications.ListNotifications)
	notifications.GET("/unread-count", h.Notifications.UnreadCount)
	notifications.POST("/read-all", h.Notifications.MarkAllRead)
	notifications.POST("/evaluate", h.Notifications.Evaluate)
	notifications.POST("/:id/read", h.Notifications.MarkRead)

	financial := protected.Group("")
	financial.Use(middleware.RequireRole(opts.FinancialRoles...))

	charges := financial.Group("/recurring-charges")
	charges.POST("", h.Charges.CreateCharge)
	charges.GET("", h.Charges.ListCharges)
	charges.GET("/cancelled", h.Charges.ListCancelledCharges)
	charges.GET("/due-soon", h.Charges.ListDueSoon)
	charges.GET("/due-soon/count", h.Charges.CountDueSoon)
	charges.GET("/export", h.Charges.ExportCharges)
	charges.GET("/projection", h.Charges.GetProjection)
	charges.GET("/:id", h.Charges.GetCharge)
	charges.GET("/:id/history", h.Charges.GetChargeHistory)
	charges.PUT("/:id", h.Charges.UpdateCharge)
	charges.DELETE("/:id", h.Charges.PurgeCharge)
	charges.POST("/:id/pay", h.Charges.MarkPaid)
	charges.POST("/:id/cancel", h.Charges.CancelCharge)
	charges.POST("/:id/restore", h.Charges.RestoreCharge)

	payments := financial.Group("/payments")
	payments.POST("", h.Payments.CreatePayment)
	payments.GET("", h.Payments.ListPayments)
	payments.GET("/deleted", h.Payments.ListDeletedPayments)
	payments.GET("/summary", h.Payments.GetSummary)
	payments.GET("/export", h.Payments.ExportPayments)
	payments.GET("/:id", h.Payments.GetPayment)
	payments.PUT("/:id/status", h.Payments.UpdatePaymentStatus)
	payments.POST("/:id/cancel", h.Payments.CancelPayment)
	payments.DELETE("/:id", h.Payments.DeletePayment)
	payments.POST("/:id/restore", h.Payments.RestorePayment)
	payments.DELETE("/:id/purge", h.Payments.PurgePayment)

	return router
}

// corsConfig allows every origin outside production. In production only the
// configured origins are allowed, and none when the list is empty.
func corsConfig(opts Options) cors.Config {
	cfg := cors.DefaultConfig()
	switch {
	case !strings.EqualFold(opts.Env, "production"):
		cfg.AllowAllOrigins = true
	case len(opts.CORSAllowedOrigins) > 0:
		cfg.AllowOrigins = opts.CORSAllowedOrigins
	default:
		cfg.AllowOriginFunc = func(string) bool { return false }
	}
	cfg.AddAllowHeaders("Authorization", "X-Request-ID", "X-API-Key")
	cfg.AddExposeHeaders("Content-Length", "Content-Disposition", "X-Request-ID")
	return cfg
}
