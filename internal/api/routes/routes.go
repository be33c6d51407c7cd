package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/umojahub/umoja/backend/internal/api/handlers"
	"github.com/umojahub/umoja/backend/internal/api/middleware"
	"github.com/umojahub/umoja/backend/internal/config"
	"github.com/umojahub/umoja/backend/internal/metrics"
	"github.com/umojahub/umoja/backend/internal/models"
	"github.com/umojahub/umoja/backend/internal/services"
)

// Register wires up API routes and performs automatic migrations.
func Register(router *gin.Engine, db *gorm.DB, cfg config.Config) (*services.MessageService, error) {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Incident{},
		&models.IncidentNote{},
		&models.AdminMessage{},
		&models.MessageReadReceipt{},
		&models.AuditLog{},
		&models.DeliveryChannel{},
		&models.Setting{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	registry := prometheus.NewRegistry()
	metrics.Register(registry)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	router.GET("/api/v1/health", handlers.HealthHandler)

	api := router.Group("/api/v1")

	auditService := services.NewAuditService(db)
	notificationService := services.NewNotificationService(db)
	messageService := services.NewMessageService(db, notificationService, auditService)
	organizationService := services.NewOrganizationService(db, auditService)
	incidentService := services.NewIncidentService(db)
	adminService := services.NewAdminService(db, auditService)
	authService := services.NewAuthService(db, cfg)

	authHandler := handlers.NewAuthHandler(authService)
	organizationHandler := handlers.NewOrganizationHandler(organizationService)
	messageHandler := handlers.NewMessageHandler(messageService)
	incidentHandler := handlers.NewIncidentHandler(incidentService)
	auditHandler := handlers.NewAuditHandler(auditService)
	adminHandler := handlers.NewAdminHandler(adminService)
	settingsHandler := handlers.NewSettingsHandler(db, auditService)
	channelHandler := handlers.NewChannelHandler(notificationService)

	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("/")
	protected.Use(middleware.AdminContext(authService))
	{
		protected.GET("/auth/me", authHandler.Me)

		// Organizations
		protected.GET("/organizations", organizationHandler.List)
		protected.GET("/organizations/:id", organizationHandler.Get)
		protected.PUT("/organizations/:id", organizationHandler.Update)
		protected.POST("/organizations/:id/suspend", organizationHandler.Suspend)
		protected.POST("/organizations/:id/reactivate", organizationHandler.Reactivate)
		protected.POST("/organizations/:id/compliance/approve", organizationHandler.ApproveCompliance)
		protected.GET("/organizations/:id/messages", messageHandler.TargetingOrganization)

		// Broadcast messages
		protected.POST("/messages", messageHandler.Send)
		protected.GET("/messages", messageHandler.Inbox)
		protected.POST("/messages/:id/read", messageHandler.MarkRead)
		protected.GET("/messages/pending", messageHandler.Pending)

		// Incidents
		protected.GET("/incidents", incidentHandler.List)
		protected.POST("/incidents", incidentHandler.Report)
		protected.GET("/incidents/:id", incidentHandler.Get)
		protected.POST("/incidents/:id/notes", incidentHandler.AddNote)
		protected.POST("/incidents/:id/resolve", incidentHandler.Resolve)

		// Audit trail
		protected.GET("/audit-logs", auditHandler.List)
		protected.GET("/audit-logs/critical", auditHandler.Critical)

		// Admin role management
		protected.POST("/users/:id/role", adminHandler.AssignRole)
		protected.DELETE("/users/:id/role", adminHandler.RevokeRole)
		protected.POST("/users/:id/suspend", adminHandler.SuspendUser)

		// Settings
		protected.GET("/settings", settingsHandler.GetSettings)
		protected.POST("/settings", settingsHandler.UpdateSetting)

		// Delivery channels
		protected.GET("/channels", channelHandler.List)
		protected.POST("/channels", channelHandler.Save)
		protected.DELETE("/channels/:id", channelHandler.Delete)
	}

	return messageService, nil
}
