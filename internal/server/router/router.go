package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/brickbase/estate-backend/internal/domain/models"
	"github.com/brickbase/estate-backend/internal/server/handlers"
	"github.com/brickbase/estate-backend/internal/server/middleware"
)

// Handlers bundles everything the route table needs.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Properties    *handlers.PropertyHandler
	Tenants       *handlers.TenantHandler
	Leads         *handlers.LeadHandler
	Appointments  *handlers.AppointmentHandler
	Notifications *handlers.NotificationHandler
	Targets       *handlers.TargetHandler
	Dashboard     *handlers.DashboardHandler
}

// New wires the Gin engine with required routes and middlewares. The public
// surface is the listing search, registration/login, and lead capture;
// everything else sits behind the bearer token, with the dashboard and
// management endpoints further restricted to admins.
func New(h Handlers, verifier middleware.TokenVerifier, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/auth/register", h.Auth.Register)
	r.POST("/auth/login", h.Auth.Login)

	r.GET("/properties", h.Properties.List)
	r.GET("/properties/:id", h.Properties.Get)

	r.POST("/leads", h.Leads.Capture)

	authed := r.Group("/", middleware.Authenticate(verifier))
	{
		authed.POST("/appointments", h.Appointments.Create)
		authed.GET("/notifications", h.Notifications.List)
		authed.PATCH("/notifications/:id/read", h.Notifications.MarkRead)
	}

	admin := r.Group("/", middleware.Authenticate(verifier),
		middleware.RequireRoles(models.RoleAdmin, models.RoleSuperadmin))
	{
		admin.POST("/properties", h.Properties.Create)
		admin.PUT("/properties/:id", h.Properties.Update)
		admin.DELETE("/properties/:id", h.Properties.Delete)

		admin.POST("/tenants", h.Tenants.Create)
		admin.GET("/tenants", h.Tenants.List)
		admin.GET("/tenants/:id", h.Tenants.Get)
		admin.PUT("/tenants/:id", h.Tenants.Update)
		admin.DELETE("/tenants/:id", h.Tenants.Delete)
		admin.POST("/tenants/:id/payments", h.Tenants.RecordPayment)

		admin.GET("/leads", h.Leads.List)
		admin.PATCH("/leads/:id/status", h.Leads.UpdateStatus)
		admin.DELETE("/leads/:id", h.Leads.Delete)

		admin.GET("/appointments", h.Appointments.List)
		admin.PATCH("/appointments/:id/status", h.Appointments.UpdateStatus)
		admin.DELETE("/appointments/:id", h.Appointments.Delete)

		admin.GET("/targets/:key", h.Targets.Get)
		admin.PUT("/targets/:key", h.Targets.Set)

		admin.GET("/dashboard/comprehensive", h.Dashboard.Comprehensive)
		admin.GET("/dashboard/revenue", h.Dashboard.Revenue)
		admin.GET("/dashboard/monthly-revenue", h.Dashboard.Monthly)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
