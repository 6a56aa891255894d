package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/brickbase/estate-backend/internal/cache"
	"github.com/brickbase/estate-backend/internal/config"
	"github.com/brickbase/estate-backend/internal/repository/mongodb"
	"github.com/brickbase/estate-backend/internal/scheduler"
	"github.com/brickbase/estate-backend/internal/server/handlers"
	"github.com/brickbase/estate-backend/internal/server/router"
	authsvc "github.com/brickbase/estate-backend/internal/service/auth"
	dashboardsvc "github.com/brickbase/estate-backend/internal/service/dashboard"
	leadsvc "github.com/brickbase/estate-backend/internal/service/leads"
	"github.com/brickbase/estate-backend/pkg/clients/webhook"
	"github.com/brickbase/estate-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	client, err := mongodb.Connect(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	defer func() {
		if err := client.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	propertyRepo := mongodb.NewPropertyRepository(client)
	tenantRepo := mongodb.NewTenantRepository(client)
	leadRepo := mongodb.NewLeadRepository(client)
	appointmentRepo := mongodb.NewAppointmentRepository(client)
	targetRepo := mongodb.NewTargetRepository(client)
	notificationRepo := mongodb.NewNotificationRepository(client)
	userRepo := mongodb.NewUserRepository(client)

	var propertyCache *cache.PropertyCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		propertyCache = cache.New(rdb, cfg.Redis.CacheTTL, baseLogger.Named("cache.properties"))
		baseLogger.Info("property cache enabled", zap.String("addr", cfg.Redis.Addr))
	} else {
		baseLogger.Warn("redis address missing, property caching disabled")
	}

	authSvc := authsvc.NewService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, baseLogger.Named("svc.auth"))

	var notifier webhook.Notifier
	if cfg.Leads.WebhookURL != "" {
		notifier = webhook.NewClient(cfg.Leads.WebhookURL)
		baseLogger.Info("lead webhook enabled")
	} else {
		baseLogger.Warn("lead webhook url missing, capture notifications disabled")
	}
	leadSvc := leadsvc.NewService(leadRepo, notifier, baseLogger.Named("svc.leads"))

	dashboardSvc := dashboardsvc.NewService(propertyRepo, tenantRepo, leadRepo, appointmentRepo, targetRepo, baseLogger.Named("svc.dashboard"))

	engine := router.New(router.Handlers{
		Auth:          handlers.NewAuthHandler(authSvc, baseLogger.Named("handlers.auth")),
		Properties:    handlers.NewPropertyHandler(propertyRepo, propertyCache, baseLogger.Named("handlers.properties")),
		Tenants:       handlers.NewTenantHandler(tenantRepo, baseLogger.Named("handlers.tenants")),
		Leads:         handlers.NewLeadHandler(leadSvc, baseLogger.Named("handlers.leads")),
		Appointments:  handlers.NewAppointmentHandler(appointmentRepo, baseLogger.Named("handlers.appointments")),
		Notifications: handlers.NewNotificationHandler(notificationRepo, baseLogger.Named("handlers.notifications")),
		Targets:       handlers.NewTargetHandler(targetRepo, baseLogger.Named("handlers.targets")),
		Dashboard:     handlers.NewDashboardHandler(dashboardSvc, cfg.Dashboard.Timeout, baseLogger.Named("handlers.dashboard")),
	}, authSvc, baseLogger.Named("router"))

	sched := scheduler.New(cfg.Scheduler, appointmentRepo, tenantRepo, notificationRepo, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
