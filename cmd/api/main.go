package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/SBShweta/blood-donation-app/internal/api/http"
	"github.com/SBShweta/blood-donation-app/internal/api/http/handlers"
	"github.com/SBShweta/blood-donation-app/internal/auth"
	"github.com/SBShweta/blood-donation-app/internal/config"
	"github.com/SBShweta/blood-donation-app/internal/events"
	"github.com/SBShweta/blood-donation-app/internal/observability"
	"github.com/SBShweta/blood-donation-app/internal/persistence"
	"github.com/SBShweta/blood-donation-app/internal/ratelimit"
	"github.com/SBShweta/blood-donation-app/internal/service"
	"github.com/SBShweta/blood-donation-app/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := persistence.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Warn("failed to close store", zap.Error(err))
		}
	}()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo: store.Users(),
		Logger:   logger,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), store.Users())

	var counter ratelimit.Counter
	if redis.Enabled() {
		counter = ratelimit.NewRedisCounter(redis.Client)
	}
	limiter := ratelimit.NewLimiter(counter, cfg.RateLimit.AuthPerMinute, time.Minute, logger)

	app := httptransport.NewApp(cfg.App.Name)
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:         logger,
		Metrics:        observability.NewMetrics(),
		Timeout:        cfg.App.RequestTimeout(),
		AllowedOrigins: cfg.CORS.Origins(),
	})

	routeCfg := httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.App.Env, store, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(service.NewUserService(store.Users(), dispatcher, logger)),
		Donations:      handlers.NewDonationsHandler(service.NewDonationService(store.Donations(), dispatcher, logger)),
		BloodRequests:  handlers.NewBloodRequestsHandler(service.NewBloodRequestService(store.BloodRequests(), dispatcher, logger)),
		AuthMiddleware: authMiddleware,
	}
	if limiter.Enabled() {
		routeCfg.AuthLimiter = limiter.Middleware()
	}
	httptransport.RegisterRoutes(app, routeCfg)

	go func() {
		logger.Info("server listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("env", cfg.App.Env),
			zap.String("store", cfg.Store.Driver))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
