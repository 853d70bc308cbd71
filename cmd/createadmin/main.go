// Command createadmin bootstraps the first administrator account.
package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/SBShweta/blood-donation-app/internal/config"
	"github.com/SBShweta/blood-donation-app/internal/observability"
	"github.com/SBShweta/blood-donation-app/internal/persistence"
	"github.com/SBShweta/blood-donation-app/internal/service"
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := persistence.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer store.Close(context.Background()) //nolint:errcheck

	authService := service.NewAuthService(*cfg, service.AuthDependencies{UserRepo: store.Users(), Logger: logger})
	created, err := authService.EnsureAdmin(ctx, service.AdminInput{
		Name:     cfg.Admin.Name,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	})
	if err != nil {
		logger.Fatal("failed to create admin", zap.Error(err))
	}
	if !created {
		logger.Info("admin already exists; nothing to do")
		return
	}
	logger.Info("admin user created", zap.String("email", cfg.Admin.Email))
}
