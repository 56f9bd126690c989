package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/judyrop/sns-catalog/auth"
	"github.com/judyrop/sns-catalog/config"
	"github.com/judyrop/sns-catalog/logger"
	"github.com/judyrop/sns-catalog/store"
)

func main() {
	cfg, err := config.Load(os.Getenv("SNS_CONFIG"))
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	zlog, err := logger.New(cfg.Environment, cfg.Debug)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer zlog.Sync()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(cfg.Database.Driver, cfg.Database.URL, log)
	if err != nil {
		return err
	}
	if err := store.Migrate(db); err != nil {
		return err
	}
	if err := seed(ctx, db, cfg, log); err != nil {
		return err
	}

	var verifier *oidc.IDTokenVerifier
	if cfg.OIDCEnabled() {
		verifier, err = auth.NewOIDCVerifier(ctx, cfg.OIDC.Issuer, cfg.OIDC.ClientID)
		if err != nil {
			return err
		}
		log.Info("oidc login enabled", zap.String("issuer", cfg.OIDC.Issuer))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           SetupRouter(db, cfg, log, verifier),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	return nil
}

func seed(ctx context.Context, db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	hash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}
	if err := store.EnsureAdmin(ctx, db, cfg.Admin.Username, cfg.Admin.Email, hash, log); err != nil {
		return err
	}
	if !cfg.SeedCatalog {
		return nil
	}
	catalog, err := store.StarterCatalog()
	if err != nil {
		return err
	}
	return store.SeedCatalog(ctx, db, catalog, log)
}
