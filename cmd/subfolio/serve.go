package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/subfolio-dev/subfolio/db"
	"github.com/subfolio-dev/subfolio/internal/actions"
	"github.com/subfolio-dev/subfolio/internal/auth"
	"github.com/subfolio-dev/subfolio/internal/cache"
	"github.com/subfolio-dev/subfolio/internal/handlers"
	"github.com/subfolio-dev/subfolio/internal/render"
	"github.com/subfolio-dev/subfolio/internal/router"
	"github.com/subfolio-dev/subfolio/internal/services"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := auth.InitJWTSecret(cfg.JWTSecret); err != nil {
		return err
	}

	if err := db.ConnectDatabase(cfg.DatabaseDriver, cfg.DatabaseURL); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	if !cfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	renderer, err := render.NewRenderer(cfg.RootDomain, cfg.Protocol)
	if err != nil {
		return err
	}

	pageCache := cache.New(cfg.CacheTTL)
	hub := services.NewRefreshHub(logger)
	webhook := services.NewRevalidationWebhook(cfg.RevalidationURL, cfg.RevalidationSecret, logger)

	pageCache.OnRevalidate(hub.Broadcast)
	pageCache.OnRevalidate(webhook.Notify)

	h := &handlers.Handler{
		DB: db.DB,
		Actions: actions.New(db.DB, actions.Options{
			Revalidator: pageCache,
			SiteURL:     cfg.SiteURL,
			Logger:      logger,
		}),
		Renderer: renderer,
		Cache:    pageCache,
		Hub:      hub,
		Config:   cfg,
		Logger:   logger,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("root_domain", cfg.RootDomain),
			zap.String("database_driver", cfg.DatabaseDriver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
