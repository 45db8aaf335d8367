package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	config "github.com/phillip/campaign-hub-go/config"
	controllers "github.com/phillip/campaign-hub-go/controllers"
	routes "github.com/phillip/campaign-hub-go/routes"
	store "github.com/phillip/campaign-hub-go/store"
	utils "github.com/phillip/campaign-hub-go/utils"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := utils.NewLogger(cfg.IsProduction())
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := cfg.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := cfg.Disconnect(disconnectCtx); err != nil {
			logger.Warn("mongo disconnect failed", zap.Error(err))
		}
	}()
	logger.Info("connected to mongodb", zap.String("database", cfg.DBName))

	db := cfg.Database()
	if err := store.EnsureIndexes(ctx, db, logger); err != nil {
		logger.Warn("index setup incomplete", zap.Error(err))
	}

	env := &controllers.Env{
		Campaigns: store.NewCampaignStore(db),
		Users:     store.NewUserStore(db),
		Log:       logger,
		DBTimeout: cfg.DBTimeout(),
		Now:       time.Now,
	}

	images, err := utils.NewCloudinary(cfg)
	switch {
	case errors.Is(err, utils.ErrImagesDisabled):
		logger.Info("image uploads disabled")
	case err != nil:
		return err
	default:
		env.Images = images
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      routes.NewRouter(env),
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.Uint("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
