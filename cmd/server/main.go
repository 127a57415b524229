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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/psu-oas/alumni-dashboard/apps/api/internal/business/alumni"
	"github.com/psu-oas/alumni-dashboard/apps/api/internal/platform/config"
	apirouter "github.com/psu-oas/alumni-dashboard/apps/api/internal/platform/http"
	"github.com/psu-oas/alumni-dashboard/apps/api/internal/platform/logging"
	"github.com/psu-oas/alumni-dashboard/apps/api/internal/platform/source"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)

	src, closeSource, err := source.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("stats source init", zap.String("source", cfg.StatsSource), zap.Error(err))
	}
	defer closeSource()
	logger.Info("stats source ready", zap.String("source", cfg.StatsSource))

	svc := alumni.NewService(src, logger.Named("alumni"))
	router := apirouter.NewRouter(svc, logger.Named("http"), cfg.AllowedOrigins)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()
	logger.Info("server listening", zap.String("port", cfg.Port))

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("server exited")
}
