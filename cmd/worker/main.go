package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bikramkgupta/care-circle-journal/config"
	"github.com/bikramkgupta/care-circle-journal/services"
	"github.com/bikramkgupta/care-circle-journal/utils"
)

// The worker runs the cron-triggered summary batches and serves a health
// endpoint for the platform's liveness checks.
func main() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	cfg := config.Load()

	db, err := config.OpenDB(cfg, logger)
	if err != nil {
		logger.Fatalw("database init failed", "error", err)
	}

	var generator services.InsightGenerator
	if cfg.Gradient.APIKey != "" && cfg.Gradient.APIKey != "dev-key" {
		generator = services.NewGradientGenerator(cfg.Gradient.BaseURL, cfg.Gradient.APIKey, cfg.Gradient.Model, cfg.Gradient.Timeout)
	} else {
		generator = services.NewMockGenerator()
	}

	guard := services.NewMembershipGuard(db)
	summaries := services.NewSummaryService(db, logger, guard, generator)
	scheduler := services.NewScheduler(db, summaries, logger)

	if err := scheduler.Start(); err != nil {
		logger.Fatalw("scheduler start failed", "error", err)
	}

	r := gin.Default()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "worker",
		})
	})

	port := utils.GetEnv("WORKER_PORT", "8080")
	go func() {
		if err := r.Run(":" + port); err != nil {
			logger.Fatalw("health server exited", "error", err)
		}
	}()
	logger.Infow("worker started", "port", port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	scheduler.Stop()
}
