package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/bikramkgupta/care-circle-journal/config"
	"github.com/bikramkgupta/care-circle-journal/controllers"
	"github.com/bikramkgupta/care-circle-journal/routes"
	"github.com/bikramkgupta/care-circle-journal/services"
)

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

	signer, err := services.NewSpacesService(context.Background(), cfg.Spaces)
	if err != nil {
		logger.Fatalw("spaces init failed", "error", err)
	}

	// The generator implementation is chosen once here, not per call: the
	// hosted endpoint when credentials are configured, the local mock
	// otherwise.
	var generator services.InsightGenerator
	if cfg.Gradient.APIKey != "" && cfg.Gradient.APIKey != "dev-key" {
		generator = services.NewGradientGenerator(cfg.Gradient.BaseURL, cfg.Gradient.APIKey, cfg.Gradient.Model, cfg.Gradient.Timeout)
		logger.Infow("using gradient insight generator", "model", cfg.Gradient.Model)
	} else {
		generator = services.NewMockGenerator()
		logger.Info("no gradient credentials, using mock insight generator")
	}

	guard := services.NewMembershipGuard(db)
	secret := []byte(cfg.JWTSecret)

	ctrl := routes.Controllers{
		Auth:      controllers.NewAuthController(services.NewAuthService(db, logger, secret, cfg.TokenTTL)),
		Profiles:  controllers.NewCareProfileController(services.NewProfileService(db, logger)),
		Entries:   controllers.NewEntryController(services.NewEntryService(db, logger, guard)),
		Media:     controllers.NewMediaController(services.NewMediaService(db, logger, guard, signer)),
		Summaries: controllers.NewSummaryController(services.NewSummaryService(db, logger, guard, generator)),
	}

	r := routes.SetupRouter(ctrl, secret)

	logger.Infow("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatalw("server exited", "error", err)
	}
}
