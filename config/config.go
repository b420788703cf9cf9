package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bikramkgupta/care-circle-journal/models"
	"github.com/bikramkgupta/care-circle-journal/utils"
)

type SpacesConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

type GradientConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type Config struct {
	Port      string
	JWTSecret string
	TokenTTL  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	Spaces   SpacesConfig
	Gradient GradientConfig
}

// Load reads configuration from the environment once at startup. A missing
// .env file is fine in deployed environments.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:      utils.GetEnv("PORT", "8000"),
		JWTSecret: utils.GetEnv("JWT_SECRET", "dev-secret"),
		TokenTTL:  time.Duration(utils.GetEnvAsInt("TOKEN_TTL_HOURS", 72)) * time.Hour,

		DBHost:     utils.GetEnv("DB_HOST", "localhost"),
		DBPort:     utils.GetEnv("DB_PORT", "5432"),
		DBUser:     utils.GetEnv("DB_USER", "postgres"),
		DBPassword: utils.GetEnv("DB_PASSWORD", ""),
		DBName:     utils.GetEnv("DB_NAME", "carecircle"),

		Spaces: SpacesConfig{
			Endpoint:  utils.GetEnv("SPACES_ENDPOINT", "https://nyc3.digitaloceanspaces.com"),
			Region:    utils.GetEnv("SPACES_REGION", "us-east-1"),
			AccessKey: utils.GetEnv("SPACES_ACCESS_KEY", ""),
			SecretKey: utils.GetEnv("SPACES_SECRET_KEY", ""),
			Bucket:    utils.GetEnv("SPACES_BUCKET", "care-circle-media"),
		},
		Gradient: GradientConfig{
			APIKey:  utils.GetEnv("GRADIENT_API_KEY", ""),
			BaseURL: utils.GetEnv("GRADIENT_BASE_URL", "https://inference.do-ai.run/v1"),
			Model:   utils.GetEnv("GRADIENT_MODEL", "llama3.3-70b-instruct"),
			Timeout: time.Duration(utils.GetEnvAsInt("GRADIENT_TIMEOUT_SECONDS", 30)) * time.Second,
		},
	}
}

// OpenDB connects to Postgres and migrates the schema. The returned handle is
// passed into each service constructor; nothing holds it as package state.
func OpenDB(cfg Config, log *zap.SugaredLogger) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	log.Infow("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	if err := db.AutoMigrate(
		&models.User{},
		&models.CareProfile{},
		&models.CareProfileMember{},
		&models.Entry{},
		&models.MediaAsset{},
		&models.AiSummary{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return db, nil
}
