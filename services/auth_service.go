package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bikramkgupta/care-circle-journal/models"
	"github.com/bikramkgupta/care-circle-journal/utils"
)

type AuthService struct {
	db       *gorm.DB
	log      *zap.SugaredLogger
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(db *gorm.DB, log *zap.SugaredLogger, secret []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{db: db, log: log, secret: secret, tokenTTL: tokenTTL}
}

func (s *AuthService) Signup(ctx context.Context, email, password, name string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !strings.Contains(email, "@") {
		return nil, "", NewValidationError("invalid email")
	}
	if len(password) < 8 {
		return nil, "", NewValidationError("password must be at least 8 characters")
	}
	if len(strings.TrimSpace(name)) < 2 {
		return nil, "", NewValidationError("name must be at least 2 characters")
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, "", ErrEmailTaken
	}
	if err != gorm.ErrRecordNotFound {
		return nil, "", err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := models.User{Email: email, PasswordHash: hash, Name: strings.TrimSpace(name)}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := utils.GenerateJWT(user.ID, s.secret, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}

	s.log.Infow("user signed up", "user_id", user.ID)
	return &user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, s.secret, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
