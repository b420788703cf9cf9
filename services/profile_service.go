package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bikramkgupta/care-circle-journal/models"
)

type ProfileService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewProfileService(db *gorm.DB, log *zap.SugaredLogger) *ProfileService {
	return &ProfileService{db: db, log: log}
}

// List returns the profiles the caller is a member of. A user with no
// memberships gets an empty list, not an error.
func (s *ProfileService) List(ctx context.Context, callerID uuid.UUID) ([]models.CareProfile, error) {
	profiles := []models.CareProfile{}
	err := s.db.WithContext(ctx).
		Joins("JOIN care_profile_members m ON m.care_profile_id = care_profiles.id").
		Where("m.user_id = ?", callerID).
		Preload("Members").
		Order("care_profiles.created_at DESC").
		Find(&profiles).Error
	return profiles, err
}

// Create makes a profile and enrolls the creator as its OWNER member in the
// same transaction, so the ">=1 OWNER member" invariant holds from birth.
func (s *ProfileService) Create(ctx context.Context, ownerID uuid.UUID, name string, dateOfBirth *time.Time, notes string) (*models.CareProfile, error) {
	if name == "" {
		return nil, NewValidationError("name is required")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.CareProfile{}).
		Where("owner_id = ? AND name = ?", ownerID, name).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrProfileExists
	}

	profile := models.CareProfile{
		OwnerID:     ownerID,
		Name:        name,
		DateOfBirth: dateOfBirth,
		Notes:       notes,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		member := models.CareProfileMember{
			CareProfileID: profile.ID,
			UserID:        ownerID,
			Role:          models.RoleOwner,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, ErrProfileExists
		}
		return nil, err
	}

	s.log.Infow("care profile created", "profile_id", profile.ID)
	return s.GetByID(ctx, profile.ID, ownerID)
}

// GetByID folds the membership filter into the existence query itself: a
// profile the caller is not a member of looks exactly like one that does not
// exist.
func (s *ProfileService) GetByID(ctx context.Context, profileID, callerID uuid.UUID) (*models.CareProfile, error) {
	var profile models.CareProfile
	err := s.db.WithContext(ctx).
		Joins("JOIN care_profile_members m ON m.care_profile_id = care_profiles.id").
		Where("care_profiles.id = ? AND m.user_id = ?", profileID, callerID).
		Preload("Members").
		First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}
