package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/bikramkgupta/care-circle-journal/models"
)

type EntryService struct {
	db    *gorm.DB
	log   *zap.SugaredLogger
	guard *MembershipGuard
}

func NewEntryService(db *gorm.DB, log *zap.SugaredLogger, guard *MembershipGuard) *EntryService {
	return &EntryService{db: db, log: log, guard: guard}
}

type EntryFilter struct {
	From *time.Time
	To   *time.Time
	Type models.EntryType
}

type CreateEntryInput struct {
	Type              models.EntryType
	Timestamp         *time.Time
	FreeText          string
	MoodScore         *int
	Tags              datatypes.JSON
	StructuredPayload datatypes.JSON
}

// List returns a profile's entries, most recent first. The same access error
// comes back whether the profile is unknown or merely not the caller's.
func (s *EntryService) List(ctx context.Context, profileID, callerID uuid.UUID, filter EntryFilter) ([]models.Entry, error) {
	ok, err := s.guard.IsMember(ctx, callerID, profileID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAccessDenied
	}

	q := s.db.WithContext(ctx).
		Where("care_profile_id = ?", profileID).
		Preload("Author").
		Preload("MediaAssets").
		Order("timestamp DESC")
	if filter.From != nil {
		q = q.Where("timestamp >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("timestamp <= ?", *filter.To)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	entries := []models.Entry{}
	err = q.Find(&entries).Error
	return entries, err
}

// Create writes a new entry. The author and profile are always taken from
// the authenticated caller and the route, never from the payload.
func (s *EntryService) Create(ctx context.Context, profileID, callerID uuid.UUID, in CreateEntryInput) (*models.Entry, error) {
	ok, err := s.guard.CanWrite(ctx, callerID, profileID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAccessDenied
	}

	if !models.ValidEntryType(in.Type) {
		return nil, NewValidationError("invalid entry type")
	}
	if strings.TrimSpace(in.FreeText) == "" {
		return nil, NewValidationError("freeText is required")
	}
	if in.MoodScore != nil && (*in.MoodScore < 1 || *in.MoodScore > 5) {
		return nil, NewValidationError("moodScore must be between 1 and 5")
	}

	timestamp := time.Now().UTC()
	if in.Timestamp != nil {
		timestamp = *in.Timestamp
	}

	entry := models.Entry{
		CareProfileID:     profileID,
		AuthorID:          callerID,
		Type:              in.Type,
		Timestamp:         timestamp,
		FreeText:          in.FreeText,
		MoodScore:         in.MoodScore,
		Tags:              in.Tags,
		StructuredPayload: in.StructuredPayload,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}

	s.log.Infow("entry created", "entry_id", entry.ID, "profile_id", profileID, "type", entry.Type)
	return &entry, nil
}
