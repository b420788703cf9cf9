package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bikramkgupta/care-circle-journal/models"
)

const signedURLTTL = time.Hour

type MediaService struct {
	db     *gorm.DB
	log    *zap.SugaredLogger
	guard  *MembershipGuard
	signer ObjectSigner
}

func NewMediaService(db *gorm.DB, log *zap.SugaredLogger, guard *MembershipGuard, signer ObjectSigner) *MediaService {
	return &MediaService{db: db, log: log, guard: guard, signer: signer}
}

type PresignInput struct {
	ProfileID uuid.UUID
	EntryID   uuid.UUID
	Type      string
	MimeType  string
	Extension string
}

type PresignResult struct {
	UploadURL string    `json:"uploadUrl"`
	MediaID   uuid.UUID `json:"mediaId"`
	SpacesKey string    `json:"spacesKey"`
}

// Presign issues an upload slot: a MediaAsset row is created eagerly, before
// any bytes land in the bucket, and the caller gets a 1-hour signed PUT URL.
func (s *MediaService) Presign(ctx context.Context, callerID uuid.UUID, in PresignInput) (*PresignResult, error) {
	ok, err := s.guard.CanWrite(ctx, callerID, in.ProfileID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAccessDenied
	}

	if in.MimeType == "" {
		return nil, NewValidationError("mimeType is required")
	}
	ext := strings.TrimPrefix(in.Extension, ".")
	if ext == "" {
		return nil, NewValidationError("extension is required")
	}

	mediaID := uuid.New()
	key := fmt.Sprintf("care-profiles/%s/entries/%s/%s.%s", in.ProfileID, in.EntryID, mediaID, ext)

	asset := models.MediaAsset{
		ID:            mediaID,
		CareProfileID: in.ProfileID,
		EntryID:       in.EntryID,
		Type:          in.Type,
		SpacesKey:     key,
		MimeType:      in.MimeType,
	}
	if err := s.db.WithContext(ctx).Create(&asset).Error; err != nil {
		return nil, err
	}

	uploadURL, err := s.signer.PresignUpload(ctx, key, in.MimeType, signedURLTTL)
	if err != nil {
		return nil, err
	}

	s.log.Infow("media upload presigned", "media_id", mediaID, "profile_id", in.ProfileID)
	return &PresignResult{UploadURL: uploadURL, MediaID: mediaID, SpacesKey: key}, nil
}

// GetURL returns a 1-hour signed download URL. A missing asset and an asset
// on a profile the caller is not a member of are indistinguishable.
func (s *MediaService) GetURL(ctx context.Context, callerID, mediaID uuid.UUID) (string, error) {
	var asset models.MediaAsset
	err := s.db.WithContext(ctx).First(&asset, "id = ?", mediaID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", ErrAccessDenied
		}
		return "", err
	}

	ok, err := s.guard.IsMember(ctx, callerID, asset.CareProfileID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrAccessDenied
	}

	return s.signer.PresignDownload(ctx, asset.SpacesKey, signedURLTTL)
}
