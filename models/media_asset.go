package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MediaAsset is created eagerly when an upload slot is presigned; the row
// exists before the blob itself is confirmed uploaded. There is no
// confirmation callback, so rows whose upload never completed can linger.
type MediaAsset struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CareProfileID uuid.UUID `gorm:"type:uuid;index;not null" json:"careProfileId"`
	EntryID       uuid.UUID `gorm:"type:uuid;index;not null" json:"entryId"`
	Type          string    `gorm:"size:32" json:"type"`
	SpacesKey     string    `gorm:"not null" json:"spacesKey"`
	MimeType      string    `gorm:"size:128" json:"mimeType"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (m *MediaAsset) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
