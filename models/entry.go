package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EntryType string

const (
	EntryNote       EntryType = "NOTE"
	EntrySleep      EntryType = "SLEEP"
	EntryMeal       EntryType = "MEAL"
	EntrySymptom    EntryType = "SYMPTOM"
	EntryActivity   EntryType = "ACTIVITY"
	EntryMedication EntryType = "MEDICATION"
)

func ValidEntryType(t EntryType) bool {
	switch t {
	case EntryNote, EntrySleep, EntryMeal, EntrySymptom, EntryActivity, EntryMedication:
		return true
	}
	return false
}

// Entry is a single caregiver observation. Entries are immutable once
// created; there is no update or delete path.
//
// StructuredPayload is an opaque map whose shape depends on Type by
// convention only (e.g. {hours, quality} for SLEEP). Nothing cross-validates
// payload against type: the summary generator consumes it loosely.
type Entry struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CareProfileID     uuid.UUID      `gorm:"type:uuid;index;not null" json:"careProfileId"`
	AuthorID          uuid.UUID      `gorm:"type:uuid;not null" json:"authorId"`
	Type              EntryType      `gorm:"size:16;not null" json:"type"`
	Timestamp         time.Time      `gorm:"index;not null" json:"timestamp"`
	FreeText          string         `gorm:"type:text;not null" json:"freeText"`
	MoodScore         *int           `json:"moodScore,omitempty"`
	Tags              datatypes.JSON `json:"tags,omitempty"`
	StructuredPayload datatypes.JSON `json:"structuredPayload,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`

	Author      *User        `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	MediaAssets []MediaAsset `gorm:"foreignKey:EntryID" json:"mediaAssets,omitempty"`
}

func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
