package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PeriodType string

const (
	PeriodDaily   PeriodType = "DAILY"
	PeriodWeekly  PeriodType = "WEEKLY"
	PeriodMonthly PeriodType = "MONTHLY"
)

// AiSummary is unique per (profile, period type, period window). That tuple
// is the idempotency key: regenerating a summary for an already-summarized
// window replaces the row in place, never duplicates it. The uniqueness is
// enforced by the index so concurrent regenerations stay safe
// (last-writer-wins).
type AiSummary struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CareProfileID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_summaries_window" json:"careProfileId"`
	PeriodType    PeriodType     `gorm:"size:16;not null;uniqueIndex:idx_summaries_window" json:"periodType"`
	PeriodStart   time.Time      `gorm:"not null;uniqueIndex:idx_summaries_window" json:"periodStart"`
	PeriodEnd     time.Time      `gorm:"not null;uniqueIndex:idx_summaries_window" json:"periodEnd"`
	SummaryText   string         `gorm:"type:text;not null" json:"summaryText"`
	InsightsJson  datatypes.JSON `json:"insightsJson"`
	ModelName     string         `gorm:"size:64" json:"modelName"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func (s *AiSummary) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
