package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberRole string

const (
	RoleOwner     MemberRole = "OWNER"
	RoleCaregiver MemberRole = "CAREGIVER"
	RoleGuest     MemberRole = "GUEST"
)

// CareProfileMember rows are the sole source of truth for who may see or
// write a profile's data. No other table is consulted for access decisions.
type CareProfileMember struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CareProfileID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_members_profile_user" json:"careProfileId"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_members_profile_user" json:"userId"`
	Role          MemberRole `gorm:"size:16;not null" json:"role"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func (m *CareProfileMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
