package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CareProfile is the person being cared for. Shared with every member of the
// circle; owned (and created) by exactly one user.
type CareProfile struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_care_profiles_owner_name" json:"ownerId"`
	Name        string     `gorm:"not null;uniqueIndex:idx_care_profiles_owner_name" json:"name"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`

	Members []CareProfileMember `gorm:"foreignKey:CareProfileID" json:"members,omitempty"`
}

func (p *CareProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
