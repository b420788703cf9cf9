package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bikramkgupta/care-circle-journal/models"
)

// MembershipGuard is the single authority for whether a user may act on a
// care profile and its sub-resources. Decisions are made purely from
// CareProfileMember rows.
type MembershipGuard struct {
	db *gorm.DB
}

func NewMembershipGuard(db *gorm.DB) *MembershipGuard {
	return &MembershipGuard{db: db}
}

func (g *MembershipGuard) member(ctx context.Context, userID, profileID uuid.UUID) (*models.CareProfileMember, error) {
	var m models.CareProfileMember
	err := g.db.WithContext(ctx).
		Where("care_profile_id = ? AND user_id = ?", profileID, userID).
		First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// IsMember gates every read on a profile, its entries, media and summaries.
func (g *MembershipGuard) IsMember(ctx context.Context, userID, profileID uuid.UUID) (bool, error) {
	m, err := g.member(ctx, userID, profileID)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}

// CanWrite gates entry creation and media presign issuance. GUEST members
// are read-only; that is a product invariant, not incidental.
func (g *MembershipGuard) CanWrite(ctx context.Context, userID, profileID uuid.UUID) (bool, error) {
	m, err := g.member(ctx, userID, profileID)
	if err != nil {
		return false, err
	}
	return m != nil && m.Role != models.RoleGuest, nil
}

// CanManage gates membership mutation on the profile itself.
func (g *MembershipGuard) CanManage(ctx context.Context, userID, profileID uuid.UUID) (bool, error) {
	m, err := g.member(ctx, userID, profileID)
	if err != nil {
		return false, err
	}
	return m != nil && m.Role == models.RoleOwner, nil
}
