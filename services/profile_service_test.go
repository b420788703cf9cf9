package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bikramkgupta/care-circle-journal/models"
)

func TestProfileServiceCreateEnrollsOwner(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewProfileService(db, testLogger())

	owner := seedUser(t, db, "a@example.com")

	profile, err := svc.Create(ctx, owner.ID, "Alex", nil, "some notes")
	require.NoError(t, err)
	require.Equal(t, owner.ID, profile.OwnerID)
	require.Len(t, profile.Members, 1)
	require.Equal(t, models.RoleOwner, profile.Members[0].Role)
	require.Equal(t, owner.ID, profile.Members[0].UserID)

	// Same name under the same owner is a conflict.
	_, err = svc.Create(ctx, owner.ID, "Alex", nil, "")
	require.ErrorIs(t, err, ErrProfileExists)

	// A different owner can reuse the name.
	other := seedUser(t, db, "b@example.com")
	_, err = svc.Create(ctx, other.ID, "Alex", nil, "")
	require.NoError(t, err)
}

func TestProfileServiceListIsMemberFiltered(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewProfileService(db, testLogger())

	a := seedUser(t, db, "a@example.com")
	b := seedUser(t, db, "b@example.com")
	c := seedUser(t, db, "c@example.com")

	pa := seedProfile(t, db, a, "Alex")
	seedProfile(t, db, b, "Billie")
	addMember(t, db, pa, c, models.RoleGuest)

	// a sees only their own profile.
	got, err := svc.List(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, pa.ID, got[0].ID)

	// c, a guest on a's profile, sees it too.
	got, err = svc.List(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, pa.ID, got[0].ID)

	// b never appears in a's list no matter how many profiles b owns.
	got, err = svc.List(ctx, a.ID)
	require.NoError(t, err)
	for _, p := range got {
		require.NotEqual(t, b.ID, p.OwnerID)
	}

	// A user with no memberships gets an empty list, not an error.
	d := seedUser(t, db, "d@example.com")
	got, err = svc.List(ctx, d.ID)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestProfileServiceGetHidesExistence(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewProfileService(db, testLogger())

	a := seedUser(t, db, "a@example.com")
	b := seedUser(t, db, "b@example.com")
	pa := seedProfile(t, db, a, "Alex")

	got, err := svc.GetByID(ctx, pa.ID, a.ID)
	require.NoError(t, err)
	require.Equal(t, "Alex", got.Name)
	require.NotEmpty(t, got.Members)

	// Non-member lookup and nonexistent lookup are indistinguishable.
	_, err = svc.GetByID(ctx, pa.ID, b.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetByID(ctx, b.ID, b.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
