package service

import (
	"context"
	"testing"

	"github.com/sefazor/photoclub-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrganizationService_CreatorIsAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "alice")
	org := f.organization(t, "alice", "Nature Club")

	admin, err := f.access.IsAdmin(ctx, "alice", org.ID)
	require.NoError(t, err)
	assert.True(t, admin)

	admins, err := f.organizations.Admins(ctx, org.ID)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "alice", admins[0].UserID)
}

func TestOrganizationService_CreateRejectsBlankName(t *testing.T) {
	f := newFixture(t)
	f.user(t, "alice")
	_, err := f.organizations.Create(context.Background(), "alice", models.OrganizationRequest{Name: "   "})
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestOrganizationService_MembershipRoles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "alice")
	f.user(t, "bob")
	org := f.organization(t, "alice", "Nature Club")
	f.join(t, "alice", org.ID, "bob", false)

	member, err := f.access.IsMember(ctx, "bob", org.ID)
	require.NoError(t, err)
	assert.True(t, member)
	admin, err := f.access.IsAdmin(ctx, "bob", org.ID)
	require.NoError(t, err)
	assert.False(t, admin)

	// Re-adding overwrites the role instead of adding a row.
	f.join(t, "alice", org.ID, "bob", true)
	members, err := f.organizations.Members(ctx, org.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)
	admin, err = f.access.IsAdmin(ctx, "bob", org.ID)
	require.NoError(t, err)
	assert.True(t, admin)
}

func TestOrganizationService_AddMemberChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "alice")
	f.user(t, "bob")
	org := f.organization(t, "alice", "Nature Club")

	_, err := f.organizations.AddMember(ctx, "alice", org.ID, models.AddMemberRequest{UserID: "ghost"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.organizations.AddMember(ctx, "bob", org.ID, models.AddMemberRequest{UserID: "bob", IsAdmin: true})
	assert.ErrorIs(t, err, ErrNotAdmin)

	_, err = f.organizations.AddMember(ctx, "alice", 999, models.AddMemberRequest{UserID: "bob"})
	assert.ErrorIs(t, err, ErrOrganizationNotFound)
}

func TestOrganizationService_LastAdminCannotLeave(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "alice")
	f.user(t, "bob")
	org := f.organization(t, "alice", "Nature Club")
	f.join(t, "alice", org.ID, "bob", false)

	err := f.organizations.RemoveMember(ctx, "alice", org.ID, "alice")
	assert.ErrorIs(t, err, ErrLastAdmin)

	// Removing someone else is not affected by the rule.
	require.NoError(t, f.organizations.RemoveMember(ctx, "alice", org.ID, "bob"))
	member, err := f.access.IsMember(ctx, "bob", org.ID)
	require.NoError(t, err)
	assert.False(t, member)

	// With a second admin the first may step down.
	f.join(t, "alice", org.ID, "bob", true)
	require.NoError(t, f.organizations.RemoveMember(ctx, "alice", org.ID, "alice"))
	member, err = f.access.IsMember(ctx, "alice", org.ID)
	require.NoError(t, err)
	assert.False(t, member)
}

func TestOrganizationService_RemoveRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "alice")
	f.user(t, "bob")
	org := f.organization(t, "alice", "Nature Club")
	f.join(t, "alice", org.ID, "bob", false)

	err := f.organizations.RemoveMember(ctx, "bob", org.ID, "alice")
	assert.ErrorIs(t, err, ErrNotAdmin)
	assert.NoError(t, f.organizations.RemoveMember(ctx, "alice", org.ID, "nobody"))
}

func TestOrganizationService_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "alice")
	f.user(t, "bob")
	org := f.organization(t, "alice", "Nature Club")

	_, err := f.organizations.Update(ctx, "bob", org.ID, models.UpdateOrganizationRequest{Name: ptr("Mine")})
	assert.ErrorIs(t, err, ErrNotAdmin)

	updated, err := f.organizations.Update(ctx, "alice", org.ID, models.UpdateOrganizationRequest{Description: ptr("Birds and trees")})
	require.NoError(t, err)
	assert.Equal(t, "Nature Club", updated.Name)
	assert.Equal(t, "Birds and trees", updated.Description)

	assert.ErrorIs(t, f.organizations.Delete(ctx, "bob", org.ID), ErrNotAdmin)
	require.NoError(t, f.organizations.Delete(ctx, "alice", org.ID))
	_, err = f.organizations.Get(ctx, org.ID)
	assert.ErrorIs(t, err, ErrOrganizationNotFound)
	assert.ErrorIs(t, f.organizations.Delete(ctx, "alice", org.ID), ErrOrganizationNotFound)
}
