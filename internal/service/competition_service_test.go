package service

import (
	"context"
	"testing"
	"time"

	"github.com/sefazor/photoclub-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompetitionService_NatureClubWalkthrough(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "alice")
	f.user(t, "bob")
	club := f.organization(t, "alice", "Nature Club")
	f.join(t, "alice", club.ID, "bob", false)
	spring := f.competition(t, "alice", club.ID, true)
	photo := f.photo(t, "bob")

	sub, err := f.competitions.Submit(ctx, "bob", spring.ID, photo.ID)
	require.NoError(t, err)
	assert.Equal(t, photo.ID, sub.PhotoID)

	has, err := f.store.HasSubmission(ctx, models.SubmissionKey{CompetitionID: spring.ID, PhotoID: photo.ID})
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, f.competitions.Delete(ctx, "alice", spring.ID))

	has, err = f.store.HasSubmission(ctx, models.SubmissionKey{CompetitionID: spring.ID, PhotoID: photo.ID})
	require.NoError(t, err)
	assert.False(t, has)
	kept, err := f.photos.Get(ctx, photo.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", kept.UserID)
}

func TestCompetitionService_SubmitPreconditions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "alice")
	f.user(t, "bob")
	f.user(t, "carol")
	club := f.organization(t, "alice", "Nature Club")
	f.join(t, "alice", club.ID, "bob", false)
	active := f.competition(t, "alice", club.ID, true)
	closed := f.competition(t, "alice", club.ID, false)
	bobs := f.photo(t, "bob")
	carols := f.photo(t, "carol")

	tests := []struct {
		name    string
		user    string
		comp    uint
		photo   uint
		wantErr error
	}{
		{"missing competition", "bob", 999, bobs.ID, ErrCompetitionNotFound},
		{"inactive competition", "bob", closed.ID, bobs.ID, ErrCompetitionClosed},
		{"missing photo", "bob", active.ID, 999, ErrPhotoNotFound},
		{"someone else's photo", "bob", active.ID, carols.ID, ErrNotPhotoOwner},
		{"not a member", "carol", active.ID, carols.ID, ErrNotMember},
		{"inactive wins over missing photo", "bob", closed.ID, 999, ErrCompetitionClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.competitions.Submit(ctx, tt.user, tt.comp, tt.photo)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	subs, err := f.competitions.Submissions(ctx, active.ID)
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestCompetitionService_ResubmitKeepsOneRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "bob")
	club := f.organization(t, "bob", "Macro")
	comp := f.competition(t, "bob", club.ID, true)
	photo := f.photo(t, "bob")

	first, err := f.competitions.Submit(ctx, "bob", comp.ID, photo.ID)
	require.NoError(t, err)
	second, err := f.competitions.Submit(ctx, "bob", comp.ID, photo.ID)
	require.NoError(t, err)
	assert.False(t, second.SubmittedAt.Before(first.SubmittedAt))

	subs, err := f.competitions.Submissions(ctx, comp.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.True(t, subs[0].SubmittedAt.Equal(second.SubmittedAt))
}

func TestCompetitionService_Withdraw(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "alice")
	f.user(t, "bob")
	f.user(t, "carol")
	club := f.organization(t, "alice", "Nature Club")
	f.join(t, "alice", club.ID, "bob", false)
	f.join(t, "alice", club.ID, "carol", false)
	comp := f.competition(t, "alice", club.ID, true)
	photo := f.photo(t, "bob")
	key := models.SubmissionKey{CompetitionID: comp.ID, PhotoID: photo.ID}

	_, err := f.competitions.Submit(ctx, "bob", comp.ID, photo.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, f.competitions.Withdraw(ctx, "carol", comp.ID, photo.ID), ErrCannotWithdraw)

	require.NoError(t, f.competitions.Withdraw(ctx, "bob", comp.ID, photo.ID))
	has, err := f.store.HasSubmission(ctx, key)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = f.competitions.Submit(ctx, "bob", comp.ID, photo.ID)
	require.NoError(t, err)
	require.NoError(t, f.competitions.Withdraw(ctx, "alice", comp.ID, photo.ID))
	has, err = f.store.HasSubmission(ctx, key)
	require.NoError(t, err)
	assert.False(t, has)

	// Withdrawing twice is not an error.
	assert.NoError(t, f.competitions.Withdraw(ctx, "bob", comp.ID, photo.ID))
}

func TestCompetitionService_CreateRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "alice")
	f.user(t, "bob")
	club := f.organization(t, "alice", "Nature Club")
	f.join(t, "alice", club.ID, "bob", false)

	_, err := f.competitions.Create(ctx, "bob", club.ID, models.CompetitionRequest{Name: "Mine"})
	assert.ErrorIs(t, err, ErrNotAdmin)

	_, err = f.competitions.Create(ctx, "alice", 999, models.CompetitionRequest{Name: "Lost"})
	assert.ErrorIs(t, err, ErrOrganizationNotFound)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err = f.competitions.Create(ctx, "alice", club.ID, models.CompetitionRequest{
		Name:      "Backwards",
		StartDate: &start,
		EndDate:   ptr(start.Add(-time.Hour)),
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	comp, err := f.competitions.Create(ctx, "alice", club.ID, models.CompetitionRequest{Name: "Spring 2024"})
	require.NoError(t, err)
	assert.True(t, comp.IsActive)
	assert.False(t, comp.StartDate.IsZero())

	active, err := f.competitions.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestCompetitionService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "alice")
	f.user(t, "bob")
	club := f.organization(t, "alice", "Nature Club")
	comp := f.competition(t, "alice", club.ID, true)

	_, err := f.competitions.Update(ctx, "bob", comp.ID, models.UpdateCompetitionRequest{IsActive: ptr(false)})
	assert.ErrorIs(t, err, ErrNotAdmin)

	_, err = f.competitions.Update(ctx, "alice", comp.ID, models.UpdateCompetitionRequest{EndDate: ptr(comp.StartDate.Add(-time.Minute))})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	updated, err := f.competitions.Update(ctx, "alice", comp.ID, models.UpdateCompetitionRequest{IsActive: ptr(false)})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}
