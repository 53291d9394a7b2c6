package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/sefazor/photoclub-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store := NewGormStore(db)
	require.NoError(t, store.AutoMigrate())
	return store
}

// eachStore runs fn against both store variants so they stay interchangeable.
func eachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("memory", func(t *testing.T) { fn(t, NewMemoryStore()) })
	t.Run("sqlite", func(t *testing.T) { fn(t, newSQLiteStore(t)) })
}

func strPtr(v string) *string { return &v }
func uintPtr(v uint) *uint    { return &v }
func boolPtr(v bool) *bool    { return &v }

func seedUser(t *testing.T, s Store, id, username string) *models.User {
	t.Helper()
	u, err := s.UpsertUser(context.Background(), &models.User{
		ID:        id,
		Email:     strPtr(id + "@example.com"),
		FirstName: id,
		Username:  strPtr(username),
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

func seedOrganization(t *testing.T, s Store, name, creator string) *models.Organization {
	t.Helper()
	org := &models.Organization{Name: name}
	require.NoError(t, s.CreateOrganization(context.Background(), org, creator))
	require.NotZero(t, org.ID)
	return org
}

func seedPhoto(t *testing.T, s Store, owner string, public bool) *models.Photo {
	t.Helper()
	p := &models.Photo{Title: "photo", ImageURL: "https://img.example.com/p.jpg", UserID: owner, IsPublic: public}
	require.NoError(t, s.CreatePhoto(context.Background(), p))
	require.NotZero(t, p.ID)
	return p
}

func seedCompetition(t *testing.T, s Store, orgID uint, active bool) *models.Competition {
	t.Helper()
	c := &models.Competition{Name: "Spring", OrganizationID: orgID, IsActive: active}
	require.NoError(t, s.CreateCompetition(context.Background(), c))
	require.NotZero(t, c.ID)
	return c
}

func TestStore_UserUpsertKeepsProfileFields(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		seedUser(t, s, "alice", "alice")
		_, err := s.UpdateUserBio(ctx, "alice", "landscapes")
		require.NoError(t, err)

		u, err := s.UpsertUser(ctx, &models.User{ID: "alice", Email: strPtr("new@example.com"), FirstName: "Alice"})
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", *u.Email)
		assert.Equal(t, "Alice", u.FirstName)
		assert.Equal(t, "alice", u.UsernameOrEmpty())
		assert.Equal(t, "landscapes", u.Bio)

		byName, err := s.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, byName)
		assert.Equal(t, "alice", byName.ID)

		missing, err := s.UpdateUsername(ctx, "nobody", "ghost")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func TestStore_CreateOrganizationGrantsAdmin(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		seedUser(t, s, "alice", "alice")
		org := seedOrganization(t, s, "Nature Club", "alice")

		m, err := s.GetMembership(ctx, models.MembershipKey{UserID: "alice", OrganizationID: org.ID})
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.True(t, m.IsAdmin)

		count, err := s.CountAdmins(ctx, org.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})
}

func TestStore_CreateOrganizationIsAtomic(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		err := s.CreateOrganization(ctx, &models.Organization{Name: "Orphan"}, "nobody")
		require.Error(t, err)

		orgs, err := s.ListOrganizations(ctx)
		require.NoError(t, err)
		assert.Empty(t, orgs)
	})
}

func TestStore_OrganizationOrdering(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		seedUser(t, s, "alice", "alice")
		seedUser(t, s, "bob", "bob")
		seedOrganization(t, s, "Zoom", "alice")
		seedOrganization(t, s, "Aperture", "alice")
		mine := seedOrganization(t, s, "Macro", "bob")

		orgs, err := s.ListOrganizations(ctx)
		require.NoError(t, err)
		require.Len(t, orgs, 3)
		assert.Equal(t, []string{"Aperture", "Macro", "Zoom"}, []string{orgs[0].Name, orgs[1].Name, orgs[2].Name})

		bobs, err := s.ListOrganizationsByUser(ctx, "bob")
		require.NoError(t, err)
		require.Len(t, bobs, 1)
		assert.Equal(t, mine.ID, bobs[0].ID)
	})
}

func TestStore_MembershipUpsertOverwritesRole(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		seedUser(t, s, "alice", "alice")
		seedUser(t, s, "bob", "bob")
		org := seedOrganization(t, s, "Nature Club", "alice")
		key := models.MembershipKey{UserID: "bob", OrganizationID: org.ID}

		require.NoError(t, s.UpsertMembership(ctx, &models.Membership{UserID: "bob", OrganizationID: org.ID}))
		before, err := s.GetMembership(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, before)
		assert.False(t, before.IsAdmin)

		require.NoError(t, s.UpsertMembership(ctx, &models.Membership{UserID: "bob", OrganizationID: org.ID, IsAdmin: true}))
		after, err := s.GetMembership(ctx, key)
		require.NoError(t, err)
		assert.True(t, after.IsAdmin)
		assert.True(t, before.JoinedAt.Equal(after.JoinedAt))

		members, err := s.ListMembers(ctx, org.ID)
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, "alice", members[0].UserID)
		assert.Equal(t, "bob", members[1].UserID)
		require.NotNil(t, members[1].User)
		assert.Equal(t, "bob", members[1].User.UsernameOrEmpty())

		admins, err := s.ListAdmins(ctx, org.ID)
		require.NoError(t, err)
		assert.Len(t, admins, 2)

		removed, err := s.DeleteMembership(ctx, key)
		require.NoError(t, err)
		assert.True(t, removed)
		removed, err = s.DeleteMembership(ctx, key)
		require.NoError(t, err)
		assert.False(t, removed)
	})
}

func TestStore_DeleteOrganizationCascades(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		seedUser(t, s, "alice", "alice")
		org := seedOrganization(t, s, "Nature Club", "alice")
		comp := seedCompetition(t, s, org.ID, true)
		photo := seedPhoto(t, s, "alice", true)
		subKey := models.SubmissionKey{CompetitionID: comp.ID, PhotoID: photo.ID}
		require.NoError(t, s.UpsertSubmission(ctx, &models.Submission{CompetitionID: comp.ID, PhotoID: photo.ID}))
		require.NoError(t, s.UpsertRating(ctx, &models.Rating{PhotoID: photo.ID, UserID: "alice", IsCompetitionRating: true, CompetitionID: comp.ID, Rating: 4}))
		require.NoError(t, s.UpsertRating(ctx, &models.Rating{PhotoID: photo.ID, UserID: "alice", Rating: 2}))

		deleted, err := s.DeleteOrganization(ctx, org.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		gotComp, err := s.GetCompetition(ctx, comp.ID)
		require.NoError(t, err)
		assert.Nil(t, gotComp)
		has, err := s.HasSubmission(ctx, subKey)
		require.NoError(t, err)
		assert.False(t, has)
		m, err := s.GetMembership(ctx, models.MembershipKey{UserID: "alice", OrganizationID: org.ID})
		require.NoError(t, err)
		assert.Nil(t, m)
		compRatings, err := s.ListCompetitionPhotoRatings(ctx, photo.ID, comp.ID)
		require.NoError(t, err)
		assert.Empty(t, compRatings)

		general, err := s.ListPhotoRatings(ctx, photo.ID)
		require.NoError(t, err)
		assert.Len(t, general, 1)
		gotPhoto, err := s.GetPhoto(ctx, photo.ID)
		require.NoError(t, err)
		assert.NotNil(t, gotPhoto)

		deleted, err = s.DeleteOrganization(ctx, org.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestStore_SubmissionUpsertIsIdempotent(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		seedUser(t, s, "bob", "bob")
		org := seedOrganization(t, s, "Nature Club", "bob")
		comp := seedCompetition(t, s, org.ID, true)
		photo := seedPhoto(t, s, "bob", true)

		for i := 0; i < 3; i++ {
			require.NoError(t, s.UpsertSubmission(ctx, &models.Submission{CompetitionID: comp.ID, PhotoID: photo.ID}))
		}
		subs, err := s.ListSubmissions(ctx, comp.ID)
		require.NoError(t, err)
		require.Len(t, subs, 1)
		require.NotNil(t, subs[0].Photo)
		assert.Equal(t, photo.ID, subs[0].Photo.ID)
	})
}

func TestStore_DeleteCompetitionKeepsPhotos(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		seedUser(t, s, "alice", "alice")
		seedUser(t, s, "bob", "bob")
		org := seedOrganization(t, s, "Nature Club", "alice")
		comp := seedCompetition(t, s, org.ID, true)
		photo := seedPhoto(t, s, "bob", true)
		require.NoError(t, s.UpsertSubmission(ctx, &models.Submission{CompetitionID: comp.ID, PhotoID: photo.ID}))

		deleted, err := s.DeleteCompetition(ctx, comp.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		has, err := s.HasSubmission(ctx, models.SubmissionKey{CompetitionID: comp.ID, PhotoID: photo.ID})
		require.NoError(t, err)
		assert.False(t, has)
		got, err := s.GetPhoto(ctx, photo.ID)
		require.NoError(t, err)
		assert.NotNil(t, got)
	})
}

func TestStore_RatingUpsertAndAverages(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		seedUser(t, s, "alice", "alice")
		seedUser(t, s, "bob", "bob")
		org := seedOrganization(t, s, "Nature Club", "alice")
		spring := seedCompetition(t, s, org.ID, true)
		autumn := seedCompetition(t, s, org.ID, true)
		photo := seedPhoto(t, s, "bob", true)

		avg, err := s.PhotoAverageRating(ctx, photo.ID)
		require.NoError(t, err)
		assert.Nil(t, avg)

		require.NoError(t, s.UpsertRating(ctx, &models.Rating{PhotoID: photo.ID, UserID: "alice", Rating: 1}))
		require.NoError(t, s.UpsertRating(ctx, &models.Rating{PhotoID: photo.ID, UserID: "alice", Rating: 5}))
		require.NoError(t, s.UpsertRating(ctx, &models.Rating{PhotoID: photo.ID, UserID: "bob", Rating: 3}))
		require.NoError(t, s.UpsertRating(ctx, &models.Rating{PhotoID: photo.ID, UserID: "alice", IsCompetitionRating: true, CompetitionID: spring.ID, Rating: 2}))
		require.NoError(t, s.UpsertRating(ctx, &models.Rating{PhotoID: photo.ID, UserID: "alice", IsCompetitionRating: true, CompetitionID: autumn.ID, Rating: 0}))

		general, err := s.ListPhotoRatings(ctx, photo.ID)
		require.NoError(t, err)
		assert.Len(t, general, 2)
		avg, err = s.PhotoAverageRating(ctx, photo.ID)
		require.NoError(t, err)
		require.NotNil(t, avg)
		assert.InDelta(t, 4.0, *avg, 1e-9)

		springAvg, err := s.CompetitionPhotoAverageRating(ctx, photo.ID, spring.ID)
		require.NoError(t, err)
		require.NotNil(t, springAvg)
		assert.InDelta(t, 2.0, *springAvg, 1e-9)

		autumnAvg, err := s.CompetitionPhotoAverageRating(ctx, photo.ID, autumn.ID)
		require.NoError(t, err)
		require.NotNil(t, autumnAvg)
		assert.InDelta(t, 0.0, *autumnAvg, 1e-9)

		r, err := s.GetRating(ctx, models.RatingKey{PhotoID: photo.ID, UserID: "alice"})
		require.NoError(t, err)
		require.NotNil(t, r)
		assert.Equal(t, 5.0, r.Rating)
	})
}

func TestStore_PhotoListingAndCounters(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		seedUser(t, s, "alice", "alice")
		first := seedPhoto(t, s, "alice", true)
		hidden := seedPhoto(t, s, "alice", false)
		last := seedPhoto(t, s, "alice", true)

		recent, err := s.ListRecentPublicPhotos(ctx, 0)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, last.ID, recent[0].ID)
		assert.Equal(t, first.ID, recent[1].ID)
		require.NotNil(t, recent[0].User)
		assert.Equal(t, "alice", recent[0].User.ID)

		limited, err := s.ListRecentPublicPhotos(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)

		mine, err := s.ListPhotosByUser(ctx, "alice")
		require.NoError(t, err)
		assert.Len(t, mine, 3)
		assert.Equal(t, last.ID, mine[0].ID)

		require.NoError(t, s.IncrementPhotoViews(ctx, hidden.ID))
		require.NoError(t, s.IncrementPhotoViews(ctx, hidden.ID))
		got, err := s.GetPhoto(ctx, hidden.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.ViewCount)

		upd, err := s.UpdatePhoto(ctx, hidden.ID, models.PhotoUpdate{Title: strPtr("renamed"), IsPublic: boolPtr(true)})
		require.NoError(t, err)
		require.NotNil(t, upd)
		assert.Equal(t, "renamed", upd.Title)
		assert.True(t, upd.IsPublic)

		missing, err := s.UpdatePhoto(ctx, 9999, models.PhotoUpdate{Title: strPtr("x")})
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func TestStore_DeletePhotoCascades(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		seedUser(t, s, "alice", "alice")
		org := seedOrganization(t, s, "Nature Club", "alice")
		comp := seedCompetition(t, s, org.ID, true)
		photo := seedPhoto(t, s, "alice", true)
		require.NoError(t, s.UpsertSubmission(ctx, &models.Submission{CompetitionID: comp.ID, PhotoID: photo.ID}))
		require.NoError(t, s.UpsertRating(ctx, &models.Rating{PhotoID: photo.ID, UserID: "alice", Rating: 3}))

		deleted, err := s.DeletePhoto(ctx, photo.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		subs, err := s.ListSubmissions(ctx, comp.ID)
		require.NoError(t, err)
		assert.Empty(t, subs)
		ratings, err := s.ListPhotoRatings(ctx, photo.ID)
		require.NoError(t, err)
		assert.Empty(t, ratings)
	})
}

func TestStore_DeleteGalleryDetachesPhotos(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		seedUser(t, s, "alice", "alice")
		gallery := &models.Gallery{Name: "Birds", UserID: "alice", IsPublic: true}
		require.NoError(t, s.CreateGallery(ctx, gallery))
		assert.Zero(t, gallery.LikeCount)

		photo := &models.Photo{Title: "heron", ImageURL: "https://img.example.com/h.jpg", UserID: "alice", GalleryID: uintPtr(gallery.ID)}
		require.NoError(t, s.CreatePhoto(ctx, photo))

		inGallery, err := s.ListPhotosByGallery(ctx, gallery.ID)
		require.NoError(t, err)
		assert.Len(t, inGallery, 1)

		require.NoError(t, s.IncrementGalleryLikes(ctx, gallery.ID))
		require.NoError(t, s.IncrementGalleryViews(ctx, gallery.ID))
		got, err := s.GetGallery(ctx, gallery.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.LikeCount)
		assert.Equal(t, 1, got.ViewCount)

		deleted, err := s.DeleteGallery(ctx, gallery.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		kept, err := s.GetPhoto(ctx, photo.ID)
		require.NoError(t, err)
		require.NotNil(t, kept)
		assert.Nil(t, kept.GalleryID)
	})
}

func TestStore_ClearGallery(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		seedUser(t, s, "alice", "alice")
		gallery := &models.Gallery{Name: "Birds", UserID: "alice"}
		require.NoError(t, s.CreateGallery(ctx, gallery))
		photo := seedPhoto(t, s, "alice", true)

		upd, err := s.UpdatePhoto(ctx, photo.ID, models.PhotoUpdate{GalleryID: uintPtr(gallery.ID)})
		require.NoError(t, err)
		require.NotNil(t, upd.GalleryID)
		assert.Equal(t, gallery.ID, *upd.GalleryID)

		upd, err = s.UpdatePhoto(ctx, photo.ID, models.PhotoUpdate{ClearGallery: true})
		require.NoError(t, err)
		assert.Nil(t, upd.GalleryID)
	})
}

func TestStore_ActiveCompetitions(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		seedUser(t, s, "alice", "alice")
		org := seedOrganization(t, s, "Nature Club", "alice")
		active := seedCompetition(t, s, org.ID, true)
		seedCompetition(t, s, org.ID, false)

		comps, err := s.ListActiveCompetitions(ctx)
		require.NoError(t, err)
		require.Len(t, comps, 1)
		assert.Equal(t, active.ID, comps[0].ID)

		all, err := s.ListCompetitionsByOrganization(ctx, org.ID)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		upd, err := s.UpdateCompetition(ctx, active.ID, models.CompetitionUpdate{IsActive: boolPtr(false)})
		require.NoError(t, err)
		assert.False(t, upd.IsActive)
	})
}
