package service

import (
	"context"
	"testing"

	"github.com/sefazor/photoclub-backend/internal/models"
	"github.com/sefazor/photoclub-backend/internal/repository"
	"github.com/sefazor/photoclub-backend/internal/telemetry"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	store         *repository.MemoryStore
	access        *AccessService
	users         *UserService
	organizations *OrganizationService
	photos        *PhotoService
	galleries     *GalleryService
	competitions  *CompetitionService
	ratings       *RatingService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	log := zap.NewNop()
	metrics := telemetry.New()
	access := NewAccessService(store)
	return &fixture{
		store:         store,
		access:        access,
		users:         NewUserService(store, log),
		organizations: NewOrganizationService(store, access, log),
		photos:        NewPhotoService(store, nil, 1<<20, log),
		galleries:     NewGalleryService(store, log),
		competitions:  NewCompetitionService(store, access, metrics, log),
		ratings:       NewRatingService(store, access, metrics, log),
	}
}

func (f *fixture) user(t *testing.T, id string) *models.User {
	t.Helper()
	u, err := f.users.EnsureUser(context.Background(), models.Identity{Subject: id, Email: id + "@example.com", FirstName: id})
	require.NoError(t, err)
	_, err = f.users.UpdateUsername(context.Background(), id, id)
	require.NoError(t, err)
	return u
}

func (f *fixture) organization(t *testing.T, creator, name string) *models.Organization {
	t.Helper()
	org, err := f.organizations.Create(context.Background(), creator, models.OrganizationRequest{Name: name})
	require.NoError(t, err)
	return org
}

func (f *fixture) join(t *testing.T, admin string, orgID uint, userID string, isAdmin bool) {
	t.Helper()
	_, err := f.organizations.AddMember(context.Background(), admin, orgID, models.AddMemberRequest{UserID: userID, IsAdmin: isAdmin})
	require.NoError(t, err)
}

func (f *fixture) competition(t *testing.T, admin string, orgID uint, active bool) *models.Competition {
	t.Helper()
	comp, err := f.competitions.Create(context.Background(), admin, orgID, models.CompetitionRequest{Name: "Spring 2024", IsActive: &active})
	require.NoError(t, err)
	return comp
}

func (f *fixture) photo(t *testing.T, owner string) *models.Photo {
	t.Helper()
	p, err := f.photos.Create(context.Background(), owner, models.CreatePhotoRequest{Title: "heron", ImageURL: "https://img.example.com/heron.jpg"})
	require.NoError(t, err)
	return p
}

func ptr[T any](v T) *T { return &v }
