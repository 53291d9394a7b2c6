// Package repository holds the entity store. Lookups report absence as a nil
// result and deletes report it as false; errors are reserved for storage
// failures. GormStore and MemoryStore implement the same Store contract.
package repository

import (
	"context"

	"github.com/sefazor/photoclub-backend/internal/models"
)

type UserStore interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// UpsertUser writes identity fields only; username and bio survive.
	UpsertUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUsername(ctx context.Context, id, username string) (*models.User, error)
	UpdateUserBio(ctx context.Context, id, bio string) (*models.User, error)
}

type OrganizationStore interface {
	// CreateOrganization stores org and an admin membership for creatorID
	// as one unit.
	CreateOrganization(ctx context.Context, org *models.Organization, creatorID string) error
	GetOrganization(ctx context.Context, id uint) (*models.Organization, error)
	ListOrganizations(ctx context.Context) ([]models.Organization, error)
	ListOrganizationsByUser(ctx context.Context, userID string) ([]models.Organization, error)
	UpdateOrganization(ctx context.Context, id uint, upd models.OrganizationUpdate) (*models.Organization, error)
	DeleteOrganization(ctx context.Context, id uint) (bool, error)
}

type MembershipStore interface {
	UpsertMembership(ctx context.Context, m *models.Membership) error
	DeleteMembership(ctx context.Context, key models.MembershipKey) (bool, error)
	GetMembership(ctx context.Context, key models.MembershipKey) (*models.Membership, error)
	ListMembers(ctx context.Context, orgID uint) ([]models.Membership, error)
	ListAdmins(ctx context.Context, orgID uint) ([]models.Membership, error)
	CountAdmins(ctx context.Context, orgID uint) (int64, error)
}

type PhotoStore interface {
	CreatePhoto(ctx context.Context, photo *models.Photo) error
	GetPhoto(ctx context.Context, id uint) (*models.Photo, error)
	ListPhotosByUser(ctx context.Context, userID string) ([]models.Photo, error)
	ListPhotosByGallery(ctx context.Context, galleryID uint) ([]models.Photo, error)
	ListRecentPublicPhotos(ctx context.Context, limit int) ([]models.Photo, error)
	UpdatePhoto(ctx context.Context, id uint, upd models.PhotoUpdate) (*models.Photo, error)
	DeletePhoto(ctx context.Context, id uint) (bool, error)
	IncrementPhotoViews(ctx context.Context, id uint) error
}

type GalleryStore interface {
	CreateGallery(ctx context.Context, gallery *models.Gallery) error
	GetGallery(ctx context.Context, id uint) (*models.Gallery, error)
	ListGalleriesByUser(ctx context.Context, userID string) ([]models.Gallery, error)
	UpdateGallery(ctx context.Context, id uint, upd models.GalleryUpdate) (*models.Gallery, error)
	// DeleteGallery keeps the gallery's photos and clears their gallery id.
	DeleteGallery(ctx context.Context, id uint) (bool, error)
	IncrementGalleryViews(ctx context.Context, id uint) error
	IncrementGalleryLikes(ctx context.Context, id uint) error
}

type CompetitionStore interface {
	CreateCompetition(ctx context.Context, comp *models.Competition) error
	GetCompetition(ctx context.Context, id uint) (*models.Competition, error)
	ListCompetitionsByOrganization(ctx context.Context, orgID uint) ([]models.Competition, error)
	ListActiveCompetitions(ctx context.Context) ([]models.Competition, error)
	UpdateCompetition(ctx context.Context, id uint, upd models.CompetitionUpdate) (*models.Competition, error)
	DeleteCompetition(ctx context.Context, id uint) (bool, error)
}

type SubmissionStore interface {
	UpsertSubmission(ctx context.Context, sub *models.Submission) error
	DeleteSubmission(ctx context.Context, key models.SubmissionKey) (bool, error)
	HasSubmission(ctx context.Context, key models.SubmissionKey) (bool, error)
	ListSubmissions(ctx context.Context, competitionID uint) ([]models.Submission, error)
}

type RatingStore interface {
	UpsertRating(ctx context.Context, rating *models.Rating) error
	GetRating(ctx context.Context, key models.RatingKey) (*models.Rating, error)
	ListPhotoRatings(ctx context.Context, photoID uint) ([]models.Rating, error)
	PhotoAverageRating(ctx context.Context, photoID uint) (*float64, error)
	ListCompetitionPhotoRatings(ctx context.Context, photoID, competitionID uint) ([]models.Rating, error)
	CompetitionPhotoAverageRating(ctx context.Context, photoID, competitionID uint) (*float64, error)
}

type Store interface {
	UserStore
	OrganizationStore
	MembershipStore
	PhotoStore
	GalleryStore
	CompetitionStore
	SubmissionStore
	RatingStore

	Backend() string
	Ping(ctx context.Context) error
}

// DefaultRecentLimit applies when a caller asks for a non-positive number of
// recent photos.
const DefaultRecentLimit = 20

// Models lists every table in migration order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Organization{},
		&models.Membership{},
		&models.Gallery{},
		&models.Photo{},
		&models.Competition{},
		&models.Submission{},
		&models.Rating{},
	}
}
