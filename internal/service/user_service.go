package service

import (
	"context"
	"strings"

	"github.com/sefazor/photoclub-backend/internal/models"
	"github.com/sefazor/photoclub-backend/internal/repository"
	"go.uber.org/zap"
)

type UserService struct {
	store repository.Store
	log   *zap.Logger
}

func NewUserService(store repository.Store, log *zap.Logger) *UserService {
	return &UserService{store: store, log: log.Named("users")}
}

// EnsureUser creates or refreshes the user behind an authenticated identity.
// Username and bio are never touched here.
func (s *UserService) EnsureUser(ctx context.Context, id models.Identity) (*models.User, error) {
	if id.Subject == "" {
		return nil, validation("sub", "Identity subject is required")
	}
	user := &models.User{
		ID:              id.Subject,
		FirstName:       id.FirstName,
		LastName:        id.LastName,
		ProfileImageURL: id.ProfileImageURL,
	}
	if email := strings.TrimSpace(id.Email); email != "" {
		user.Email = &email
	}
	return s.store.UpsertUser(ctx, user)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) UpdateUsername(ctx context.Context, id, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, validation("username", "Username is required")
	}
	owner, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if owner != nil && owner.ID != id {
		return nil, ErrUsernameTaken
	}
	user, err := s.store.UpdateUsername(ctx, id, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	s.log.Info("username changed", zap.String("user_id", id), zap.String("username", username))
	return user, nil
}

func (s *UserService) UpdateBio(ctx context.Context, id, bio string) (*models.User, error) {
	user, err := s.store.UpdateUserBio(ctx, id, bio)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Stats counts what a user has. CompetitionCount covers active competitions
// of every organization the user belongs to.
func (s *UserService) Stats(ctx context.Context, id string) (*models.UserStats, error) {
	photos, err := s.store.ListPhotosByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	galleries, err := s.store.ListGalleriesByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	orgs, err := s.store.ListOrganizationsByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	stats := &models.UserStats{
		PhotoCount:        len(photos),
		GalleryCount:      len(galleries),
		OrganizationCount: len(orgs),
	}
	for _, org := range orgs {
		comps, err := s.store.ListCompetitionsByOrganization(ctx, org.ID)
		if err != nil {
			return nil, err
		}
		for _, c := range comps {
			if c.IsActive {
				stats.CompetitionCount++
			}
		}
	}
	return stats, nil
}
