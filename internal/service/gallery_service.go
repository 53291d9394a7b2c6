package service

import (
	"context"
	"strings"

	"github.com/sefazor/photoclub-backend/internal/models"
	"github.com/sefazor/photoclub-backend/internal/repository"
	"go.uber.org/zap"
)

type GalleryService struct {
	store repository.Store
	log   *zap.Logger
}

func NewGalleryService(store repository.Store, log *zap.Logger) *GalleryService {
	return &GalleryService{store: store, log: log.Named("galleries")}
}

func (s *GalleryService) Create(ctx context.Context, userID string, req models.CreateGalleryRequest) (*models.Gallery, error) {
	gallery := &models.Gallery{
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		UserID:       userID,
		CoverPhotoID: req.CoverPhotoID,
		IsPublic:     true,
	}
	if gallery.Name == "" {
		return nil, validation("name", "Gallery name is required")
	}
	if req.IsPublic != nil {
		gallery.IsPublic = *req.IsPublic
	}
	if err := s.store.CreateGallery(ctx, gallery); err != nil {
		return nil, err
	}
	return gallery, nil
}

// Get returns the gallery and counts the view.
func (s *GalleryService) Get(ctx context.Context, id uint) (*models.Gallery, error) {
	gallery, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.IncrementGalleryViews(ctx, id); err != nil {
		return nil, err
	}
	gallery.ViewCount++
	return gallery, nil
}

func (s *GalleryService) ListByUser(ctx context.Context, userID string) ([]models.Gallery, error) {
	return s.store.ListGalleriesByUser(ctx, userID)
}

func (s *GalleryService) Update(ctx context.Context, userID string, id uint, req models.UpdateGalleryRequest) (*models.Gallery, error) {
	if err := s.checkOwner(ctx, userID, id); err != nil {
		return nil, err
	}
	upd := models.GalleryUpdate{
		Description:  req.Description,
		CoverPhotoID: req.CoverPhotoID,
		IsPublic:     req.IsPublic,
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, validation("name", "Gallery name is required")
		}
		upd.Name = &name
	}
	gallery, err := s.store.UpdateGallery(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if gallery == nil {
		return nil, ErrGalleryNotFound
	}
	return gallery, nil
}

// Delete removes the gallery; its photos stay and lose their gallery id.
func (s *GalleryService) Delete(ctx context.Context, userID string, id uint) error {
	if err := s.checkOwner(ctx, userID, id); err != nil {
		return err
	}
	deleted, err := s.store.DeleteGallery(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrGalleryNotFound
	}
	s.log.Info("gallery deleted", zap.Uint("gallery_id", id), zap.String("user_id", userID))
	return nil
}

func (s *GalleryService) Like(ctx context.Context, id uint) (*models.Gallery, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	if err := s.store.IncrementGalleryLikes(ctx, id); err != nil {
		return nil, err
	}
	return s.find(ctx, id)
}

func (s *GalleryService) find(ctx context.Context, id uint) (*models.Gallery, error) {
	gallery, err := s.store.GetGallery(ctx, id)
	if err != nil {
		return nil, err
	}
	if gallery == nil {
		return nil, ErrGalleryNotFound
	}
	return gallery, nil
}

func (s *GalleryService) checkOwner(ctx context.Context, userID string, id uint) error {
	gallery, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if gallery.UserID != userID {
		return ErrNotGalleryOwner
	}
	return nil
}
