package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sefazor/photoclub-backend/internal/models"
	"github.com/sefazor/photoclub-backend/internal/repository"
	"github.com/sefazor/photoclub-backend/pkg/storage"
	"go.uber.org/zap"
)

// MaxRecentLimit caps the number of photos a recent feed may request.
const MaxRecentLimit = 100

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type PhotoService struct {
	store          repository.Store
	storage        storage.ObjectStorage
	uploadMaxBytes int64
	log            *zap.Logger
}

// NewPhotoService builds the service. A nil objects store disables uploads.
func NewPhotoService(store repository.Store, objects storage.ObjectStorage, uploadMaxBytes int64, log *zap.Logger) *PhotoService {
	return &PhotoService{
		store:          store,
		storage:        objects,
		uploadMaxBytes: uploadMaxBytes,
		log:            log.Named("photos"),
	}
}

func (s *PhotoService) Create(ctx context.Context, userID string, req models.CreatePhotoRequest) (*models.Photo, error) {
	photo := &models.Photo{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsPublic:    true,
		UserID:      userID,
	}
	if photo.Title == "" {
		return nil, validation("title", "Title is required")
	}
	if req.IsPublic != nil {
		photo.IsPublic = *req.IsPublic
	}
	if req.GalleryID != nil && *req.GalleryID != 0 {
		if err := s.checkGallery(ctx, userID, *req.GalleryID); err != nil {
			return nil, err
		}
		id := *req.GalleryID
		photo.GalleryID = &id
	}
	if err := s.store.CreatePhoto(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// Get returns the photo and counts the view.
func (s *PhotoService) Get(ctx context.Context, id uint) (*models.Photo, error) {
	photo, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.IncrementPhotoViews(ctx, id); err != nil {
		return nil, err
	}
	photo.ViewCount++
	return photo, nil
}

func (s *PhotoService) ListByUser(ctx context.Context, userID string) ([]models.Photo, error) {
	return s.store.ListPhotosByUser(ctx, userID)
}

func (s *PhotoService) ListByGallery(ctx context.Context, galleryID uint) ([]models.Photo, error) {
	gallery, err := s.store.GetGallery(ctx, galleryID)
	if err != nil {
		return nil, err
	}
	if gallery == nil {
		return nil, ErrGalleryNotFound
	}
	return s.store.ListPhotosByGallery(ctx, galleryID)
}

// Recent lists public photos, newest first. Non-positive limits fall back to
// the default.
func (s *PhotoService) Recent(ctx context.Context, limit int) ([]models.Photo, error) {
	if limit <= 0 {
		limit = repository.DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}
	return s.store.ListRecentPublicPhotos(ctx, limit)
}

func (s *PhotoService) Update(ctx context.Context, userID string, id uint, req models.UpdatePhotoRequest) (*models.Photo, error) {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return nil, err
	}
	upd := models.PhotoUpdate{
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsPublic:    req.IsPublic,
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, validation("title", "Title is required")
		}
		upd.Title = &title
	}
	if req.GalleryID != nil {
		if *req.GalleryID == 0 {
			upd.ClearGallery = true
		} else {
			if err := s.checkGallery(ctx, userID, *req.GalleryID); err != nil {
				return nil, err
			}
			upd.GalleryID = req.GalleryID
		}
	}
	photo, err := s.store.UpdatePhoto(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, ErrPhotoNotFound
	}
	return photo, nil
}

func (s *PhotoService) Delete(ctx context.Context, userID string, id uint) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	deleted, err := s.store.DeletePhoto(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPhotoNotFound
	}
	s.log.Info("photo deleted", zap.Uint("photo_id", id), zap.String("user_id", userID))
	return nil
}

// Upload stores an image file and returns where it can be fetched. The
// caller then creates the photo with the returned URL.
func (s *PhotoService) Upload(ctx context.Context, userID, contentType string, body io.Reader, size int64) (*models.UploadResponse, error) {
	if s.storage == nil {
		return nil, ErrUploadDisabled
	}
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, validation("file", "Unsupported image type %q", contentType)
	}
	if size <= 0 {
		return nil, validation("file", "File is empty")
	}
	if size > s.uploadMaxBytes {
		return nil, validation("file", "File exceeds %d bytes", s.uploadMaxBytes)
	}

	key := fmt.Sprintf("photos/%s/%s%s", userID, uuid.NewString(), ext)
	if err := s.storage.Upload(ctx, key, contentType, body, size); err != nil {
		return nil, err
	}
	s.log.Info("photo uploaded", zap.String("key", key), zap.String("user_id", userID), zap.Int64("size", size))
	return &models.UploadResponse{
		Key:         key,
		URL:         s.storage.PublicURL(key),
		ContentType: contentType,
		Size:        size,
	}, nil
}

func (s *PhotoService) find(ctx context.Context, id uint) (*models.Photo, error) {
	photo, err := s.store.GetPhoto(ctx, id)
	if err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, ErrPhotoNotFound
	}
	return photo, nil
}

func (s *PhotoService) owned(ctx context.Context, userID string, id uint) (*models.Photo, error) {
	photo, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if photo.UserID != userID {
		return nil, ErrNotPhotoOwner
	}
	return photo, nil
}

func (s *PhotoService) checkGallery(ctx context.Context, userID string, galleryID uint) error {
	gallery, err := s.store.GetGallery(ctx, galleryID)
	if err != nil {
		return err
	}
	if gallery == nil {
		return ErrGalleryNotFound
	}
	if gallery.UserID != userID {
		return ErrNotGalleryOwner
	}
	return nil
}
