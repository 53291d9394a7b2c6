package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sefazor/photoclub-backend/internal/models"
	"gorm.io/gorm"
)

const newestFirst = "created_at DESC, id DESC"

func (s *GormStore) CreatePhoto(ctx context.Context, photo *models.Photo) error {
	photo.ViewCount = 0
	if err := s.conn(ctx).Omit("User", "Gallery").Create(photo).Error; err != nil {
		return fmt.Errorf("failed to create photo: %w", err)
	}
	return nil
}

func (s *GormStore) GetPhoto(ctx context.Context, id uint) (*models.Photo, error) {
	var photo models.Photo
	found, err := first(s.conn(ctx), &photo, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &photo, nil
}

func (s *GormStore) ListPhotosByUser(ctx context.Context, userID string) ([]models.Photo, error) {
	photos := []models.Photo{}
	if err := s.conn(ctx).Where("user_id = ?", userID).Order(newestFirst).Find(&photos).Error; err != nil {
		return nil, fmt.Errorf("failed to list user photos: %w", err)
	}
	return photos, nil
}

func (s *GormStore) ListPhotosByGallery(ctx context.Context, galleryID uint) ([]models.Photo, error) {
	photos := []models.Photo{}
	if err := s.conn(ctx).Where("gallery_id = ?", galleryID).Order(newestFirst).Find(&photos).Error; err != nil {
		return nil, fmt.Errorf("failed to list gallery photos: %w", err)
	}
	return photos, nil
}

func (s *GormStore) ListRecentPublicPhotos(ctx context.Context, limit int) ([]models.Photo, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	photos := []models.Photo{}
	err := s.conn(ctx).
		Preload("User").
		Where("is_public = ?", true).
		Order(newestFirst).
		Limit(limit).
		Find(&photos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent photos: %w", err)
	}
	return photos, nil
}

func (s *GormStore) UpdatePhoto(ctx context.Context, id uint, upd models.PhotoUpdate) (*models.Photo, error) {
	fields := map[string]interface{}{"updated_at": time.Now()}
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if upd.ImageURL != nil {
		fields["image_url"] = *upd.ImageURL
	}
	if upd.IsPublic != nil {
		fields["is_public"] = *upd.IsPublic
	}
	switch {
	case upd.ClearGallery:
		fields["gallery_id"] = nil
	case upd.GalleryID != nil:
		fields["gallery_id"] = *upd.GalleryID
	}
	res := s.conn(ctx).Model(&models.Photo{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update photo: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return s.GetPhoto(ctx, id)
}

// DeletePhoto removes the photo; its submissions and ratings follow through
// FK cascades.
func (s *GormStore) DeletePhoto(ctx context.Context, id uint) (bool, error) {
	res := s.conn(ctx).Delete(&models.Photo{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete photo: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) IncrementPhotoViews(ctx context.Context, id uint) error {
	return s.increment(ctx, &models.Photo{}, id, "view_count")
}

// increment bumps a counter column in SQL so concurrent requests never lose
// an update.
func (s *GormStore) increment(ctx context.Context, model interface{}, id uint, column string) error {
	err := s.conn(ctx).Model(model).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1)).Error
	if err != nil {
		return fmt.Errorf("failed to increment %s: %w", column, err)
	}
	return nil
}
