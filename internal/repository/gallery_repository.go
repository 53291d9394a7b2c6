package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sefazor/photoclub-backend/internal/models"
	"gorm.io/gorm"
)

func (s *GormStore) CreateGallery(ctx context.Context, gallery *models.Gallery) error {
	gallery.ViewCount = 0
	gallery.LikeCount = 0
	if err := s.conn(ctx).Omit("User").Create(gallery).Error; err != nil {
		return fmt.Errorf("failed to create gallery: %w", err)
	}
	return nil
}

func (s *GormStore) GetGallery(ctx context.Context, id uint) (*models.Gallery, error) {
	var gallery models.Gallery
	found, err := first(s.conn(ctx), &gallery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get gallery: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &gallery, nil
}

func (s *GormStore) ListGalleriesByUser(ctx context.Context, userID string) ([]models.Gallery, error) {
	galleries := []models.Gallery{}
	if err := s.conn(ctx).Where("user_id = ?", userID).Order(newestFirst).Find(&galleries).Error; err != nil {
		return nil, fmt.Errorf("failed to list user galleries: %w", err)
	}
	return galleries, nil
}

func (s *GormStore) UpdateGallery(ctx context.Context, id uint, upd models.GalleryUpdate) (*models.Gallery, error) {
	fields := map[string]interface{}{"updated_at": time.Now()}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if upd.CoverPhotoID != nil {
		fields["cover_photo_id"] = *upd.CoverPhotoID
	}
	if upd.IsPublic != nil {
		fields["is_public"] = *upd.IsPublic
	}
	res := s.conn(ctx).Model(&models.Gallery{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update gallery: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return s.GetGallery(ctx, id)
}

func (s *GormStore) DeleteGallery(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		// Same effect as the SET NULL constraint; kept explicit for
		// connections that run without FK enforcement.
		if err := tx.Model(&models.Photo{}).Where("gallery_id = ?", id).
			UpdateColumn("gallery_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Gallery{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete gallery: %w", err)
	}
	return deleted, nil
}

func (s *GormStore) IncrementGalleryViews(ctx context.Context, id uint) error {
	return s.increment(ctx, &models.Gallery{}, id, "view_count")
}

func (s *GormStore) IncrementGalleryLikes(ctx context.Context, id uint) error {
	return s.increment(ctx, &models.Gallery{}, id, "like_count")
}
