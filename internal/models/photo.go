package models

import (
	"time"
)

type Photo struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	ImageURL    string    `json:"image_url" gorm:"not null"`
	IsPublic    bool      `json:"is_public" gorm:"not null;index"`
	UserID      string    `json:"user_id" gorm:"not null;index;type:varchar(255)"`
	GalleryID   *uint     `json:"gallery_id" gorm:"index"`
	ViewCount   int       `json:"view_count" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`

	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Gallery *Gallery `json:"-" gorm:"foreignKey:GalleryID;references:ID;constraint:OnDelete:SET NULL"`
}

type CreatePhotoRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	ImageURL    string `json:"image_url" validate:"required,url"`
	IsPublic    *bool  `json:"is_public"`
	GalleryID   *uint  `json:"gallery_id"`
}

// UpdatePhotoRequest is a partial update. A gallery_id of 0 detaches the
// photo from its gallery.
type UpdatePhotoRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
	IsPublic    *bool   `json:"is_public"`
	GalleryID   *uint   `json:"gallery_id"`
}

type PhotoUpdate struct {
	Title        *string
	Description  *string
	ImageURL     *string
	IsPublic     *bool
	GalleryID    *uint
	ClearGallery bool
}

type UploadResponse struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
