package models

import (
	"time"
)

type Gallery struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description" gorm:"type:text"`
	UserID       string    `json:"user_id" gorm:"not null;index;type:varchar(255)"`
	CoverPhotoID *uint     `json:"cover_photo_id"`
	IsPublic     bool      `json:"is_public" gorm:"not null"`
	ViewCount    int       `json:"view_count" gorm:"not null"`
	LikeCount    int       `json:"like_count" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time `json:"updated_at"`

	User *User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

type CreateGalleryRequest struct {
	Name         string `json:"name" validate:"required,max=120"`
	Description  string `json:"description" validate:"max=2000"`
	CoverPhotoID *uint  `json:"cover_photo_id"`
	IsPublic     *bool  `json:"is_public"`
}

type UpdateGalleryRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=120"`
	Description  *string `json:"description" validate:"omitempty,max=2000"`
	CoverPhotoID *uint   `json:"cover_photo_id"`
	IsPublic     *bool   `json:"is_public"`
}

type GalleryUpdate struct {
	Name         *string
	Description  *string
	CoverPhotoID *uint
	IsPublic     *bool
}
