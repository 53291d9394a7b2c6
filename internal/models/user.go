package models

import (
	"time"
)

// User is keyed by the subject of the external identity provider.
type User struct {
	ID              string    `json:"id" gorm:"primaryKey;type:varchar(255)"`
	Email           *string   `json:"email" gorm:"uniqueIndex"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	ProfileImageURL string    `json:"profile_image_url"`
	Username        *string   `json:"username" gorm:"uniqueIndex"`
	Bio             string    `json:"bio" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Identity carries the claims an authenticated request brings along.
type Identity struct {
	Subject         string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

type UpdateUsernameRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32,alphanum"`
}

type UpdateBioRequest struct {
	Bio string `json:"bio" validate:"required,max=1000"`
}

type UserStats struct {
	PhotoCount        int `json:"photo_count"`
	GalleryCount      int `json:"gallery_count"`
	OrganizationCount int `json:"organization_count"`
	CompetitionCount  int `json:"competition_count"`
}

// UsernameOrEmpty is used for ordering member lists.
func (u *User) UsernameOrEmpty() string {
	if u == nil || u.Username == nil {
		return ""
	}
	return *u.Username
}
