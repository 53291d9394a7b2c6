package models

import (
	"time"
)

type Competition struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Name           string     `json:"name" gorm:"not null"`
	Description    string     `json:"description" gorm:"type:text"`
	OrganizationID uint       `json:"organization_id" gorm:"not null;index"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	IsActive       bool       `json:"is_active" gorm:"not null;index"`
	CreatedAt      time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Organization *Organization `json:"-" gorm:"foreignKey:OrganizationID;references:ID;constraint:OnDelete:CASCADE"`
}

type CompetitionRequest struct {
	Name        string     `json:"name" validate:"required,max=120"`
	Description string     `json:"description" validate:"max=2000"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsActive    *bool      `json:"is_active"`
}

type UpdateCompetitionRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=1,max=120"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsActive    *bool      `json:"is_active"`
}

type CompetitionUpdate struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	IsActive    *bool
}

// Submission is a photo entered into a competition. Re-submitting the same
// pair only moves SubmittedAt.
type Submission struct {
	CompetitionID uint      `json:"competition_id" gorm:"primaryKey;autoIncrement:false"`
	PhotoID       uint      `json:"photo_id" gorm:"primaryKey;autoIncrement:false"`
	SubmittedAt   time.Time `json:"submitted_at" gorm:"index"`

	Competition *Competition `json:"-" gorm:"foreignKey:CompetitionID;references:ID;constraint:OnDelete:CASCADE"`
	Photo       *Photo       `json:"photo,omitempty" gorm:"foreignKey:PhotoID;references:ID;constraint:OnDelete:CASCADE"`
}

type SubmissionKey struct {
	CompetitionID uint
	PhotoID       uint
}

func (s *Submission) Key() SubmissionKey {
	return SubmissionKey{CompetitionID: s.CompetitionID, PhotoID: s.PhotoID}
}

type SubmitPhotoRequest struct {
	PhotoID uint `json:"photo_id" validate:"required"`
}
