package models

import (
	"time"
)

// GeneralContext is the competition id stored on ratings that are not tied
// to a competition.
const GeneralContext uint = 0

// Rating is unique per (photo, user, is_competition_rating, competition_id).
type Rating struct {
	PhotoID             uint      `json:"photo_id" gorm:"primaryKey;autoIncrement:false"`
	UserID              string    `json:"user_id" gorm:"primaryKey;type:varchar(255)"`
	IsCompetitionRating bool      `json:"is_competition_rating" gorm:"primaryKey"`
	CompetitionID       uint      `json:"competition_id,omitempty" gorm:"primaryKey;autoIncrement:false"`
	Rating              float64   `json:"rating" gorm:"not null"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	Photo *Photo `json:"-" gorm:"foreignKey:PhotoID;references:ID;constraint:OnDelete:CASCADE"`
	User  *User  `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

type RatingKey struct {
	PhotoID             uint
	UserID              string
	IsCompetitionRating bool
	CompetitionID       uint
}

func (r *Rating) Key() RatingKey {
	return RatingKey{
		PhotoID:             r.PhotoID,
		UserID:              r.UserID,
		IsCompetitionRating: r.IsCompetitionRating,
		CompetitionID:       r.CompetitionID,
	}
}

type RatePhotoRequest struct {
	Rating              *float64 `json:"rating" validate:"required,min=0,max=5"`
	IsCompetitionRating bool     `json:"is_competition_rating"`
	CompetitionID       *uint    `json:"competition_id" validate:"required_if=IsCompetitionRating true"`
}

// RatingSummary pairs the ratings of one context with their mean. AvgRating
// is nil when nobody has rated yet.
type RatingSummary struct {
	Ratings   []Rating `json:"ratings"`
	AvgRating *float64 `json:"avg_rating"`
}
