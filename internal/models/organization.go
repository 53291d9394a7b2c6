package models

import (
	"time"
)

type Organization struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Membership links a user to an organization. There is at most one row per
// (user, organization) pair.
type Membership struct {
	UserID         string    `json:"user_id" gorm:"primaryKey;type:varchar(255)"`
	OrganizationID uint      `json:"organization_id" gorm:"primaryKey;autoIncrement:false"`
	IsAdmin        bool      `json:"is_admin" gorm:"not null"`
	JoinedAt       time.Time `json:"joined_at"`

	User         *User         `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Organization *Organization `json:"-" gorm:"foreignKey:OrganizationID;references:ID;constraint:OnDelete:CASCADE"`
}

type MembershipKey struct {
	UserID         string
	OrganizationID uint
}

func (m *Membership) Key() MembershipKey {
	return MembershipKey{UserID: m.UserID, OrganizationID: m.OrganizationID}
}

type OrganizationRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Description string `json:"description" validate:"max=2000"`
}

type UpdateOrganizationRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// OrganizationUpdate holds the fields a partial update may change.
type OrganizationUpdate struct {
	Name        *string
	Description *string
}

type AddMemberRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	IsAdmin bool   `json:"is_admin"`
}
