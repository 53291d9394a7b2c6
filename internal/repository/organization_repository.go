package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sefazor/photoclub-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *GormStore) CreateOrganization(ctx context.Context, org *models.Organization, creatorID string) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return fmt.Errorf("failed to create organization: %w", err)
		}
		admin := models.Membership{
			UserID:         creatorID,
			OrganizationID: org.ID,
			IsAdmin:        true,
			JoinedAt:       time.Now(),
		}
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to add organization creator: %w", err)
		}
		return nil
	})
}

func (s *GormStore) GetOrganization(ctx context.Context, id uint) (*models.Organization, error) {
	var org models.Organization
	found, err := first(s.conn(ctx), &org, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &org, nil
}

func (s *GormStore) ListOrganizations(ctx context.Context) ([]models.Organization, error) {
	orgs := []models.Organization{}
	if err := s.conn(ctx).Order("name ASC, id ASC").Find(&orgs).Error; err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

func (s *GormStore) ListOrganizationsByUser(ctx context.Context, userID string) ([]models.Organization, error) {
	orgs := []models.Organization{}
	err := s.conn(ctx).
		Joins("JOIN memberships ON memberships.organization_id = organizations.id").
		Where("memberships.user_id = ?", userID).
		Order("organizations.name ASC, organizations.id ASC").
		Find(&orgs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user organizations: %w", err)
	}
	return orgs, nil
}

func (s *GormStore) UpdateOrganization(ctx context.Context, id uint, upd models.OrganizationUpdate) (*models.Organization, error) {
	fields := map[string]interface{}{"updated_at": time.Now()}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	res := s.conn(ctx).Model(&models.Organization{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update organization: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return s.GetOrganization(ctx, id)
}

// DeleteOrganization removes the organization. Memberships, competitions and
// submissions go through FK cascades; competition ratings carry no FK to
// competitions and are removed here.
func (s *GormStore) DeleteOrganization(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		competitions := tx.Model(&models.Competition{}).Select("id").Where("organization_id = ?", id)
		if err := tx.Where("is_competition_rating = ? AND competition_id IN (?)", true, competitions).
			Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Organization{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete organization: %w", err)
	}
	return deleted, nil
}

func (s *GormStore) UpsertMembership(ctx context.Context, m *models.Membership) error {
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now()
	}
	row := models.Membership{
		UserID:         m.UserID,
		OrganizationID: m.OrganizationID,
		IsAdmin:        m.IsAdmin,
		JoinedAt:       m.JoinedAt,
	}
	err := s.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "organization_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_admin"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert membership: %w", err)
	}
	stored, err := s.GetMembership(ctx, m.Key())
	if err != nil {
		return err
	}
	if stored != nil {
		m.JoinedAt = stored.JoinedAt
	}
	return nil
}

func (s *GormStore) DeleteMembership(ctx context.Context, key models.MembershipKey) (bool, error) {
	res := s.conn(ctx).
		Where("user_id = ? AND organization_id = ?", key.UserID, key.OrganizationID).
		Delete(&models.Membership{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete membership: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) GetMembership(ctx context.Context, key models.MembershipKey) (*models.Membership, error) {
	var m models.Membership
	found, err := first(s.conn(ctx).Where("user_id = ? AND organization_id = ?", key.UserID, key.OrganizationID), &m)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &m, nil
}

func (s *GormStore) ListMembers(ctx context.Context, orgID uint) ([]models.Membership, error) {
	return s.listMemberships(ctx, s.conn(ctx).Where("organization_id = ?", orgID))
}

func (s *GormStore) ListAdmins(ctx context.Context, orgID uint) ([]models.Membership, error) {
	return s.listMemberships(ctx, s.conn(ctx).Where("organization_id = ? AND is_admin = ?", orgID, true))
}

func (s *GormStore) listMemberships(ctx context.Context, q *gorm.DB) ([]models.Membership, error) {
	var rows []models.Membership
	if err := q.Preload("User").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	return sortMembers(rows), nil
}

func (s *GormStore) CountAdmins(ctx context.Context, orgID uint) (int64, error) {
	var count int64
	err := s.conn(ctx).Model(&models.Membership{}).
		Where("organization_id = ? AND is_admin = ?", orgID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}

// sortMembers drops rows without a loaded user and orders the rest by
// username, then user id.
func sortMembers(rows []models.Membership) []models.Membership {
	members := make([]models.Membership, 0, len(rows))
	for _, m := range rows {
		if m.User != nil {
			members = append(members, m)
		}
	}
	sort.SliceStable(members, func(i, j int) bool {
		a, b := members[i].User.UsernameOrEmpty(), members[j].User.UsernameOrEmpty()
		if a != b {
			return a < b
		}
		return members[i].UserID < members[j].UserID
	})
	return members
}
