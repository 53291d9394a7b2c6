package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sefazor/photoclub-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *GormStore) CreateCompetition(ctx context.Context, comp *models.Competition) error {
	if err := s.conn(ctx).Omit("Organization").Create(comp).Error; err != nil {
		return fmt.Errorf("failed to create competition: %w", err)
	}
	return nil
}

func (s *GormStore) GetCompetition(ctx context.Context, id uint) (*models.Competition, error) {
	var comp models.Competition
	found, err := first(s.conn(ctx), &comp, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get competition: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &comp, nil
}

func (s *GormStore) ListCompetitionsByOrganization(ctx context.Context, orgID uint) ([]models.Competition, error) {
	comps := []models.Competition{}
	if err := s.conn(ctx).Where("organization_id = ?", orgID).Order(newestFirst).Find(&comps).Error; err != nil {
		return nil, fmt.Errorf("failed to list organization competitions: %w", err)
	}
	return comps, nil
}

func (s *GormStore) ListActiveCompetitions(ctx context.Context) ([]models.Competition, error) {
	comps := []models.Competition{}
	if err := s.conn(ctx).Where("is_active = ?", true).Order(newestFirst).Find(&comps).Error; err != nil {
		return nil, fmt.Errorf("failed to list active competitions: %w", err)
	}
	return comps, nil
}

func (s *GormStore) UpdateCompetition(ctx context.Context, id uint, upd models.CompetitionUpdate) (*models.Competition, error) {
	fields := map[string]interface{}{"updated_at": time.Now()}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if upd.StartDate != nil {
		fields["start_date"] = *upd.StartDate
	}
	if upd.EndDate != nil {
		fields["end_date"] = *upd.EndDate
	}
	if upd.IsActive != nil {
		fields["is_active"] = *upd.IsActive
	}
	res := s.conn(ctx).Model(&models.Competition{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update competition: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return s.GetCompetition(ctx, id)
}

// DeleteCompetition drops the competition's ratings, then the competition.
// Submissions go with the FK cascade.
func (s *GormStore) DeleteCompetition(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("is_competition_rating = ? AND competition_id = ?", true, id).
			Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Competition{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete competition: %w", err)
	}
	return deleted, nil
}

func (s *GormStore) UpsertSubmission(ctx context.Context, sub *models.Submission) error {
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now()
	}
	row := models.Submission{
		CompetitionID: sub.CompetitionID,
		PhotoID:       sub.PhotoID,
		SubmittedAt:   sub.SubmittedAt,
	}
	err := s.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "competition_id"}, {Name: "photo_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"submitted_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert submission: %w", err)
	}
	return nil
}

func (s *GormStore) DeleteSubmission(ctx context.Context, key models.SubmissionKey) (bool, error) {
	res := s.conn(ctx).
		Where("competition_id = ? AND photo_id = ?", key.CompetitionID, key.PhotoID).
		Delete(&models.Submission{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete submission: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) HasSubmission(ctx context.Context, key models.SubmissionKey) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&models.Submission{}).
		Where("competition_id = ? AND photo_id = ?", key.CompetitionID, key.PhotoID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check submission: %w", err)
	}
	return count > 0, nil
}

func (s *GormStore) ListSubmissions(ctx context.Context, competitionID uint) ([]models.Submission, error) {
	subs := []models.Submission{}
	err := s.conn(ctx).
		Preload("Photo").
		Where("competition_id = ?", competitionID).
		Order("submitted_at DESC, photo_id DESC").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return subs, nil
}
