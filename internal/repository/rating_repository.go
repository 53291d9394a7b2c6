package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sefazor/photoclub-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *GormStore) UpsertRating(ctx context.Context, rating *models.Rating) error {
	if !rating.IsCompetitionRating {
		rating.CompetitionID = models.GeneralContext
	}
	now := time.Now()
	row := models.Rating{
		PhotoID:             rating.PhotoID,
		UserID:              rating.UserID,
		IsCompetitionRating: rating.IsCompetitionRating,
		CompetitionID:       rating.CompetitionID,
		Rating:              rating.Rating,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	err := s.conn(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "photo_id"}, {Name: "user_id"},
			{Name: "is_competition_rating"}, {Name: "competition_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert rating: %w", err)
	}
	stored, err := s.GetRating(ctx, rating.Key())
	if err != nil {
		return err
	}
	if stored != nil {
		*rating = *stored
	}
	return nil
}

func (s *GormStore) GetRating(ctx context.Context, key models.RatingKey) (*models.Rating, error) {
	var rating models.Rating
	q := s.conn(ctx).Where(
		"photo_id = ? AND user_id = ? AND is_competition_rating = ? AND competition_id = ?",
		key.PhotoID, key.UserID, key.IsCompetitionRating, key.CompetitionID,
	)
	found, err := first(q, &rating)
	if err != nil {
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &rating, nil
}

func (s *GormStore) ListPhotoRatings(ctx context.Context, photoID uint) ([]models.Rating, error) {
	return s.listRatings(s.generalRatings(ctx, photoID))
}

func (s *GormStore) PhotoAverageRating(ctx context.Context, photoID uint) (*float64, error) {
	return s.averageRating(s.generalRatings(ctx, photoID))
}

func (s *GormStore) ListCompetitionPhotoRatings(ctx context.Context, photoID, competitionID uint) ([]models.Rating, error) {
	return s.listRatings(s.competitionRatings(ctx, photoID, competitionID))
}

func (s *GormStore) CompetitionPhotoAverageRating(ctx context.Context, photoID, competitionID uint) (*float64, error) {
	return s.averageRating(s.competitionRatings(ctx, photoID, competitionID))
}

func (s *GormStore) generalRatings(ctx context.Context, photoID uint) *gorm.DB {
	return s.conn(ctx).Model(&models.Rating{}).
		Where("photo_id = ? AND is_competition_rating = ?", photoID, false)
}

func (s *GormStore) competitionRatings(ctx context.Context, photoID, competitionID uint) *gorm.DB {
	return s.conn(ctx).Model(&models.Rating{}).
		Where("photo_id = ? AND is_competition_rating = ? AND competition_id = ?", photoID, true, competitionID)
}

func (s *GormStore) listRatings(q *gorm.DB) ([]models.Rating, error) {
	ratings := []models.Rating{}
	if err := q.Order("updated_at DESC, user_id ASC").Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	return ratings, nil
}

// averageRating returns nil when the query matches no rows.
func (s *GormStore) averageRating(q *gorm.DB) (*float64, error) {
	var avg sql.NullFloat64
	if err := q.Select("AVG(rating)").Row().Scan(&avg); err != nil {
		return nil, fmt.Errorf("failed to average ratings: %w", err)
	}
	if !avg.Valid {
		return nil, nil
	}
	value := avg.Float64
	return &value, nil
}
