package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sefazor/photoclub-backend/internal/models"
	"gorm.io/gorm/clause"
)

func (s *GormStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	found, err := first(s.conn(ctx), &user, "id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	found, err := first(s.conn(ctx).Where("username = ?", username), &user)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

func (s *GormStore) UpsertUser(ctx context.Context, user *models.User) (*models.User, error) {
	row := models.User{
		ID:              user.ID,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		ProfileImageURL: user.ProfileImageURL,
		Username:        user.Username,
		Bio:             user.Bio,
	}
	err := s.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "first_name", "last_name", "profile_image_url", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return s.GetUser(ctx, user.ID)
}

func (s *GormStore) UpdateUsername(ctx context.Context, id, username string) (*models.User, error) {
	return s.updateUser(ctx, id, map[string]interface{}{"username": username})
}

func (s *GormStore) UpdateUserBio(ctx context.Context, id, bio string) (*models.User, error) {
	return s.updateUser(ctx, id, map[string]interface{}{"bio": bio})
}

func (s *GormStore) updateUser(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error) {
	fields["updated_at"] = time.Now()
	res := s.conn(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return s.GetUser(ctx, id)
}
