package service

import (
	"context"

	"github.com/sefazor/photoclub-backend/internal/models"
	"github.com/sefazor/photoclub-backend/internal/repository"
	"github.com/sefazor/photoclub-backend/internal/telemetry"
	"go.uber.org/zap"
)

type RatingService struct {
	store   repository.Store
	access  *AccessService
	metrics *telemetry.Metrics
	log     *zap.Logger
}

func NewRatingService(store repository.Store, access *AccessService, metrics *telemetry.Metrics, log *zap.Logger) *RatingService {
	return &RatingService{
		store:   store,
		access:  access,
		metrics: metrics,
		log:     log.Named("ratings"),
	}
}

// Rate stores the caller's rating of a photo, replacing any earlier rating
// in the same context. A competition rating needs the photo to be submitted
// to that competition and the rater to belong to its organization.
func (s *RatingService) Rate(ctx context.Context, userID string, photoID uint, req models.RatePhotoRequest) (*models.Rating, error) {
	if req.Rating == nil {
		return nil, validation("rating", "Rating is required")
	}
	value := *req.Rating
	if value < 0 || value > 5 {
		return nil, validation("rating", "Rating must be between 0 and 5")
	}

	photo, err := s.store.GetPhoto(ctx, photoID)
	if err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, ErrPhotoNotFound
	}

	rating := &models.Rating{
		PhotoID:             photoID,
		UserID:              userID,
		IsCompetitionRating: req.IsCompetitionRating,
		CompetitionID:       models.GeneralContext,
		Rating:              value,
	}
	if req.IsCompetitionRating {
		if req.CompetitionID == nil || *req.CompetitionID == 0 {
			return nil, ErrCompetitionNeeded
		}
		if err := s.checkCompetitionRater(ctx, userID, photoID, *req.CompetitionID); err != nil {
			return nil, err
		}
		rating.CompetitionID = *req.CompetitionID
	}

	if err := s.store.UpsertRating(ctx, rating); err != nil {
		return nil, err
	}
	s.metrics.RatingRecorded(rating.IsCompetitionRating)
	s.log.Debug("photo rated",
		zap.Uint("photo_id", photoID),
		zap.String("user_id", userID),
		zap.Bool("competition", rating.IsCompetitionRating),
		zap.Float64("rating", value),
	)
	return rating, nil
}

func (s *RatingService) checkCompetitionRater(ctx context.Context, userID string, photoID, competitionID uint) error {
	comp, err := s.store.GetCompetition(ctx, competitionID)
	if err != nil {
		return err
	}
	if comp == nil {
		return ErrCompetitionNotFound
	}
	submitted, err := s.store.HasSubmission(ctx, models.SubmissionKey{CompetitionID: competitionID, PhotoID: photoID})
	if err != nil {
		return err
	}
	if !submitted {
		return ErrNotSubmitted
	}
	return s.access.RequireMember(ctx, userID, comp.OrganizationID)
}

// PhotoRatings returns the general ratings of a photo and their mean.
func (s *RatingService) PhotoRatings(ctx context.Context, photoID uint) (*models.RatingSummary, error) {
	photo, err := s.store.GetPhoto(ctx, photoID)
	if err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, ErrPhotoNotFound
	}
	ratings, err := s.store.ListPhotoRatings(ctx, photoID)
	if err != nil {
		return nil, err
	}
	avg, err := s.store.PhotoAverageRating(ctx, photoID)
	if err != nil {
		return nil, err
	}
	return &models.RatingSummary{Ratings: ratings, AvgRating: avg}, nil
}

func (s *RatingService) CompetitionPhotoRatings(ctx context.Context, photoID, competitionID uint) (*models.RatingSummary, error) {
	comp, err := s.store.GetCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	if comp == nil {
		return nil, ErrCompetitionNotFound
	}
	photo, err := s.store.GetPhoto(ctx, photoID)
	if err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, ErrPhotoNotFound
	}
	ratings, err := s.store.ListCompetitionPhotoRatings(ctx, photoID, competitionID)
	if err != nil {
		return nil, err
	}
	avg, err := s.store.CompetitionPhotoAverageRating(ctx, photoID, competitionID)
	if err != nil {
		return nil, err
	}
	return &models.RatingSummary{Ratings: ratings, AvgRating: avg}, nil
}
