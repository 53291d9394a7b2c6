package service

import (
	"context"
	"strings"
	"time"

	"github.com/sefazor/photoclub-backend/internal/models"
	"github.com/sefazor/photoclub-backend/internal/repository"
	"github.com/sefazor/photoclub-backend/internal/telemetry"
	"go.uber.org/zap"
)

type CompetitionService struct {
	store   repository.Store
	access  *AccessService
	metrics *telemetry.Metrics
	log     *zap.Logger
}

func NewCompetitionService(store repository.Store, access *AccessService, metrics *telemetry.Metrics, log *zap.Logger) *CompetitionService {
	return &CompetitionService{
		store:   store,
		access:  access,
		metrics: metrics,
		log:     log.Named("competitions"),
	}
}

// Create opens a competition under orgID. Only admins of the organization
// may do so.
func (s *CompetitionService) Create(ctx context.Context, userID string, orgID uint, req models.CompetitionRequest) (*models.Competition, error) {
	org, err := s.store.GetOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, ErrOrganizationNotFound
	}
	if err := s.access.RequireAdmin(ctx, userID, orgID); err != nil {
		return nil, err
	}

	comp := &models.Competition{
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		OrganizationID: orgID,
		StartDate:      time.Now(),
		EndDate:        req.EndDate,
		IsActive:       true,
	}
	if comp.Name == "" {
		return nil, validation("name", "Competition name is required")
	}
	if req.StartDate != nil {
		comp.StartDate = *req.StartDate
	}
	if req.IsActive != nil {
		comp.IsActive = *req.IsActive
	}
	if comp.EndDate != nil && comp.EndDate.Before(comp.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if err := s.store.CreateCompetition(ctx, comp); err != nil {
		return nil, err
	}
	s.log.Info("competition created",
		zap.Uint("competition_id", comp.ID),
		zap.Uint("organization_id", orgID),
		zap.String("user_id", userID),
	)
	return comp, nil
}

func (s *CompetitionService) Get(ctx context.Context, id uint) (*models.Competition, error) {
	comp, err := s.store.GetCompetition(ctx, id)
	if err != nil {
		return nil, err
	}
	if comp == nil {
		return nil, ErrCompetitionNotFound
	}
	return comp, nil
}

func (s *CompetitionService) ListActive(ctx context.Context) ([]models.Competition, error) {
	return s.store.ListActiveCompetitions(ctx)
}

func (s *CompetitionService) ListByOrganization(ctx context.Context, orgID uint) ([]models.Competition, error) {
	org, err := s.store.GetOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, ErrOrganizationNotFound
	}
	return s.store.ListCompetitionsByOrganization(ctx, orgID)
}

func (s *CompetitionService) Update(ctx context.Context, userID string, id uint, req models.UpdateCompetitionRequest) (*models.Competition, error) {
	comp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireAdmin(ctx, userID, comp.OrganizationID); err != nil {
		return nil, err
	}

	upd := models.CompetitionUpdate{
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsActive:    req.IsActive,
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, validation("name", "Competition name is required")
		}
		upd.Name = &name
	}
	start, end := comp.StartDate, comp.EndDate
	if upd.StartDate != nil {
		start = *upd.StartDate
	}
	if upd.EndDate != nil {
		end = upd.EndDate
	}
	if end != nil && end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	updated, err := s.store.UpdateCompetition(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrCompetitionNotFound
	}
	return updated, nil
}

// Delete removes the competition with its submissions and competition
// ratings. The submitted photos are kept.
func (s *CompetitionService) Delete(ctx context.Context, userID string, id uint) error {
	comp, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.access.RequireAdmin(ctx, userID, comp.OrganizationID); err != nil {
		return err
	}
	deleted, err := s.store.DeleteCompetition(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCompetitionNotFound
	}
	s.log.Info("competition deleted", zap.Uint("competition_id", id), zap.String("user_id", userID))
	return nil
}

// Submit enters photoID into the competition. The checks run in a fixed
// order so the first failing precondition is the one reported. Submitting
// the same photo again only refreshes the submission time.
func (s *CompetitionService) Submit(ctx context.Context, userID string, competitionID, photoID uint) (*models.Submission, error) {
	comp, err := s.Get(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	if !comp.IsActive {
		return nil, ErrCompetitionClosed
	}
	photo, err := s.store.GetPhoto(ctx, photoID)
	if err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, ErrPhotoNotFound
	}
	if photo.UserID != userID {
		return nil, ErrNotPhotoOwner
	}
	if err := s.access.RequireMember(ctx, userID, comp.OrganizationID); err != nil {
		return nil, err
	}

	sub := &models.Submission{CompetitionID: competitionID, PhotoID: photoID, SubmittedAt: time.Now()}
	if err := s.store.UpsertSubmission(ctx, sub); err != nil {
		return nil, err
	}
	s.metrics.SubmissionAccepted()
	s.log.Info("photo submitted",
		zap.Uint("competition_id", competitionID),
		zap.Uint("photo_id", photoID),
		zap.String("user_id", userID),
	)
	return sub, nil
}

// Withdraw removes a submission. The photo owner and any admin of the
// competition's organization may do this.
func (s *CompetitionService) Withdraw(ctx context.Context, userID string, competitionID, photoID uint) error {
	comp, err := s.Get(ctx, competitionID)
	if err != nil {
		return err
	}
	photo, err := s.store.GetPhoto(ctx, photoID)
	if err != nil {
		return err
	}
	if photo == nil {
		return ErrPhotoNotFound
	}
	if photo.UserID != userID {
		admin, err := s.access.IsAdmin(ctx, userID, comp.OrganizationID)
		if err != nil {
			return err
		}
		if !admin {
			return ErrCannotWithdraw
		}
	}

	removed, err := s.store.DeleteSubmission(ctx, models.SubmissionKey{CompetitionID: competitionID, PhotoID: photoID})
	if err != nil {
		return err
	}
	if removed {
		s.metrics.SubmissionWithdrawn()
		s.log.Info("submission withdrawn",
			zap.Uint("competition_id", competitionID),
			zap.Uint("photo_id", photoID),
			zap.String("user_id", userID),
		)
	}
	return nil
}

func (s *CompetitionService) Submissions(ctx context.Context, competitionID uint) ([]models.Submission, error) {
	if _, err := s.Get(ctx, competitionID); err != nil {
		return nil, err
	}
	return s.store.ListSubmissions(ctx, competitionID)
}
