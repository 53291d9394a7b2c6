package service

import (
	"context"
	"strings"

	"github.com/sefazor/photoclub-backend/internal/models"
	"github.com/sefazor/photoclub-backend/internal/repository"
	"go.uber.org/zap"
)

type OrganizationService struct {
	store  repository.Store
	access *AccessService
	log    *zap.Logger
}

func NewOrganizationService(store repository.Store, access *AccessService, log *zap.Logger) *OrganizationService {
	return &OrganizationService{
		store:  store,
		access: access,
		log:    log.Named("organizations"),
	}
}

// Create stores the organization and makes its creator the first admin.
func (s *OrganizationService) Create(ctx context.Context, userID string, req models.OrganizationRequest) (*models.Organization, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validation("name", "Organization name is required")
	}
	org := &models.Organization{Name: name, Description: req.Description}
	if err := s.store.CreateOrganization(ctx, org, userID); err != nil {
		return nil, err
	}
	s.log.Info("organization created", zap.Uint("organization_id", org.ID), zap.String("user_id", userID))
	return org, nil
}

func (s *OrganizationService) Get(ctx context.Context, id uint) (*models.Organization, error) {
	org, err := s.store.GetOrganization(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, ErrOrganizationNotFound
	}
	return org, nil
}

func (s *OrganizationService) List(ctx context.Context) ([]models.Organization, error) {
	return s.store.ListOrganizations(ctx)
}

func (s *OrganizationService) ListByUser(ctx context.Context, userID string) ([]models.Organization, error) {
	return s.store.ListOrganizationsByUser(ctx, userID)
}

func (s *OrganizationService) Update(ctx context.Context, userID string, id uint, req models.UpdateOrganizationRequest) (*models.Organization, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.access.RequireAdmin(ctx, userID, id); err != nil {
		return nil, err
	}
	upd := models.OrganizationUpdate{Description: req.Description}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, validation("name", "Organization name is required")
		}
		upd.Name = &name
	}
	org, err := s.store.UpdateOrganization(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, ErrOrganizationNotFound
	}
	return org, nil
}

func (s *OrganizationService) Delete(ctx context.Context, userID string, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.access.RequireAdmin(ctx, userID, id); err != nil {
		return err
	}
	deleted, err := s.store.DeleteOrganization(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrOrganizationNotFound
	}
	s.log.Info("organization deleted", zap.Uint("organization_id", id), zap.String("user_id", userID))
	return nil
}

func (s *OrganizationService) Members(ctx context.Context, id uint) ([]models.Membership, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.store.ListMembers(ctx, id)
}

func (s *OrganizationService) Admins(ctx context.Context, id uint) ([]models.Membership, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.store.ListAdmins(ctx, id)
}

// AddMember creates the membership or overwrites the role of an existing one.
func (s *OrganizationService) AddMember(ctx context.Context, actorID string, orgID uint, req models.AddMemberRequest) (*models.Membership, error) {
	if _, err := s.Get(ctx, orgID); err != nil {
		return nil, err
	}
	if err := s.access.RequireAdmin(ctx, actorID, orgID); err != nil {
		return nil, err
	}
	user, err := s.store.GetUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	m := &models.Membership{UserID: req.UserID, OrganizationID: orgID, IsAdmin: req.IsAdmin}
	if err := s.store.UpsertMembership(ctx, m); err != nil {
		return nil, err
	}
	m.User = user
	s.log.Info("member added",
		zap.Uint("organization_id", orgID),
		zap.String("user_id", req.UserID),
		zap.Bool("is_admin", req.IsAdmin),
		zap.String("by", actorID),
	)
	return m, nil
}

// RemoveMember deletes a membership. An admin removing themself is refused
// while they are the only admin left. Removing a non-member is a no-op.
func (s *OrganizationService) RemoveMember(ctx context.Context, actorID string, orgID uint, targetID string) error {
	if _, err := s.Get(ctx, orgID); err != nil {
		return err
	}
	if err := s.access.RequireAdmin(ctx, actorID, orgID); err != nil {
		return err
	}
	if targetID == actorID {
		admins, err := s.store.CountAdmins(ctx, orgID)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}
	removed, err := s.store.DeleteMembership(ctx, models.MembershipKey{UserID: targetID, OrganizationID: orgID})
	if err != nil {
		return err
	}
	if removed {
		s.log.Info("member removed", zap.Uint("organization_id", orgID), zap.String("user_id", targetID), zap.String("by", actorID))
	}
	return nil
}
