package service

import (
	"context"

	"github.com/sefazor/photoclub-backend/internal/models"
	"github.com/sefazor/photoclub-backend/internal/repository"
)

// AccessService answers role questions straight from the membership table.
// Nothing is cached.
type AccessService struct {
	memberships repository.MembershipStore
}

func NewAccessService(memberships repository.MembershipStore) *AccessService {
	return &AccessService{memberships: memberships}
}

func (s *AccessService) IsMember(ctx context.Context, userID string, orgID uint) (bool, error) {
	m, err := s.memberships.GetMembership(ctx, models.MembershipKey{UserID: userID, OrganizationID: orgID})
	if err != nil {
		return false, err
	}
	return m != nil, nil
}

func (s *AccessService) IsAdmin(ctx context.Context, userID string, orgID uint) (bool, error) {
	m, err := s.memberships.GetMembership(ctx, models.MembershipKey{UserID: userID, OrganizationID: orgID})
	if err != nil {
		return false, err
	}
	return m != nil && m.IsAdmin, nil
}

func (s *AccessService) RequireAdmin(ctx context.Context, userID string, orgID uint) error {
	ok, err := s.IsAdmin(ctx, userID, orgID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAdmin
	}
	return nil
}

func (s *AccessService) RequireMember(ctx context.Context, userID string, orgID uint) error {
	ok, err := s.IsMember(ctx, userID, orgID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotMember
	}
	return nil
}
