package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/photoclub-backend/internal/middleware"
	"github.com/sefazor/photoclub-backend/internal/models"
	"github.com/sefazor/photoclub-backend/internal/service"
	"github.com/sefazor/photoclub-backend/pkg/utils"
	"go.uber.org/zap"
)

type OrganizationHandler struct {
	organizationService *service.OrganizationService
	competitionService  *service.CompetitionService
	validator           *utils.Validator
	log                 *zap.Logger
}

func NewOrganizationHandler(organizationService *service.OrganizationService, competitionService *service.CompetitionService, validator *utils.Validator, log *zap.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		organizationService: organizationService,
		competitionService:  competitionService,
		validator:           validator,
		log:                 log,
	}
}

func (h *OrganizationHandler) CreateOrganization(c *fiber.Ctx) error {
	var req models.OrganizationRequest
	if ok, err := bind(c, h.validator, &req); !ok {
		return err
	}
	org, err := h.organizationService.Create(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, org, "Organization created successfully")
}

func (h *OrganizationHandler) GetOrganizations(c *fiber.Ctx) error {
	orgs, err := h.organizationService.List(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(orgs, ""))
}

func (h *OrganizationHandler) GetUserOrganizations(c *fiber.Ctx) error {
	orgs, err := h.organizationService.ListByUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(orgs, ""))
}

func (h *OrganizationHandler) GetOrganization(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "organization")
	if !ok {
		return err
	}
	org, err := h.organizationService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(org, ""))
}

func (h *OrganizationHandler) GetMembers(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "organization")
	if !ok {
		return err
	}
	members, err := h.organizationService.Members(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(members, ""))
}

func (h *OrganizationHandler) GetAdmins(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "organization")
	if !ok {
		return err
	}
	admins, err := h.organizationService.Admins(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(admins, ""))
}

func (h *OrganizationHandler) AddMember(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "organization")
	if !ok {
		return err
	}
	var req models.AddMemberRequest
	if ok, err := bind(c, h.validator, &req); !ok {
		return err
	}
	m, err := h.organizationService.AddMember(c.UserContext(), middleware.UserID(c), id, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, m, "Member added")
}

func (h *OrganizationHandler) RemoveMember(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "organization")
	if !ok {
		return err
	}
	if err := h.organizationService.RemoveMember(c.UserContext(), middleware.UserID(c), id, c.Params("userId")); err != nil {
		return respondError(c, h.log, err)
	}
	return noContent(c)
}

func (h *OrganizationHandler) UpdateOrganization(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "organization")
	if !ok {
		return err
	}
	var req models.UpdateOrganizationRequest
	if ok, err := bind(c, h.validator, &req); !ok {
		return err
	}
	org, err := h.organizationService.Update(c.UserContext(), middleware.UserID(c), id, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(org, "Organization updated successfully"))
}

func (h *OrganizationHandler) DeleteOrganization(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "organization")
	if !ok {
		return err
	}
	if err := h.organizationService.Delete(c.UserContext(), middleware.UserID(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return noContent(c)
}

func (h *OrganizationHandler) CreateCompetition(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "organization")
	if !ok {
		return err
	}
	var req models.CompetitionRequest
	if ok, err := bind(c, h.validator, &req); !ok {
		return err
	}
	comp, err := h.competitionService.Create(c.UserContext(), middleware.UserID(c), id, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, comp, "Competition created successfully")
}

func (h *OrganizationHandler) GetCompetitions(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "organization")
	if !ok {
		return err
	}
	comps, err := h.competitionService.ListByOrganization(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(comps, ""))
}
