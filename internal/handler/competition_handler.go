package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/photoclub-backend/internal/middleware"
	"github.com/sefazor/photoclub-backend/internal/models"
	"github.com/sefazor/photoclub-backend/internal/service"
	"github.com/sefazor/photoclub-backend/pkg/utils"
	"go.uber.org/zap"
)

type CompetitionHandler struct {
	competitionService *service.CompetitionService
	ratingService      *service.RatingService
	validator          *utils.Validator
	log                *zap.Logger
}

func NewCompetitionHandler(competitionService *service.CompetitionService, ratingService *service.RatingService, validator *utils.Validator, log *zap.Logger) *CompetitionHandler {
	return &CompetitionHandler{
		competitionService: competitionService,
		ratingService:      ratingService,
		validator:          validator,
		log:                log,
	}
}

func (h *CompetitionHandler) GetActiveCompetitions(c *fiber.Ctx) error {
	comps, err := h.competitionService.ListActive(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(comps, ""))
}

func (h *CompetitionHandler) GetCompetition(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "competition")
	if !ok {
		return err
	}
	comp, err := h.competitionService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(comp, ""))
}

func (h *CompetitionHandler) UpdateCompetition(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "competition")
	if !ok {
		return err
	}
	var req models.UpdateCompetitionRequest
	if ok, err := bind(c, h.validator, &req); !ok {
		return err
	}
	comp, err := h.competitionService.Update(c.UserContext(), middleware.UserID(c), id, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(comp, "Competition updated successfully"))
}

func (h *CompetitionHandler) DeleteCompetition(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "competition")
	if !ok {
		return err
	}
	if err := h.competitionService.Delete(c.UserContext(), middleware.UserID(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return noContent(c)
}

func (h *CompetitionHandler) SubmitPhoto(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "competition")
	if !ok {
		return err
	}
	var req models.SubmitPhotoRequest
	if ok, err := bind(c, h.validator, &req); !ok {
		return err
	}
	sub, err := h.competitionService.Submit(c.UserContext(), middleware.UserID(c), id, req.PhotoID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, sub, "Photo submitted to competition")
}

func (h *CompetitionHandler) GetSubmissions(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "competition")
	if !ok {
		return err
	}
	subs, err := h.competitionService.Submissions(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(subs, ""))
}

func (h *CompetitionHandler) WithdrawPhoto(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "competition")
	if !ok {
		return err
	}
	photoID, ok, err := parseID(c, "photoId", "photo")
	if !ok {
		return err
	}
	if err := h.competitionService.Withdraw(c.UserContext(), middleware.UserID(c), id, photoID); err != nil {
		return respondError(c, h.log, err)
	}
	return noContent(c)
}

func (h *CompetitionHandler) GetPhotoRatings(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "competition")
	if !ok {
		return err
	}
	photoID, ok, err := parseID(c, "photoId", "photo")
	if !ok {
		return err
	}
	summary, err := h.ratingService.CompetitionPhotoRatings(c.UserContext(), photoID, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(summary, ""))
}
