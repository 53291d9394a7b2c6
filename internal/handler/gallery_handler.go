package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/photoclub-backend/internal/middleware"
	"github.com/sefazor/photoclub-backend/internal/models"
	"github.com/sefazor/photoclub-backend/internal/service"
	"github.com/sefazor/photoclub-backend/pkg/utils"
	"go.uber.org/zap"
)

type GalleryHandler struct {
	galleryService *service.GalleryService
	photoService   *service.PhotoService
	validator      *utils.Validator
	log            *zap.Logger
}

func NewGalleryHandler(galleryService *service.GalleryService, photoService *service.PhotoService, validator *utils.Validator, log *zap.Logger) *GalleryHandler {
	return &GalleryHandler{
		galleryService: galleryService,
		photoService:   photoService,
		validator:      validator,
		log:            log,
	}
}

func (h *GalleryHandler) CreateGallery(c *fiber.Ctx) error {
	var req models.CreateGalleryRequest
	if ok, err := bind(c, h.validator, &req); !ok {
		return err
	}
	gallery, err := h.galleryService.Create(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, gallery, "Gallery created successfully")
}

func (h *GalleryHandler) GetUserGalleries(c *fiber.Ctx) error {
	galleries, err := h.galleryService.ListByUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(galleries, ""))
}

func (h *GalleryHandler) GetGallery(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "gallery")
	if !ok {
		return err
	}
	gallery, err := h.galleryService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(gallery, ""))
}

func (h *GalleryHandler) GetGalleryPhotos(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "gallery")
	if !ok {
		return err
	}
	photos, err := h.photoService.ListByGallery(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(photos, ""))
}

func (h *GalleryHandler) LikeGallery(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "gallery")
	if !ok {
		return err
	}
	gallery, err := h.galleryService.Like(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(gallery, "Gallery liked"))
}

func (h *GalleryHandler) UpdateGallery(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "gallery")
	if !ok {
		return err
	}
	var req models.UpdateGalleryRequest
	if ok, err := bind(c, h.validator, &req); !ok {
		return err
	}
	gallery, err := h.galleryService.Update(c.UserContext(), middleware.UserID(c), id, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(gallery, "Gallery updated successfully"))
}

func (h *GalleryHandler) DeleteGallery(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "gallery")
	if !ok {
		return err
	}
	if err := h.galleryService.Delete(c.UserContext(), middleware.UserID(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return noContent(c)
}
