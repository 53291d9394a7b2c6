package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/photoclub-backend/internal/middleware"
	"github.com/sefazor/photoclub-backend/internal/models"
	"github.com/sefazor/photoclub-backend/internal/service"
	"github.com/sefazor/photoclub-backend/pkg/utils"
	"go.uber.org/zap"
)

type PhotoHandler struct {
	photoService  *service.PhotoService
	ratingService *service.RatingService
	validator     *utils.Validator
	log           *zap.Logger
}

func NewPhotoHandler(photoService *service.PhotoService, ratingService *service.RatingService, validator *utils.Validator, log *zap.Logger) *PhotoHandler {
	return &PhotoHandler{
		photoService:  photoService,
		ratingService: ratingService,
		validator:     validator,
		log:           log,
	}
}

func (h *PhotoHandler) CreatePhoto(c *fiber.Ctx) error {
	var req models.CreatePhotoRequest
	if ok, err := bind(c, h.validator, &req); !ok {
		return err
	}
	photo, err := h.photoService.Create(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, photo, "Photo created successfully")
}

func (h *PhotoHandler) GetRecentPhotos(c *fiber.Ctx) error {
	photos, err := h.photoService.Recent(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(photos, ""))
}

func (h *PhotoHandler) GetUserPhotos(c *fiber.Ctx) error {
	photos, err := h.photoService.ListByUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(photos, ""))
}

func (h *PhotoHandler) GetPhoto(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "photo")
	if !ok {
		return err
	}
	photo, err := h.photoService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(photo, ""))
}

func (h *PhotoHandler) UpdatePhoto(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "photo")
	if !ok {
		return err
	}
	var req models.UpdatePhotoRequest
	if ok, err := bind(c, h.validator, &req); !ok {
		return err
	}
	photo, err := h.photoService.Update(c.UserContext(), middleware.UserID(c), id, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(photo, "Photo updated successfully"))
}

func (h *PhotoHandler) DeletePhoto(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "photo")
	if !ok {
		return err
	}
	if err := h.photoService.Delete(c.UserContext(), middleware.UserID(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return noContent(c)
}

func (h *PhotoHandler) RatePhoto(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "photo")
	if !ok {
		return err
	}
	var req models.RatePhotoRequest
	if ok, err := bind(c, h.validator, &req); !ok {
		return err
	}
	rating, err := h.ratingService.Rate(c.UserContext(), middleware.UserID(c), id, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(rating, "Rating saved"))
}

func (h *PhotoHandler) GetPhotoRatings(c *fiber.Ctx) error {
	id, ok, err := parseID(c, "id", "photo")
	if !ok {
		return err
	}
	summary, err := h.ratingService.PhotoRatings(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(summary, ""))
}

// UploadPhoto stores the multipart "file" field and returns its public URL.
func (h *PhotoHandler) UploadPhoto(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ValidationResponse(map[string]string{"file": "is required"}))
	}
	contentType := file.Header.Get(fiber.HeaderContentType)
	if err := h.validator.Var(contentType, "supported_image"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ValidationResponse(map[string]string{
			"file": "must be a JPEG, PNG, GIF or WebP image",
		}))
	}

	src, err := file.Open()
	if err != nil {
		return respondError(c, h.log, err)
	}
	defer src.Close()

	res, err := h.photoService.Upload(c.UserContext(), middleware.UserID(c), contentType, src, file.Size)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, res, "File uploaded successfully")
}
