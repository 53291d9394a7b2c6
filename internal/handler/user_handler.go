package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/photoclub-backend/internal/middleware"
	"github.com/sefazor/photoclub-backend/internal/models"
	"github.com/sefazor/photoclub-backend/internal/service"
	"github.com/sefazor/photoclub-backend/pkg/utils"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
	validator   *utils.Validator
	log         *zap.Logger
}

func NewUserHandler(userService *service.UserService, validator *utils.Validator, log *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
		log:         log,
	}
}

func (h *UserHandler) GetCurrentUser(c *fiber.Ctx) error {
	user, err := h.userService.Get(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(user, ""))
}

func (h *UserHandler) UpdateUsername(c *fiber.Ctx) error {
	var req models.UpdateUsernameRequest
	if ok, err := bind(c, h.validator, &req); !ok {
		return err
	}
	user, err := h.userService.UpdateUsername(c.UserContext(), middleware.UserID(c), req.Username)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(user, "Username updated"))
}

func (h *UserHandler) UpdateBio(c *fiber.Ctx) error {
	var req models.UpdateBioRequest
	if ok, err := bind(c, h.validator, &req); !ok {
		return err
	}
	user, err := h.userService.UpdateBio(c.UserContext(), middleware.UserID(c), req.Bio)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(user, "Bio updated"))
}

func (h *UserHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.userService.Stats(c.UserContext(), c.Params("userId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.SuccessResponse(stats, ""))
}
