package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/photoclub-backend/internal/models"
	"github.com/sefazor/photoclub-backend/internal/repository"
)

type HealthHandler struct {
	store repository.Store
}

func NewHealthHandler(store repository.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.Map{"store": h.store.Backend(), "status": "ok"}
	if err := h.store.Ping(ctx); err != nil {
		status["status"] = "unavailable"
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.Response{
			Success: false,
			Error:   "Store unavailable",
			Data:    status,
		})
	}
	return c.JSON(models.SuccessResponse(status, ""))
}
