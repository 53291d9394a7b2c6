package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/photoclub-backend/internal/models"
	"github.com/sefazor/photoclub-backend/internal/service"
	"github.com/sefazor/photoclub-backend/pkg/utils"
	"go.uber.org/zap"
)

// respondError maps service rejections to 4xx responses. Everything else is
// logged and answered with a generic 500.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		switch svcErr.Kind {
		case service.KindValidation:
			if svcErr.Field != "" {
				return c.Status(fiber.StatusBadRequest).JSON(models.Response{
					Success: false,
					Error:   svcErr.Message,
					Errors:  map[string]string{svcErr.Field: svcErr.Message},
				})
			}
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(svcErr.Message))
		case service.KindNotFound:
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse(svcErr.Message))
		case service.KindForbidden:
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse(svcErr.Message))
		}
	}
	log.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Internal server error"))
}

// ErrorHandler is the fiber error handler. Client errors keep their message;
// server errors are hidden.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("unhandled server error",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			message = "Internal server error"
		}
		return c.Status(code).JSON(models.ErrorResponse(message))
	}
}

// bind parses the JSON body into req and validates it. A non-nil error means
// the response has already been written.
func bind(c *fiber.Ctx, v *utils.Validator, req interface{}) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := v.Struct(req); err != nil {
		if fields := utils.ValidationErrors(err); fields != nil {
			return false, c.Status(fiber.StatusBadRequest).JSON(models.ValidationResponse(fields))
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}
	return true, nil
}

// parseID reads a positive numeric route parameter.
func parseID(c *fiber.Ctx, param, entity string) (uint, bool, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil || id == 0 {
		return 0, false, c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(fmt.Sprintf("Invalid %s ID", entity)))
	}
	return uint(id), true, nil
}

func created(c *fiber.Ctx, data interface{}, message string) error {
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(data, message))
}

func noContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
