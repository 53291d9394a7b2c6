package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/photoclub-backend/internal/models"
	"github.com/sefazor/photoclub-backend/internal/service"
	jwtPkg "github.com/sefazor/photoclub-backend/pkg/jwt"
	"go.uber.org/zap"
)

const (
	LocalUserID = "userID"
	LocalUser   = "user"
)

// AuthMiddleware validates the bearer token and makes sure a user row
// exists for its subject. The subject is stored under LocalUserID.
func AuthMiddleware(secret string, users *service.UserService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authorization header is required"))
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid authorization header format"))
		}

		claims, err := jwtPkg.ValidateToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			log.Debug("token rejected", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid token"))
		}

		user, err := users.EnsureUser(c.UserContext(), claims.Identity())
		if err != nil {
			log.Error("failed to sync user", zap.String("user_id", claims.Subject), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Internal server error"))
		}

		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// UserID returns the authenticated subject, or "" outside AuthMiddleware.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}
