package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sefazor/photoclub-backend/internal/models"
	"github.com/sefazor/photoclub-backend/internal/repository"
	"github.com/sefazor/photoclub-backend/internal/service"
	"github.com/sefazor/photoclub-backend/internal/telemetry"
	"github.com/sefazor/photoclub-backend/pkg/jwt"
)

func TestAuthMiddlewareProvisionsUser(t *testing.T) {
	store := repository.NewMemoryStore()
	users := service.NewUserService(store, zap.NewNop())

	app := fiber.New()
	app.Get("/me", AuthMiddleware("secret", users, zap.NewNop()), func(c *fiber.Ctx) error {
		return c.SendString(UserID(c))
	})

	tok, err := jwt.GenerateToken("secret", models.Identity{Subject: "u-1", FirstName: "Ada"}, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tok)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	user, err := store.GetUser(req.Context(), "u-1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Ada", user.FirstName)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Token "+tok)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	wrongKey, err := jwt.GenerateToken("other", models.Identity{Subject: "u-1"}, time.Hour)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+wrongKey)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequestLoggerRecordsRouteTemplate(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	metrics := telemetry.New()

	app := fiber.New()
	app.Use(RequestLogger(zap.New(core), metrics))
	app.Get("/photos/:id", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Photo not found")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/photos/42", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/photos/:id", fields["route"])
	assert.EqualValues(t, http.StatusNotFound, fields["status"])
	assert.NotContains(t, fields, "user_id")
	series, err := testutil.GatherAndCount(metrics.Registry(), "photoclub_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, series)
}
