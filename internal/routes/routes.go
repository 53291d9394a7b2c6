package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sefazor/photoclub-backend/internal/config"
	"github.com/sefazor/photoclub-backend/internal/handler"
	"github.com/sefazor/photoclub-backend/internal/middleware"
	"github.com/sefazor/photoclub-backend/internal/telemetry"
	"go.uber.org/zap"
)

type Handlers struct {
	Health       *handler.HealthHandler
	User         *handler.UserHandler
	Photo        *handler.PhotoHandler
	Gallery      *handler.GalleryHandler
	Organization *handler.OrganizationHandler
	Competition  *handler.CompetitionHandler
}

// NewApp builds the fiber app with the global middleware chain. Extra
// middleware runs right after panic recovery.
func NewApp(cfg *config.Config, log *zap.Logger, metrics *telemetry.Metrics, extra ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "photoclub-backend",
		ErrorHandler: handler.ErrorHandler(log),
		BodyLimit:    int(cfg.UploadMaxBytes) + 1<<20,
	})

	app.Use(recover.New())
	for _, h := range extra {
		app.Use(h)
	}
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(log.Named("http"), metrics))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE",
	}))
	return app
}

func Setup(app *fiber.App, cfg *config.Config, auth fiber.Handler, metrics *telemetry.Metrics, h Handlers) {
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api")
	api.Use(limiter.New(limiter.Config{
		Max:               cfg.RateLimit.Max,
		Expiration:        cfg.RateLimit.Window,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	api.Get("/auth/user", auth, h.User.GetCurrentUser)

	users := api.Group("/users")
	users.Post("/username", auth, h.User.UpdateUsername)
	users.Post("/bio", auth, h.User.UpdateBio)
	users.Get("/:userId/stats", h.User.GetStats)

	api.Post("/uploads", auth, h.Photo.UploadPhoto)

	photos := api.Group("/photos")
	photos.Post("/", auth, h.Photo.CreatePhoto)
	photos.Get("/", h.Photo.GetRecentPhotos)
	photos.Get("/user/:userId", h.Photo.GetUserPhotos)
	photos.Get("/:id", h.Photo.GetPhoto)
	photos.Put("/:id", auth, h.Photo.UpdatePhoto)
	photos.Delete("/:id", auth, h.Photo.DeletePhoto)
	photos.Post("/:id/rate", auth, h.Photo.RatePhoto)
	photos.Get("/:id/ratings", h.Photo.GetPhotoRatings)

	galleries := api.Group("/galleries")
	galleries.Post("/", auth, h.Gallery.CreateGallery)
	galleries.Get("/user/:userId", h.Gallery.GetUserGalleries)
	galleries.Get("/:id", h.Gallery.GetGallery)
	galleries.Get("/:id/photos", h.Gallery.GetGalleryPhotos)
	galleries.Post("/:id/like", auth, h.Gallery.LikeGallery)
	galleries.Put("/:id", auth, h.Gallery.UpdateGallery)
	galleries.Delete("/:id", auth, h.Gallery.DeleteGallery)

	orgs := api.Group("/organizations")
	orgs.Post("/", auth, h.Organization.CreateOrganization)
	orgs.Get("/", h.Organization.GetOrganizations)
	orgs.Get("/user/:userId", h.Organization.GetUserOrganizations)
	orgs.Get("/:id", h.Organization.GetOrganization)
	orgs.Get("/:id/users", h.Organization.GetMembers)
	orgs.Get("/:id/admins", h.Organization.GetAdmins)
	orgs.Post("/:id/users", auth, h.Organization.AddMember)
	orgs.Delete("/:id/users/:userId", auth, h.Organization.RemoveMember)
	orgs.Put("/:id", auth, h.Organization.UpdateOrganization)
	orgs.Delete("/:id", auth, h.Organization.DeleteOrganization)
	orgs.Post("/:id/competitions", auth, h.Organization.CreateCompetition)
	orgs.Get("/:id/competitions", h.Organization.GetCompetitions)

	comps := api.Group("/competitions")
	comps.Get("/", h.Competition.GetActiveCompetitions)
	comps.Get("/:id", h.Competition.GetCompetition)
	comps.Put("/:id", auth, h.Competition.UpdateCompetition)
	comps.Delete("/:id", auth, h.Competition.DeleteCompetition)
	comps.Post("/:id/photos", auth, h.Competition.SubmitPhoto)
	comps.Get("/:id/photos", h.Competition.GetSubmissions)
	comps.Delete("/:id/photos/:photoId", auth, h.Competition.WithdrawPhoto)
	comps.Get("/:id/photos/:photoId/ratings", h.Competition.GetPhotoRatings)
}
