package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	apperrors "synagogue-manager/internal/shared/errors"
	"synagogue-manager/internal/shared/logger"
	"synagogue-manager/internal/synagogue/domain/repository"
	"synagogue-manager/internal/synagogue/usecase"

	"synagogue-manager/internal/auth/security"
)

// RouterDeps carries everything the HTTP layer needs. Storage may be nil
// when file uploads are not configured; HealthCheck may be nil.
type RouterDeps struct {
	Global      *usecase.GlobalServices
	Factory     usecase.TenantServicesFactory
	Verifier    *security.TokenVerifier
	Storage     repository.FileStorage
	HealthCheck func(ctx context.Context) error
	Log         logger.Logger
}

// NewApp builds the Fiber application with all routes mounted.
//
// Route layout per synagogue, under /api/v1/synagogues/:synagogueId:
//
//	/...            public portal reads
//	/live/:name     websocket live queries
//	/member/...     any signed-in user
//	/admin/...      gabbai or platform admin
//
// Platform-wide routes live under /api/v1/platform and require a
// registered admin.
func NewApp(deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Synagogue Manager API v1.0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: newErrorHandler(deps.Log),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/health", newHealthHandler(deps))

	api := app.Group("/api/v1")

	auth := AuthMiddleware(deps.Verifier, deps.Log)

	platform := api.Group("/platform", auth, RequireAdmin(deps.Global))
	NewPlatformHandler(deps.Global, deps.Factory, deps.Log).RegisterRoutes(platform)

	tenant := api.Group("/synagogues/:synagogueId", TenantMiddleware(deps.Factory))

	NewPortalHandler(deps.Global, deps.Log).RegisterRoutes(tenant)
	NewWSHandler(deps.Log).RegisterRoutes(tenant)

	member := tenant.Group("/member", auth)
	NewMemberHandler(deps.Log).RegisterRoutes(member)

	admin := tenant.Group("/admin", auth, RequireGabbai(deps.Global))
	NewAdminHandler(deps.Storage, deps.Log).RegisterRoutes(admin)

	return app
}

func newHealthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.HealthCheck != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
			defer cancel()
			if err := deps.HealthCheck(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "UNHEALTHY",
					"error":  err.Error(),
				})
			}
		}
		return c.JSON(fiber.Map{
			"status":    "HEALTHY",
			"timestamp": time.Now().UTC(),
		})
	}
}

// newErrorHandler translates application errors into HTTP responses.
// AppError carries its own status code; anything unclassified is a 500
// with the detail kept out of the response body.
func newErrorHandler(log logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			code := appErr.HTTPCode
			if code == 0 {
				code = fiber.StatusInternalServerError
			}
			return c.Status(code).JSON(fiber.Map{
				"type":    appErr.Type,
				"message": appErr.Message,
				"details": appErr.Details,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
		}

		log.WithContext(c.UserContext()).Errorf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "internal server error",
		})
	}
}
