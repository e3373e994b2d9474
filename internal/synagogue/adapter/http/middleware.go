package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"synagogue-manager/internal/auth/security"
	"synagogue-manager/internal/shared/logger"
	"synagogue-manager/internal/shared/paths"
	"synagogue-manager/internal/shared/utils"
	"synagogue-manager/internal/synagogue/domain/model"
	"synagogue-manager/internal/synagogue/usecase"
)

const (
	localsUserKey     = "authUser"
	localsServicesKey = "tenantServices"
)

// AuthMiddleware verifies the bearer token and attaches the signed-in
// user to the request. Requests without a valid token are rejected.
func AuthMiddleware(verifier *security.TokenVerifier, log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		user, err := verifier.VerifyToken(c.UserContext(), token)
		if err != nil {
			log.WithContext(c.UserContext()).Warnf("Token rejected: %v", err)
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(localsUserKey, user)
		ctx := utils.WithUserID(c.UserContext(), user.UID)
		ctx = utils.WithUserEmail(ctx, user.Email)
		ctx = utils.WithUserRole(ctx, string(user.Role))
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil on public routes.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(localsUserKey).(*model.User)
	return user
}

// TenantMiddleware resolves the :synagogueId path parameter into the
// tenant's service registry and scopes the request context to it.
func TenantMiddleware(factory usecase.TenantServicesFactory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		synagogueID := c.Params("synagogueId")
		if !paths.IsValidID(synagogueID) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid synagogue id")
		}

		services, err := factory(synagogueID)
		if err != nil {
			return err
		}

		c.Locals(localsServicesKey, services)
		c.SetUserContext(utils.WithSynagogueID(c.UserContext(), synagogueID))
		return c.Next()
	}
}

// TenantServices returns the registry resolved by TenantMiddleware.
func TenantServices(c *fiber.Ctx) *usecase.TenantServices {
	services, _ := c.Locals(localsServicesKey).(*usecase.TenantServices)
	return services
}

// RequireGabbai admits platform admins and members whose role in this
// synagogue grants gabbai privileges.
func RequireGabbai(global *usecase.GlobalServices) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}

		if user.Email != "" {
			isAdmin, err := global.IsAdmin(c.UserContext(), user.Email)
			if err != nil {
				return err
			}
			if isAdmin {
				return c.Next()
			}
		}

		services := TenantServices(c)
		if services == nil {
			return fiber.NewError(fiber.StatusForbidden, "gabbai access required")
		}
		membership, err := services.MembershipOf(c.UserContext(), user.UID)
		if err != nil {
			return err
		}
		if membership == nil || !membership.IsActive() || !membership.IsGabbaiOrHigher() {
			return fiber.NewError(fiber.StatusForbidden, "gabbai access required")
		}
		return c.Next()
	}
}

// RequireAdmin admits only platform admins from the admin registry.
func RequireAdmin(global *usecase.GlobalServices) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		if user.Email == "" {
			return fiber.NewError(fiber.StatusForbidden, "admin access required")
		}
		isAdmin, err := global.IsAdmin(c.UserContext(), user.Email)
		if err != nil {
			return err
		}
		if !isAdmin {
			return fiber.NewError(fiber.StatusForbidden, "admin access required")
		}
		return c.Next()
	}
}
