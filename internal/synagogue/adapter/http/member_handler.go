package http

import (
	"github.com/gofiber/fiber/v2"

	"synagogue-manager/internal/shared/logger"
	"synagogue-manager/internal/synagogue/domain/model"
)

// MemberHandler serves routes available to any signed-in user of a
// synagogue: inspecting and accepting invitations, and reading one's own
// membership.
type MemberHandler struct {
	log logger.Logger
}

// NewMemberHandler creates the member handler.
func NewMemberHandler(log logger.Logger) *MemberHandler {
	return &MemberHandler{log: log.WithComponent("member_handler")}
}

// RegisterRoutes mounts the member routes on a tenant-scoped,
// authenticated router.
func (h *MemberHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/invitations/:id", h.getInvitation)
	router.Post("/invitations/:id/accept", h.acceptInvitation)
	router.Get("/my-membership", h.myMembership)
}

func (h *MemberHandler) getInvitation(c *fiber.Ctx) error {
	invitation, err := TenantServices(c).Invitations.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if invitation == nil {
		return fiber.NewError(fiber.StatusNotFound, "invitation not found")
	}
	return c.JSON(fiber.Map{
		"id":          invitation.ID,
		"inviterName": invitation.InviterName,
		"familyLabel": invitation.FamilyLabel,
		"inviteeRole": invitation.InviteeRole,
		"status":      invitation.Status,
		"pending":     invitation.IsPending(),
	})
}

// acceptInvitation marks the invitation accepted and writes the caller's
// membership. The two writes are not atomic; re-accepting an already
// accepted invitation is rejected before any write happens.
func (h *MemberHandler) acceptInvitation(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}

	services := TenantServices(c)
	invitation, err := services.Invitations.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if invitation == nil {
		return fiber.NewError(fiber.StatusNotFound, "invitation not found")
	}
	if !invitation.IsPending() {
		return fiber.NewError(fiber.StatusConflict, "invitation is no longer open")
	}

	accepted := invitation.Accept(user.UID)
	if err := services.Invitations.Update(c.UserContext(), invitation.ID, accepted); err != nil {
		return err
	}

	membership := model.NewMembership(user.UID, invitation.InviteeRole, invitation.FamilyID)
	if err := services.Memberships.InsertWithID(c.UserContext(), user.UID, membership); err != nil {
		return err
	}

	if invitation.UIDToMigrate != "" && invitation.UIDToMigrate != user.UID {
		// the placeholder record created before the invitee signed in
		if err := services.Memberships.DeleteByID(c.UserContext(), invitation.UIDToMigrate); err != nil {
			h.log.WithContext(c.UserContext()).Warnf(
				"Membership migration cleanup failed for %s: %v", invitation.UIDToMigrate, err)
		}
	}

	h.log.WithContext(c.UserContext()).Infof(
		"Invitation %s accepted by %s as %s", invitation.ID, user.UID, invitation.InviteeRole)
	return c.Status(fiber.StatusCreated).JSON(membership)
}

func (h *MemberHandler) myMembership(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}
	membership, err := TenantServices(c).MembershipOf(c.UserContext(), user.UID)
	if err != nil {
		return err
	}
	if membership == nil {
		return fiber.NewError(fiber.StatusNotFound, "no membership in this synagogue")
	}
	return c.JSON(membership)
}
