package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"synagogue-manager/internal/shared/logger"
	"synagogue-manager/internal/synagogue/domain/model"
	"synagogue-manager/internal/synagogue/usecase"
)

// PlatformHandler serves the cross-tenant surface: synagogue lifecycle and
// the platform admin registry. All routes sit behind RequireAdmin.
type PlatformHandler struct {
	global   *usecase.GlobalServices
	factory  usecase.TenantServicesFactory
	validate *validator.Validate
	log      logger.Logger
}

// NewPlatformHandler creates the platform handler.
func NewPlatformHandler(global *usecase.GlobalServices, factory usecase.TenantServicesFactory, log logger.Logger) *PlatformHandler {
	return &PlatformHandler{
		global:   global,
		factory:  factory,
		validate: validator.New(),
		log:      log.WithComponent("platform_handler"),
	}
}

// RegisterRoutes mounts the platform routes on an admin-gated router.
func (h *PlatformHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/synagogues", h.listSynagogues)
	router.Post("/synagogues", h.createSynagogue)
	router.Put("/synagogues/:synagogueId", h.updateSynagogue)
	router.Delete("/synagogues/:synagogueId", h.deleteSynagogue)

	router.Post("/admins", h.registerAdmin)
	router.Get("/admins", h.listAdmins)
}

func (h *PlatformHandler) parseAndValidate(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

func (h *PlatformHandler) listSynagogues(c *fiber.Ctx) error {
	synagogues, err := h.global.Synagogues.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"synagogues": synagogues, "count": len(synagogues)})
}

type createSynagogueRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *PlatformHandler) createSynagogue(c *fiber.Ctx) error {
	var req createSynagogueRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}

	synagogue := model.NewSynagogue(req.Name, actorID(c))
	id, err := h.global.Synagogues.Insert(c.UserContext(), synagogue)
	if err != nil {
		return err
	}

	h.log.WithContext(c.UserContext()).Infof("Synagogue created: %s (%s)", req.Name, id)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

type updateSynagogueRequest struct {
	Name           *string `json:"name"`
	PrimaryColor   *string `json:"primaryColor" validate:"omitempty,hexcolor"`
	SecondaryColor *string `json:"secondaryColor" validate:"omitempty,hexcolor"`
	ErrorColor     *string `json:"errorColor" validate:"omitempty,hexcolor"`
}

func (h *PlatformHandler) updateSynagogue(c *fiber.Ctx) error {
	var req updateSynagogueRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}

	id := c.Params("synagogueId")
	synagogue, err := h.global.Synagogues.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if synagogue == nil {
		return fiber.NewError(fiber.StatusNotFound, "synagogue not found")
	}

	updated := synagogue.Update(model.SynagoguePatch{
		Name:           req.Name,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		ErrorColor:     req.ErrorColor,
	})
	if err := h.global.Synagogues.Update(c.UserContext(), id, updated); err != nil {
		return err
	}
	return c.JSON(updated)
}

// deleteSynagogue removes the tenant document. Scoped collections keep
// their documents; they become unreachable once the tenant is gone.
func (h *PlatformHandler) deleteSynagogue(c *fiber.Ctx) error {
	if err := h.global.Synagogues.DeleteByID(c.UserContext(), c.Params("synagogueId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type registerAdminRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *PlatformHandler) registerAdmin(c *fiber.Ctx) error {
	var req registerAdminRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.global.RegisterAdmin(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusCreated)
}

func (h *PlatformHandler) listAdmins(c *fiber.Ctx) error {
	admins, err := h.global.Admins.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"admins": admins, "count": len(admins)})
}
