// Package http exposes the portal (public) and admin (role-gated) REST
// surfaces plus the websocket live query endpoint.
package http

import (
	"github.com/gofiber/fiber/v2"

	"synagogue-manager/internal/shared/logger"
	"synagogue-manager/internal/synagogue/domain/model"
	"synagogue-manager/internal/synagogue/usecase"
)

// PortalHandler serves the public read-only views of one synagogue.
type PortalHandler struct {
	global *usecase.GlobalServices
	log    logger.Logger
}

// NewPortalHandler creates the public portal handler.
func NewPortalHandler(global *usecase.GlobalServices, log logger.Logger) *PortalHandler {
	return &PortalHandler{global: global, log: log.WithComponent("portal_handler")}
}

// RegisterRoutes mounts the portal routes on a tenant-scoped router.
func (h *PortalHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.getSynagogue)
	router.Get("/prayer-times", h.listPrayerTimes)
	router.Get("/donations", h.listDonations)
	router.Get("/tora-lessons", h.listToraLessons)
	router.Get("/financial-reports", h.listFinancialReports)
	router.Get("/announcements", h.listAnnouncements)
	router.Get("/gabbai-board", h.getGabbaiBoard)
}

func (h *PortalHandler) getSynagogue(c *fiber.Ctx) error {
	services := TenantServices(c)
	synagogue, err := h.global.Synagogues.GetByID(c.UserContext(), services.SynagogueID)
	if err != nil {
		return err
	}
	if synagogue == nil {
		return fiber.NewError(fiber.StatusNotFound, "synagogue not found")
	}
	return c.JSON(fiber.Map{
		"id":             synagogue.ID,
		"name":           synagogue.Name,
		"primaryColor":   synagogue.PrimaryColorValue(),
		"secondaryColor": synagogue.SecondaryColorValue(),
		"errorColor":     synagogue.ErrorColorValue(),
	})
}

func (h *PortalHandler) listPrayerTimes(c *fiber.Ctx) error {
	boards, err := TenantServices(c).PrayerTimes.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"prayerTimes": boards, "count": len(boards)})
}

func (h *PortalHandler) listDonations(c *fiber.Ctx) error {
	donations, err := TenantServices(c).EnabledDonations(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"donations": donations, "count": len(donations)})
}

func (h *PortalHandler) listToraLessons(c *fiber.Ctx) error {
	lessons, err := TenantServices(c).EnabledToraLessons(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"toraLessons": lessons, "count": len(lessons)})
}

func (h *PortalHandler) listFinancialReports(c *fiber.Ctx) error {
	reports, err := TenantServices(c).EnabledFinancialReports(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"financialReports": reports, "count": len(reports)})
}

func (h *PortalHandler) listAnnouncements(c *fiber.Ctx) error {
	announcements, err := TenantServices(c).Announcements.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"announcements": announcements, "count": len(announcements)})
}

func (h *PortalHandler) getGabbaiBoard(c *fiber.Ctx) error {
	board, err := TenantServices(c).GabbaiBoardSettings(c.UserContext())
	if err != nil {
		return err
	}
	if board == nil {
		defaults := model.NewGabbaiBoard("", model.DefaultLookaheadDays)
		board = &defaults
	}
	return c.JSON(board)
}
