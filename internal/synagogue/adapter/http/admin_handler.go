package http

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"synagogue-manager/internal/shared/logger"
	"synagogue-manager/internal/synagogue/adapter/storage"
	"synagogue-manager/internal/synagogue/domain/model"
	"synagogue-manager/internal/synagogue/domain/repository"
)

// AdminHandler serves the gabbai-facing CRUD surface of one synagogue.
type AdminHandler struct {
	storage  repository.FileStorage // nil when uploads are not configured
	validate *validator.Validate
	log      logger.Logger
}

// NewAdminHandler creates the tenant admin handler. storage may be nil;
// report upload then answers 503.
func NewAdminHandler(storage repository.FileStorage, log logger.Logger) *AdminHandler {
	return &AdminHandler{
		storage:  storage,
		validate: validator.New(),
		log:      log.WithComponent("admin_handler"),
	}
}

// RegisterRoutes mounts the admin routes on a tenant-scoped, role-gated
// router.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/prayer-times", h.createPrayerTimes)
	router.Put("/prayer-times/:id", h.updatePrayerTimes)
	router.Delete("/prayer-times/:id", h.deletePrayerTimes)
	router.Post("/prayer-times/:id/sections", h.addPrayerTimeSection)
	router.Delete("/prayer-times/:id/sections/:sectionId", h.removePrayerTimeSection)

	router.Post("/donations", h.createDonation)
	router.Put("/donations/:id", h.updateDonation)
	router.Delete("/donations/:id", h.deleteDonation)

	router.Post("/tora-lessons", h.createToraLesson)
	router.Put("/tora-lessons/:id", h.updateToraLesson)
	router.Delete("/tora-lessons/:id", h.deleteToraLesson)

	router.Post("/financial-reports", h.createFinancialReport)
	router.Post("/financial-reports/upload", h.uploadReportDocument)
	router.Put("/financial-reports/:id", h.updateFinancialReport)
	router.Delete("/financial-reports/:id", h.deleteFinancialReport)

	router.Post("/announcements", h.createAnnouncement)
	router.Put("/announcements/:id", h.updateAnnouncement)
	router.Delete("/announcements/:id", h.deleteAnnouncement)

	router.Put("/gabbai-board", h.saveGabbaiBoard)

	router.Post("/families", h.createFamily)
	router.Put("/families/:id", h.updateFamily)
	router.Delete("/families/:id", h.deleteFamily)

	router.Post("/invitations", h.createInvitation)
	router.Post("/invitations/:id/cancel", h.cancelInvitation)
	router.Get("/invitations", h.listInvitations)

	router.Get("/memberships", h.listMemberships)
	router.Put("/memberships/:id/role", h.changeMembershipRole)
}

func (h *AdminHandler) parseAndValidate(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

func actorID(c *fiber.Ctx) string {
	if user := CurrentUser(c); user != nil {
		return user.UID
	}
	return ""
}

// --- prayer times ---

type createPrayerTimesRequest struct {
	Title    string `json:"title" validate:"required"`
	Sections []struct {
		Title string `json:"title" validate:"required"`
		Times []struct {
			Label string `json:"label" validate:"required"`
			Time  string `json:"time"`
		} `json:"times"`
	} `json:"sections" validate:"dive"`
}

func (h *AdminHandler) createPrayerTimes(c *fiber.Ctx) error {
	var req createPrayerTimesRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}

	sections := make([]model.PrayerTimeSection, 0, len(req.Sections))
	for _, s := range req.Sections {
		times := make([]model.PrayerTimeEntry, 0, len(s.Times))
		for _, t := range s.Times {
			times = append(times, model.NewPrayerTimeEntry(t.Label, t.Time))
		}
		sections = append(sections, model.NewPrayerTimeSection(s.Title, times...))
	}

	board := model.NewPrayerTimes(req.Title, sections...)
	if err := TenantServices(c).PrayerTimes.InsertWithID(c.UserContext(), board.ID, board); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": board.ID})
}

type updatePrayerTimesRequest struct {
	Title *string `json:"title"`
}

func (h *AdminHandler) updatePrayerTimes(c *fiber.Ctx) error {
	var req updatePrayerTimesRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}

	services := TenantServices(c)
	board, err := services.PrayerTimes.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if board == nil {
		return fiber.NewError(fiber.StatusNotFound, "prayer times not found")
	}

	updated := board.Update(model.PrayerTimesPatch{Title: req.Title})
	if err := services.PrayerTimes.Update(c.UserContext(), board.ID, updated); err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *AdminHandler) deletePrayerTimes(c *fiber.Ctx) error {
	if err := TenantServices(c).PrayerTimes.DeleteByID(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type addSectionRequest struct {
	Title string `json:"title" validate:"required"`
	Times []struct {
		Label string `json:"label" validate:"required"`
		Time  string `json:"time"`
	} `json:"times"`
}

func (h *AdminHandler) addPrayerTimeSection(c *fiber.Ctx) error {
	var req addSectionRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}

	services := TenantServices(c)
	board, err := services.PrayerTimes.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if board == nil {
		return fiber.NewError(fiber.StatusNotFound, "prayer times not found")
	}

	times := make([]model.PrayerTimeEntry, 0, len(req.Times))
	for _, t := range req.Times {
		times = append(times, model.NewPrayerTimeEntry(t.Label, t.Time))
	}
	section := model.NewPrayerTimeSection(req.Title, times...)

	updated := board.AddSection(section)
	if err := services.PrayerTimes.Update(c.UserContext(), board.ID, updated); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"sectionId": section.ID})
}

func (h *AdminHandler) removePrayerTimeSection(c *fiber.Ctx) error {
	services := TenantServices(c)
	board, err := services.PrayerTimes.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if board == nil {
		return fiber.NewError(fiber.StatusNotFound, "prayer times not found")
	}

	updated := board.RemoveSection(c.Params("sectionId"))
	if err := services.PrayerTimes.Update(c.UserContext(), board.ID, updated); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- donations ---

type createDonationRequest struct {
	Title        string `json:"title" validate:"required"`
	Link         string `json:"link" validate:"required,url"`
	Notes        string `json:"notes"`
	DisplayOrder int    `json:"displayOrder" validate:"gte=0"`
}

func (h *AdminHandler) createDonation(c *fiber.Ctx) error {
	var req createDonationRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}

	donation := model.NewDonation(req.Title, req.Link, actorID(c), req.DisplayOrder)
	if req.Notes != "" {
		donation = donation.Update(model.DonationPatch{Notes: &req.Notes})
	}

	// a donation link going live should not hang the admin UI
	id, err := TenantServices(c).Donations.InsertWithTimeout(c.UserContext(), donation, 10*time.Second)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

type updateDonationRequest struct {
	Title        *string `json:"title"`
	Link         *string `json:"link" validate:"omitempty,url"`
	Notes        *string `json:"notes"`
	Enabled      *bool   `json:"enabled"`
	DisplayOrder *int    `json:"displayOrder" validate:"omitempty,gte=0"`
}

func (h *AdminHandler) updateDonation(c *fiber.Ctx) error {
	var req updateDonationRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}

	services := TenantServices(c)
	donation, err := services.Donations.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if donation == nil {
		return fiber.NewError(fiber.StatusNotFound, "donation not found")
	}

	updated := donation.Update(model.DonationPatch{
		Title:        req.Title,
		Link:         req.Link,
		Notes:        req.Notes,
		Enabled:      req.Enabled,
		DisplayOrder: req.DisplayOrder,
	})
	if err := services.Donations.Update(c.UserContext(), donation.ID, updated); err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *AdminHandler) deleteDonation(c *fiber.Ctx) error {
	if err := TenantServices(c).Donations.DeleteByID(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- tora lessons ---

type createToraLessonRequest struct {
	Title        string `json:"title" validate:"required"`
	LedBy        string `json:"ledBy"`
	When         string `json:"when"`
	Notes        string `json:"notes"`
	DisplayOrder int    `json:"displayOrder" validate:"gte=0"`
}

func (h *AdminHandler) createToraLesson(c *fiber.Ctx) error {
	var req createToraLessonRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}

	lesson := model.NewToraLesson(req.Title, req.LedBy, req.When, req.DisplayOrder)
	if req.Notes != "" {
		lesson = lesson.Update(model.ToraLessonPatch{Notes: &req.Notes})
	}
	id, err := TenantServices(c).ToraLessons.Insert(c.UserContext(), lesson)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

type updateToraLessonRequest struct {
	Title        *string `json:"title"`
	LedBy        *string `json:"ledBy"`
	When         *string `json:"when"`
	Notes        *string `json:"notes"`
	Enabled      *bool   `json:"enabled"`
	DisplayOrder *int    `json:"displayOrder" validate:"omitempty,gte=0"`
}

func (h *AdminHandler) updateToraLesson(c *fiber.Ctx) error {
	var req updateToraLessonRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}

	services := TenantServices(c)
	lesson, err := services.ToraLessons.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if lesson == nil {
		return fiber.NewError(fiber.StatusNotFound, "lesson not found")
	}

	updated := lesson.Update(model.ToraLessonPatch{
		Title:        req.Title,
		LedBy:        req.LedBy,
		When:         req.When,
		Notes:        req.Notes,
		Enabled:      req.Enabled,
		DisplayOrder: req.DisplayOrder,
	})
	if err := services.ToraLessons.Update(c.UserContext(), lesson.ID, updated); err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *AdminHandler) deleteToraLesson(c *fiber.Ctx) error {
	if err := TenantServices(c).ToraLessons.DeleteByID(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- financial reports ---

type createFinancialReportRequest struct {
	Title          string `json:"title" validate:"required"`
	LinkToDocument string `json:"linkToDocument"`
	Content        string `json:"content"`
	DisplayOrder   int    `json:"displayOrder" validate:"gte=0"`
}

func (h *AdminHandler) createFinancialReport(c *fiber.Ctx) error {
	var req createFinancialReportRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}

	report := model.NewFinancialReport(req.Title, req.LinkToDocument, actorID(c), req.Content, req.DisplayOrder)
	id, err := TenantServices(c).FinancialReports.Insert(c.UserContext(), report)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *AdminHandler) uploadReportDocument(c *fiber.Ctx) error {
	if h.storage == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "file storage is not configured")
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "document file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cannot read uploaded file")
	}
	defer file.Close()

	key := storage.ReportObjectKey(TenantServices(c).SynagogueID, fileHeader.Filename)
	url, err := h.storage.Upload(c.UserContext(), key, file, fileHeader.Header.Get(fiber.HeaderContentType))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url, "key": key})
}

type updateFinancialReportRequest struct {
	Title          *string `json:"title"`
	LinkToDocument *string `json:"linkToDocument"`
	Content        *string `json:"content"`
	Enabled        *bool   `json:"enabled"`
	DisplayOrder   *int    `json:"displayOrder" validate:"omitempty,gte=0"`
}

func (h *AdminHandler) updateFinancialReport(c *fiber.Ctx) error {
	var req updateFinancialReportRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}

	services := TenantServices(c)
	report, err := services.FinancialReports.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if report == nil {
		return fiber.NewError(fiber.StatusNotFound, "report not found")
	}

	updated := report.Update(model.FinancialReportPatch{
		Title:          req.Title,
		LinkToDocument: req.LinkToDocument,
		Content:        req.Content,
		Enabled:        req.Enabled,
		DisplayOrder:   req.DisplayOrder,
	})
	if err := services.FinancialReports.Update(c.UserContext(), report.ID, updated); err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *AdminHandler) deleteFinancialReport(c *fiber.Ctx) error {
	if err := TenantServices(c).FinancialReports.DeleteByID(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- announcements ---

type createAnnouncementRequest struct {
	Title       string `json:"title" validate:"required"`
	Content     string `json:"content" validate:"required"`
	IsImportant bool   `json:"isImportant"`
	Publication *struct {
		Year  int `json:"year" validate:"required"`
		Month int `json:"month" validate:"required,min=1,max=13"`
		Day   int `json:"day" validate:"required,min=1,max=30"`
	} `json:"publicationDate"`
}

func (h *AdminHandler) createAnnouncement(c *fiber.Ctx) error {
	var req createAnnouncementRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}

	publication := model.HebrewDateNow()
	if req.Publication != nil {
		publication = model.NewHebrewDate(req.Publication.Year, req.Publication.Month, req.Publication.Day)
	}

	author := ""
	if user := CurrentUser(c); user != nil {
		author = user.DisplayName
	}
	announcement := model.NewAnnouncement(req.Title, req.Content, author, publication, req.IsImportant)
	id, err := TenantServices(c).Announcements.Insert(c.UserContext(), announcement)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

type updateAnnouncementRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	IsImportant *bool   `json:"isImportant"`
}

func (h *AdminHandler) updateAnnouncement(c *fiber.Ctx) error {
	var req updateAnnouncementRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}

	services := TenantServices(c)
	announcement, err := services.Announcements.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if announcement == nil {
		return fiber.NewError(fiber.StatusNotFound, "announcement not found")
	}

	updated := announcement.Update(model.AnnouncementPatch{
		Title:       req.Title,
		Content:     req.Content,
		IsImportant: req.IsImportant,
	})
	if err := services.Announcements.Update(c.UserContext(), announcement.ID, updated); err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *AdminHandler) deleteAnnouncement(c *fiber.Ctx) error {
	if err := TenantServices(c).Announcements.DeleteByID(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- gabbai board ---

type saveGabbaiBoardRequest struct {
	LookaheadDays int `json:"lookaheadDays" validate:"required,gt=0"`
}

func (h *AdminHandler) saveGabbaiBoard(c *fiber.Ctx) error {
	var req saveGabbaiBoardRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}

	board := model.NewGabbaiBoard(actorID(c), req.LookaheadDays)
	if err := TenantServices(c).SaveGabbaiBoardSettings(c.UserContext(), board); err != nil {
		return err
	}
	return c.JSON(board)
}

// --- families ---

type createFamilyRequest struct {
	FamilyLabel string `json:"familyLabel" validate:"required"`
	Notes       string `json:"notes"`
}

func (h *AdminHandler) createFamily(c *fiber.Ctx) error {
	var req createFamilyRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}

	family := model.NewFamily(req.FamilyLabel, actorID(c))
	if req.Notes != "" {
		family = family.Update(model.FamilyPatch{Notes: &req.Notes})
	}
	id, err := TenantServices(c).Families.Insert(c.UserContext(), family)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

type updateFamilyRequest struct {
	FamilyLabel *string `json:"familyLabel"`
	Notes       *string `json:"notes"`
}

func (h *AdminHandler) updateFamily(c *fiber.Ctx) error {
	var req updateFamilyRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}

	services := TenantServices(c)
	family, err := services.Families.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if family == nil {
		return fiber.NewError(fiber.StatusNotFound, "family not found")
	}

	updated := family.Update(model.FamilyPatch{FamilyLabel: req.FamilyLabel, Notes: req.Notes})
	if err := services.Families.Update(c.UserContext(), family.ID, updated); err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *AdminHandler) deleteFamily(c *fiber.Ctx) error {
	if err := TenantServices(c).Families.DeleteByID(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- invitations ---

type createInvitationRequest struct {
	InviteeRole  string `json:"inviteeRole" validate:"required,oneof=member gabbai admin"`
	FamilyID     string `json:"familyId"`
	FamilyLabel  string `json:"familyLabel"`
	UIDToMigrate string `json:"uidToMigrate"`
	ExpiresInH   int    `json:"expiresInHours" validate:"omitempty,gt=0"`
}

func (h *AdminHandler) createInvitation(c *fiber.Ctx) error {
	var req createInvitationRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}

	user := CurrentUser(c)
	if user == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}

	// the ID is minted here so the invitation link can be shared at once
	invitation := model.NewInvitation(uuid.NewString(), user.UID, user.DisplayName, model.ParseRole(req.InviteeRole))
	if req.FamilyID != "" {
		invitation = invitation.WithFamily(req.FamilyID, req.FamilyLabel)
	}
	if req.UIDToMigrate != "" {
		invitation = invitation.WithMigration(req.UIDToMigrate)
	}
	if req.ExpiresInH > 0 {
		invitation = invitation.WithExpiry(time.Now().Add(time.Duration(req.ExpiresInH) * time.Hour))
	}

	if err := TenantServices(c).Invitations.InsertWithID(c.UserContext(), invitation.ID, invitation); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":     invitation.ID,
		"status": invitation.Status,
	})
}

func (h *AdminHandler) cancelInvitation(c *fiber.Ctx) error {
	services := TenantServices(c)
	invitation, err := services.Invitations.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if invitation == nil {
		return fiber.NewError(fiber.StatusNotFound, "invitation not found")
	}

	if err := services.Invitations.Update(c.UserContext(), invitation.ID, invitation.Cancel()); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) listInvitations(c *fiber.Ctx) error {
	invitations, err := TenantServices(c).Invitations.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"invitations": invitations, "count": len(invitations)})
}

// --- memberships ---

func (h *AdminHandler) listMemberships(c *fiber.Ctx) error {
	memberships, err := TenantServices(c).Memberships.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"memberships": memberships, "count": len(memberships)})
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=member gabbai admin"`
}

func (h *AdminHandler) changeMembershipRole(c *fiber.Ctx) error {
	var req changeRoleRequest
	if err := h.parseAndValidate(c, &req); err != nil {
		return err
	}

	services := TenantServices(c)
	membership, err := services.MembershipOf(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if membership == nil {
		return fiber.NewError(fiber.StatusNotFound, "membership not found")
	}

	updated := membership.ChangeRole(model.ParseRole(req.Role))
	if err := services.Memberships.Update(c.UserContext(), membership.ID, updated); err != nil {
		return err
	}
	return c.JSON(updated)
}
