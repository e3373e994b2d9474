package usecase

import (
	"context"

	"synagogue-manager/internal/synagogue/domain/model"
	"synagogue-manager/internal/synagogue/domain/repository"
)

// Collection names. Tenant-owned collections are scoped with
// paths.Scoped(synagogueID, name) when their stores are built.
const (
	CollectionSynagogues       = "synagogues"
	CollectionAdmins           = "admins"
	CollectionPrayerTimes      = "prayerTimes"
	CollectionDonations        = "donations"
	CollectionToraLessons      = "toraLessons"
	CollectionFinancialReports = "financialReports"
	CollectionAnnouncements    = "announcements"
	CollectionMemberships      = "memberships"
	CollectionSettings         = "settings" // holds the gabbaiBoard singleton
	CollectionInvitations      = "invitations"
	CollectionFamilies         = "families"
)

// TenantServicesFactory builds the service registry for one synagogue.
// The composition root binds it to the chosen persistence adapter.
type TenantServicesFactory func(synagogueID string) (*TenantServices, error)

// GlobalServices are the repositories over top-level collections shared by
// all tenants. Built once at startup and injected into consumers.
type GlobalServices struct {
	Synagogues *GenericService[model.Synagogue, model.SynagogueDto]
	Admins     *GenericService[model.Admin, model.AdminDto]
}

// IsAdmin reports whether the email is registered as a platform admin.
// The check is an existence probe on the exact ID bytes.
func (g *GlobalServices) IsAdmin(ctx context.Context, email string) (bool, error) {
	return g.Admins.Exists(ctx, email)
}

// RegisterAdmin adds an email to the admin registry.
func (g *GlobalServices) RegisterAdmin(ctx context.Context, email string) error {
	return g.Admins.InsertWithID(ctx, email, model.NewAdmin(email))
}

// TenantServices are the repositories over one synagogue's collections.
// Every store path is scoped under synagogues/{id}/.
type TenantServices struct {
	SynagogueID      string
	PrayerTimes      *GenericService[model.PrayerTimes, model.PrayerTimesDto]
	Donations        *GenericService[model.Donation, model.DonationDto]
	ToraLessons      *GenericService[model.ToraLesson, model.ToraLessonDto]
	FinancialReports *GenericService[model.FinancialReport, model.FinancialReportDto]
	Announcements    *GenericService[model.Announcement, model.AnnouncementDto]
	Memberships      *GenericService[model.Membership, model.MembershipDto]
	GabbaiBoard      *GenericService[model.GabbaiBoard, model.GabbaiBoardDto]
	Invitations      *GenericService[model.Invitation, model.InvitationDto]
	Families         *GenericService[model.Family, model.FamilyDto]
}

// EnabledDonations returns the visible donations in display order.
func (t *TenantServices) EnabledDonations(ctx context.Context) ([]model.Donation, error) {
	donations, err := t.Donations.GetByQuery(ctx, repository.Eq("enabled", true))
	if err != nil {
		return nil, err
	}
	model.SortByDisplayOrder(donations)
	return donations, nil
}

// EnabledToraLessons returns the visible lessons in display order.
func (t *TenantServices) EnabledToraLessons(ctx context.Context) ([]model.ToraLesson, error) {
	lessons, err := t.ToraLessons.GetByQuery(ctx, repository.Eq("enabled", true))
	if err != nil {
		return nil, err
	}
	model.SortByDisplayOrder(lessons)
	return lessons, nil
}

// EnabledFinancialReports returns the visible reports in display order.
func (t *TenantServices) EnabledFinancialReports(ctx context.Context) ([]model.FinancialReport, error) {
	reports, err := t.FinancialReports.GetByQuery(ctx, repository.Eq("enabled", true))
	if err != nil {
		return nil, err
	}
	model.SortByDisplayOrder(reports)
	return reports, nil
}

// GabbaiBoardSettings returns the synagogue's board settings, or nil when
// none were ever saved.
func (t *TenantServices) GabbaiBoardSettings(ctx context.Context) (*model.GabbaiBoard, error) {
	return t.GabbaiBoard.GetByID(ctx, model.GabbaiBoardID)
}

// SaveGabbaiBoardSettings writes the board settings under the singleton
// document ID, creating them on first save.
func (t *TenantServices) SaveGabbaiBoardSettings(ctx context.Context, board model.GabbaiBoard) error {
	return t.GabbaiBoard.InsertWithID(ctx, model.GabbaiBoardID, board)
}

// MembershipOf returns the membership of one user, or nil when the user
// does not belong to this synagogue.
func (t *TenantServices) MembershipOf(ctx context.Context, userID string) (*model.Membership, error) {
	return t.Memberships.GetByID(ctx, userID)
}
