package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synagogue-manager/internal/shared/eventbus"
	"synagogue-manager/internal/shared/logger"
	"synagogue-manager/internal/shared/paths"
	"synagogue-manager/internal/synagogue/adapter/persistence/memory"
	"synagogue-manager/internal/synagogue/domain/model"
	"synagogue-manager/internal/synagogue/domain/repository"
)

func newMemoryService[E any, D any](t *testing.T, synagogueID, collection string, mapper repository.Mapper[E, D], bus *eventbus.EventBus) *GenericService[E, D] {
	t.Helper()
	store, err := memory.NewDocumentStore[D](paths.Scoped(synagogueID, collection), bus)
	require.NoError(t, err)
	return NewGenericService[E, D](store, mapper, logger.NewLogger())
}

func newTestTenantServices(t *testing.T, synagogueID string) *TenantServices {
	t.Helper()
	bus := eventbus.NewEventBus(nil)
	return &TenantServices{
		SynagogueID:      synagogueID,
		PrayerTimes:      newMemoryService(t, synagogueID, CollectionPrayerTimes, model.PrayerTimesMapper, bus),
		Donations:        newMemoryService(t, synagogueID, CollectionDonations, model.DonationMapper, bus),
		ToraLessons:      newMemoryService(t, synagogueID, CollectionToraLessons, model.ToraLessonMapper, bus),
		FinancialReports: newMemoryService(t, synagogueID, CollectionFinancialReports, model.FinancialReportMapper, bus),
		Announcements:    newMemoryService(t, synagogueID, CollectionAnnouncements, model.AnnouncementMapper, bus),
		Memberships:      newMemoryService(t, synagogueID, CollectionMemberships, model.MembershipMapper, bus),
		GabbaiBoard:      newMemoryService(t, synagogueID, CollectionSettings, model.GabbaiBoardMapper, bus),
		Invitations:      newMemoryService(t, synagogueID, CollectionInvitations, model.InvitationMapper, bus),
		Families:         newMemoryService(t, synagogueID, CollectionFamilies, model.FamilyMapper, bus),
	}
}

func TestGenericService_PathScoping(t *testing.T) {
	svc := newTestTenantServices(t, "shul-1")
	assert.Equal(t, "synagogues/shul-1/donations", svc.Donations.Path())
	assert.Equal(t, "synagogues/shul-1/settings", svc.GabbaiBoard.Path())
}

func TestGenericService_InsertThenGetByID(t *testing.T) {
	svc := newTestTenantServices(t, "shul-1")
	ctx := context.Background()

	id, err := svc.Donations.Insert(ctx, model.NewDonation("תרומה", "https://example.org", "uid-1", 1))
	require.NoError(t, err)

	got, err := svc.Donations.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "תרומה", got.Title)
}

func TestGenericService_GetByIDAbsentIsNil(t *testing.T) {
	svc := newTestTenantServices(t, "shul-1")
	got, err := svc.Donations.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGenericService_InsertWithIDRoundTrip(t *testing.T) {
	svc := newTestTenantServices(t, "shul-1")
	ctx := context.Background()

	board := model.NewPrayerTimes("תפילות בוקר",
		model.NewPrayerTimeSection("ימי חול", model.NewPrayerTimeEntry("שחרית", "06:30")))
	require.NoError(t, svc.PrayerTimes.InsertWithID(ctx, "pt-1", board))

	got, err := svc.PrayerTimes.GetByID(ctx, "pt-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "pt-1", got.ID)
	assert.Equal(t, board.Sections[0].ID, got.Sections[0].ID)
}

func TestGenericService_DeleteThenGetByID(t *testing.T) {
	svc := newTestTenantServices(t, "shul-1")
	ctx := context.Background()

	family := model.NewFamily("משפחת לוי", "uid-1")
	require.NoError(t, svc.Families.InsertWithID(ctx, "fam-1", family))
	require.NoError(t, svc.Families.DeleteByID(ctx, "fam-1"))

	got, err := svc.Families.GetByID(ctx, "fam-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGenericService_UpdateAddsSection(t *testing.T) {
	svc := newTestTenantServices(t, "shul-1")
	ctx := context.Background()

	board := model.NewPrayerTimes("תפילות בוקר",
		model.NewPrayerTimeSection("ימי חול", model.NewPrayerTimeEntry("שחרית", "06:30")))
	require.NoError(t, svc.PrayerTimes.InsertWithID(ctx, "pt-1", board))

	require.NoError(t, svc.PrayerTimes.Update(ctx, "pt-1", board.AddSection(model.NewPrayerTimeSection("שבת"))))

	got, err := svc.PrayerTimes.GetByID(ctx, "pt-1")
	require.NoError(t, err)
	require.Len(t, got.Sections, 2)
	assert.Equal(t, "ימי חול", got.Sections[0].Title)
	assert.Equal(t, "06:30", got.Sections[0].Times[0].Time)
	assert.Equal(t, "שבת", got.Sections[1].Title)
}

func TestGenericService_InsertWithTimeout(t *testing.T) {
	svc := newTestTenantServices(t, "shul-1")
	ctx := context.Background()

	// plenty of time: behaves like a plain insert
	id, err := svc.Donations.InsertWithTimeout(ctx, model.NewDonation("תרומה", "https://example.org", "uid-1", 1), time.Second)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	count, err := svc.Donations.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestEnabledDonations_SortedByDisplayOrder(t *testing.T) {
	svc := newTestTenantServices(t, "shul-1")
	ctx := context.Background()

	second := model.NewDonation("שניה", "https://example.org/2", "uid-1", 2)
	first := model.NewDonation("ראשונה", "https://example.org/1", "uid-1", 1)
	hidden := model.NewDonation("מוסתרת", "https://example.org/3", "uid-1", 0).Disable()

	_, err := svc.Donations.Insert(ctx, second)
	require.NoError(t, err)
	_, err = svc.Donations.Insert(ctx, first)
	require.NoError(t, err)
	_, err = svc.Donations.Insert(ctx, hidden)
	require.NoError(t, err)

	donations, err := svc.EnabledDonations(ctx)
	require.NoError(t, err)
	require.Len(t, donations, 2)
	assert.Equal(t, "ראשונה", donations[0].Title)
	assert.Equal(t, "שניה", donations[1].Title)
}

func TestGabbaiBoardSettings_Singleton(t *testing.T) {
	svc := newTestTenantServices(t, "shul-1")
	ctx := context.Background()

	got, err := svc.GabbaiBoardSettings(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "no settings before first save")

	require.NoError(t, svc.SaveGabbaiBoardSettings(ctx, model.NewGabbaiBoard("uid-1", 21)))
	require.NoError(t, svc.SaveGabbaiBoardSettings(ctx, model.NewGabbaiBoard("uid-2", 30)))

	got, err = svc.GabbaiBoardSettings(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.GabbaiBoardID, got.ID)
	assert.Equal(t, 30, got.LookaheadDays)

	count, err := svc.GabbaiBoard.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count, "saving twice keeps a single document")
}

func TestGlobalServices_AdminRegistry(t *testing.T) {
	bus := eventbus.NewEventBus(nil)
	global := &GlobalServices{
		Synagogues: newMemoryService(t, "", CollectionSynagogues, model.SynagogueMapper, bus),
		Admins:     newMemoryService(t, "", CollectionAdmins, model.AdminMapper, bus),
	}
	ctx := context.Background()

	require.NoError(t, global.RegisterAdmin(ctx, "gabbai@shul.org"))

	isAdmin, err := global.IsAdmin(ctx, "gabbai@shul.org")
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = global.IsAdmin(ctx, "Gabbai@shul.org")
	require.NoError(t, err)
	assert.False(t, isAdmin, "admin IDs match byte for byte")
}

func TestGenericService_LiveQueryDeliversEntities(t *testing.T) {
	svc := newTestTenantServices(t, "shul-1")
	ctx := context.Background()

	var deliveries [][]model.Announcement
	unsubscribe, err := svc.Announcements.LiveQuery(ctx, func(items []model.Announcement) {
		deliveries = append(deliveries, items)
	})
	require.NoError(t, err)
	defer unsubscribe()

	require.Len(t, deliveries, 1)
	assert.Empty(t, deliveries[0])

	_, err = svc.Announcements.Insert(ctx, model.NewAnnouncement("הודעה", "תוכן", "הגבאי", model.HebrewDateNow(), false))
	require.NoError(t, err)
	require.Len(t, deliveries, 2)
	require.Len(t, deliveries[1], 1)
	assert.Equal(t, "הודעה", deliveries[1][0].Title)
}

func TestGenericService_MapFailureSurfaces(t *testing.T) {
	svc := newTestTenantServices(t, "shul-1")
	ctx := context.Background()

	// write a raw document the mapper rejects: empty title
	require.NoError(t, svc.Donations.Store().InsertWithID(ctx, "don-bad", model.DonationDto{Link: "https://example.org"}))

	_, err := svc.Donations.GetAll(ctx)
	require.Error(t, err, "a document the mapper rejects fails the whole read")
}
