package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrayerTimes_AddSectionKeepsExisting(t *testing.T) {
	first := NewPrayerTimeSection("ימי חול", NewPrayerTimeEntry("שחרית", "06:30"))
	board := NewPrayerTimes("תפילות בוקר", first)

	second := NewPrayerTimeSection("שבת")
	board = board.AddSection(second)

	require.Len(t, board.Sections, 2)
	assert.Equal(t, first.ID, board.Sections[0].ID)
	assert.Equal(t, "ימי חול", board.Sections[0].Title)
	require.Len(t, board.Sections[0].Times, 1)
	assert.Equal(t, "06:30", board.Sections[0].Times[0].Time)
	assert.Equal(t, second.ID, board.Sections[1].ID)
}

func TestPrayerTimes_ChildrenAddressedByID(t *testing.T) {
	entry := NewPrayerTimeEntry("מנחה", "")
	section := NewPrayerTimeSection("ימי חול", NewPrayerTimeEntry("שחרית", "06:30"), entry)
	board := NewPrayerTimes("לוח תפילות", section)

	// setting a time edits the entry in place, identified by its ID
	updatedSection := section.UpdateTime(entry.ID, entry.Update(PrayerTimeEntryPatch{Time: Ptr("19:15")}))
	board = board.UpdateSection(section.ID, updatedSection)

	got, ok := board.Section(section.ID)
	require.True(t, ok)
	require.Len(t, got.Times, 2)
	assert.Equal(t, entry.ID, got.Times[1].ID)
	assert.Equal(t, "19:15", got.Times[1].Time)
	assert.Equal(t, "06:30", got.Times[0].Time)
}

func TestPrayerTimes_RemoveSection(t *testing.T) {
	a := NewPrayerTimeSection("א")
	b := NewPrayerTimeSection("ב")
	board := NewPrayerTimes("לוח", a, b)

	board = board.RemoveSection(a.ID)
	require.Len(t, board.Sections, 1)
	assert.Equal(t, b.ID, board.Sections[0].ID)

	// removing an unknown ID is a no-op
	board = board.RemoveSection("missing")
	assert.Len(t, board.Sections, 1)
}

func TestPrayerTimeSection_RemoveTime(t *testing.T) {
	e1 := NewPrayerTimeEntry("שחרית", "06:30")
	e2 := NewPrayerTimeEntry("ערבית", "20:00")
	s := NewPrayerTimeSection("ימי חול", e1, e2)

	s = s.RemoveTime(e1.ID)
	require.Len(t, s.Times, 1)
	assert.Equal(t, e2.ID, s.Times[0].ID)
}

func TestPrayerTimeEntry_FormattedTime(t *testing.T) {
	assert.Equal(t, "06:30", NewPrayerTimeEntry("שחרית", "06:30").FormattedTime())
	assert.Equal(t, "לא נקבע", NewPrayerTimeEntry("מנחה", "").FormattedTime())
}

func TestPrayerTimes_HasAnyTimesWithValues(t *testing.T) {
	empty := NewPrayerTimes("לוח", NewPrayerTimeSection("א", NewPrayerTimeEntry("מנחה", "")))
	assert.False(t, empty.HasAnyTimesWithValues())

	set := NewPrayerTimes("לוח", NewPrayerTimeSection("א", NewPrayerTimeEntry("שחרית", "06:30")))
	assert.True(t, set.HasAnyTimesWithValues())
}

func TestPrayerTimes_UpdateKeepsIdentity(t *testing.T) {
	board := NewPrayerTimes("לוח")
	updated := board.Update(PrayerTimesPatch{Title: Ptr("לוח חדש")})

	assert.Equal(t, board.ID, updated.ID)
	assert.Equal(t, board.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(board.UpdatedAt))
	assert.Equal(t, "לוח חדש", updated.Title)
}

func TestPrayerTimesMapper_RoundTrip(t *testing.T) {
	board := NewPrayerTimes("תפילות בוקר",
		NewPrayerTimeSection("ימי חול",
			NewPrayerTimeEntry("שחרית", "06:30"),
			NewPrayerTimeEntry("מנחה", "")))

	back, err := PrayerTimesMapper.FromDto(PrayerTimesMapper.ToDto(board), board.ID)
	require.NoError(t, err)
	assert.Equal(t, board, back)
}

func TestPrayerTimesMapper_AssignsMissingChildIDs(t *testing.T) {
	dto := PrayerTimesDto{
		Title: "לוח ישן",
		Sections: []PrayerTimeSectionDto{{
			Title: "ימי חול",
			Times: []PrayerTimeEntryDto{{Label: "שחרית", Time: "06:30"}},
		}},
	}

	board, err := PrayerTimesMapper.FromDto(dto, "pt-1")
	require.NoError(t, err)
	require.Len(t, board.Sections, 1)
	assert.NotEmpty(t, board.Sections[0].ID)
	require.Len(t, board.Sections[0].Times, 1)
	assert.NotEmpty(t, board.Sections[0].Times[0].ID)
}

func TestPrayerTimesMapper_RequiresTitle(t *testing.T) {
	_, err := PrayerTimesMapper.FromDto(PrayerTimesDto{}, "pt-1")
	assert.Error(t, err)
}
