package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDonation_LinkHelpers(t *testing.T) {
	d := NewDonation("קופת הצדקה", "https://payboxapp.page.link/abc", "uid-1", 1)
	assert.True(t, d.HasValidLink())
	assert.Equal(t, "payboxapp.page.link", d.LinkDomain())
	assert.True(t, d.IsPayBoxLink())
	assert.Equal(t, "PayBox", d.PaymentServiceName())

	d = d.Update(DonationPatch{Link: Ptr("https://www.paypal.com/donate")})
	assert.Equal(t, "PayPal", d.PaymentServiceName())

	d = d.Update(DonationPatch{Link: Ptr("not a url")})
	assert.False(t, d.HasValidLink())
	assert.Equal(t, "", d.LinkDomain())
	assert.Equal(t, "Unknown", d.PaymentServiceName())
}

func TestDonation_EnableDisable(t *testing.T) {
	d := NewDonation("תרומה", "https://example.org", "uid-1", 1)
	assert.True(t, d.Enabled)
	assert.False(t, d.Disable().Enabled)
	assert.True(t, d.Disable().Enable().Enabled)
}

func TestDonation_UpdateKeepsIdentity(t *testing.T) {
	d := NewDonation("תרומה", "https://example.org", "uid-1", 1)
	d.ID = "don-1"

	updated := d.Update(DonationPatch{Title: Ptr("תרומה חדשה"), DisplayOrder: Ptr(5)})
	assert.Equal(t, "don-1", updated.ID)
	assert.Equal(t, d.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "uid-1", updated.CreatedBy)
	assert.Equal(t, 5, updated.DisplayOrder)
}

func TestDonation_NotesPreview(t *testing.T) {
	d := NewDonation("תרומה", "https://example.org", "uid-1", 1)
	assert.False(t, d.HasNotes())
	assert.Equal(t, "", d.NotesPreview())

	long := make([]rune, 150)
	for i := range long {
		long[i] = 'א'
	}
	d = d.Update(DonationPatch{Notes: Ptr(string(long))})
	assert.True(t, d.HasNotes())
	assert.Len(t, []rune(d.NotesPreview()), 103)
}

func TestDonation_IsRecent(t *testing.T) {
	d := NewDonation("תרומה", "https://example.org", "uid-1", 1)
	assert.True(t, d.IsRecent())

	d.CreatedAt = Now().AddDate(0, 0, -45)
	assert.False(t, d.IsRecent())
}

func TestSortByDisplayOrder(t *testing.T) {
	second := NewDonation("שניה", "https://example.org/2", "uid-1", 2)
	second.ID = "don-2"
	first := NewDonation("ראשונה", "https://example.org/1", "uid-1", 1)
	first.ID = "don-1"

	donations := []Donation{second, first}
	SortByDisplayOrder(donations)
	assert.Equal(t, "don-1", donations[0].ID)
	assert.Equal(t, "don-2", donations[1].ID)
}

func TestSortByDisplayOrder_TieBreaks(t *testing.T) {
	base := Now()
	older := NewDonation("א", "https://example.org", "uid-1", 1)
	older.ID = "don-b"
	older.CreatedAt = base.Add(-time.Hour)
	newer := NewDonation("ב", "https://example.org", "uid-1", 1)
	newer.ID = "don-a"
	newer.CreatedAt = base

	donations := []Donation{newer, older}
	SortByDisplayOrder(donations)
	assert.Equal(t, "don-b", donations[0].ID, "equal order breaks by creation time")

	// equal order and creation time breaks by ID
	newer.CreatedAt = older.CreatedAt
	donations = []Donation{older, newer}
	SortByDisplayOrder(donations)
	assert.Equal(t, "don-a", donations[0].ID)
}

func TestDonationMapper_RoundTrip(t *testing.T) {
	d := NewDonation("תרומה", "https://example.org", "uid-1", 3)
	d.ID = "don-1"
	d.Notes = "הערות"

	back, err := DonationMapper.FromDto(DonationMapper.ToDto(d), d.ID)
	require.NoError(t, err)
	assert.Equal(t, d, back)
}

func TestDonationMapper_RequiresTitle(t *testing.T) {
	_, err := DonationMapper.FromDto(DonationDto{Link: "https://example.org"}, "don-1")
	assert.Error(t, err)
}
