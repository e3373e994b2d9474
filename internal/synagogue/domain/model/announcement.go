package model

import (
	"time"

	"synagogue-manager/internal/shared/errors"
	"synagogue-manager/internal/synagogue/domain/repository"
)

// AnnouncementDto is the wire form of an Announcement.
type AnnouncementDto struct {
	Title           string        `bson:"title" json:"title"`
	Content         string        `bson:"content" json:"content"`
	Author          string        `bson:"author" json:"author"`
	PublicationDate HebrewDateDto `bson:"publicationDate" json:"publicationDate"`
	IsImportant     bool          `bson:"isImportant" json:"isImportant"`
	CreatedAt       int64         `bson:"createdAt" json:"createdAt"`
	UpdatedAt       int64         `bson:"updatedAt" json:"updatedAt"`
}

// Announcement is a community notice dated on the Hebrew calendar.
type Announcement struct {
	ID              string
	Title           string
	Content         string
	Author          string
	PublicationDate HebrewDate
	IsImportant     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewAnnouncement creates an announcement. The ID is assigned when the
// document is inserted.
func NewAnnouncement(title, content, author string, publicationDate HebrewDate, isImportant bool) Announcement {
	now := Now()
	return Announcement{
		Title:           title,
		Content:         content,
		Author:          author,
		PublicationDate: publicationDate,
		IsImportant:     isImportant,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// AnnouncementPatch is a field-named partial update.
type AnnouncementPatch struct {
	Title           *string
	Content         *string
	Author          *string
	PublicationDate *HebrewDate
	IsImportant     *bool
}

// Update returns a new Announcement with the patch applied and UpdatedAt
// refreshed. ID and CreatedAt are immutable.
func (a Announcement) Update(p AnnouncementPatch) Announcement {
	a.Title = orElse(p.Title, a.Title)
	a.Content = orElse(p.Content, a.Content)
	a.Author = orElse(p.Author, a.Author)
	a.PublicationDate = orElse(p.PublicationDate, a.PublicationDate)
	a.IsImportant = orElse(p.IsImportant, a.IsImportant)
	a.UpdatedAt = Now()
	return a
}

// AgeInDays returns full days elapsed since creation, rounded up.
func (a Announcement) AgeInDays() int {
	elapsed := time.Since(a.CreatedAt)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	days := int(elapsed / (24 * time.Hour))
	if elapsed%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// IsRecent reports whether the announcement was created within 7 days.
func (a Announcement) IsRecent() bool { return a.AgeInDays() <= 7 }

// ContentPreview returns the first 100 characters of the content.
func (a Announcement) ContentPreview() string {
	runes := []rune(a.Content)
	if len(runes) <= 100 {
		return a.Content
	}
	return string(runes[:100]) + "..."
}

// ToDto converts the announcement to its wire form.
func (a Announcement) ToDto() AnnouncementDto {
	return AnnouncementDto{
		Title:           a.Title,
		Content:         a.Content,
		Author:          a.Author,
		PublicationDate: a.PublicationDate.ToDto(),
		IsImportant:     a.IsImportant,
		CreatedAt:       ToMillis(a.CreatedAt),
		UpdatedAt:       ToMillis(a.UpdatedAt),
	}
}

type announcementMapper struct{}

func (announcementMapper) FromDto(dto AnnouncementDto, id string) (Announcement, error) {
	if dto.Title == "" {
		return Announcement{}, errors.NewValidationError("announcement title is required").
			WithDetail("id", id)
	}
	pubDate, err := HebrewDateFromDto(dto.PublicationDate)
	if err != nil {
		return Announcement{}, err
	}
	return Announcement{
		ID:              id,
		Title:           dto.Title,
		Content:         dto.Content,
		Author:          dto.Author,
		PublicationDate: pubDate,
		IsImportant:     dto.IsImportant,
		CreatedAt:       FromMillis(dto.CreatedAt),
		UpdatedAt:       FromMillis(dto.UpdatedAt),
	}, nil
}

func (announcementMapper) ToDto(a Announcement) AnnouncementDto { return a.ToDto() }

// AnnouncementMapper converts between Announcement and its wire form.
var AnnouncementMapper repository.Mapper[Announcement, AnnouncementDto] = announcementMapper{}
