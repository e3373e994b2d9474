package model

import (
	"time"

	"github.com/google/uuid"

	"synagogue-manager/internal/shared/errors"
	"synagogue-manager/internal/synagogue/domain/repository"
)

// timeNotSet is shown for entries whose time has not been decided yet.
const timeNotSet = "לא נקבע"

// PrayerTimeEntryDto is the wire form of one prayer time line.
type PrayerTimeEntryDto struct {
	ID    string `bson:"id" json:"id"`
	Label string `bson:"label" json:"label"`
	Time  string `bson:"time,omitempty" json:"time,omitempty"`
}

// PrayerTimeSectionDto is the wire form of one board section.
type PrayerTimeSectionDto struct {
	ID    string               `bson:"id" json:"id"`
	Title string               `bson:"title" json:"title"`
	Times []PrayerTimeEntryDto `bson:"times" json:"times"`
}

// PrayerTimesDto is the wire form of a prayer times board.
type PrayerTimesDto struct {
	Title     string                 `bson:"title" json:"title"`
	Sections  []PrayerTimeSectionDto `bson:"sections" json:"sections"`
	CreatedAt int64                  `bson:"createdAt" json:"createdAt"`
	UpdatedAt int64                  `bson:"updatedAt" json:"updatedAt"`
}

// PrayerTimeEntry is a single labeled time, e.g. "שחרית" at 06:30.
// Entries carry their own stable IDs so edits address a child by identity
// rather than by array index.
type PrayerTimeEntry struct {
	ID    string
	Label string
	Time  string // HH:mm, empty when not set
}

// NewPrayerTimeEntry creates an entry with a fresh ID.
func NewPrayerTimeEntry(label, timeValue string) PrayerTimeEntry {
	return PrayerTimeEntry{ID: uuid.NewString(), Label: label, Time: timeValue}
}

// HasTime reports whether the time has been set.
func (e PrayerTimeEntry) HasTime() bool { return e.Time != "" }

// FormattedTime returns the time or the "not set" placeholder.
func (e PrayerTimeEntry) FormattedTime() string {
	if e.Time == "" {
		return timeNotSet
	}
	return e.Time
}

// PrayerTimeEntryPatch is a field-named partial update for an entry.
type PrayerTimeEntryPatch struct {
	Label *string
	Time  *string
}

// Update returns a new entry with the patch applied. The ID is immutable.
func (e PrayerTimeEntry) Update(p PrayerTimeEntryPatch) PrayerTimeEntry {
	e.Label = orElse(p.Label, e.Label)
	e.Time = orElse(p.Time, e.Time)
	return e
}

// PrayerTimeSection groups entries under a title, e.g. "ימי חול".
type PrayerTimeSection struct {
	ID    string
	Title string
	Times []PrayerTimeEntry
}

// NewPrayerTimeSection creates a section with a fresh ID.
func NewPrayerTimeSection(title string, times ...PrayerTimeEntry) PrayerTimeSection {
	return PrayerTimeSection{ID: uuid.NewString(), Title: title, Times: times}
}

// AddTime returns a new section with the entry appended.
func (s PrayerTimeSection) AddTime(entry PrayerTimeEntry) PrayerTimeSection {
	s.Times = append(append([]PrayerTimeEntry(nil), s.Times...), entry)
	return s
}

// RemoveTime returns a new section without the entry with the given ID.
func (s PrayerTimeSection) RemoveTime(entryID string) PrayerTimeSection {
	times := make([]PrayerTimeEntry, 0, len(s.Times))
	for _, t := range s.Times {
		if t.ID != entryID {
			times = append(times, t)
		}
	}
	s.Times = times
	return s
}

// UpdateTime returns a new section with the entry of the given ID replaced.
func (s PrayerTimeSection) UpdateTime(entryID string, entry PrayerTimeEntry) PrayerTimeSection {
	times := make([]PrayerTimeEntry, len(s.Times))
	for i, t := range s.Times {
		if t.ID == entryID {
			entry.ID = entryID
			times[i] = entry
		} else {
			times[i] = t
		}
	}
	s.Times = times
	return s
}

// TimesWithValues returns the entries whose time has been set.
func (s PrayerTimeSection) TimesWithValues() []PrayerTimeEntry {
	var out []PrayerTimeEntry
	for _, t := range s.Times {
		if t.HasTime() {
			out = append(out, t)
		}
	}
	return out
}

// HasTimesWithValues reports whether any entry has a set time.
func (s PrayerTimeSection) HasTimesWithValues() bool {
	return len(s.TimesWithValues()) > 0
}

// PrayerTimeSectionPatch is a field-named partial update for a section.
type PrayerTimeSectionPatch struct {
	Title *string
	Times *[]PrayerTimeEntry
}

// Update returns a new section with the patch applied. The ID is immutable.
func (s PrayerTimeSection) Update(p PrayerTimeSectionPatch) PrayerTimeSection {
	s.Title = orElse(p.Title, s.Title)
	s.Times = orElse(p.Times, s.Times)
	return s
}

// PrayerTimes is a board of prayer times: an owned two-level aggregate.
// Sections and entries are children without independent documents; they
// live inside this one document and are addressed by their stable IDs.
type PrayerTimes struct {
	ID        string
	Title     string
	Sections  []PrayerTimeSection
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPrayerTimes creates a board with a fresh ID.
func NewPrayerTimes(title string, sections ...PrayerTimeSection) PrayerTimes {
	now := Now()
	return PrayerTimes{
		ID:        uuid.NewString(),
		Title:     title,
		Sections:  sections,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// PrayerTimesPatch is a field-named partial update for a board.
type PrayerTimesPatch struct {
	Title    *string
	Sections *[]PrayerTimeSection
}

// Update returns a new board with the patch applied and UpdatedAt
// refreshed. ID and CreatedAt are immutable.
func (pt PrayerTimes) Update(p PrayerTimesPatch) PrayerTimes {
	pt.Title = orElse(p.Title, pt.Title)
	pt.Sections = orElse(p.Sections, pt.Sections)
	pt.UpdatedAt = Now()
	return pt
}

// AddSection returns a new board with the section appended.
func (pt PrayerTimes) AddSection(section PrayerTimeSection) PrayerTimes {
	sections := append(append([]PrayerTimeSection(nil), pt.Sections...), section)
	return pt.Update(PrayerTimesPatch{Sections: &sections})
}

// RemoveSection returns a new board without the section of the given ID.
func (pt PrayerTimes) RemoveSection(sectionID string) PrayerTimes {
	sections := make([]PrayerTimeSection, 0, len(pt.Sections))
	for _, s := range pt.Sections {
		if s.ID != sectionID {
			sections = append(sections, s)
		}
	}
	return pt.Update(PrayerTimesPatch{Sections: &sections})
}

// Section returns the section with the given ID, or false.
func (pt PrayerTimes) Section(sectionID string) (PrayerTimeSection, bool) {
	for _, s := range pt.Sections {
		if s.ID == sectionID {
			return s, true
		}
	}
	return PrayerTimeSection{}, false
}

// UpdateSection returns a new board with the section of the given ID
// replaced.
func (pt PrayerTimes) UpdateSection(sectionID string, section PrayerTimeSection) PrayerTimes {
	sections := make([]PrayerTimeSection, len(pt.Sections))
	for i, s := range pt.Sections {
		if s.ID == sectionID {
			section.ID = sectionID
			sections[i] = section
		} else {
			sections[i] = s
		}
	}
	return pt.Update(PrayerTimesPatch{Sections: &sections})
}

// AllTimes returns every entry across all sections in board order.
func (pt PrayerTimes) AllTimes() []PrayerTimeEntry {
	var out []PrayerTimeEntry
	for _, s := range pt.Sections {
		out = append(out, s.Times...)
	}
	return out
}

// HasAnyTimesWithValues reports whether any section has a set time.
func (pt PrayerTimes) HasAnyTimesWithValues() bool {
	for _, s := range pt.Sections {
		if s.HasTimesWithValues() {
			return true
		}
	}
	return false
}

// ToDto converts the board to its wire form.
func (pt PrayerTimes) ToDto() PrayerTimesDto {
	sections := make([]PrayerTimeSectionDto, len(pt.Sections))
	for i, s := range pt.Sections {
		times := make([]PrayerTimeEntryDto, len(s.Times))
		for j, t := range s.Times {
			times[j] = PrayerTimeEntryDto{ID: t.ID, Label: t.Label, Time: t.Time}
		}
		sections[i] = PrayerTimeSectionDto{ID: s.ID, Title: s.Title, Times: times}
	}
	return PrayerTimesDto{
		Title:     pt.Title,
		Sections:  sections,
		CreatedAt: ToMillis(pt.CreatedAt),
		UpdatedAt: ToMillis(pt.UpdatedAt),
	}
}

type prayerTimesMapper struct{}

func (prayerTimesMapper) FromDto(dto PrayerTimesDto, id string) (PrayerTimes, error) {
	if dto.Title == "" {
		return PrayerTimes{}, errors.NewValidationError("prayer times title is required").
			WithDetail("id", id)
	}

	sections := make([]PrayerTimeSection, len(dto.Sections))
	for i, s := range dto.Sections {
		times := make([]PrayerTimeEntry, len(s.Times))
		for j, t := range s.Times {
			entryID := t.ID
			if entryID == "" {
				// Documents written before entries carried IDs.
				entryID = uuid.NewString()
			}
			times[j] = PrayerTimeEntry{ID: entryID, Label: t.Label, Time: t.Time}
		}
		sectionID := s.ID
		if sectionID == "" {
			sectionID = uuid.NewString()
		}
		sections[i] = PrayerTimeSection{ID: sectionID, Title: s.Title, Times: times}
	}

	return PrayerTimes{
		ID:        id,
		Title:     dto.Title,
		Sections:  sections,
		CreatedAt: FromMillis(dto.CreatedAt),
		UpdatedAt: FromMillis(dto.UpdatedAt),
	}, nil
}

func (prayerTimesMapper) ToDto(pt PrayerTimes) PrayerTimesDto { return pt.ToDto() }

// PrayerTimesMapper converts between PrayerTimes and its wire form.
var PrayerTimesMapper repository.Mapper[PrayerTimes, PrayerTimesDto] = prayerTimesMapper{}
