package model

import (
	"fmt"
	"time"

	"github.com/hebcal/hebcal-go/hdate"

	"synagogue-manager/internal/shared/errors"
)

// HebrewDateDto is the wire form of a Hebrew calendar date.
type HebrewDateDto struct {
	Year  int `bson:"year" json:"year"`
	Month int `bson:"month" json:"month"`
	Day   int `bson:"day" json:"day"`
}

// HebrewDate is a Hebrew calendar date used for publication dates and
// memorial days.
type HebrewDate struct {
	d hdate.HDate
}

// NewHebrewDate creates a Hebrew date from its components.
func NewHebrewDate(year, month, day int) HebrewDate {
	return HebrewDate{d: hdate.New(year, hdate.HMonth(month), day)}
}

// HebrewDateFromTime converts a Gregorian time to the Hebrew calendar.
func HebrewDateFromTime(t time.Time) HebrewDate {
	return HebrewDate{d: hdate.FromTime(t)}
}

// HebrewDateNow returns today's Hebrew date.
func HebrewDateNow() HebrewDate {
	return HebrewDateFromTime(time.Now())
}

// Year returns the Hebrew year.
func (h HebrewDate) Year() int { return h.d.Year }

// Month returns the Hebrew month number.
func (h HebrewDate) Month() int { return int(h.d.Month) }

// Day returns the day of the Hebrew month.
func (h HebrewDate) Day() int { return h.d.Day }

// Gregorian converts back to a Gregorian time (midnight UTC).
func (h HebrewDate) Gregorian() time.Time { return h.d.Gregorian() }

// AddDays returns the Hebrew date the given number of days later.
func (h HebrewDate) AddDays(days int) HebrewDate {
	return HebrewDateFromTime(h.Gregorian().AddDate(0, 0, days))
}

// Equal reports whether both values name the same calendar day.
func (h HebrewDate) Equal(other HebrewDate) bool {
	return h.Year() == other.Year() && h.Month() == other.Month() && h.Day() == other.Day()
}

// String renders the date in hebcal's transliterated form.
func (h HebrewDate) String() string { return h.d.String() }

// ToDto converts the date to its wire form.
func (h HebrewDate) ToDto() HebrewDateDto {
	return HebrewDateDto{Year: h.Year(), Month: h.Month(), Day: h.Day()}
}

// HebrewDateFromDto reconstructs a Hebrew date from the wire. All three
// components are required.
func HebrewDateFromDto(dto HebrewDateDto) (HebrewDate, error) {
	if dto.Year == 0 || dto.Month == 0 || dto.Day == 0 {
		return HebrewDate{}, errors.NewValidationError(
			fmt.Sprintf("invalid hebrew date %d-%d-%d", dto.Year, dto.Month, dto.Day))
	}
	return NewHebrewDate(dto.Year, dto.Month, dto.Day), nil
}
