package age

import (
	"fmt"
	"time"
)

// Sentinel labels returned instead of a computed age. These are part of
// the stored record format, so the front-end matches on them verbatim.
const (
	// LabelNotSet is used when no birth date has been configured.
	LabelNotSet = "not set"
	// LabelBeforeBirth is used when a file predates the birth date.
	LabelBeforeBirth = "before birth"
	// LabelUnknown is used when the birth date or timestamp cannot be
	// interpreted.
	LabelUnknown = "unknown"
)

// birthDateLayout is the only accepted birth date format.
const birthDateLayout = "2006-01-02"

// Label computes a human-readable age for a file taken at the given
// timestamp (epoch seconds), relative to a birth date in YYYY-MM-DD form.
//
// The result is a whole-month calendar age: "3 months", "2 years",
// "1 years 5 months". A malformed birth date or an out-of-range timestamp
// degrades to LabelUnknown rather than returning an error.
func Label(birthDate string, timestamp int64) string {
	birth, err := time.Parse(birthDateLayout, birthDate)
	if err != nil {
		return LabelUnknown
	}

	fileTime := time.Unix(timestamp, 0).UTC()
	if fileTime.Year() < 1 || fileTime.Year() > 9999 {
		return LabelUnknown
	}

	// Compare calendar dates only; time-of-day must not matter.
	fileDate := time.Date(fileTime.Year(), fileTime.Month(), fileTime.Day(), 0, 0, 0, 0, time.UTC)
	if fileDate.Before(birth) {
		return LabelBeforeBirth
	}

	years := fileDate.Year() - birth.Year()
	months := int(fileDate.Month()) - int(birth.Month())
	days := fileDate.Day() - birth.Day()

	// Floor to whole elapsed months: a partial month doesn't count until
	// the day-of-month comes around again.
	totalMonths := years*12 + months
	if days < 0 {
		totalMonths--
	}

	ageYears := totalMonths / 12
	ageMonths := totalMonths % 12

	switch {
	case ageYears == 0:
		return fmt.Sprintf("%d months", ageMonths)
	case ageMonths == 0:
		return fmt.Sprintf("%d years", ageYears)
	default:
		return fmt.Sprintf("%d years %d months", ageYears, ageMonths)
	}
}
