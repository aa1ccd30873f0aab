package booking

import "time"

const isoDate = "2006-01-02"

// Day is one cell of a month grid.
type Day struct {
	Date     string `json:"date"`
	Day      int    `json:"day"`
	Weekday  string `json:"weekday"`
	Today    bool   `json:"today"`
	Selected bool   `json:"selected"`
	Disabled bool   `json:"disabled"`
}

// Calendar is a Sunday-first month grid. LeadingBlanks is the number of
// empty cells before the 1st.
type Calendar struct {
	Label         string `json:"label"`
	Year          int    `json:"year"`
	Month         int    `json:"month"`
	LeadingBlanks int    `json:"leading_blanks"`
	Days          []Day  `json:"days"`
}

// midnight returns the start of t's calendar day in loc.
func midnight(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// IsDateDisabled reports whether day cannot be booked as of now: it falls
// before today or on a Saturday or Sunday.
func IsDateDisabled(day, now time.Time) bool {
	d := midnight(day, now.Location())
	if d.Before(midnight(now, now.Location())) {
		return true
	}
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// BuildCalendar renders the month containing month. selected may be zero.
func BuildCalendar(month, now, selected time.Time) Calendar {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, now.Location())
	daysIn := first.AddDate(0, 1, -1).Day()

	cal := Calendar{
		Label:         first.Format("January 2006"),
		Year:          first.Year(),
		Month:         int(first.Month()),
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]Day, 0, daysIn),
	}
	for i := 1; i <= daysIn; i++ {
		d := time.Date(first.Year(), first.Month(), i, 0, 0, 0, 0, now.Location())
		cal.Days = append(cal.Days, Day{
			Date:     d.Format(isoDate),
			Day:      i,
			Weekday:  d.Weekday().String()[:2],
			Today:    sameDay(d, now),
			Selected: !selected.IsZero() && sameDay(d, selected),
			Disabled: IsDateDisabled(d, now),
		})
	}
	return cal
}
