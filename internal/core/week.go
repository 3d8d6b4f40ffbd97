package core

import "github.com/google/uuid"

// WeekStart returns the most recent Sunday at or before d. A Sunday is
// day 0 of its own week.
func WeekStart(d Date) Date {
	return d.AddDays(-int(d.Weekday()))
}

// WeekOf derives the 7-day window containing anchor from the full entry
// collection: one entry per day from Sunday through Saturday, ascending,
// carrying the stored production where a real entry exists and zero
// production with a fresh placeholder identifier otherwise.
//
// The store guarantees at most one entry per date; should duplicates slip
// through anyway, the last match in iteration order wins.
func WeekOf(anchor Date, entries []Entry) []Entry {
	byDate := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byDate[e.Date.String()] = e
	}

	start := WeekStart(anchor)
	week := make([]Entry, 0, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDays(i)
		if e, ok := byDate[day.String()]; ok {
			week = append(week, e)
			continue
		}
		week = append(week, Entry{ID: uuid.NewString(), Date: day})
	}
	return week
}
