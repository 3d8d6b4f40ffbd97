package core

import "testing"

// testWeek builds a Sunday-aligned window from seven production values.
func testWeek(t *testing.T, productions [7]float64) []Entry {
	t.Helper()
	anchor, err := ParseDate("2025-06-15") // a Sunday
	if err != nil {
		t.Fatalf("parse anchor: %v", err)
	}
	var entries []Entry
	for i, p := range productions {
		if p > 0 {
			entries = append(entries, NewEntry(anchor.AddDays(i), p))
		}
	}
	return WeekOf(anchor, entries)
}

func TestWeeklyStatsAllZero(t *testing.T) {
	stats := WeeklyStats(testWeek(t, [7]float64{}))
	if stats.Total != 0 {
		t.Fatalf("total: got %v, want 0", stats.Total)
	}
	if stats.DailyAverage != 0 {
		t.Fatalf("daily average: got %v, want 0", stats.DailyAverage)
	}
	if stats.Best != nil {
		t.Fatalf("best must be absent on an all-zero week, got %+v", stats.Best)
	}
}

func TestWeeklyStatsProductiveDays(t *testing.T) {
	// Sun:0 Mon:5 Tue:0 Wed:3 Thu:0 Fri:0 Sat:0
	stats := WeeklyStats(testWeek(t, [7]float64{0, 5, 0, 3, 0, 0, 0}))
	if stats.Total != 8 {
		t.Fatalf("total: got %v, want 8", stats.Total)
	}
	// 8 kWh over 2 productive days
	if stats.DailyAverage != 4 {
		t.Fatalf("daily average: got %v, want 4", stats.DailyAverage)
	}
	if stats.Best == nil {
		t.Fatal("expected a best day")
	}
	if stats.Best.Date.String() != "2025-06-16" || stats.Best.Production != 5 {
		t.Fatalf("best: got %s (%v), want 2025-06-16 (5)", stats.Best.Date, stats.Best.Production)
	}
}

func TestWeeklyStatsTieBreaksToEarliestDate(t *testing.T) {
	// Mon:5 Thu:5, rest zero
	stats := WeeklyStats(testWeek(t, [7]float64{0, 5, 0, 0, 5, 0, 0}))
	if stats.Best == nil {
		t.Fatal("expected a best day")
	}
	if stats.Best.Date.String() != "2025-06-16" {
		t.Fatalf("tie must resolve to Monday, got %s", stats.Best.Date)
	}
}
