package core

// WeekStats summarizes one week window.
type WeekStats struct {
	// Total is the sum of production over all 7 days.
	Total float64
	// DailyAverage is Total divided by the number of productive days,
	// 0 when the week has none.
	DailyAverage float64
	// Best is the entry with the highest production, nil when the weekly
	// maximum is 0. Ties resolve to the earliest date.
	Best *Entry
}

// WeeklyStats reduces a week window to its aggregate figures.
func WeeklyStats(week []Entry) WeekStats {
	var stats WeekStats
	productive := 0
	bestIdx := -1
	for i, e := range week {
		stats.Total += e.Production
		if e.Production > 0 {
			productive++
		}
		if bestIdx == -1 || e.Production > week[bestIdx].Production {
			bestIdx = i
		}
	}
	if productive > 0 {
		stats.DailyAverage = stats.Total / float64(productive)
	}
	if bestIdx >= 0 && week[bestIdx].Production > 0 {
		best := week[bestIdx]
		stats.Best = &best
	}
	return stats
}
