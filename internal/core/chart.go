package core

type (
	// ChartPoint is one bar of the weekly production chart.
	ChartPoint struct {
		Date       Date    `json:"date"`
		Production float64 `json:"production"` // kWh
	}

	// ChartSeries is the plotting-ready view of a week window.
	ChartSeries struct {
		Points []ChartPoint `json:"points"`
		// ReferenceAverage is the mean over productive days, 0 when the
		// week has none. A zero average draws no reference marker.
		ReferenceAverage float64 `json:"referenceAverage"`
		ShowReference    bool    `json:"showReference"`
	}
)

// BuildChartSeries maps a week window to 7 ascending chart points plus
// the reference average. The average must stay in sync with
// WeekStats.DailyAverage but is computed independently: the chart policy
// is allowed to diverge from the stats policy.
func BuildChartSeries(week []Entry) ChartSeries {
	series := ChartSeries{Points: make([]ChartPoint, 0, len(week))}
	var productiveTotal float64
	productive := 0
	for _, e := range week {
		series.Points = append(series.Points, ChartPoint{Date: e.Date, Production: e.Production})
		if e.Production > 0 {
			productiveTotal += e.Production
			productive++
		}
	}
	if productive > 0 {
		series.ReferenceAverage = productiveTotal / float64(productive)
		series.ShowReference = true
	}
	return series
}
