package http

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/Siddharth05b/Solar-Energy-Tracker/internal/core"
	"github.com/Siddharth05b/Solar-Energy-Tracker/internal/log"
)

// handleWeekOverview renders the weekly overview partial: the seven-day
// bar chart, the summary statistics, and the list of recorded entries.
func (s *Server) handleWeekOverview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	anchor := ParseAnchorDate(r.URL.Query())
	logger := log.FromContext(r.Context())

	entries, err := s.store.Entries(r.Context())
	if err != nil {
		// Load errors are advisory: the store falls back to an empty
		// collection and stays usable.
		logger.WarnContext(r.Context(), "Entries loaded with notice",
			log.FieldError, err, log.FieldOperation, log.OpLoad)
	}

	week := core.WeekOf(anchor, entries)
	stats := core.WeeklyStats(week)
	series := core.BuildChartSeries(week)

	weekStart := week[0].Date
	weekEnd := week[len(week)-1].Date

	var maxProduction float64
	for _, e := range week {
		if e.Production > maxProduction {
			maxProduction = e.Production
		}
	}

	type bar struct {
		Weekday string
		Date    string
		Amount  string
		Width   int
		Best    bool
	}
	type item struct {
		ID     string
		Date   string
		Amount string
	}
	data := struct {
		WeekStart        string
		WeekEnd          string
		Anchor           string
		PrevDate         string
		NextDate         string
		Total            string
		DailyAverage     string
		HasBest          bool
		BestDate         string
		BestAmount       string
		ShowReference    bool
		ReferenceAverage string
		ReferenceWidth   int
		Bars             []bar
		Items            []item
	}{
		WeekStart:        weekStart.String(),
		WeekEnd:          weekEnd.String(),
		Anchor:           anchor.String(),
		PrevDate:         anchor.AddDays(-7).String(),
		NextDate:         anchor.AddDays(7).String(),
		Total:            formatKWh(stats.Total),
		DailyAverage:     formatKWh(stats.DailyAverage),
		ShowReference:    series.ShowReference,
		ReferenceAverage: formatKWh(series.ReferenceAverage),
	}
	if stats.Best != nil {
		data.HasBest = true
		data.BestDate = stats.Best.Date.String()
		data.BestAmount = formatKWh(stats.Best.Production)
	}
	if series.ShowReference && maxProduction > 0 {
		data.ReferenceWidth = widthPercent(series.ReferenceAverage, maxProduction)
	}

	for _, e := range week {
		width := 0
		if maxProduction > 0 && e.Production > 0 {
			width = widthPercent(e.Production, maxProduction)
		}
		data.Bars = append(data.Bars, bar{
			Weekday: e.Date.Weekday().String()[:3],
			Date:    e.Date.String(),
			Amount:  formatKWh(e.Production),
			Width:   width,
			Best:    stats.Best != nil && stats.Best.ID == e.ID,
		})
	}

	// The deletable list holds only readings the user actually recorded.
	// Filler days in the window share their zero value with real zero
	// readings, so filter the stored entries by date range instead.
	startStr, endStr := weekStart.String(), weekEnd.String()
	var recorded []core.Entry
	for _, e := range entries {
		ds := e.Date.String()
		if ds >= startStr && ds <= endStr {
			recorded = append(recorded, e)
		}
	}
	sort.Slice(recorded, func(i, j int) bool {
		return recorded[i].Date.Before(recorded[j].Date.Time)
	})
	for _, e := range recorded {
		data.Items = append(data.Items, item{
			ID:     e.ID,
			Date:   e.Date.String(),
			Amount: formatKWh(e.Production),
		})
	}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="week-overview" class="week-overview"><div class="placeholder">Total: ` + data.Total + `</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "week_overview.html", data); err != nil {
		logger.ErrorContext(r.Context(), "Template execution error",
			log.FieldError, err, "template", "week_overview.html", log.FieldDate, anchor.String())
		_, _ = w.Write([]byte(`<section id="week-overview" class="week-overview"><div class="placeholder">Error rendering overview</div></section>`))
		return
	}
}

// widthPercent maps a value to a rounded percentage of the week maximum,
// keeping very small bars visible and capping at 100.
func widthPercent(value, max float64) int {
	width := int(value/max*100 + 0.5)
	if width > 0 && width < 2 {
		width = 2
	}
	if width > 100 {
		width = 100
	}
	return width
}

// handleChartSeries returns the weekly chart data as JSON.
func (s *Server) handleChartSeries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	anchor := ParseAnchorDate(r.URL.Query())

	entries, err := s.store.Entries(r.Context())
	if err != nil {
		s.logger.WarnContext(r.Context(), "Entries loaded with notice",
			log.FieldError, err, log.FieldOperation, log.OpLoad)
	}

	series := core.BuildChartSeries(core.WeekOf(anchor, entries))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(series); err != nil {
		s.logger.ErrorContext(r.Context(), "Chart series encoding error", log.FieldError, err)
	}
}
