package reports

import (
	"sort"
	"time"

	"breakreminder/internal/store"
)

// HistorySource supplies answered prompts, oldest first.
type HistorySource interface {
	Entries() []store.HistoryEntry
}

// StatsSource supplies lifetime counters.
type StatsSource interface {
	Snapshot() store.Stats
}

// maxTopActivities limits the activity ranking in weekly reports.
const maxTopActivities = 5

// Generator creates reports from store data.
type Generator struct {
	history HistorySource
	stats   StatsSource
	now     func() time.Time
}

// NewGenerator creates a new report generator.
func NewGenerator(history HistorySource, stats StatsSource) *Generator {
	return &Generator{history: history, stats: stats, now: time.Now}
}

// GenerateDaily generates a report for the day containing date.
func (g *Generator) GenerateDaily(date time.Time) *DailyReport {
	date = startOfDay(date)
	return &DailyReport{
		Date:        date,
		Breaks:      summarize(g.history.Entries(), date, date.AddDate(0, 0, 1)),
		GeneratedAt: g.now(),
	}
}

// GenerateWeekly generates a report for the week containing startDate.
func (g *Generator) GenerateWeekly(startDate time.Time) *WeeklyReport {
	startDate = startOfWeekSunday(startDate)
	endDate := startDate.AddDate(0, 0, 7)
	entries := g.history.Entries()

	week := summarize(entries, startDate, endDate)

	var breakdown []DailySummary
	busiest, busiestCount := "", 0
	for d := startDate; d.Before(endDate); d = d.AddDate(0, 0, 1) {
		day := summarize(entries, d, d.AddDate(0, 0, 1))
		breakdown = append(breakdown, DailySummary{
			Date:      d.Format("2006-01-02"),
			DayOfWeek: d.Format("Mon"),
			Taken:     day.Taken,
			Stopped:   day.Stopped,
		})
		if day.Prompts > busiestCount {
			busiest, busiestCount = d.Format("Monday"), day.Prompts
		}
	}

	top := week.Activities
	if len(top) > maxTopActivities {
		top = top[:maxTopActivities]
	}

	return &WeeklyReport{
		StartDate: startDate,
		EndDate:   endDate.Add(-time.Nanosecond), // End of last day
		Breaks: WeeklyBreaks{
			Taken:         week.Taken,
			Stopped:       week.Stopped,
			DailyAverage:  float64(week.Taken) / 7,
			BusiestDay:    busiest,
			TopActivities: top,
		},
		DailyBreakdown: breakdown,
		Lifetime:       lifetime(g.stats.Snapshot()),
		GeneratedAt:    g.now(),
	}
}

// summarize counts entries with start <= timestamp < end.
func summarize(entries []store.HistoryEntry, start, end time.Time) BreakSummary {
	var sum BreakSummary
	activities := make(map[string]int)

	for _, e := range entries {
		ts := e.Time()
		if ts.IsZero() || ts.Before(start) || !ts.Before(end) {
			continue
		}

		sum.Prompts++
		switch e.Action {
		case store.ActionContinue:
			sum.Taken++
		case store.ActionStop:
			sum.Stopped++
		}
		if e.Activity != "" {
			activities[e.Activity]++
		}

		if sum.FirstReminder == nil || ts.Before(*sum.FirstReminder) {
			first := ts
			sum.FirstReminder = &first
		}
		if sum.LastReminder == nil || ts.After(*sum.LastReminder) {
			last := ts
			sum.LastReminder = &last
		}
	}

	sum.Activities = make([]ActivityCount, 0, len(activities))
	for activity, count := range activities {
		sum.Activities = append(sum.Activities, ActivityCount{Activity: activity, Count: count})
	}
	sort.Slice(sum.Activities, func(i, j int) bool {
		a, b := sum.Activities[i], sum.Activities[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Activity < b.Activity
	})
	return sum
}

func lifetime(st store.Stats) Lifetime {
	lt := Lifetime{
		Sessions:       st.TotalSessions,
		Breaks:         st.TotalBreaks,
		WorkHours:      st.TotalWorkTime / 3600,
		LongestMinutes: st.LongestSession / 60,
		AverageMinutes: st.AverageSession / 60,
	}
	if last := st.LastSessionTime(); !last.IsZero() {
		lt.LastSession = &last
	}
	return lt
}

// startOfDay returns the start of the day (midnight).
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeekSunday returns the start of the week (Sunday).
func startOfWeekSunday(t time.Time) time.Time {
	t = startOfDay(t)
	return t.AddDate(0, 0, -int(t.Weekday()))
}
