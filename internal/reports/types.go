// Package reports builds daily and weekly summaries of break reminders from
// the history and statistics documents.
package reports

import (
	"time"
)

// DailyReport summarizes the reminders answered on one day.
type DailyReport struct {
	Date        time.Time    `json:"date"`
	Breaks      BreakSummary `json:"breaks"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// WeeklyReport summarizes a Sunday-to-Saturday week.
type WeeklyReport struct {
	StartDate      time.Time      `json:"start_date"`
	EndDate        time.Time      `json:"end_date"`
	Breaks         WeeklyBreaks   `json:"breaks"`
	DailyBreakdown []DailySummary `json:"daily_breakdown"`
	Lifetime       Lifetime       `json:"lifetime"`
	GeneratedAt    time.Time      `json:"generated_at"`
}

// BreakSummary counts answered prompts in a period.
type BreakSummary struct {
	Taken         int             `json:"taken"`   // answered with continue
	Stopped       int             `json:"stopped"` // answered with stop
	Prompts       int             `json:"prompts"`
	FirstReminder *time.Time      `json:"first_reminder,omitempty"`
	LastReminder  *time.Time      `json:"last_reminder,omitempty"`
	Activities    []ActivityCount `json:"activities"`
}

// ActivityCount is how often an activity was suggested.
type ActivityCount struct {
	Activity string `json:"activity"`
	Count    int    `json:"count"`
}

// WeeklyBreaks aggregates a week of prompts.
type WeeklyBreaks struct {
	Taken         int             `json:"taken"`
	Stopped       int             `json:"stopped"`
	DailyAverage  float64         `json:"daily_average"`
	BusiestDay    string          `json:"busiest_day,omitempty"`
	TopActivities []ActivityCount `json:"top_activities"`
}

// DailySummary is one row of the weekly breakdown.
type DailySummary struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"day_of_week"`
	Taken     int    `json:"taken"`
	Stopped   int    `json:"stopped"`
}

// Lifetime mirrors the statistics document in report-friendly units.
type Lifetime struct {
	Sessions       int        `json:"sessions"`
	Breaks         int        `json:"breaks"`
	WorkHours      float64    `json:"work_hours"`
	LongestMinutes float64    `json:"longest_minutes"`
	AverageMinutes float64    `json:"average_minutes"`
	LastSession    *time.Time `json:"last_session,omitempty"`
}
