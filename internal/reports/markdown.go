package reports

import (
	"fmt"
	"strings"
	"time"
)

// FormatDailyMarkdown renders a daily report as Markdown.
func FormatDailyMarkdown(r *DailyReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Break Report: %s\n\n", r.Date.Format("Monday, January 2, 2006"))

	br := r.Breaks
	if br.Prompts == 0 {
		b.WriteString("_No break reminders answered on this day._\n")
		writeFooter(&b, r.GeneratedAt)
		return b.String()
	}

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- **Breaks taken:** %d\n", br.Taken)
	fmt.Fprintf(&b, "- **Sessions stopped at a reminder:** %d\n", br.Stopped)
	if br.FirstReminder != nil {
		fmt.Fprintf(&b, "- **First reminder:** %s\n", br.FirstReminder.Local().Format("15:04"))
	}
	if br.LastReminder != nil {
		fmt.Fprintf(&b, "- **Last reminder:** %s\n", br.LastReminder.Local().Format("15:04"))
	}

	if len(br.Activities) > 0 {
		b.WriteString("\n## Suggested Activities\n\n")
		b.WriteString("| Activity | Times |\n|----------|-------|\n")
		for _, a := range br.Activities {
			fmt.Fprintf(&b, "| %s | %d |\n", escapeCell(a.Activity), a.Count)
		}
	}

	writeFooter(&b, r.GeneratedAt)
	return b.String()
}

// FormatWeeklyMarkdown renders a weekly report as Markdown.
func FormatWeeklyMarkdown(r *WeeklyReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Weekly Break Report: %s to %s\n\n",
		r.StartDate.Format("Jan 2"), r.EndDate.Format("Jan 2, 2006"))

	w := r.Breaks
	b.WriteString("## This Week\n\n")
	fmt.Fprintf(&b, "- **Breaks taken:** %d (%.1f per day)\n", w.Taken, w.DailyAverage)
	fmt.Fprintf(&b, "- **Sessions stopped at a reminder:** %d\n", w.Stopped)
	if w.BusiestDay != "" {
		fmt.Fprintf(&b, "- **Busiest day:** %s\n", w.BusiestDay)
	}

	b.WriteString("\n## Daily Breakdown\n\n")
	b.WriteString("| Day | Date | Taken | Stopped |\n|-----|------|-------|---------|\n")
	for _, d := range r.DailyBreakdown {
		fmt.Fprintf(&b, "| %s | %s | %d | %d |\n", d.DayOfWeek, d.Date, d.Taken, d.Stopped)
	}

	if len(w.TopActivities) > 0 {
		b.WriteString("\n## Most Suggested Activities\n\n")
		for i, a := range w.TopActivities {
			fmt.Fprintf(&b, "%d. %s (%d)\n", i+1, a.Activity, a.Count)
		}
	}

	lt := r.Lifetime
	b.WriteString("\n## Lifetime\n\n")
	fmt.Fprintf(&b, "- **Sessions:** %d\n", lt.Sessions)
	fmt.Fprintf(&b, "- **Breaks:** %d\n", lt.Breaks)
	fmt.Fprintf(&b, "- **Work time:** %.1f hours\n", lt.WorkHours)
	fmt.Fprintf(&b, "- **Longest session:** %.1f minutes\n", lt.LongestMinutes)
	fmt.Fprintf(&b, "- **Average session:** %.1f minutes\n", lt.AverageMinutes)
	if lt.LastSession != nil {
		fmt.Fprintf(&b, "- **Last session:** %s\n", lt.LastSession.Local().Format("2006-01-02 15:04"))
	}

	writeFooter(&b, r.GeneratedAt)
	return b.String()
}

func writeFooter(b *strings.Builder, at time.Time) {
	fmt.Fprintf(b, "\n---\n_Generated %s_\n", at.Format("2006-01-02 15:04"))
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
