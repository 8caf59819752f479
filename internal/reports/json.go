package reports

import (
	"github.com/bytedance/sonic"
)

// FormatDailyJSON formats a daily report as JSON.
func FormatDailyJSON(report *DailyReport) ([]byte, error) {
	return sonic.ConfigStd.MarshalIndent(report, "", "  ")
}

// FormatWeeklyJSON formats a weekly report as JSON.
func FormatWeeklyJSON(report *WeeklyReport) ([]byte, error) {
	return sonic.ConfigStd.MarshalIndent(report, "", "  ")
}
