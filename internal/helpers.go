package internal

import "time"

const formatDate = "2006-01-02 15:04 MST"

// FormatDate renders a timestamp in UTC for chat messages.
func FormatDate(date time.Time) string {
	return date.UTC().Format(formatDate)
}
