package render

import "time"

// formatDeadlineInput renders a deadline for a datetime-local input value.
func formatDeadlineInput(t time.Time) string {
	return t.Format("2006-01-02T15:04")
}

// formatDeadlineHuman renders a deadline for display.
func formatDeadlineHuman(t time.Time) string {
	return t.Format("Mon, 02 Jan 2006 15:04")
}
