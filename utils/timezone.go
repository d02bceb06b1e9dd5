package utils

import "time"

// Myanmar has no DST so a fixed offset is safe and avoids a tzdata
// dependency in the container image.
var displayLocation = time.FixedZone("MMT", int((6*time.Hour + 30*time.Minute).Seconds()))

// DisplayLocation returns the timezone all user-facing timestamps are
// rendered in.
func DisplayLocation() *time.Location {
	return displayLocation
}

// FormatReportTime renders a timestamp the way reports and broadcasts show it.
func FormatReportTime(t time.Time) string {
	return t.In(displayLocation).Format("2006-01-02 15:04")
}
