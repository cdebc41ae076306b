package subtitles

import (
	"fmt"
	"regexp"
)

var srtTimestamp = regexp.MustCompile(`(\d{2}:\d{2}:\d{2}),(\d{3})`)

// FormatMillis renders a millisecond offset as a WebVTT timestamp,
// HH:MM:SS.mmm. Hours widen past two digits rather than wrapping.
func FormatMillis(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalSeconds := ms / 1000
	millis := ms % 1000
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

// RewriteSRTTimestamps swaps the SRT millisecond separator for the WebVTT
// one (00:00:01,000 becomes 00:00:01.000). Nothing else in text changes.
func RewriteSRTTimestamps(text string) string {
	return srtTimestamp.ReplaceAllString(text, "$1.$2")
}
