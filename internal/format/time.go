// Package format renders times and durations for terminal output.
package format

import (
	"fmt"
	"strings"
	"time"
)

// Formatter holds the date and time layouts picked by configuration.
type Formatter struct {
	dateLayout      string
	dateShortLayout string
	timeLayout      string
	timeFullLayout  string
}

// New builds a Formatter from display_date and display_time settings.
// Example output: "2024-01-23 15:04" or "01/23/2024 3:04 PM"
func New(displayDate, displayTime string) Formatter {
	return Formatter{
		dateLayout:      dateLayout(displayDate),
		dateShortLayout: dateShortLayout(displayDate),
		timeLayout:      timeLayout(displayTime, false),
		timeFullLayout:  timeLayout(displayTime, true),
	}
}

// FromConfig reads the display settings through get.
func FromConfig(get func(string) (string, bool)) Formatter {
	date, _ := get("display_date")
	clock, _ := get("display_time")
	return New(date, clock)
}

// DateTime formats a time with both date and time.
func (f Formatter) DateTime(t time.Time) string {
	return f.Date(t) + " " + f.Time(t)
}

// DateTimeShort formats a time with short date (no year) and time.
func (f Formatter) DateTimeShort(t time.Time) string {
	return t.Format(f.dateShortLayout) + " " + f.Time(t)
}

func (f Formatter) Date(t time.Time) string {
	return t.Format(f.dateLayout)
}

func (f Formatter) Time(t time.Time) string {
	return t.Format(f.timeLayout)
}

// Full formats date and time with seconds.
func (f Formatter) Full(t time.Time) string {
	return f.Date(t) + " " + t.Format(f.timeFullLayout)
}

func dateLayout(displayDate string) string {
	switch displayDate {
	case "", "yyyy-mm-dd":
		return "2006-01-02"
	case "mm/dd/yyyy":
		return "01/02/2006"
	case "dd/mm/yyyy":
		return "02/01/2006"
	default:
		// A custom Go layout such as "Jan 02 2006".
		return displayDate
	}
}

func dateShortLayout(displayDate string) string {
	switch displayDate {
	case "", "yyyy-mm-dd":
		return "01-02"
	case "mm/dd/yyyy":
		return "01/02"
	case "dd/mm/yyyy":
		return "02/01"
	default:
		short := displayDate
		for _, year := range []string{"2006", "/06", "-06", " 06"} {
			short = strings.ReplaceAll(short, year, "")
		}
		short = strings.Trim(strings.TrimSpace(short), "/-")
		if short == "" {
			return "Jan 02"
		}
		return short
	}
}

func timeLayout(displayTime string, seconds bool) string {
	if displayTime == "12h" {
		if seconds {
			return "3:04:05 PM"
		}
		return "3:04 PM"
	}
	if seconds {
		return "15:04:05"
	}
	return "15:04"
}

// Duration renders d compactly: "850µs", "12ms", "1.5s", "2m5s".
func Duration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return d.Truncate(time.Second).String()
	}
}
