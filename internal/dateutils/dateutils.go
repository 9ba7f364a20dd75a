// Package dateutils provides common date operations used throughout the
// application.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date format constants used throughout the application.
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutIndian   = "02-01-2006"
	DateLayoutUS       = "01/02/2006"
)

// CommonFormats is the list of formats tried when parsing absolute dates.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutIndian,
	DateLayoutEuropean,
	DateLayoutUS,
	"02/01/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"2-Jan-2006",
}

// ParseDate attempts to parse a date string using multiple common formats.
// It returns the parsed time and the detected format.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)
	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}
	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate formats a time as YYYY-MM-DD.
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// FromISODate parses a YYYY-MM-DD string.
func FromISODate(s string) (time.Time, error) {
	return time.Parse(DateLayoutISO, strings.TrimSpace(s))
}

// MonthStart truncates a time to the first day of its month, which the
// advisors use as a bucketing key.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

var spacesRe = regexp.MustCompile(`\s+`)

// CleanDateString trims and normalizes whitespace in a date string.
func CleanDateString(dateStr string) string {
	return spacesRe.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}
