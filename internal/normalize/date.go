// Package normalize turns free-text date strings scraped from event
// pages into the pipeline's canonical calendar-date form.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CanonicalLayout is the single normalized date representation used
// everywhere downstream of the pipeline.
const CanonicalLayout = "01/02/2006"

// matcher attempts to parse one shape of date text. Matchers either
// fully match the input or report false; partial matches never win.
type matcher func(text string) (time.Time, bool)

// matchers are ordered most specific to least specific; the first one
// that fully matches wins.
var matchers = []matcher{
	matchWeekdayOrdinal,
	matchOrdinalRange,
	matchOrdinalDayMonthYear,
	matchMonthDayYear,
	matchISOTimestamp,
	matchISODate,
	matchNumericTriple,
}

var (
	weekday = `(?:mon|tues?|wed(?:nes)?|thur?s?|fri|sat(?:ur)?|sun)(?:day)?`

	reWeekdayOrdinal = regexp.MustCompile(`(?i)^` + weekday + `[,.]?\s+(\d{1,2})(?:st|nd|rd|th)?\s+([a-z]+)[,.]?\s+(\d{4})$`)
	reOrdinalRange   = regexp.MustCompile(`(?i)^(?:` + weekday + `\s+)?(\d{1,2})(?:st|nd|rd|th)?\s*(?:-|–|—|to|until)\s*(?:` + weekday + `\s+)?\d{1,2}(?:st|nd|rd|th)?\s+([a-z]+)[,.]?\s+(\d{4})$`)
	reOrdinalDMY     = regexp.MustCompile(`(?i)^(\d{1,2})(?:st|nd|rd|th)?\s+([a-z]+)[,.]?\s+(\d{4})$`)
	reMonthDY        = regexp.MustCompile(`(?i)^([a-z]+)\s+(\d{1,2})(?:st|nd|rd|th)?[,.]?\s+(\d{4})$`)
	reISODate        = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	reNumericTriple  = regexp.MustCompile(`^(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2}(?:\d{2})?)$`)
	reWhitespace     = regexp.MustCompile(`\s+`)
)

// months maps lowercase month tokens to calendar months. A token
// outside this table is a non-match, never a guess.
var months = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// Date normalizes free-text date input to CanonicalLayout. The second
// return value is false when no matcher succeeds; callers keep the
// original text as RawDate in that case, a date is never fabricated.
//
// Ranges ("Friday 5th–7th June, 2026") resolve to the start date.
// Pure numeric triples are always read day-first: the scraped sites
// are UK-sourced, so "05/03/2026" is the 5th of March.
func Date(raw string) (string, bool) {
	text := reWhitespace.ReplaceAllString(strings.TrimSpace(raw), " ")
	if text == "" {
		return "", false
	}

	for _, m := range matchers {
		if t, ok := m(text); ok {
			return t.Format(CanonicalLayout), true
		}
	}
	return "", false
}

// matchWeekdayOrdinal handles "Sat, 15th Nov, 2025".
func matchWeekdayOrdinal(text string) (time.Time, bool) {
	m := reWeekdayOrdinal.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	return buildDate(m[3], m[2], m[1])
}

// matchOrdinalRange handles "Friday 5th–7th June, 2026" and keeps only
// the start day.
func matchOrdinalRange(text string) (time.Time, bool) {
	m := reOrdinalRange.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	return buildDate(m[3], m[2], m[1])
}

// matchOrdinalDayMonthYear handles "31st January 2026".
func matchOrdinalDayMonthYear(text string) (time.Time, bool) {
	m := reOrdinalDMY.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	return buildDate(m[3], m[2], m[1])
}

// matchMonthDayYear handles "November 15, 2025".
func matchMonthDayYear(text string) (time.Time, bool) {
	m := reMonthDY.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	return buildDate(m[3], m[1], m[2])
}

// matchISOTimestamp handles full ISO-8601 timestamps, with or without
// a zone designator.
func matchISOTimestamp(text string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// matchISODate handles bare "2025-11-29".
func matchISODate(text string) (time.Time, bool) {
	m := reISODate.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return calendarDate(year, time.Month(month), day)
}

// matchNumericTriple handles slash/dash/dot numeric dates, first
// number read as the day. When the second number cannot be a month
// (e.g. re-parsing canonical "11/15/2025") the components are swapped
// instead of failing. Two-digit years are taken as 20xx.
func matchNumericTriple(text string) (time.Time, bool) {
	m := reNumericTriple.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		year += 2000
	}
	if month > 12 && day <= 12 {
		day, month = month, day
	}
	return calendarDate(year, time.Month(month), day)
}

func buildDate(yearStr, monthName, dayStr string) (time.Time, bool) {
	month, ok := months[strings.ToLower(monthName)]
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(dayStr)
	year, _ := strconv.Atoi(yearStr)
	return calendarDate(year, month, day)
}

// calendarDate validates that the components name a real calendar day.
// time.Date normalizes overflow (Feb 31 -> Mar 3), which would
// fabricate a date the page never stated.
func calendarDate(year int, month time.Month, day int) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}
