// Package dateparse extracts years from the free-form date strings found in
// the archive export and renders them in compact German display form.
//
// Archival dates are frequently imprecise: whole years, whole months, open
// ranges. The display formatter therefore collapses a date to the least
// verbose form that loses none of the precision the source actually provided.
package dateparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	yearRe = regexp.MustCompile(`(\d{4})`)
	timeRe = regexp.MustCompile(`\s+\d{2}:\d{2}:\d{2}$`)
)

// German month abbreviations, indexed by month number.
var monthNames = [13]string{"",
	"Jan.", "Feb.", "März", "Apr.", "Mai", "Juni",
	"Juli", "Aug.", "Sep.", "Okt.", "Nov.", "Dez.",
}

// enDash joins range bounds in display strings.
const enDash = "–"

// Year extracts a representative year from a date string. For a range
// ("start/end") only the start component is considered. The first run of
// four consecutive digits wins. ok is false when no year is present.
func Year(s string) (year int, ok bool) {
	if s == "" {
		return 0, false
	}
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	m := yearRe.FindString(s)
	if m == "" {
		return 0, false
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return y, true
}

// Period buckets a year into a fixed-width period label, e.g.
// Period(1952, 5) == "1950-1954".
func Period(year, width int) string {
	start := year / width * width
	return fmt.Sprintf("%d-%d", start, start+width-1)
}

// partial is a possibly incomplete calendar date; month and day are zero
// when the source did not provide them.
type partial struct {
	year, month, day int
}

func parsePartial(s string) (partial, bool) {
	s = strings.TrimSpace(s)
	var p partial
	parts := strings.SplitN(s, "-", 3)
	if len(parts) == 0 || len(parts[0]) != 4 {
		return p, false
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return p, false
	}
	p.year = y
	if len(parts) > 1 {
		if m, err := strconv.Atoi(parts[1]); err == nil && m >= 1 && m <= 12 {
			p.month = m
		} else {
			return p, p.year > 0
		}
	}
	if len(parts) > 2 {
		if d, err := strconv.Atoi(parts[2]); err == nil && d >= 1 && d <= 31 {
			p.day = d
		}
	}
	return p, true
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	}
	return 0
}

// yearStart reports whether p is the implicit or explicit start of its year.
func (p partial) yearStart() bool {
	return p.month == 0 || (p.month == 1 && (p.day == 0 || p.day == 1))
}

// yearEnd reports whether p is the implicit or explicit end of its year.
func (p partial) yearEnd() bool {
	return p.month == 0 || (p.month == 12 && (p.day == 0 || p.day == 31))
}

// monthStart reports whether p covers its month from the first day.
func (p partial) monthStart() bool {
	return p.month != 0 && (p.day == 0 || p.day == 1)
}

// monthEnd reports whether p covers its month up to the last day.
func (p partial) monthEnd() bool {
	return p.month != 0 && (p.day == 0 || p.day == daysInMonth(p.year, p.month))
}

func (p partial) String() string {
	switch {
	case p.month == 0:
		return strconv.Itoa(p.year)
	case p.day == 0:
		return fmt.Sprintf("%s %d", monthNames[p.month], p.year)
	default:
		return fmt.Sprintf("%d. %s %d", p.day, monthNames[p.month], p.year)
	}
}

// FormatDisplay renders a date string for display. Single dates render as
// "D. Mon YYYY", "Mon YYYY" or "YYYY" depending on the precision given.
// Ranges collapse in this priority order:
//
//	(a) full single year          → "1958"
//	(b) full multi-year span      → "1950 – 1960"
//	(c) one full month            → "Apr. 1958"
//	(d) partial days, same month  → "6. – 12. Apr. 1958"
//	(e) full-month bounds         → "Apr. 1958 – Juni 1958"
//	(f) anything else             → "6. Apr. 1958 – 12. Mai 1958"
//
// Unrecognized input is returned trimmed and unchanged.
func FormatDisplay(s string) string {
	if s == "" {
		return ""
	}
	// Excel exports sometimes leak a time-of-day suffix.
	s = timeRe.ReplaceAllString(strings.TrimSpace(s), "")

	start, end, isRange := strings.Cut(s, "/")
	if !isRange {
		p, ok := parsePartial(start)
		if !ok {
			return strings.TrimSpace(s)
		}
		return p.String()
	}

	a, okA := parsePartial(start)
	b, okB := parsePartial(end)
	if !okA || !okB {
		return strings.TrimSpace(start) + " " + enDash + " " + strings.TrimSpace(end)
	}

	switch {
	case a.year == b.year && a.yearStart() && b.yearEnd():
		return strconv.Itoa(a.year)
	case a.yearStart() && b.yearEnd():
		return fmt.Sprintf("%d %s %d", a.year, enDash, b.year)
	case a.year == b.year && a.month == b.month && a.monthStart() && b.monthEnd():
		return fmt.Sprintf("%s %d", monthNames[a.month], a.year)
	case a.year == b.year && a.month == b.month && a.month != 0 && a.day != 0 && b.day != 0:
		return fmt.Sprintf("%d. %s %d. %s %d", a.day, enDash, b.day, monthNames[a.month], a.year)
	case a.monthStart() && b.monthEnd():
		return fmt.Sprintf("%s %d %s %s %d", monthNames[a.month], a.year, enDash, monthNames[b.month], b.year)
	default:
		return a.String() + " " + enDash + " " + b.String()
	}
}
