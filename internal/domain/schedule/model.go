package schedule

import (
	"sort"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	ptime "github.com/yaa110/go-persian-calendar"

	"github.com/riskibarqy/futsal-ledger/internal/domain/attendance"
)

// DaysPerWeek is the spacing between two regular sessions.
const DaysPerWeek = 7

var monthNames = [12]string{
	"فروردین",
	"اردیبهشت",
	"خرداد",
	"تیر",
	"مرداد",
	"شهریور",
	"مهر",
	"آبان",
	"آذر",
	"دی",
	"بهمن",
	"اسفند",
}

// Slot is one session date together with its display label.
type Slot struct {
	Date  attendance.Date
	Label string
}

// Labels builds weeklyCount dates one week apart from start, merges extras,
// drops duplicates and returns the result in ascending date order.
func Labels(start attendance.Date, weeklyCount int, extras []attendance.Date) []Slot {
	seen := make(map[attendance.Date]struct{}, weeklyCount+len(extras))
	dates := make([]attendance.Date, 0, weeklyCount+len(extras))
	add := func(d attendance.Date) {
		if d.IsZero() {
			return
		}
		if _, ok := seen[d]; ok {
			return
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}

	if !start.IsZero() {
		for i := 0; i < weeklyCount; i++ {
			add(start.AddDays(i * DaysPerWeek))
		}
	}
	for _, d := range extras {
		add(d)
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	out := make([]Slot, 0, len(dates))
	for _, d := range dates {
		out = append(out, Slot{Date: d, Label: Label(d)})
	}
	return out
}

// Label renders d as "{day} {month} {year}" in the Solar Hijri calendar
// with Persian digits, e.g. "۲۸ مهر ۱۴۰۴".
func Label(d attendance.Date) string {
	if d.IsZero() {
		return ""
	}
	pt := ptime.New(d.Time())
	return PersianDigits(strconv.Itoa(pt.Day())) + " " +
		MonthName(int(pt.Month())) + " " +
		PersianDigits(strconv.Itoa(pt.Year()))
}

// MonthName returns the Persian name of Solar Hijri month m (1..12).
func MonthName(m int) string {
	if m < 1 || m > len(monthNames) {
		return ""
	}
	return monthNames[m-1]
}

// PersianDigits replaces ASCII digits with Extended Arabic-Indic glyphs.
func PersianDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return '۰' + (r - '0')
		}
		return r
	}, s)
}

// ParseSolarDate converts a Solar Hijri "YYYY-MM-DD" string to the Gregorian
// civil date used as attendance key.
func ParseSolarDate(raw string) (attendance.Date, error) {
	raw = strings.TrimSpace(raw)
	parts := strings.Split(raw, "-")
	if len(parts) != 3 {
		return attendance.Date{}, crerr.Newf("invalid solar date %q: expected YYYY-MM-DD", raw)
	}

	values := make([]int, 3)
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			return attendance.Date{}, crerr.Wrapf(err, "invalid solar date %q", raw)
		}
		values[i] = v
	}
	year, month, day := values[0], values[1], values[2]
	if year <= 0 || month < 1 || month > 12 || day < 1 || day > 31 {
		return attendance.Date{}, crerr.Newf("invalid solar date %q: out of range", raw)
	}

	pt := ptime.Date(year, ptime.Month(month), day, 0, 0, 0, 0, time.UTC)
	// ptime normalises overflowing days into the next month.
	if pt.Year() != year || int(pt.Month()) != month || pt.Day() != day {
		return attendance.Date{}, crerr.Newf("invalid solar date %q: no such day", raw)
	}

	return attendance.DateOf(pt.Time()), nil
}

// ParseSolarDates parses a list of Solar Hijri dates, skipping blanks.
func ParseSolarDates(raws []string) ([]attendance.Date, error) {
	out := make([]attendance.Date, 0, len(raws))
	for _, raw := range raws {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		d, err := ParseSolarDate(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
