// Package tz converts UTC instants to wall-clock time for a small set of
// fixed-rule daylight saving zones.
//
// A zone is described the way POSIX TZ "M" rules are: a standard offset, a
// daylight offset, and two transitions each written as "the Nth weekday of a
// month at a local time of day". Transition instants depend on the year only
// through leap-year day counts, so a Calculator memoizes them per calendar
// year.
//
// The package does not consult the system zoneinfo database.
package tz

import (
	"fmt"
	"sort"
)

const (
	secsPerMinute = 60
	secsPerHour   = 3600
	secsPerDay    = 86400
	daysPerWeek   = 7

	epochYear    = 1970
	epochWeekday = 4 // 1970-01-01 was a Thursday

	daysPer400Years = 146097
)

var monthLengths = [2][12]int64{
	{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31},
	{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31},
}

// Rule names a transition as the Week-th Weekday of Month at At seconds past
// local midnight. Week 5 means the last such weekday of the month.
type Rule struct {
	Month   int   // 1-12
	Week    int   // 1-5
	Weekday int   // 0 = Sunday
	At      int64 // seconds after local midnight
}

// Zone is an immutable fixed-rule timezone. Offsets are seconds west of UTC,
// matching how the rule tables are usually written (US/Central is 21600).
type Zone struct {
	Name      string
	StdAbbrev string
	DstAbbrev string
	StdOffset int64
	DstOffset int64
	Start     Rule // evaluated in standard time
	End       Rule // evaluated in daylight time
}

// CivilTime holds the wall-clock fields for one instant in one zone.
type CivilTime struct {
	Year    int
	Month   int // 1-12
	Day     int // 1-31
	Hour    int // 0-23
	Minute  int
	Second  int
	Weekday int // 0 = Sunday
	YearDay int // 0-365
	IsDST   bool
	Offset  int64 // seconds east of UTC
	Abbrev  string
}

const twoAM = 2 * secsPerHour

var (
	USEastern = Zone{
		Name: "US/Eastern", StdAbbrev: "EST", DstAbbrev: "EDT",
		StdOffset: 5 * secsPerHour, DstOffset: 4 * secsPerHour,
		Start: Rule{Month: 3, Week: 2, Weekday: 0, At: twoAM},
		End:   Rule{Month: 11, Week: 1, Weekday: 0, At: twoAM},
	}
	USCentral = Zone{
		Name: "US/Central", StdAbbrev: "CST", DstAbbrev: "CDT",
		StdOffset: 6 * secsPerHour, DstOffset: 5 * secsPerHour,
		Start: Rule{Month: 3, Week: 2, Weekday: 0, At: twoAM},
		End:   Rule{Month: 11, Week: 1, Weekday: 0, At: twoAM},
	}
	USMountain = Zone{
		Name: "US/Mountain", StdAbbrev: "MST", DstAbbrev: "MDT",
		StdOffset: 7 * secsPerHour, DstOffset: 6 * secsPerHour,
		Start: Rule{Month: 3, Week: 2, Weekday: 0, At: twoAM},
		End:   Rule{Month: 11, Week: 1, Weekday: 0, At: twoAM},
	}
	USPacific = Zone{
		Name: "US/Pacific", StdAbbrev: "PST", DstAbbrev: "PDT",
		StdOffset: 8 * secsPerHour, DstOffset: 7 * secsPerHour,
		Start: Rule{Month: 3, Week: 2, Weekday: 0, At: twoAM},
		End:   Rule{Month: 11, Week: 1, Weekday: 0, At: twoAM},
	}
	// AustraliaSydney observes daylight time across the new year.
	AustraliaSydney = Zone{
		Name: "Australia/Sydney", StdAbbrev: "AEST", DstAbbrev: "AEDT",
		StdOffset: -10 * secsPerHour, DstOffset: -11 * secsPerHour,
		Start: Rule{Month: 10, Week: 1, Weekday: 0, At: twoAM},
		End:   Rule{Month: 4, Week: 1, Weekday: 0, At: 3 * secsPerHour},
	}
)

// DefaultZone is the zone used when none is configured.
const DefaultZone = "US/Central"

var zones = map[string]Zone{
	USEastern.Name:       USEastern,
	USCentral.Name:       USCentral,
	USMountain.Name:      USMountain,
	USPacific.Name:       USPacific,
	AustraliaSydney.Name: AustraliaSydney,
}

// Lookup returns the built-in zone with the given name.
func Lookup(name string) (Zone, error) {
	z, ok := zones[name]
	if !ok {
		return Zone{}, fmt.Errorf("unknown timezone %q (known: %v)", name, Names())
	}
	return z, nil
}

// Names lists the built-in zone names in sorted order.
func Names() []string {
	names := make([]string, 0, len(zones))
	for name := range zones {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func yearLength(year int) int64 {
	if IsLeap(year) {
		return 366
	}
	return 365
}

func lengthsFor(year int) *[12]int64 {
	if IsLeap(year) {
		return &monthLengths[1]
	}
	return &monthLengths[0]
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

func leapsThrough(year int64) int64 {
	return floorDiv(year, 4) - floorDiv(year, 100) + floorDiv(year, 400)
}

// daysBeforeYear returns the number of days from 1970-01-01 to January 1 of year.
func daysBeforeYear(year int) int64 {
	y := int64(year)
	return 365*(y-epochYear) + leapsThrough(y-1) - leapsThrough(epochYear-1)
}

// transition returns the UTC instant at which rule fires in year, given the
// offset (seconds west) in force just before it.
func transition(year int, offset int64, r Rule) int64 {
	days := daysBeforeYear(year)
	lengths := lengthsFor(year)

	for m := 1; m < r.Month; m++ {
		days += lengths[m-1]
	}

	firstWeekday := floorMod(epochWeekday+days, daysPerWeek)
	diff := int64(r.Weekday) - firstWeekday
	if diff < 0 {
		diff += daysPerWeek
	}

	mday := int64(r.Week-1)*daysPerWeek + diff
	for mday >= lengths[r.Month-1] {
		mday -= daysPerWeek
	}
	days += mday

	return offset + days*secsPerDay + r.At
}

// Format renders c as "YYYY-MM-DD hh:mm:ss AM" on a 12-hour clock.
func Format(c CivilTime) string {
	hour := c.Hour
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	if hour == 0 {
		hour = 12
	} else if hour > 12 {
		hour -= 12
	}
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d %s",
		c.Year, c.Month, c.Day, hour, c.Minute, c.Second, suffix)
}

// Never is shown in place of a timestamp for entities that never changed state.
const Never = "never"

// Since formats a last-state-change epoch. Zero means the state never changed
// and is rendered as Never without consulting the calculator.
func Since(c *Calculator, epoch int64) string {
	if epoch == 0 {
		return Never
	}
	return Format(c.Localtime(epoch))
}
