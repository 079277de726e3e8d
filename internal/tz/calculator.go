package tz

// Calculator evaluates one Zone, caching the transition instants of the most
// recently used calendar year. It is not safe for concurrent use; give each
// goroutine its own Calculator.
type Calculator struct {
	zone Zone

	cached bool
	year   int
	start  int64
	end    int64
	north  bool
}

// NewCalculator returns a calculator for zone.
func NewCalculator(zone Zone) *Calculator {
	return &Calculator{zone: zone}
}

// Zone returns the zone this calculator evaluates.
func (c *Calculator) Zone() Zone {
	return c.zone
}

// Transitions returns the UTC instants at which daylight time starts and ends
// in the given calendar year.
func (c *Calculator) Transitions(year int) (start, end int64) {
	c.calc(year)
	return c.start, c.end
}

func (c *Calculator) calc(year int) {
	if c.cached && c.year == year {
		return
	}
	c.year = year
	c.start = transition(year, c.zone.StdOffset, c.zone.Start)
	c.end = transition(year, c.zone.DstOffset, c.zone.End)
	c.north = c.start < c.end
	c.cached = true
}

// IsDST reports whether daylight time is in effect at utc (epoch seconds).
func (c *Calculator) IsDST(utc int64) bool {
	// The calendar year is taken from standard time; an instant near the new
	// year is judged against the rules of the year its standard-time date falls in.
	year := civilYear(utc - c.zone.StdOffset)
	c.calc(year)
	if c.north {
		return utc >= c.start && utc < c.end
	}
	return utc >= c.start || utc < c.end
}

// Localtime converts utc (epoch seconds) to wall-clock fields.
func (c *Calculator) Localtime(utc int64) CivilTime {
	dst := c.IsDST(utc)
	offset := c.zone.StdOffset
	abbrev := c.zone.StdAbbrev
	if dst {
		offset = c.zone.DstOffset
		abbrev = c.zone.DstAbbrev
	}

	ct := civil(utc - offset)
	ct.IsDST = dst
	ct.Offset = -offset
	ct.Abbrev = abbrev
	return ct
}

func civilYear(secs int64) int {
	return civil(secs).Year
}

// civil decomposes seconds since the epoch (already shifted to local time)
// into Gregorian calendar fields.
func civil(secs int64) CivilTime {
	days := floorDiv(secs, secsPerDay)
	rem := secs - days*secsPerDay

	ct := CivilTime{
		Hour:    int(rem / secsPerHour),
		Minute:  int(rem % secsPerHour / secsPerMinute),
		Second:  int(rem % secsPerMinute),
		Weekday: int(floorMod(epochWeekday+days, daysPerWeek)),
	}

	// Any 400 consecutive Gregorian years hold exactly 146097 days.
	cycles := floorDiv(days, daysPer400Years)
	days -= cycles * daysPer400Years
	year := epochYear + int(cycles)*400

	for days >= yearLength(year) {
		days -= yearLength(year)
		year++
	}
	ct.Year = year
	ct.YearDay = int(days)

	lengths := lengthsFor(year)
	month := 0
	for days >= lengths[month] {
		days -= lengths[month]
		month++
	}
	ct.Month = month + 1
	ct.Day = int(days) + 1

	return ct
}
