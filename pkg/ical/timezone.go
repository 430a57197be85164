package ical

import (
	"fmt"
	"slices"
	"time"

	ics "github.com/arran4/golang-ical"
)

// zonePeriod is a span of constant UTC offset, identified by the instant it begins.
type zonePeriod struct {
	start  time.Time
	sample time.Time
}

// addTimezone appends a VTIMEZONE for loc holding one observance for every
// offset period that one of instants falls in.
func addTimezone(cal *ics.Calendar, loc *time.Location, instants []time.Time) {
	tz := cal.AddTimezone(loc.String())

	seen := make(map[int64]bool)
	var periods []zonePeriod
	for _, t := range instants {
		start, _ := t.ZoneBounds()
		if seen[start.Unix()] {
			continue
		}
		seen[start.Unix()] = true
		periods = append(periods, zonePeriod{start: start, sample: t})
	}
	slices.SortFunc(periods, func(a, b zonePeriod) int {
		return a.start.Compare(b.start)
	})

	for _, p := range periods {
		name, offset := p.sample.Zone()

		// A zone without transitions reports a zero start.
		from := offset
		dtstart := "19700101T000000"
		if !p.start.IsZero() {
			_, from = p.start.Add(-time.Second).Zone()
			dtstart = p.start.In(time.FixedZone(name, from)).Format(timestampFormatLocal)
		}

		var observance *ics.ComponentBase
		if p.sample.IsDST() {
			daylight := &ics.Daylight{}
			tz.Components = append(tz.Components, daylight)
			observance = &daylight.ComponentBase
		} else {
			observance = &tz.AddStandard().ComponentBase
		}
		observance.SetProperty(ics.ComponentPropertyDtStart, dtstart)
		observance.SetProperty(ics.ComponentProperty(ics.PropertyTzoffsetfrom), formatOffset(from))
		observance.SetProperty(ics.ComponentProperty(ics.PropertyTzoffsetto), formatOffset(offset))
		observance.SetProperty(ics.ComponentProperty(ics.PropertyTzname), name)
	}
}

// formatOffset renders seconds east of UTC as +hhmm.
func formatOffset(seconds int) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	return fmt.Sprintf("%c%02d%02d", sign, seconds/3600, seconds%3600/60)
}
