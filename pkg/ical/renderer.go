package ical

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/cardcal/cardcal/pkg/card"
	"github.com/google/uuid"
)

const DefaultProductId = "-//cardcal//cardcal//EN"

const timestampFormatLocal = "20060102T150405"

// uidNamespace scopes the name-based event UIDs.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("cardcal"))

type Renderer struct {
	productId string
	location  *time.Location
}

// NewRenderer returns a renderer emitting UTC timestamps, or wall-clock
// timestamps tagged with TZID when location is set to a zone other than UTC.
func NewRenderer(productId string, location *time.Location) *Renderer {
	if productId == "" {
		productId = DefaultProductId
	}
	return &Renderer{productId: productId, location: location}
}

// Render serializes one VEVENT per card, in input order. Identical input yields identical output.
func (r *Renderer) Render(cards []card.Card) (string, error) {
	cal := ics.NewCalendar()
	cal.SetProductId(r.productId)

	events := make([]Event, 0, len(cards))
	for _, c := range cards {
		events = append(events, NewEvent(c))
	}

	if r.zoned() && len(events) > 0 {
		instants := make([]time.Time, 0, 2*len(events))
		for _, event := range events {
			instants = append(instants, r.wallClock(event.Start), r.wallClock(event.End))
		}
		addTimezone(cal, r.location, instants)
	}

	seen := make(map[string]int, len(events))
	for _, event := range events {
		key := eventKey(event)
		vevent := cal.AddEvent(eventUID(key, seen[key]))
		seen[key]++

		vevent.SetDtStampTime(event.Start)
		vevent.SetSummary(event.Title)
		r.setTime(vevent, ics.ComponentPropertyDtStart, event.Start)
		r.setTime(vevent, ics.ComponentPropertyDtEnd, event.End)
	}

	var sb strings.Builder
	if err := cal.SerializeTo(&sb, ics.WithNewLineWindows); err != nil {
		return "", fmt.Errorf("failed to encode calendar: %w", err)
	}
	return sb.String(), nil
}

func (r *Renderer) zoned() bool {
	return r.location != nil && r.location != time.UTC
}

// wallClock reads t's UTC clock as a time in the configured zone.
func (r *Renderer) wallClock(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), u.Minute(), u.Second(), u.Nanosecond(), r.location)
}

// setTime writes t in UTC, or keeps its UTC clock reading under the configured TZID.
func (r *Renderer) setTime(vevent *ics.VEvent, prop ics.ComponentProperty, t time.Time) {
	if !r.zoned() {
		if prop == ics.ComponentPropertyDtStart {
			vevent.SetStartAt(t)
		} else {
			vevent.SetEndAt(t)
		}
		return
	}
	vevent.SetProperty(prop, t.UTC().Format(timestampFormatLocal), ics.WithTZID(r.location.String()))
}

func eventKey(e Event) string {
	return e.Title + "\x00" + e.Start.UTC().Format(time.RFC3339Nano)
}

// eventUID is stable for a given card. Identical cards are told apart by their occurrence index.
func eventUID(key string, occurrence int) string {
	return uuid.NewSHA1(uidNamespace, []byte(fmt.Sprintf("%s\x00%d", key, occurrence))).String() + "@cardcal"
}
