package ical

import (
	"time"

	"github.com/cardcal/cardcal/pkg/card"
)

// EventDuration is the fixed length given to every rendered card.
const EventDuration = time.Hour

type Event struct {
	Title string
	Start time.Time
	End   time.Time
}

func NewEvent(c card.Card) Event {
	return Event{
		Title: c.Name,
		Start: c.DueDate,
		End:   c.DueDate.Add(EventDuration),
	}
}
