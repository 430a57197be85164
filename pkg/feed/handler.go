package feed

import (
	"context"
	"net/http"

	"github.com/cardcal/cardcal/pkg/card"
	log "github.com/sirupsen/logrus"
)

const (
	ContentType        = "text/calendar"
	ContentDisposition = "attachment; filename=calendar.ics"
)

type EventSource interface {
	FetchEvents(ctx context.Context) []card.Card
	FetchEventsStrict(ctx context.Context) ([]card.Card, error)
}

type CalendarRenderer interface {
	Render(cards []card.Card) (string, error)
}

type RenderRecorder interface {
	RecordEventsRendered(count int)
}

type Handler struct {
	source   EventSource
	renderer CalendarRenderer
	recorder RenderRecorder
	failSoft bool
}

func NewHandler(source EventSource, renderer CalendarRenderer, recorder RenderRecorder, failSoft bool) *Handler {
	return &Handler{source: source, renderer: renderer, recorder: recorder, failSoft: failSoft}
}

// GetCalendar answers with the .ics document built from all cards with a due date.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	var cards []card.Card
	if h.failSoft {
		cards = h.source.FetchEvents(r.Context())
	} else {
		var err error
		cards, err = h.source.FetchEventsStrict(r.Context())
		if err != nil {
			log.Errorf("failed to fetch cards: %v", err)
			http.Error(w, "calendar source unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	document, err := h.renderer.Render(cards)
	if err != nil {
		log.Errorf("failed to render calendar: %v", err)
		http.Error(w, "failed to render calendar", http.StatusInternalServerError)
		return
	}
	if h.recorder != nil {
		h.recorder.RecordEventsRendered(len(cards))
	}

	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Disposition", ContentDisposition)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(document)); err != nil {
		log.Errorf("failed to write calendar response: %v", err)
		return
	}
	log.Tracef("Calendar served with %d events", len(cards))
}
