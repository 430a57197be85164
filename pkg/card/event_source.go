package card

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// FailureRecorder is notified whenever the store could not be read.
type FailureRecorder interface {
	RecordStoreFailure()
}

type EventSource struct {
	repo     Repository
	failures FailureRecorder
}

func NewEventSource(repo Repository, failures FailureRecorder) *EventSource {
	return &EventSource{repo: repo, failures: failures}
}

// FetchEvents never fails: a store error is logged and reported as no cards.
func (s *EventSource) FetchEvents(ctx context.Context) []Card {
	cards, err := s.FetchEventsStrict(ctx)
	if err != nil {
		log.Errorf("failed to fetch cards, serving an empty calendar: %v", err)
		return []Card{}
	}
	return cards
}

func (s *EventSource) FetchEventsStrict(ctx context.Context) ([]Card, error) {
	cards, err := s.repo.FindDue(ctx)
	if err != nil {
		if s.failures != nil {
			s.failures.RecordStoreFailure()
		}
		return nil, err
	}
	if cards == nil {
		cards = []Card{}
	}
	return cards, nil
}
