package app

import (
	"fmt"
	"time"

	"github.com/cardcal/cardcal/internal/auth"
	"github.com/cardcal/cardcal/internal/config"
	"github.com/cardcal/cardcal/pkg/card"
	"github.com/cardcal/cardcal/pkg/feed"
	"github.com/cardcal/cardcal/pkg/ical"
	"github.com/cardcal/cardcal/pkg/metrics"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Metrics   *metrics.Recorder
	BasicAuth *auth.BasicAuth

	CardRepository card.Repository
	EventSource    *card.EventSource

	Renderer    *ical.Renderer
	FeedHandler *feed.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(repo card.Repository, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	location, err := loadLocation(cfg.Calendar.Timezone)
	if err != nil {
		return nil, err
	}

	deps.Metrics = metrics.NewRecorder()
	deps.BasicAuth = auth.NewBasicAuth(cfg.Auth)

	deps.CardRepository = repo
	deps.EventSource = card.NewEventSource(deps.CardRepository, deps.Metrics)

	deps.Renderer = ical.NewRenderer(cfg.Calendar.ProductId, location)
	deps.FeedHandler = feed.NewHandler(deps.EventSource, deps.Renderer, deps.Metrics, cfg.Calendar.FailSoft)

	return deps, nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return nil, nil
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar timezone %q: %w", name, err)
	}
	return location, nil
}
