package card

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cardcal/cardcal/internal/config"
	"github.com/cardcal/cardcal/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failureCounter struct {
	count int
}

func (f *failureCounter) RecordStoreFailure() {
	f.count++
}

var repoStub = NewRepositoryStub()

func setupEventSource(t *testing.T) (*EventSource, *failureCounter) {
	t.Cleanup(repoStub.Reset)
	failures := &failureCounter{}
	return NewEventSource(repoStub, failures), failures
}

func TestEventSource_FetchEvents(t *testing.T) {
	t.Run("returns the repository cards in order", func(t *testing.T) {
		source, failures := setupEventSource(t)
		first := Card{Name: "Pay invoice", DueDate: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
		second := Card{Name: "Renew passport", DueDate: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)}
		repoStub.SetCards(first, second)

		cards := source.FetchEvents(context.Background())

		assert.Equal(t, []Card{first, second}, cards)
		assert.Equal(t, 0, failures.count)
		assert.Equal(t, 1, repoStub.Calls())
	})

	t.Run("returns an empty list when the store fails", func(t *testing.T) {
		source, failures := setupEventSource(t)
		repoStub.SetError(errors.New("connection refused"))

		cards := source.FetchEvents(context.Background())

		assert.NotNil(t, cards)
		assert.Empty(t, cards)
		assert.Equal(t, 1, failures.count)
	})

	t.Run("never returns nil for an empty table", func(t *testing.T) {
		source, _ := setupEventSource(t)

		cards := source.FetchEvents(context.Background())

		assert.NotNil(t, cards)
		assert.Empty(t, cards)
	})

	t.Run("returns an empty list when the database is unreachable", func(t *testing.T) {
		cfg := config.Database{Host: "127.0.0.1", Port: 1, User: "nobody", Name: "nothing"}
		source := NewEventSource(NewRepository(database.Connector(cfg), "card", false), nil)

		assert.NotPanics(t, func() {
			cards := source.FetchEvents(context.Background())
			assert.Equal(t, []Card{}, cards)
		})
	})
}

func TestEventSource_FetchEventsStrict(t *testing.T) {
	t.Run("surfaces the store error", func(t *testing.T) {
		source, failures := setupEventSource(t)
		storeErr := errors.New("boom")
		repoStub.SetError(storeErr)

		cards, err := source.FetchEventsStrict(context.Background())

		require.ErrorIs(t, err, storeErr)
		assert.Nil(t, cards)
		assert.Equal(t, 1, failures.count)
	})
}
