package card

import "context"

type RepositoryStub struct {
	cards []Card
	err   error
	calls int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{}
}

func (s *RepositoryStub) FindDue(ctx context.Context) ([]Card, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	cards := make([]Card, len(s.cards))
	copy(cards, s.cards)
	return cards, nil
}

func (s *RepositoryStub) SetCards(cards ...Card) {
	s.cards = cards
}

func (s *RepositoryStub) SetError(err error) {
	s.err = err
}

func (s *RepositoryStub) Calls() int {
	return s.calls
}

func (s *RepositoryStub) Reset() {
	s.cards = nil
	s.err = nil
	s.calls = 0
}
