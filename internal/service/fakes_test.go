package service

import (
	"context"
	"errors"
	"sync"

	"github.com/msomdec/rewise/internal/domain"
)

// memKV is an in-memory domain.KeyValueStore.
type memKV struct {
	mu      sync.Mutex
	data    map[string][]byte
	failSet bool
	failKey string // SetMany rejects any batch containing this key
	sets    int
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet {
		return errors.New("storage unavailable")
	}
	m.sets++
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) SetMany(_ context.Context, entries map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet {
		return errors.New("storage unavailable")
	}
	if _, ok := entries[m.failKey]; ok && m.failKey != "" {
		return errors.New("write rejected for " + m.failKey)
	}
	m.sets++
	for k, v := range entries {
		m.data[k] = append([]byte(nil), v...)
	}
	return nil
}

// memCards is an in-memory domain.CardRepository.
type memCards struct {
	cards []domain.Flashcard
}

func (m *memCards) List(context.Context) ([]domain.Flashcard, error) {
	return append([]domain.Flashcard(nil), m.cards...), nil
}

func (m *memCards) Count(context.Context) (int, error) {
	return len(m.cards), nil
}

func (m *memCards) ReplaceAll(_ context.Context, cards []domain.Flashcard) error {
	m.cards = make([]domain.Flashcard, len(cards))
	for i, c := range cards {
		c.ID = int64(i + 1)
		m.cards[i] = c
	}
	return nil
}

// recorderFunc adapts a function to OutcomeRecorder.
type recorderFunc func(domain.Outcome)

func (f recorderFunc) Observe(o domain.Outcome) { f(o) }

func testCards(n int) []domain.Flashcard {
	cards := make([]domain.Flashcard, n)
	for i := range cards {
		cards[i] = domain.Flashcard{
			ID:       int64(i + 1),
			Question: string(rune('A'+i)) + "?",
			Answer:   string(rune('A'+i)) + "!",
		}
	}
	return cards
}

func fixedDay(key string) func() string {
	return func() string { return key }
}
