package service

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"github.com/msomdec/rewise/internal/domain"
	"golang.org/x/crypto/blake2b"
)

// SessionTracker sequences a fixed card list through a single-pass review.
// It is not safe for concurrent use.
type SessionTracker struct {
	cards    []domain.Flashcard
	catalog  string
	recorder OutcomeRecorder
	today    func() string
	state    domain.SessionState
}

// NewSessionTracker creates a tracker positioned on the first card.
// today supplies the date key stamped on every emitted outcome.
func NewSessionTracker(cards []domain.Flashcard, recorder OutcomeRecorder, today func() string) (*SessionTracker, error) {
	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", domain.ErrInvalidInput)
	}
	if recorder == nil || today == nil {
		return nil, fmt.Errorf("%w: recorder and clock are required", domain.ErrInvalidInput)
	}

	t := &SessionTracker{
		cards:    append([]domain.Flashcard(nil), cards...),
		catalog:  catalogFingerprint(cards),
		recorder: recorder,
		today:    today,
	}
	t.Reset()
	return t, nil
}

// State returns the current session position.
func (t *SessionTracker) State() domain.SessionState {
	return t.state
}

// Cards returns the session's card list.
func (t *SessionTracker) Cards() []domain.Flashcard {
	return append([]domain.Flashcard(nil), t.cards...)
}

// CurrentCard returns the card under review.
func (t *SessionTracker) CurrentCard() (domain.Flashcard, error) {
	if t.state.Complete || t.state.Cursor >= len(t.cards) {
		return domain.Flashcard{}, fmt.Errorf("%w: session has no current card", domain.ErrOutOfRange)
	}
	return t.cards[t.state.Cursor], nil
}

// RecordOutcome records the reviewer's answer for the current card and
// advances. Returns domain.ErrInvalidState once the session is complete;
// nothing is emitted in that case.
func (t *SessionTracker) RecordOutcome(known bool) (domain.SessionState, error) {
	if t.state.Complete {
		return t.state, fmt.Errorf("%w: session is complete", domain.ErrInvalidState)
	}

	card := t.cards[t.state.Cursor]
	t.recorder.Observe(domain.Outcome{CardID: card.ID, Known: known, Date: t.today()})

	if t.state.Cursor == len(t.cards)-1 {
		t.state.Complete = true
	} else {
		t.state.Cursor++
	}
	return t.state, nil
}

// Reset returns to the first card and starts a new run. Stats are untouched.
func (t *SessionTracker) Reset() domain.SessionState {
	t.state = domain.SessionState{
		RunID:   uuid.NewString(),
		Total:   len(t.cards),
		Cursor:  0,
		Catalog: t.catalog,
	}
	return t.state
}

// Restore re-enters a previously saved position. The state must describe
// this catalog: same cards in the same order and a cursor inside it.
func (t *SessionTracker) Restore(state domain.SessionState) error {
	if state.Total != len(t.cards) {
		return fmt.Errorf("%w: saved session covers %d cards, catalog has %d", domain.ErrMalformedState, state.Total, len(t.cards))
	}
	if state.Catalog != t.catalog {
		return fmt.Errorf("%w: saved session belongs to a different catalog", domain.ErrMalformedState)
	}
	if state.Cursor < 0 || state.Cursor >= len(t.cards) {
		return fmt.Errorf("%w: cursor %d out of bounds", domain.ErrMalformedState, state.Cursor)
	}
	// A finished session always rests on its last card.
	if state.Complete && state.Cursor != len(t.cards)-1 {
		return fmt.Errorf("%w: complete session with cursor %d", domain.ErrMalformedState, state.Cursor)
	}
	if state.RunID == "" {
		state.RunID = uuid.NewString()
	}
	t.state = state
	return nil
}

// catalogFingerprint identifies a card list by its IDs and questions, in order.
func catalogFingerprint(cards []domain.Flashcard) string {
	h, _ := blake2b.New256(nil) // only fails for oversized keys
	for _, c := range cards {
		fmt.Fprintf(h, "%d\x00%s\x00", c.ID, c.Question)
	}
	return hex.EncodeToString(h.Sum(nil))
}
