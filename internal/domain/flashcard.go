package domain

import "context"

// Flashcard is one question/answer pair from the card catalog.
type Flashcard struct {
	ID       int64
	Question string
	Answer   string
}

// CardRepository defines persistence operations for the card catalog.
// Cards are returned in catalog order.
type CardRepository interface {
	List(ctx context.Context) ([]Flashcard, error)
	Count(ctx context.Context) (int, error)
	// ReplaceAll swaps the whole catalog for cards, assigning IDs in order.
	ReplaceAll(ctx context.Context, cards []Flashcard) error
}
