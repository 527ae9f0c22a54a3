package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/msomdec/rewise/internal/domain"
)

// CardRepository implements domain.CardRepository using SQLite.
type CardRepository struct {
	db *sqlx.DB
}

type cardRow struct {
	ID       int64  `db:"id"`
	Question string `db:"question"`
	Answer   string `db:"answer"`
}

func (r *CardRepository) List(ctx context.Context) ([]domain.Flashcard, error) {
	var rows []cardRow
	if err := r.db.SelectContext(ctx, &rows,
		"SELECT id, question, answer FROM flashcards ORDER BY position"); err != nil {
		return nil, fmt.Errorf("list flashcards: %w", err)
	}

	cards := make([]domain.Flashcard, len(rows))
	for i, row := range rows {
		cards[i] = domain.Flashcard{ID: row.ID, Question: row.Question, Answer: row.Answer}
	}
	return cards, nil
}

func (r *CardRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM flashcards"); err != nil {
		return 0, fmt.Errorf("count flashcards: %w", err)
	}
	return n, nil
}

// ReplaceAll deletes the catalog and inserts cards in order, numbering IDs
// from 1. Existing card IDs are not preserved.
func (r *CardRepository) ReplaceAll(ctx context.Context, cards []domain.Flashcard) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM flashcards"); err != nil {
		return fmt.Errorf("clear flashcards: %w", err)
	}

	for i, c := range cards {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO flashcards (id, position, question, answer) VALUES (?, ?, ?, ?)",
			i+1, i, c.Question, c.Answer,
		); err != nil {
			return fmt.Errorf("insert flashcard %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}
