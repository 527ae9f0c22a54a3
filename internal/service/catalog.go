package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/msomdec/rewise/internal/domain"
)

// CatalogService manages the card catalog that study sessions run over.
type CatalogService struct {
	cards domain.CardRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(cards domain.CardRepository) *CatalogService {
	return &CatalogService{cards: cards}
}

// List returns the catalog in study order.
func (s *CatalogService) List(ctx context.Context) ([]domain.Flashcard, error) {
	return s.cards.List(ctx)
}

// Replace swaps the whole catalog. Every card needs a question and an answer.
func (s *CatalogService) Replace(ctx context.Context, cards []domain.Flashcard) error {
	if len(cards) == 0 {
		return fmt.Errorf("%w: catalog must contain at least one card", domain.ErrInvalidInput)
	}
	for i, c := range cards {
		if strings.TrimSpace(c.Question) == "" || strings.TrimSpace(c.Answer) == "" {
			return fmt.Errorf("%w: card %d needs a question and an answer", domain.ErrInvalidInput, i+1)
		}
	}
	if err := s.cards.ReplaceAll(ctx, cards); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}

// ImportFile replaces the catalog with the deck stored at path.
func (s *CatalogService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	result, err := ImportDeck(path)
	if err != nil {
		return nil, err
	}
	if err := s.Replace(ctx, result.Cards); err != nil {
		return nil, err
	}
	slog.Info("deck imported", "path", path, "cards", len(result.Cards), "skipped", result.Skipped)
	return result, nil
}

// SeedDefault installs the default deck when the catalog is empty.
// It is idempotent.
func (s *CatalogService) SeedDefault(ctx context.Context) error {
	n, err := s.cards.Count(ctx)
	if err != nil {
		return fmt.Errorf("count cards: %w", err)
	}
	if n > 0 {
		return nil
	}
	if err := s.cards.ReplaceAll(ctx, defaultDeck); err != nil {
		return fmt.Errorf("seed default deck: %w", err)
	}
	return nil
}

var defaultDeck = []domain.Flashcard{
	{Question: "What is React?", Answer: "A JavaScript library for building user interfaces, particularly single-page applications."},
	{Question: "What is JSX?", Answer: "A syntax extension for JavaScript that looks similar to HTML and allows us to write HTML in React."},
	{Question: "What is a React component?", Answer: "An independent, reusable piece of code that returns React elements describing what should appear on the screen."},
	{Question: "What are props in React?", Answer: "Props (short for properties) are read-only inputs to components that allow passing data from parent to child components."},
	{Question: "What is state in React?", Answer: "State is a built-in object that stores property values that belong to a component and determines how it renders and behaves."},
	{Question: "What is the virtual DOM?", Answer: "A lightweight copy of the real DOM that React uses to improve performance by minimizing direct manipulation of the DOM."},
	{Question: "What are React hooks?", Answer: "Functions that let you use state and other React features in functional components without writing a class."},
	{Question: "What is the useEffect hook used for?", Answer: "To perform side effects in functional components, such as data fetching, subscriptions, or manually changing the DOM."},
	{Question: "What is the difference between controlled and uncontrolled components?", Answer: "Controlled components have their state controlled by React, while uncontrolled components store their state in the DOM."},
	{Question: "What is the Context API in React?", Answer: "A way to share values like themes or user data between components without explicitly passing props through every level."},
	{Question: "What is Redux?", Answer: "A predictable state container for JavaScript apps, often used with React for managing application state."},
	{Question: "What is the purpose of keys in React lists?", Answer: "Keys help React identify which items have changed, are added, or are removed, improving performance when rendering lists."},
	{Question: "What is React Router?", Answer: "A standard library for routing in React that enables navigation among views in a React application."},
	{Question: "What is the difference between state and props?", Answer: "Props are passed to a component and are immutable, while state is managed within a component and can be updated."},
	{Question: "What is a Higher-Order Component (HOC)?", Answer: "A pattern where a function takes a component and returns a new component with additional props or behavior."},
}
