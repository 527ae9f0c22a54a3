package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/msomdec/rewise/internal/domain"
)

// Keys used on the persistence surface.
const (
	StatsKey   = "stats"
	SessionKey = "session"
)

// StudyService drives one study session and the stats it feeds, mirroring
// both to a key-value store after every mutation.
type StudyService struct {
	mu      sync.Mutex
	store   domain.KeyValueStore
	clock   func() time.Time
	loc     *time.Location
	stats   *StatsStore
	tracker *SessionTracker
}

// NewStudyService restores stats and session position from store, falling
// back to fresh state when a snapshot is missing or malformed.
func NewStudyService(ctx context.Context, store domain.KeyValueStore, cards []domain.Flashcard, clock func() time.Time, loc *time.Location) (*StudyService, error) {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	s := &StudyService{store: store, clock: clock, loc: loc}

	stats, err := s.loadStats(ctx)
	if err != nil {
		return nil, err
	}
	s.stats = NewStatsStore(stats)

	tracker, err := NewSessionTracker(cards, s.stats, s.today)
	if err != nil {
		return nil, fmt.Errorf("create session tracker: %w", err)
	}
	s.tracker = tracker

	if err := s.restoreSession(ctx); err != nil {
		return nil, err
	}

	slog.Info("study session ready",
		"run_id", s.tracker.State().RunID,
		"cards", len(cards),
		"cursor", s.tracker.State().Cursor,
		"complete", s.tracker.State().Complete,
	)
	return s, nil
}

func (s *StudyService) today() string {
	return domain.DateKey(s.clock().In(s.loc))
}

// Today returns the current date key in the service's location.
func (s *StudyService) Today() string {
	return s.today()
}

func (s *StudyService) loadStats(ctx context.Context) (domain.Stats, error) {
	data, err := s.store.Get(ctx, StatsKey)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Stats{}, nil
	}
	if err != nil {
		return domain.Stats{}, fmt.Errorf("load stats: %w", err)
	}

	stats, err := LoadStats(data)
	if err != nil {
		slog.Warn("discarding stored stats", "error", err)
		return domain.Stats{}, nil
	}
	return stats, nil
}

func (s *StudyService) restoreSession(ctx context.Context) error {
	data, err := s.store.Get(ctx, SessionKey)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	state, err := decodeSession(data)
	if err == nil {
		err = s.tracker.Restore(state)
	}
	if err != nil {
		slog.Warn("discarding stored session", "error", err)
	}
	return nil
}

// CurrentCard returns the card under review.
func (s *StudyService) CurrentCard() (domain.Flashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.CurrentCard()
}

// State returns the session position.
func (s *StudyService) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.State()
}

// Position returns the session position together with the card under
// review, read atomically. The card is nil once the session is complete.
func (s *StudyService) Position() (domain.SessionState, *domain.Flashcard) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.tracker.State()
	card, err := s.tracker.CurrentCard()
	if err != nil {
		return state, nil
	}
	return state, &card
}

// Cards returns the catalog the session runs over.
func (s *StudyService) Cards() []domain.Flashcard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Cards()
}

// RecordOutcome records an outcome for the current card and persists.
func (s *StudyService) RecordOutcome(ctx context.Context, known bool) (domain.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.tracker.RecordOutcome(known)
	if err != nil {
		return state, err
	}
	if state.Complete {
		slog.Info("study session complete", "run_id", state.RunID, "success_rate", s.stats.SuccessRate())
	}
	s.persist(ctx)
	return state, nil
}

// Reset restarts the session from the first card and persists the position.
func (s *StudyService) Reset(ctx context.Context) domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.tracker.Reset()
	slog.Info("study session reset", "run_id", state.RunID)
	s.persist(ctx)
	return state
}

// Rollover starts a new "today" when the date changed and persists.
func (s *StudyService) Rollover(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	if !s.stats.Rollover(today) {
		return false
	}
	slog.Info("today counters rolled over", "date", today)
	s.persist(ctx)
	return true
}

// Stats returns the aggregate as of today: counters recorded on an earlier
// day read as zero even when no rollover has run yet.
func (s *StudyService) Stats() domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatsForDay(s.stats.Snapshot(), s.today())
}

// SuccessRate returns today's success rate in whole percent.
func (s *StudyService) SuccessRate() int {
	stats := s.Stats()
	return successRate(stats.TodayKnown, stats.TodayTotal)
}

// Dashboard computes the statistics page.
func (s *StudyService) Dashboard() Dashboard {
	return ComputeDashboard(s.Stats(), s.today())
}

// Summary computes the completion card.
func (s *StudyService) Summary() CompletionSummary {
	return Summarize(s.Stats())
}

// persist mirrors the current stats and session position to the store in
// one atomic write. Failures are logged and the in-memory state stays
// authoritative; the next persist writes the full snapshot again.
func (s *StudyService) persist(ctx context.Context) {
	stats, err := SerializeStats(s.stats.Snapshot())
	if err != nil {
		slog.Warn("persist study state", "error", err)
		return
	}
	session, err := encodeSession(s.tracker.State())
	if err != nil {
		slog.Warn("persist study state", "error", err)
		return
	}

	if err := s.store.SetMany(ctx, map[string][]byte{
		StatsKey:   stats,
		SessionKey: session,
	}); err != nil {
		slog.Warn("persist study state", "error", err)
	}
}

type sessionRecord struct {
	RunID    string `json:"runId"`
	Cursor   *int   `json:"cursor"`
	Total    *int   `json:"total"`
	Complete *bool  `json:"complete"`
	Catalog  string `json:"catalog"`
}

func encodeSession(state domain.SessionState) ([]byte, error) {
	data, err := json.Marshal(sessionRecord{
		RunID:    state.RunID,
		Cursor:   &state.Cursor,
		Total:    &state.Total,
		Complete: &state.Complete,
		Catalog:  state.Catalog,
	})
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}

func decodeSession(data []byte) (domain.SessionState, error) {
	var rec sessionRecord
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return domain.SessionState{}, fmt.Errorf("%w: decode session: %v", domain.ErrMalformedState, err)
	}
	if rec.Cursor == nil || rec.Total == nil || rec.Complete == nil {
		return domain.SessionState{}, fmt.Errorf("%w: session is missing fields", domain.ErrMalformedState)
	}
	return domain.SessionState{
		RunID:    rec.RunID,
		Cursor:   *rec.Cursor,
		Total:    *rec.Total,
		Complete: *rec.Complete,
		Catalog:  rec.Catalog,
	}, nil
}
