package service

import (
	"errors"
	"testing"

	"github.com/msomdec/rewise/internal/domain"
)

func TestNewSessionTracker_RejectsEmptyCatalog(t *testing.T) {
	_, err := NewSessionTracker(nil, NewStatsStore(domain.Stats{}), fixedDay("2025-03-01"))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNewSessionTracker_StartsOnFirstCard(t *testing.T) {
	tr, err := NewSessionTracker(testCards(3), NewStatsStore(domain.Stats{}), fixedDay("2025-03-01"))
	if err != nil {
		t.Fatalf("NewSessionTracker: %v", err)
	}

	state := tr.State()
	if state.Cursor != 0 || state.Total != 3 || state.Complete {
		t.Errorf("unexpected initial state: %+v", state)
	}
	if state.RunID == "" {
		t.Error("expected a run ID")
	}
	if state.Status() != domain.SessionStatusInProgress {
		t.Errorf("expected in_progress, got %s", state.Status())
	}

	card, err := tr.CurrentCard()
	if err != nil {
		t.Fatalf("CurrentCard: %v", err)
	}
	if card.Question != "A?" {
		t.Errorf("expected first card, got %q", card.Question)
	}
}

func TestSessionTracker_ThreeCardSession(t *testing.T) {
	stats := NewStatsStore(domain.Stats{})
	tr, err := NewSessionTracker(testCards(3), stats, fixedDay("2025-03-01"))
	if err != nil {
		t.Fatalf("NewSessionTracker: %v", err)
	}

	steps := []struct {
		known        bool
		wantCursor   int
		wantComplete bool
	}{
		{true, 1, false},
		{false, 2, false},
		{true, 2, true},
	}
	for i, step := range steps {
		state, err := tr.RecordOutcome(step.known)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if state.Cursor != step.wantCursor || state.Complete != step.wantComplete {
			t.Errorf("step %d: got cursor=%d complete=%v, want cursor=%d complete=%v",
				i, state.Cursor, state.Complete, step.wantCursor, step.wantComplete)
		}
	}

	snap := stats.Snapshot()
	if snap.TodayTotal != 3 || snap.TodayKnown != 2 || snap.TodayUnknown != 1 {
		t.Errorf("unexpected today counters: %+v", snap)
	}
	if got := stats.SuccessRate(); got != 67 {
		t.Errorf("expected success rate 67, got %d", got)
	}
	if len(snap.WeeklyData) != 1 || snap.WeeklyData[0] != (domain.DayStat{Date: "2025-03-01", Total: 3, Known: 2, Unknown: 1}) {
		t.Errorf("unexpected weekly data: %+v", snap.WeeklyData)
	}
}

func TestSessionTracker_CompletesExactlyOnLastCard(t *testing.T) {
	for n := 1; n <= 6; n++ {
		tr, err := NewSessionTracker(testCards(n), NewStatsStore(domain.Stats{}), fixedDay("2025-03-01"))
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		for i := 0; i < n; i++ {
			state, err := tr.RecordOutcome(i%2 == 0)
			if err != nil {
				t.Fatalf("n=%d call %d: %v", n, i, err)
			}
			last := i == n-1
			if state.Complete != last {
				t.Fatalf("n=%d call %d: complete=%v, want %v", n, i, state.Complete, last)
			}
		}
	}
}

func TestSessionTracker_RecordAfterCompleteFails(t *testing.T) {
	stats := NewStatsStore(domain.Stats{})
	tr, err := NewSessionTracker(testCards(1), stats, fixedDay("2025-03-01"))
	if err != nil {
		t.Fatalf("NewSessionTracker: %v", err)
	}
	if _, err := tr.RecordOutcome(true); err != nil {
		t.Fatalf("RecordOutcome: %v", err)
	}
	before := stats.Snapshot()

	_, err = tr.RecordOutcome(false)
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}

	after := stats.Snapshot()
	if after.TodayTotal != before.TodayTotal || after.TodayUnknown != before.TodayUnknown {
		t.Errorf("stats changed after rejected outcome: before=%+v after=%+v", before, after)
	}
}

func TestSessionTracker_CurrentCardAfterComplete(t *testing.T) {
	tr, _ := NewSessionTracker(testCards(1), NewStatsStore(domain.Stats{}), fixedDay("2025-03-01"))
	if _, err := tr.RecordOutcome(true); err != nil {
		t.Fatalf("RecordOutcome: %v", err)
	}

	_, err := tr.CurrentCard()
	if !errors.Is(err, domain.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestSessionTracker_EmitsOutcomePerCard(t *testing.T) {
	var got []domain.Outcome
	rec := recorderFunc(func(o domain.Outcome) { got = append(got, o) })

	tr, err := NewSessionTracker(testCards(2), rec, fixedDay("2025-03-01"))
	if err != nil {
		t.Fatalf("NewSessionTracker: %v", err)
	}
	tr.RecordOutcome(true)
	tr.RecordOutcome(false)

	want := []domain.Outcome{
		{CardID: 1, Known: true, Date: "2025-03-01"},
		{CardID: 2, Known: false, Date: "2025-03-01"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d outcomes, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("outcome %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSessionTracker_ResetKeepsStats(t *testing.T) {
	stats := NewStatsStore(domain.Stats{})
	tr, _ := NewSessionTracker(testCards(2), stats, fixedDay("2025-03-01"))
	first := tr.State().RunID

	tr.RecordOutcome(true)
	tr.RecordOutcome(true)

	state := tr.Reset()
	if state.Cursor != 0 || state.Complete {
		t.Errorf("expected fresh session, got %+v", state)
	}
	if state.RunID == first {
		t.Error("expected a new run ID after reset")
	}
	if got := stats.Snapshot().TodayTotal; got != 2 {
		t.Errorf("reset should not touch stats, today total = %d", got)
	}

	if _, err := tr.RecordOutcome(false); err != nil {
		t.Fatalf("RecordOutcome after reset: %v", err)
	}
}

func TestSessionTracker_Restore(t *testing.T) {
	tests := []struct {
		name    string
		state   domain.SessionState
		wantErr bool
	}{
		{"in progress", domain.SessionState{RunID: "r", Cursor: 1, Total: 3}, false},
		{"complete on last card", domain.SessionState{RunID: "r", Cursor: 2, Total: 3, Complete: true}, false},
		{"missing run id", domain.SessionState{Cursor: 0, Total: 3}, false},
		{"total mismatch", domain.SessionState{Cursor: 0, Total: 4}, true},
		{"negative cursor", domain.SessionState{Cursor: -1, Total: 3}, true},
		{"cursor past end", domain.SessionState{Cursor: 3, Total: 3}, true},
		{"complete before last card", domain.SessionState{Cursor: 1, Total: 3, Complete: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, _ := NewSessionTracker(testCards(3), NewStatsStore(domain.Stats{}), fixedDay("2025-03-01"))
			before := tr.State()
			tt.state.Catalog = before.Catalog

			err := tr.Restore(tt.state)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrMalformedState) {
					t.Fatalf("expected ErrMalformedState, got %v", err)
				}
				if tr.State() != before {
					t.Error("failed restore should leave state unchanged")
				}
				return
			}
			if err != nil {
				t.Fatalf("Restore: %v", err)
			}
			got := tr.State()
			if got.Cursor != tt.state.Cursor || got.Complete != tt.state.Complete || got.RunID == "" {
				t.Errorf("unexpected restored state: %+v", got)
			}
		})
	}
}

func TestSessionTracker_RestoreRejectsOtherCatalog(t *testing.T) {
	original, _ := NewSessionTracker(testCards(3), NewStatsStore(domain.Stats{}), fixedDay("2025-03-01"))
	original.RecordOutcome(true)
	saved := original.State()

	other := testCards(3)
	other[1].Question = "Something else?"
	tr, _ := NewSessionTracker(other, NewStatsStore(domain.Stats{}), fixedDay("2025-03-01"))

	if err := tr.Restore(saved); !errors.Is(err, domain.ErrMalformedState) {
		t.Fatalf("expected ErrMalformedState for a same-size different deck, got %v", err)
	}
	if tr.State().Cursor != 0 {
		t.Errorf("expected tracker to stay on the first card, got %+v", tr.State())
	}
}

func TestCatalogFingerprint(t *testing.T) {
	a := catalogFingerprint(testCards(3))
	if a != catalogFingerprint(testCards(3)) {
		t.Error("fingerprint should be stable for the same cards")
	}

	reordered := testCards(3)
	reordered[0], reordered[1] = reordered[1], reordered[0]
	if a == catalogFingerprint(reordered) {
		t.Error("fingerprint should change when cards are reordered")
	}

	answerEdited := testCards(3)
	answerEdited[2].Answer = "changed"
	if a != catalogFingerprint(answerEdited) {
		t.Error("answer edits should not change the fingerprint")
	}
}
