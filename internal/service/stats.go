package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/msomdec/rewise/internal/domain"
)

// OutcomeRecorder receives one outcome per reviewed card.
type OutcomeRecorder interface {
	Observe(o domain.Outcome)
}

// StatsStore aggregates review outcomes into today counters and day buckets.
// It is the single writer of its domain.Stats value and is not safe for
// concurrent use; callers serialize access.
type StatsStore struct {
	stats domain.Stats
}

// NewStatsStore creates a StatsStore seeded with a copy of initial.
func NewStatsStore(initial domain.Stats) *StatsStore {
	return &StatsStore{stats: cloneStats(initial)}
}

// Observe implements OutcomeRecorder.
func (s *StatsStore) Observe(o domain.Outcome) {
	s.Record(o.Date, o.Known)
}

// Record counts one outcome for the given day.
func (s *StatsStore) Record(dateKey string, known bool) {
	s.Rollover(dateKey)

	s.stats.TodayTotal++
	if known {
		s.stats.TodayKnown++
	} else {
		s.stats.TodayUnknown++
	}

	for i := range s.stats.WeeklyData {
		day := &s.stats.WeeklyData[i]
		if day.Date != dateKey {
			continue
		}
		day.Total++
		if known {
			day.Known++
		} else {
			day.Unknown++
		}
		return
	}

	day := domain.DayStat{Date: dateKey, Total: 1}
	if known {
		day.Known = 1
	} else {
		day.Unknown = 1
	}
	s.stats.WeeklyData = append(s.stats.WeeklyData, day)
	if len(s.stats.WeeklyData) > domain.MaxWeeklyDays {
		s.stats.WeeklyData = s.stats.WeeklyData[1:]
	}
}

// Rollover moves the today counters to dateKey, zeroing them when the day
// changed. It reports whether a reset happened. Day buckets are untouched.
func (s *StatsStore) Rollover(dateKey string) bool {
	if s.stats.TodayDate == dateKey {
		return false
	}
	s.stats.TodayDate = dateKey
	s.stats.TodayTotal = 0
	s.stats.TodayKnown = 0
	s.stats.TodayUnknown = 0
	return true
}

// SuccessRate returns the share of known outcomes today as a whole percent.
func (s *StatsStore) SuccessRate() int {
	return successRate(s.stats.TodayKnown, s.stats.TodayTotal)
}

// WeeklySeries returns the day buckets in chronological order.
func (s *StatsStore) WeeklySeries() []domain.DayStat {
	return append([]domain.DayStat(nil), s.stats.WeeklyData...)
}

// Snapshot returns a copy of the whole aggregate.
func (s *StatsStore) Snapshot() domain.Stats {
	return cloneStats(s.stats)
}

// successRate rounds 100*known/total half up, matching how the dashboard
// has always displayed it. A zero total yields 0.
func successRate(known, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*known + total) / (2 * total)
}

func cloneStats(s domain.Stats) domain.Stats {
	out := s
	out.WeeklyData = append([]domain.DayStat(nil), s.WeeklyData...)
	return out
}

// statsRecord is the persisted JSON shape. Pointer fields let LoadStats tell
// a missing field apart from a zero value.
type statsRecord struct {
	TodayDate    *string      `json:"todayDate,omitempty"`
	TodayTotal   *int         `json:"todayTotal"`
	TodayKnown   *int         `json:"todayKnown"`
	TodayUnknown *int         `json:"todayUnknown"`
	WeeklyData   *[]dayRecord `json:"weeklyData"`
}

type dayRecord struct {
	Date    *string `json:"date"`
	Total   *int    `json:"total"`
	Known   *int    `json:"known"`
	Unknown *int    `json:"unknown"`
}

// SerializeStats encodes s losslessly.
func SerializeStats(s domain.Stats) ([]byte, error) {
	days := make([]dayRecord, len(s.WeeklyData))
	for i := range s.WeeklyData {
		d := &s.WeeklyData[i]
		days[i] = dayRecord{Date: &d.Date, Total: &d.Total, Known: &d.Known, Unknown: &d.Unknown}
	}
	rec := statsRecord{
		TodayTotal:   &s.TodayTotal,
		TodayKnown:   &s.TodayKnown,
		TodayUnknown: &s.TodayUnknown,
		WeeklyData:   &days,
	}
	if s.TodayDate != "" {
		rec.TodayDate = &s.TodayDate
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode stats: %w", err)
	}
	return data, nil
}

// LoadStats decodes a snapshot written by SerializeStats. Any deviation from
// the expected shape fails with domain.ErrMalformedState and a zero Stats.
func LoadStats(data []byte) (domain.Stats, error) {
	var rec statsRecord
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return domain.Stats{}, fmt.Errorf("%w: decode stats: %v", domain.ErrMalformedState, err)
	}
	if dec.More() {
		return domain.Stats{}, fmt.Errorf("%w: trailing data after stats", domain.ErrMalformedState)
	}

	stats, err := rec.toStats()
	if err != nil {
		return domain.Stats{}, fmt.Errorf("%w: %v", domain.ErrMalformedState, err)
	}
	return stats, nil
}

func (r statsRecord) toStats() (domain.Stats, error) {
	var s domain.Stats

	if r.TodayTotal == nil || r.TodayKnown == nil || r.TodayUnknown == nil {
		return s, fmt.Errorf("missing today counters")
	}
	if r.WeeklyData == nil {
		return s, fmt.Errorf("missing weeklyData")
	}
	if err := checkCounts("today", *r.TodayTotal, *r.TodayKnown, *r.TodayUnknown); err != nil {
		return s, err
	}
	if r.TodayDate != nil {
		if err := checkDateKey(*r.TodayDate); err != nil {
			return s, fmt.Errorf("todayDate: %v", err)
		}
		s.TodayDate = *r.TodayDate
	}
	s.TodayTotal = *r.TodayTotal
	s.TodayKnown = *r.TodayKnown
	s.TodayUnknown = *r.TodayUnknown

	days := *r.WeeklyData
	if len(days) > domain.MaxWeeklyDays {
		return s, fmt.Errorf("weeklyData has %d entries, at most %d allowed", len(days), domain.MaxWeeklyDays)
	}

	seen := make(map[string]bool, len(days))
	for i, d := range days {
		if d.Date == nil || d.Total == nil || d.Known == nil || d.Unknown == nil {
			return domain.Stats{}, fmt.Errorf("weeklyData[%d]: missing field", i)
		}
		if err := checkDateKey(*d.Date); err != nil {
			return domain.Stats{}, fmt.Errorf("weeklyData[%d]: %v", i, err)
		}
		if seen[*d.Date] {
			return domain.Stats{}, fmt.Errorf("weeklyData[%d]: duplicate date %s", i, *d.Date)
		}
		seen[*d.Date] = true
		if err := checkCounts(fmt.Sprintf("weeklyData[%d]", i), *d.Total, *d.Known, *d.Unknown); err != nil {
			return domain.Stats{}, err
		}
		s.WeeklyData = append(s.WeeklyData, domain.DayStat{
			Date:    *d.Date,
			Total:   *d.Total,
			Known:   *d.Known,
			Unknown: *d.Unknown,
		})
	}

	return s, nil
}

func checkCounts(label string, total, known, unknown int) error {
	if total < 0 || known < 0 || unknown < 0 {
		return fmt.Errorf("%s: negative count", label)
	}
	if total != known+unknown {
		return fmt.Errorf("%s: total %d != known %d + unknown %d", label, total, known, unknown)
	}
	return nil
}

func checkDateKey(key string) error {
	t, err := time.Parse(domain.DateKeyLayout, key)
	if err != nil || t.Format(domain.DateKeyLayout) != key {
		return fmt.Errorf("invalid date key %q", key)
	}
	return nil
}
