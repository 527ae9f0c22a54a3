package service

import (
	"time"

	"github.com/msomdec/rewise/internal/domain"
)

// Dashboard is everything the statistics page renders.
type Dashboard struct {
	TodayTotal     int
	TodayKnown     int
	TodayUnknown   int
	SuccessRate    int // Whole percent of known cards today
	Weekly         []ChartPoint
	KnownShare     int // Distribution of today's outcomes, percent
	UnknownShare   int
	CurrentStreak  int // Consecutive study days ending today or yesterday
	LongestStreak  int // Longest run of consecutive days in the weekly series
	ReviewedInWeek int
}

// ChartPoint is one bar of the weekly performance chart.
type ChartPoint struct {
	Date    string
	Label   string // Short weekday, e.g. "Mon"
	Total   int
	Known   int
	Unknown int
}

// CompletionSummary is shown when a session finishes.
type CompletionSummary struct {
	Total       int
	Known       int
	Unknown     int
	SuccessRate int
	Feedback    string
}

const (
	FeedbackExcellent = "Excellent! Keep up the good work!"
	FeedbackGood      = "Good progress! Review the cards you missed."
	FeedbackPractice  = "Keep practicing! You'll improve with repetition."
)

// ComputeDashboard derives the statistics page from a stats snapshot.
// today is the current date key.
func ComputeDashboard(stats domain.Stats, today string) Dashboard {
	stats = StatsForDay(stats, today)
	d := Dashboard{
		TodayTotal:   stats.TodayTotal,
		TodayKnown:   stats.TodayKnown,
		TodayUnknown: stats.TodayUnknown,
		SuccessRate:  successRate(stats.TodayKnown, stats.TodayTotal),
	}

	if d.TodayTotal > 0 {
		d.KnownShare = d.SuccessRate
		d.UnknownShare = 100 - d.KnownShare
	}

	d.Weekly = make([]ChartPoint, len(stats.WeeklyData))
	for i, day := range stats.WeeklyData {
		d.Weekly[i] = ChartPoint{
			Date:    day.Date,
			Label:   weekdayLabel(day.Date),
			Total:   day.Total,
			Known:   day.Known,
			Unknown: day.Unknown,
		}
		d.ReviewedInWeek += day.Total
	}

	d.CurrentStreak, d.LongestStreak = calculateStreaks(stats.WeeklyData, today)
	return d
}

// StatsForDay returns stats as seen on day today: counters dated to any
// other day are zeroed and re-dated. Day buckets are untouched.
func StatsForDay(stats domain.Stats, today string) domain.Stats {
	if stats.TodayDate == "" || stats.TodayDate == today {
		return stats
	}
	stats.TodayDate = today
	stats.TodayTotal, stats.TodayKnown, stats.TodayUnknown = 0, 0, 0
	return stats
}

// Summarize builds the completion card from a stats snapshot.
func Summarize(stats domain.Stats) CompletionSummary {
	rate := successRate(stats.TodayKnown, stats.TodayTotal)
	return CompletionSummary{
		Total:       stats.TodayTotal,
		Known:       stats.TodayKnown,
		Unknown:     stats.TodayUnknown,
		SuccessRate: rate,
		Feedback:    feedbackFor(rate),
	}
}

func feedbackFor(rate int) string {
	switch {
	case rate >= 80:
		return FeedbackExcellent
	case rate >= 60:
		return FeedbackGood
	default:
		return FeedbackPractice
	}
}

func weekdayLabel(dateKey string) string {
	t, err := time.Parse(domain.DateKeyLayout, dateKey)
	if err != nil {
		return dateKey
	}
	return t.Weekday().String()[:3]
}

// calculateStreaks counts runs of consecutive days that have at least one
// review. The current streak is zero unless the newest studied day is today
// or yesterday.
func calculateStreaks(days []domain.DayStat, today string) (current, longest int) {
	var (
		run  int
		prev time.Time
		last time.Time
	)
	for _, day := range days {
		if day.Total == 0 {
			continue
		}
		t, err := time.Parse(domain.DateKeyLayout, day.Date)
		if err != nil {
			continue
		}
		if run > 0 && t.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
		prev, last = t, t
	}
	if run == 0 {
		return 0, 0
	}

	now, err := time.Parse(domain.DateKeyLayout, today)
	if err != nil {
		return 0, longest
	}
	if gap := now.Sub(last); gap == 0 || gap == 24*time.Hour {
		current = run
	}
	return current, longest
}
