package domain

import "time"

// DateKeyLayout is the layout of calendar day keys ("YYYY-MM-DD").
const DateKeyLayout = "2006-01-02"

// MaxWeeklyDays bounds the number of day buckets kept in Stats.WeeklyData.
const MaxWeeklyDays = 7

// DayStat accumulates review outcomes for one calendar day.
// Total always equals Known + Unknown.
type DayStat struct {
	Date    string
	Total   int
	Known   int
	Unknown int
}

// Stats is the aggregate of all recorded review outcomes.
type Stats struct {
	TodayDate    string // Day the today counters belong to; empty before the first review
	TodayTotal   int
	TodayKnown   int
	TodayUnknown int
	WeeklyData   []DayStat // Chronological, at most MaxWeeklyDays entries
}

// DateKey formats t as a calendar day key in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}
