package handler

import (
	"github.com/msomdec/rewise/internal/domain"
)

// CardDTO is the JSON representation of a flashcard.
type CardDTO struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func toCardDTO(c domain.Flashcard) CardDTO {
	return CardDTO{ID: c.ID, Question: c.Question, Answer: c.Answer}
}

func toCardDTOs(cards []domain.Flashcard) []CardDTO {
	dtos := make([]CardDTO, len(cards))
	for i, c := range cards {
		dtos[i] = toCardDTO(c)
	}
	return dtos
}

// SessionDTO is the JSON representation of the study session. Card is nil
// once the session is complete.
type SessionDTO struct {
	RunID    string   `json:"runId"`
	Cursor   int      `json:"cursor"`
	Total    int      `json:"total"`
	Complete bool     `json:"complete"`
	Status   string   `json:"status"`
	Card     *CardDTO `json:"card"`
}

func toSessionDTO(s domain.SessionState, card *domain.Flashcard) SessionDTO {
	dto := SessionDTO{
		RunID:    s.RunID,
		Cursor:   s.Cursor,
		Total:    s.Total,
		Complete: s.Complete,
		Status:   s.Status(),
	}
	if card != nil {
		c := toCardDTO(*card)
		dto.Card = &c
	}
	return dto
}

// DayStatDTO is the JSON representation of one day of reviews.
type DayStatDTO struct {
	Date    string `json:"date"`
	Total   int    `json:"total"`
	Known   int    `json:"known"`
	Unknown int    `json:"unknown"`
}

// StatsDTO is the JSON representation of the review statistics.
type StatsDTO struct {
	TodayDate    string       `json:"todayDate"`
	TodayTotal   int          `json:"todayTotal"`
	TodayKnown   int          `json:"todayKnown"`
	TodayUnknown int          `json:"todayUnknown"`
	SuccessRate  int          `json:"successRate"`
	WeeklyData   []DayStatDTO `json:"weeklyData"`
}

func toStatsDTO(s domain.Stats, successRate int) StatsDTO {
	days := make([]DayStatDTO, len(s.WeeklyData))
	for i, d := range s.WeeklyData {
		days[i] = DayStatDTO{Date: d.Date, Total: d.Total, Known: d.Known, Unknown: d.Unknown}
	}
	return StatsDTO{
		TodayDate:    s.TodayDate,
		TodayTotal:   s.TodayTotal,
		TodayKnown:   s.TodayKnown,
		TodayUnknown: s.TodayUnknown,
		SuccessRate:  successRate,
		WeeklyData:   days,
	}
}

// OutcomeRequest is the body of POST /api/session/outcome.
type OutcomeRequest struct {
	Known *bool `json:"known"`
}
