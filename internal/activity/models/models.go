// Package models holds the practice-activity domain types and the request and
// response shapes of the activity API.
package models

import "time"

// PracticeEvent is an append-only fact: one completed practice interaction.
// practiced_at is assigned by the store at insert time and never updated.
type PracticeEvent struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"userId"`
	SentenceID  int64     `db:"sentence_id" json:"sentenceId"`
	PracticedAt time.Time `db:"practiced_at" json:"practicedAt"`
	Score       *float64  `db:"score" json:"score,omitempty"`
	Transcript  *string   `db:"transcript" json:"transcript,omitempty"`
}

// Defaults applied when history enrichment meets nullable sentence fields.
const (
	DefaultDifficulty    = "medium"
	DefaultCategoryColor = "#3b82f6"
)

// DayCount is one entry of the daily-counts view.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// HistoryRecord is a practice event enriched with its sentence and category
// for the history pager.
type HistoryRecord struct {
	ID            int64     `json:"id"`
	SentenceID    int64     `json:"sentenceId"`
	PracticedAt   time.Time `json:"practicedAt"`
	Score         *float64  `json:"score,omitempty"`
	Transcript    *string   `json:"transcript,omitempty"`
	Text          string    `json:"text"`
	Translation   string    `json:"translation"`
	Difficulty    string    `json:"difficulty"`
	CategoryName  string    `json:"categoryName,omitempty"`
	CategoryColor string    `json:"categoryColor"`
}

// HistoryPage is one UTC-day bucket of the reverse-chronological history,
// plus whether older pages exist.
type HistoryPage struct {
	Date    string          `json:"date"`
	Records []HistoryRecord `json:"records"`
	HasMore bool            `json:"hasMore"`
}

// LogEventsRequest is the batch-insert payload.
type LogEventsRequest struct {
	SentenceIDs []int64 `json:"sentenceIds"`
}

// LogEventsResponse reports how many events were inserted.
type LogEventsResponse struct {
	Logged int `json:"logged"`
}

// CalendarResponse lists the distinct local dates with activity in a month.
type CalendarResponse struct {
	Dates []string `json:"dates"`
}

// DailyCountsResponse carries exactly 21 zero-filled day counts, oldest first.
type DailyCountsResponse struct {
	Data []DayCount `json:"data"`
}

// StatusResponse reports practice recency for the authenticated user.
type StatusResponse struct {
	LastPracticedAt *time.Time `json:"lastPracticedAt"`
	TodayCount      int        `json:"todayCount"`
}
