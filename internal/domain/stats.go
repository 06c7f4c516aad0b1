package domain

import "github.com/google/uuid"

// CounterpartStat is one row of the top-counterpart rollup.
type CounterpartStat struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Count  int64     `json:"count"`
}

type UserStats struct {
	QuestionsAsked    int64             `json:"questions_asked"`
	QuestionsAnswered int64             `json:"questions_answered"`
	TopAsked          []CounterpartStat `json:"top_asked"`
	TopReceived       []CounterpartStat `json:"top_received"`
}
