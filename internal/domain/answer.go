package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Answer is the single answer bound to a question. QuestionID carries a
// unique index so a question can never collect a second answer, and
// (AuthorID, AnsweredOn) carries a composite unique index enforcing the
// one-answer-per-user-per-day rule at the store level.
type Answer struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	QuestionID uuid.UUID      `json:"question_id" gorm:"type:uuid;not null;uniqueIndex"`
	AuthorID   uuid.UUID      `json:"author_id" gorm:"type:uuid;not null;uniqueIndex:idx_answers_author_day"`
	AnsweredOn datatypes.Date `json:"answered_on" gorm:"not null;uniqueIndex:idx_answers_author_day"`
	Text       string         `json:"text" gorm:"not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
