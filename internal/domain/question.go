package domain

import (
	"time"

	"github.com/google/uuid"
)

type Question struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	AuthorID        uuid.UUID `json:"author_id" gorm:"type:uuid;not null;index"`
	RecipientID     uuid.UUID `json:"recipient_id" gorm:"type:uuid;not null;index"`
	Text            string    `json:"text" gorm:"not null"`
	IsDailyQuestion bool      `json:"is_daily_question" gorm:"not null;default:false"`
	IsAnswered      bool      `json:"is_answered" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"created_at"`

	Author    *User    `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Recipient *User    `json:"-" gorm:"foreignKey:RecipientID"`
	Answers   []Answer `json:"-" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}
