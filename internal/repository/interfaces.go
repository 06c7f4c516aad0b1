package repository

import (
	"context"
	"time"

	"github.com/alexandria/journal-server/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
}

type QuestionRepository interface {
	Create(ctx context.Context, question *domain.Question) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	// OldestUnanswered returns the oldest question addressed to the
	// recipient that has no answer yet, ordered by created_at then id.
	OldestUnanswered(ctx context.Context, recipientID uuid.UUID) (*domain.Question, error)
	ListReceived(ctx context.Context, recipientID uuid.UUID, offset, limit int) ([]*domain.Question, error)
	ListSent(ctx context.Context, authorID uuid.UUID, offset, limit int) ([]*domain.Question, error)
	CountAskedBy(ctx context.Context, authorID uuid.UUID) (int64, error)
}

type AnswerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Answer, error)
	// GetByAuthorAndDate reports whether the author already has an answer
	// recorded for the given UTC calendar day.
	GetByAuthorAndDate(ctx context.Context, authorID uuid.UUID, day time.Time) (*domain.Answer, error)
	// Submit atomically creates the answer and marks its question answered.
	Submit(ctx context.Context, answer *domain.Answer) error
	Update(ctx context.Context, answer *domain.Answer) error
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
}

// StatsRepository serves the read-only interaction rollups.
type StatsRepository interface {
	// TopCounterparts groups the user's questions by the other party.
	// Direction "asked" groups sent questions by recipient, "received"
	// groups received questions by author. Ordered by count descending,
	// counterpart id ascending on ties.
	TopCounterparts(ctx context.Context, userID uuid.UUID, direction string, n int) ([]domain.CounterpartStat, error)
}

type Repositories struct {
	User     UserRepository
	Question QuestionRepository
	Answer   AnswerRepository
	Stats    StatsRepository
}
