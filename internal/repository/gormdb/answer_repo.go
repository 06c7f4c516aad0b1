package gormdb

import (
	"context"
	"time"

	"github.com/alexandria/journal-server/internal/domain"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *answerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Answer, error) {
	var answer domain.Answer
	err := r.db.WithContext(ctx).First(&answer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) GetByAuthorAndDate(ctx context.Context, authorID uuid.UUID, day time.Time) (*domain.Answer, error) {
	var answer domain.Answer
	err := r.db.WithContext(ctx).
		First(&answer, "author_id = ? AND answered_on = ?", authorID, datatypes.Date(day)).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// Submit records the answer and flips its question to answered in one
// transaction. The question update is guarded on is_answered = false, so a
// concurrent submission loses with domain.ErrQuestionAnswered; a violation
// of the (author_id, answered_on) unique index surfaces as
// gorm.ErrDuplicatedKey.
func (r *answerRepository) Submit(ctx context.Context, answer *domain.Answer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Question{}).
			Where("id = ? AND is_answered = ?", answer.QuestionID, false).
			Update("is_answered", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrQuestionAnswered
		}

		return tx.Create(answer).Error
	})
}

func (r *answerRepository) Update(ctx context.Context, answer *domain.Answer) error {
	return r.db.WithContext(ctx).Save(answer).Error
}

func (r *answerRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Answer{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}
