package gormdb

import (
	"context"

	"github.com/alexandria/journal-server/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *questionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *domain.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *questionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	var question domain.Question
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&question, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) OldestUnanswered(ctx context.Context, recipientID uuid.UUID) (*domain.Question, error) {
	var question domain.Question
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("recipient_id = ? AND is_answered = ?", recipientID, false).
		Order("created_at ASC, id ASC").
		First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) ListReceived(ctx context.Context, recipientID uuid.UUID, offset, limit int) ([]*domain.Question, error) {
	return r.list(ctx, "recipient_id = ?", recipientID, offset, limit)
}

func (r *questionRepository) ListSent(ctx context.Context, authorID uuid.UUID, offset, limit int) ([]*domain.Question, error) {
	return r.list(ctx, "author_id = ?", authorID, offset, limit)
}

func (r *questionRepository) list(ctx context.Context, cond string, userID uuid.UUID, offset, limit int) ([]*domain.Question, error) {
	var questions []*domain.Question
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where(cond, userID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) CountAskedBy(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Question{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}
