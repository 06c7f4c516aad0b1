package gormdb

import (
	"context"
	"fmt"

	"github.com/alexandria/journal-server/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *statsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) TopCounterparts(ctx context.Context, userID uuid.UUID, direction string, n int) ([]domain.CounterpartStat, error) {
	var ownCol, otherCol string
	switch direction {
	case "asked":
		ownCol, otherCol = "author_id", "recipient_id"
	case "received":
		ownCol, otherCol = "recipient_id", "author_id"
	default:
		return nil, fmt.Errorf("unknown direction %q", direction)
	}

	var stats []domain.CounterpartStat
	err := r.db.WithContext(ctx).
		Model(&domain.Question{}).
		Select("users.id AS user_id, users.full_name AS name, COUNT(*) AS count").
		Joins(fmt.Sprintf("JOIN users ON users.id = questions.%s", otherCol)).
		Where(fmt.Sprintf("questions.%s = ?", ownCol), userID).
		Group("users.id, users.full_name").
		// Ties broken by counterpart id for a deterministic ordering.
		Order("count DESC, user_id ASC").
		Limit(n).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
