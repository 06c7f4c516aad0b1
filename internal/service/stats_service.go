package service

import (
	"context"

	"github.com/alexandria/journal-server/internal/domain"
	"github.com/alexandria/journal-server/internal/repository"
	"github.com/google/uuid"
)

const topCounterpartLimit = 3

// StatsService computes the read-only interaction rollups. No state
// transitions happen here.
type StatsService struct {
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	statsRepo    repository.StatsRepository
}

func NewStatsService(questionRepo repository.QuestionRepository, answerRepo repository.AnswerRepository, statsRepo repository.StatsRepository) *StatsService {
	return &StatsService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		statsRepo:    statsRepo,
	}
}

func (s *StatsService) UserStats(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	asked, err := s.questionRepo.CountAskedBy(ctx, userID)
	if err != nil {
		return nil, err
	}

	answered, err := s.answerRepo.CountByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	topAsked, err := s.statsRepo.TopCounterparts(ctx, userID, "asked", topCounterpartLimit)
	if err != nil {
		return nil, err
	}

	topReceived, err := s.statsRepo.TopCounterparts(ctx, userID, "received", topCounterpartLimit)
	if err != nil {
		return nil, err
	}

	return &domain.UserStats{
		QuestionsAsked:    asked,
		QuestionsAnswered: answered,
		TopAsked:          topAsked,
		TopReceived:       topReceived,
	}, nil
}
