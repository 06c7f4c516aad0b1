package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexandria/journal-server/internal/domain"
	"github.com/alexandria/journal-server/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultListLimit = 100
	maxListLimit     = 100
)

// Notifier pushes best-effort events to connected users. Implementations
// must not block; delivery is never part of a transaction.
type Notifier interface {
	QuestionAsked(recipientID uuid.UUID, question *domain.Question)
	QuestionAnswered(authorID uuid.UUID, question *domain.Question, answer *domain.Answer)
}

type QuestionService struct {
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	userRepo     repository.UserRepository
	notifier     Notifier
}

func NewQuestionService(questionRepo repository.QuestionRepository, answerRepo repository.AnswerRepository, userRepo repository.UserRepository, notifier Notifier) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		userRepo:     userRepo,
		notifier:     notifier,
	}
}

// GetDailyQuestion returns the question the user should answer today: the
// oldest unanswered question addressed to them. Selection never mutates
// state, so re-polling returns the same question until it is answered.
func (s *QuestionService) GetDailyQuestion(ctx context.Context, userID uuid.UUID) (*domain.Question, error) {
	answered, err := s.hasAnsweredToday(ctx, userID)
	if err != nil {
		return nil, err
	}
	if answered {
		return nil, domain.ErrAlreadyAnsweredToday
	}

	question, err := s.questionRepo.OldestUnanswered(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoQuestionPending
		}
		return nil, err
	}
	return question, nil
}

// SubmitAnswer answers the question on behalf of userID. The business
// checks here are the friendly fast path; the authoritative guards are the
// unique indexes and the answered-flag condition inside AnswerRepository.Submit.
func (s *QuestionService) SubmitAnswer(ctx context.Context, userID, questionID uuid.UUID, text string) (*domain.Answer, error) {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, err
	}

	if question.RecipientID != userID {
		return nil, domain.ErrNotRecipient
	}
	if question.IsAnswered {
		return nil, domain.ErrQuestionAnswered
	}

	answered, err := s.hasAnsweredToday(ctx, userID)
	if err != nil {
		return nil, err
	}
	if answered {
		return nil, domain.ErrAlreadyAnsweredToday
	}

	now := time.Now().UTC()
	answer := &domain.Answer{
		ID:         uuid.New(),
		QuestionID: questionID,
		AuthorID:   userID,
		AnsweredOn: datatypes.Date(now),
		Text:       text,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.answerRepo.Submit(ctx, answer); err != nil {
		switch {
		case errors.Is(err, domain.ErrQuestionAnswered):
			return nil, domain.ErrQuestionAnswered
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// The (author_id, answered_on) index lost a same-day race.
			return nil, domain.ErrAlreadyAnsweredToday
		}
		return nil, err
	}

	question.IsAnswered = true
	if s.notifier != nil {
		s.notifier.QuestionAnswered(question.AuthorID, question, answer)
	}

	return answer, nil
}

// AskQuestion creates a direct user-to-user question.
func (s *QuestionService) AskQuestion(ctx context.Context, authorID, recipientID uuid.UUID, text string) (*domain.Question, error) {
	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	question := &domain.Question{
		ID:              uuid.New(),
		AuthorID:        authorID,
		RecipientID:     recipientID,
		Text:            text,
		IsDailyQuestion: false,
		IsAnswered:      false,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.QuestionAsked(recipientID, question)
	}

	return question, nil
}

func (s *QuestionService) ListReceived(ctx context.Context, userID uuid.UUID, skip, limit int) ([]*domain.Question, error) {
	skip, limit = normalizePage(skip, limit)
	return s.questionRepo.ListReceived(ctx, userID, skip, limit)
}

func (s *QuestionService) ListSent(ctx context.Context, userID uuid.UUID, skip, limit int) ([]*domain.Question, error) {
	skip, limit = normalizePage(skip, limit)
	return s.questionRepo.ListSent(ctx, userID, skip, limit)
}

// UpdateAnswer rewrites the answer text. Only the answer's author may do so.
func (s *QuestionService) UpdateAnswer(ctx context.Context, userID, answerID uuid.UUID, text string) (*domain.Answer, error) {
	answer, err := s.answerRepo.GetByID(ctx, answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAnswerNotFound
		}
		return nil, err
	}

	if answer.AuthorID != userID {
		return nil, domain.ErrNotAnswerAuthor
	}

	answer.Text = text
	answer.UpdatedAt = time.Now().UTC()
	if err := s.answerRepo.Update(ctx, answer); err != nil {
		return nil, err
	}

	return answer, nil
}

func (s *QuestionService) hasAnsweredToday(ctx context.Context, userID uuid.UUID) (bool, error) {
	_, err := s.answerRepo.GetByAuthorAndDate(ctx, userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	return skip, limit
}
