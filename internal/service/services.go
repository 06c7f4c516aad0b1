package service

import (
	"github.com/alexandria/journal-server/internal/config"
	"github.com/alexandria/journal-server/internal/repository"
)

type Services struct {
	Auth     *AuthService
	Question *QuestionService
	Stats    *StatsService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, notifier Notifier) *Services {
	return &Services{
		Auth:     NewAuthService(repos.User, cfg),
		Question: NewQuestionService(repos.Question, repos.Answer, repos.User, notifier),
		Stats:    NewStatsService(repos.Question, repos.Answer, repos.Stats),
	}
}
