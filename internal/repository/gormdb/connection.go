package gormdb

import (
	"strings"

	"github.com/alexandria/journal-server/internal/domain"
	"github.com/alexandria/journal-server/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewConnection opens the database behind databaseURL. Postgres DSNs are
// used as-is; a "sqlite://" URL (the local development default) opens a
// file-backed SQLite database instead.
func NewConnection(databaseURL string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// Surface unique-index violations as gorm.ErrDuplicatedKey so the
		// daily-limit and one-answer-per-question constraints can be
		// converted to business conflicts.
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	if path, ok := strings.CutPrefix(databaseURL, "sqlite://"); ok {
		db, err = gorm.Open(sqlite.Open(path), cfg)
	} else {
		db, err = gorm.Open(postgres.Open(databaseURL), cfg)
	}
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema for all persisted entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Question{},
		&domain.Answer{},
	)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:     NewUserRepository(db),
		Question: NewQuestionRepository(db),
		Answer:   NewAnswerRepository(db),
		Stats:    NewStatsRepository(db),
	}
}
