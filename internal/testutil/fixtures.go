package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/alexandria/journal-server/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	password string
	fullName string
	active   bool
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:    fmt.Sprintf("user_%s@example.com", uuid.New().String()[:8]),
		password: "testpassword123",
		fullName: "Test User",
		active:   true,
	}
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) WithFullName(name string) *UserBuilder {
	b.fullName = name
	return b
}

func (b *UserBuilder) Inactive() *UserBuilder {
	b.active = false
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		FullName:     b.fullName,
		IsActive:     b.active,
		CreatedAt:    time.Now().UTC(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// TokenResponse matches the API token response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// BuildAndAuthenticate creates a user via the API and logs them in,
// returning the user and a bearer token.
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	regBody, _ := json.Marshal(map[string]string{
		"email":     b.email,
		"password":  b.password,
		"full_name": b.fullName,
	})

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(regBody))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected register status code: %d", resp.StatusCode)
	}

	var user domain.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}

	loginBody, _ := json.Marshal(map[string]string{
		"email":    b.email,
		"password": b.password,
	})

	loginResp, err := http.Post(ts.APIURL("/auth/token"), "application/json", bytes.NewBuffer(loginBody))
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	defer loginResp.Body.Close()

	if loginResp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status code: %d", loginResp.StatusCode)
	}

	var token TokenResponse
	if err := json.NewDecoder(loginResp.Body).Decode(&token); err != nil {
		t.Fatalf("failed to decode token response: %v", err)
	}

	return &user, token.AccessToken
}

// QuestionBuilder creates test questions with a builder pattern
type QuestionBuilder struct {
	authorID    uuid.UUID
	recipientID uuid.UUID
	text        string
	answered    bool
	createdAt   time.Time
}

func NewQuestionBuilder(authorID, recipientID uuid.UUID) *QuestionBuilder {
	return &QuestionBuilder{
		authorID:    authorID,
		recipientID: recipientID,
		text:        "What's on your mind today?",
		createdAt:   time.Now().UTC(),
	}
}

func (b *QuestionBuilder) WithText(text string) *QuestionBuilder {
	b.text = text
	return b
}

func (b *QuestionBuilder) Answered() *QuestionBuilder {
	b.answered = true
	return b
}

func (b *QuestionBuilder) WithCreatedAt(at time.Time) *QuestionBuilder {
	b.createdAt = at
	return b
}

func (b *QuestionBuilder) Build(t *testing.T, db *gorm.DB) *domain.Question {
	t.Helper()

	question := &domain.Question{
		ID:          uuid.New(),
		AuthorID:    b.authorID,
		RecipientID: b.recipientID,
		Text:        b.text,
		IsAnswered:  b.answered,
		CreatedAt:   b.createdAt,
	}

	if err := db.Create(question).Error; err != nil {
		t.Fatalf("failed to create question: %v", err)
	}

	return question
}

// CreateAnswer inserts an answer row directly, bypassing the workflow.
// Useful for seeding "already answered today" states.
func CreateAnswer(t *testing.T, db *gorm.DB, questionID, authorID uuid.UUID, day time.Time) *domain.Answer {
	t.Helper()

	answer := &domain.Answer{
		ID:         uuid.New(),
		QuestionID: questionID,
		AuthorID:   authorID,
		AnsweredOn: datatypes.Date(day),
		Text:       "seeded answer",
		CreatedAt:  day,
		UpdatedAt:  day,
	}

	if err := db.Create(answer).Error; err != nil {
		t.Fatalf("failed to create answer: %v", err)
	}

	return answer
}
