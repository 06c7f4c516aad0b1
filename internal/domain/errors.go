package domain

import "errors"

// Auth errors
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInactiveUser       = errors.New("inactive user")
	ErrUserNotFound       = errors.New("user not found")
)

// Question/answer workflow errors
var (
	ErrQuestionNotFound     = errors.New("question not found")
	ErrNoQuestionPending    = errors.New("no questions available")
	ErrNotRecipient         = errors.New("not authorized to answer this question")
	ErrQuestionAnswered     = errors.New("this question has already been answered")
	ErrAlreadyAnsweredToday = errors.New("already answered a question today")
	ErrAnswerNotFound       = errors.New("answer not found")
	ErrNotAnswerAuthor      = errors.New("not authorized to edit this answer")
)
