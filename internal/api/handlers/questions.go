package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/alexandria/journal-server/internal/api/middleware"
	"github.com/alexandria/journal-server/internal/domain"
	"github.com/alexandria/journal-server/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type QuestionHandler struct {
	questionService *service.QuestionService
	validate        *validator.Validate
}

func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		validate:        validator.New(),
	}
}

type AskQuestionRequest struct {
	Text string `json:"text" validate:"required"`
}

type AnswerRequest struct {
	Text string `json:"text" validate:"required"`
}

// Daily returns the question the caller should answer today. Both "nothing
// pending" and "already answered today" report 404, distinguished only by
// the message.
func (h *QuestionHandler) Daily(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	question, err := h.questionService.GetDailyQuestion(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyAnsweredToday):
			http.Error(w, "You have already answered today's question", http.StatusNotFound)
		case errors.Is(err, domain.ErrNoQuestionPending):
			http.Error(w, "No questions available", http.StatusNotFound)
		default:
			log.Printf("ERROR [QuestionHandler.Daily] %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, question)
}

func (h *QuestionHandler) AnswerDaily(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	questionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Question not found", http.StatusNotFound)
		return
	}

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, validationMessage(err), http.StatusUnprocessableEntity)
		return
	}

	answer, err := h.questionService.SubmitAnswer(r.Context(), userID, questionID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrQuestionNotFound):
			http.Error(w, "Question not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrNotRecipient):
			http.Error(w, "Not authorized to answer this question", http.StatusForbidden)
		case errors.Is(err, domain.ErrQuestionAnswered):
			http.Error(w, "This question has already been answered", http.StatusBadRequest)
		case errors.Is(err, domain.ErrAlreadyAnsweredToday):
			http.Error(w, "You have already answered a question today", http.StatusBadRequest)
		default:
			log.Printf("ERROR [QuestionHandler.AnswerDaily] %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

func (h *QuestionHandler) Ask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	recipientID, err := uuid.Parse(chi.URLParam(r, "recipientId"))
	if err != nil {
		http.Error(w, "Recipient not found", http.StatusNotFound)
		return
	}

	var req AskQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, validationMessage(err), http.StatusUnprocessableEntity)
		return
	}

	question, err := h.questionService.AskQuestion(r.Context(), userID, recipientID, req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, "Recipient not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [QuestionHandler.Ask] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, question)
}

func (h *QuestionHandler) Received(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.questionService.ListReceived, "QuestionHandler.Received")
}

func (h *QuestionHandler) Sent(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.questionService.ListSent, "QuestionHandler.Sent")
}

func (h *QuestionHandler) list(w http.ResponseWriter, r *http.Request, fetch func(ctx context.Context, userID uuid.UUID, skip, limit int) ([]*domain.Question, error), component string) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	skip, limit := pageParams(r)
	questions, err := fetch(r.Context(), userID, skip, limit)
	if err != nil {
		log.Printf("ERROR [%s] %v", component, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, questions)
}
