package handlers

import (
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

type AnswerHandler struct {
	questionService *service.QuestionService
	validate        *validator.Validate
}

func NewAnswerHandler(questionService *service.QuestionService) *AnswerHandler {
	return &AnswerHandler{
		questionService: questionService,
		validate:        validator.New(),
	}
}

// Update rewrites an answer's text. Only the answer's author may edit it.
func (h *AnswerHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	answerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Answer not found", http.StatusNotFound)
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

	answer, err := h.questionService.UpdateAnswer(r.Context(), userID, answerID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAnswerNotFound):
			http.Error(w, "Answer not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrNotAnswerAuthor):
			http.Error(w, "Not authorized to edit this answer", http.StatusForbidden)
		default:
			log.Printf("ERROR [AnswerHandler.Update] %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, answer)
}
