package handlers

import (
	"log"
	"net/http"

	"github.com/alexandria/journal-server/internal/api/middleware"
	"github.com/alexandria/journal-server/internal/service"
)

type UserHandler struct {
	authService  *service.AuthService
	statsService *service.StatsService
}

func NewUserHandler(authService *service.AuthService, statsService *service.StatsService) *UserHandler {
	return &UserHandler{
		authService:  authService,
		statsService: statsService,
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := pageParams(r)
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	users, err := h.authService.ListUsers(r.Context(), skip, limit)
	if err != nil {
		log.Printf("ERROR [UserHandler.List] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) MyStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	stats, err := h.statsService.UserStats(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR [UserHandler.MyStats] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
