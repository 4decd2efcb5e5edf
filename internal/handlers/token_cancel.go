package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-queue/internal/logger"
	"github.com/sbilibin2017/gw-token-queue/internal/models"
	"github.com/sbilibin2017/gw-token-queue/internal/services"
)

// Canceler defines the interface that the token service must implement.
type Canceler interface {
	Cancel(ctx context.Context, tokenID uuid.UUID) (*models.TokenDB, error)
}

// NewCancelTokenHandler returns an HTTP handler that cancels a waiting token.
// @Summary Cancel a token
// @Description Transitions a waiting token to cancelled. Assigned or already-cancelled tokens are rejected.
// @Tags tokens
// @Produce json
// @Param id path string true "Token ID"
// @Success 200 {object} handlers.TokenResponse "Cancelled token"
// @Failure 400 {object} handlers.ErrorResponse "Invalid token id"
// @Failure 404 {object} handlers.ErrorResponse "Token not found"
// @Failure 409 {object} handlers.ErrorResponse "Token is not waiting"
// @Security BearerAuth
// @Router /tokens/{id} [delete]
func NewCancelTokenHandler(svc Canceler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "invalid token id"})
			return
		}

		token, err := svc.Cancel(r.Context(), tokenID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTokenNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Token not found"})
			case errors.Is(err, services.ErrTokenNotWaiting):
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Token is not waiting"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(TokenResponse{Success: true, Token: token})
	}
}
