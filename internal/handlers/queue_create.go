package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-token-queue/internal/logger"
	"github.com/sbilibin2017/gw-token-queue/internal/models"
	"github.com/sbilibin2017/gw-token-queue/internal/services"
)

// QueueCreator defines the interface that the queue service must implement.
type QueueCreator interface {
	Create(ctx context.Context, name string) (*models.QueueDB, error)
}

// CreateQueueRequest represents the JSON body for queue creation
// swagger:model CreateQueueRequest
type CreateQueueRequest struct {
	// Queue name
	// required: true
	// default: Clinic
	Name string `json:"name"`
}

// CreateQueueResponse represents a successful queue creation response
// swagger:model CreateQueueResponse
type CreateQueueResponse struct {
	Success bool            `json:"success"`
	Queue   *models.QueueDB `json:"queue"`
}

// NewCreateQueueHandler returns an HTTP handler for queue creation.
// @Summary Create a queue
// @Description Registers a new named waiting line. Names are not unique.
// @Tags queues
// @Accept json
// @Produce json
// @Param createQueueRequest body handlers.CreateQueueRequest true "Queue creation request"
// @Success 201 {object} handlers.CreateQueueResponse "Queue created"
// @Failure 400 {object} handlers.ErrorResponse "Empty queue name"
// @Security BearerAuth
// @Router /queues [post]
func NewCreateQueueHandler(svc QueueCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateQueueRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "invalid request body"})
			return
		}

		queue, err := svc.Create(r.Context(), req.Name)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmptyQueueName):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Queue name must not be empty"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CreateQueueResponse{Success: true, Queue: queue})
	}
}
