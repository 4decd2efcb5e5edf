package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-queue/internal/logger"
	"github.com/sbilibin2017/gw-token-queue/internal/models"
	"github.com/segmentio/kafka-go"
)

var (
	// ErrEmptyTokenName is returned when a token is enqueued with an empty name.
	ErrEmptyTokenName = errors.New("token name must not be empty")
	// ErrQueueNotFound is returned when an operation references a queue that is not registered.
	ErrQueueNotFound = errors.New("queue not found")
	// ErrTokenNotFound is returned when an operation references a token that does not exist.
	ErrTokenNotFound = errors.New("token not found")
	// ErrTokenNotWaiting is returned when a cancel targets a token that already left the waiting state.
	ErrTokenNotWaiting = errors.New("token is not waiting")
	// ErrQueueEmpty is returned when an assignment finds no waiting tokens. Expected, not a failure.
	ErrQueueEmpty = errors.New("no waiting tokens in queue")
)

// TokenWriter defines the token ledger's mutating operations.
type TokenWriter interface {
	Save(ctx context.Context, queueID uuid.UUID, name string) (*models.TokenDB, error)
	AssignNext(ctx context.Context, queueID uuid.UUID) (*models.TokenDB, error)
	Cancel(ctx context.Context, tokenID uuid.UUID) (*models.TokenDB, error)
}

// TokenReader defines read-only operations for tokens.
type TokenReader interface {
	ListWaiting(ctx context.Context, queueID uuid.UUID) ([]models.TokenDB, error)
	GetByID(ctx context.Context, tokenID uuid.UUID) (*models.TokenDB, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// TokenService owns the token lifecycle: enqueueing, listing, assignment
// and cancellation, plus Kafka audit events for every mutation.
type TokenService struct {
	writeRepo   TokenWriter
	readRepo    TokenReader
	queueReader QueueReader
	kafkaWriter KafkaWriter
}

// NewTokenService creates a new TokenService.
func NewTokenService(
	writeRepo TokenWriter,
	readRepo TokenReader,
	queueReader QueueReader,
	kafkaWriter KafkaWriter,
) *TokenService {
	return &TokenService{
		writeRepo:   writeRepo,
		readRepo:    readRepo,
		queueReader: queueReader,
		kafkaWriter: kafkaWriter,
	}
}

// publishEvent publishes a token lifecycle event to Kafka.
func (s *TokenService) publishEvent(ctx context.Context, eventType string, token *models.TokenDB) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "token_id", token.TokenID)
		return
	}

	event := models.TokenEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		TokenID:   token.TokenID.String(),
		QueueID:   token.QueueID.String(),
		Seq:       token.Seq,
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal token event for Kafka", "token_id", token.TokenID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.TokenID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish token event to Kafka", "token_id", token.TokenID, "error", err)
	} else {
		logger.Log.Infow("Token event published to Kafka", "token_id", token.TokenID, "type", eventType)
	}
}

// Enqueue appends a waiting token to the queue and publishes the event.
func (s *TokenService) Enqueue(ctx context.Context, queueID uuid.UUID, name string) (*models.TokenDB, error) {
	if name == "" {
		return nil, ErrEmptyTokenName
	}

	exists, err := s.queueReader.Exists(ctx, queueID)
	if err != nil {
		logger.Log.Errorw("failed to check queue exists", "queueID", queueID, "error", err)
		return nil, err
	}
	if !exists {
		return nil, ErrQueueNotFound
	}

	token, err := s.writeRepo.Save(ctx, queueID, name)
	if err != nil {
		logger.Log.Errorw("failed to save token", "queueID", queueID, "name", name, "error", err)
		return nil, err
	}

	s.publishEvent(ctx, models.EventEnqueued, token)

	return token, nil
}

// ListWaiting returns the queue's waiting tokens oldest-first.
func (s *TokenService) ListWaiting(ctx context.Context, queueID uuid.UUID) ([]models.TokenDB, error) {
	exists, err := s.queueReader.Exists(ctx, queueID)
	if err != nil {
		logger.Log.Errorw("failed to check queue exists", "queueID", queueID, "error", err)
		return nil, err
	}
	if !exists {
		return nil, ErrQueueNotFound
	}

	tokens, err := s.readRepo.ListWaiting(ctx, queueID)
	if err != nil {
		logger.Log.Errorw("failed to list waiting tokens", "queueID", queueID, "error", err)
		return nil, err
	}

	return tokens, nil
}

// AssignNext atomically promotes the oldest waiting token of the queue
// to assigned. Returns ErrQueueEmpty when the queue exists but holds no
// waiting tokens.
func (s *TokenService) AssignNext(ctx context.Context, queueID uuid.UUID) (*models.TokenDB, error) {
	exists, err := s.queueReader.Exists(ctx, queueID)
	if err != nil {
		logger.Log.Errorw("failed to check queue exists", "queueID", queueID, "error", err)
		return nil, err
	}
	if !exists {
		return nil, ErrQueueNotFound
	}

	token, err := s.writeRepo.AssignNext(ctx, queueID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrQueueEmpty
	}
	if err != nil {
		logger.Log.Errorw("failed to assign next token", "queueID", queueID, "error", err)
		return nil, err
	}

	s.publishEvent(ctx, models.EventAssigned, token)

	return token, nil
}

// Cancel transitions a waiting token to cancelled. A token that already
// left the waiting state is rejected with ErrTokenNotWaiting; a missing
// token with ErrTokenNotFound.
func (s *TokenService) Cancel(ctx context.Context, tokenID uuid.UUID) (*models.TokenDB, error) {
	token, err := s.writeRepo.Cancel(ctx, tokenID)
	if errors.Is(err, sql.ErrNoRows) {
		existing, getErr := s.readRepo.GetByID(ctx, tokenID)
		if getErr != nil {
			logger.Log.Errorw("failed to get token", "tokenID", tokenID, "error", getErr)
			return nil, getErr
		}
		if existing == nil {
			return nil, ErrTokenNotFound
		}
		return nil, ErrTokenNotWaiting
	}
	if err != nil {
		logger.Log.Errorw("failed to cancel token", "tokenID", tokenID, "error", err)
		return nil, err
	}

	s.publishEvent(ctx, models.EventCancelled, token)

	return token, nil
}
