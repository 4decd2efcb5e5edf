package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-queue/internal/logger"
	"github.com/sbilibin2017/gw-token-queue/internal/models"
)

var (
	// ErrEmptyQueueName is returned when a queue is created with an empty name.
	ErrEmptyQueueName = errors.New("queue name must not be empty")
)

// QueueWriter defines write operations for queues.
type QueueWriter interface {
	Save(ctx context.Context, name string) (*models.QueueDB, error)
}

// QueueReader defines read-only operations for queues.
type QueueReader interface {
	List(ctx context.Context) ([]models.QueueDB, error)
	Exists(ctx context.Context, queueID uuid.UUID) (bool, error)
}

// QueueCache caches the immutable queue list.
type QueueCache interface {
	Get(ctx context.Context) ([]models.QueueDB, error)
	Set(ctx context.Context, queues []models.QueueDB) error
	Invalidate(ctx context.Context) error
}

// QueueService registers and lists queues.
type QueueService struct {
	writer QueueWriter
	reader QueueReader
	cache  QueueCache
}

// NewQueueService creates a new QueueService.
func NewQueueService(writer QueueWriter, reader QueueReader, cache QueueCache) *QueueService {
	return &QueueService{
		writer: writer,
		reader: reader,
		cache:  cache,
	}
}

// Create registers a new queue.
func (s *QueueService) Create(ctx context.Context, name string) (*models.QueueDB, error) {
	if name == "" {
		return nil, ErrEmptyQueueName
	}

	queue, err := s.writer.Save(ctx, name)
	if err != nil {
		logger.Log.Errorw("failed to save queue", "name", name, "error", err)
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			logger.Log.Errorw("failed to invalidate queue cache", "error", err)
		}
	}

	return queue, nil
}

// List returns all queues, serving from the cache when possible.
func (s *QueueService) List(ctx context.Context) ([]models.QueueDB, error) {
	if s.cache != nil {
		if queues, err := s.cache.Get(ctx); err != nil {
			logger.Log.Errorw("failed to read queue cache", "error", err)
		} else if queues != nil {
			return queues, nil
		}
	}

	queues, err := s.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list queues", "error", err)
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, queues); err != nil {
			logger.Log.Errorw("failed to cache queues", "error", err)
		}
	}

	return queues, nil
}
