package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-token-queue/internal/logger"
	"github.com/sbilibin2017/gw-token-queue/internal/models"
)

// QueueWriteRepository handles queue creation.
type QueueWriteRepository struct {
	db *sqlx.DB
}

func NewQueueWriteRepository(db *sqlx.DB) *QueueWriteRepository {
	return &QueueWriteRepository{db: db}
}

// Save inserts a new queue and returns the stored row.
func (r *QueueWriteRepository) Save(ctx context.Context, name string) (*models.QueueDB, error) {
	const query = `
		INSERT INTO queues (name, created_at)
		VALUES ($1, NOW())
		RETURNING queue_id, name, created_at
	`

	var queue models.QueueDB
	err := r.db.GetContext(ctx, &queue, query, name)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{name},
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &queue, nil
}

// QueueReadRepository handles queue lookups. A txGetter may supply a
// per-request transaction so existence checks share the enqueue
// transaction.
type QueueReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewQueueReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *QueueReadRepository {
	return &QueueReadRepository{db: db, txGetter: txGetter}
}

func (r *QueueReadRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// List returns all queues in creation order.
func (r *QueueReadRepository) List(ctx context.Context) ([]models.QueueDB, error) {
	const query = `
		SELECT queue_id, name, created_at
		FROM queues
		ORDER BY created_at, queue_id
	`

	queues := make([]models.QueueDB, 0)
	err := sqlx.SelectContext(ctx, r.executor(ctx), &queues, query)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"result", len(queues),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return queues, nil
}

// Exists reports whether a queue with the given id is registered.
func (r *QueueReadRepository) Exists(ctx context.Context, queueID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM queues WHERE queue_id = $1)`

	var exists bool
	err := sqlx.GetContext(ctx, r.executor(ctx), &exists, query, queueID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{queueID},
		"result", exists,
		"error", err,
	)

	return exists, err
}
