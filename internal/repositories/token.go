package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-token-queue/internal/logger"
	"github.com/sbilibin2017/gw-token-queue/internal/models"
)

// TokenWriteRepository owns every token mutation. All status changes are
// single conditional statements guarded by status = 'waiting', so a token
// can leave the waiting state exactly once no matter how calls interleave.
type TokenWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTokenWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TokenWriteRepository {
	return &TokenWriteRepository{db: db, txGetter: txGetter}
}

func (r *TokenWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a waiting token. The seq column is a BIGSERIAL, so the
// FIFO order key is allocated by the store and never collides even under
// concurrent enqueues.
func (r *TokenWriteRepository) Save(ctx context.Context, queueID uuid.UUID, name string) (*models.TokenDB, error) {
	const query = `
		INSERT INTO tokens (queue_id, name, status, created_at, updated_at)
		VALUES ($1, $2, 'waiting', NOW(), NOW())
		RETURNING token_id, queue_id, name, status, seq, created_at, updated_at
	`
	args := []any{queueID, name}

	var token models.TokenDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &token, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &token, nil
}

// AssignNext promotes the oldest waiting token of the queue to assigned
// and returns it. Selection and transition are one statement: the inner
// SELECT takes a row lock and SKIP LOCKED makes racing callers pass over
// rows already claimed by a concurrent assignment, so each token is
// handed out at most once and strictly in seq order. Returns
// sql.ErrNoRows when the queue has no waiting tokens.
func (r *TokenWriteRepository) AssignNext(ctx context.Context, queueID uuid.UUID) (*models.TokenDB, error) {
	const query = `
		UPDATE tokens
		SET status = 'assigned', updated_at = NOW()
		WHERE token_id = (
			SELECT token_id FROM tokens
			WHERE queue_id = $1 AND status = 'waiting'
			ORDER BY seq
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING token_id, queue_id, name, status, seq, created_at, updated_at
	`

	var token models.TokenDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &token, query, queueID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{queueID},
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &token, nil
}

// Cancel transitions a waiting token to cancelled and returns it. The
// status guard rejects tokens that are already assigned or cancelled;
// sql.ErrNoRows means the token is missing or not waiting, which the
// caller tells apart with a follow-up read.
func (r *TokenWriteRepository) Cancel(ctx context.Context, tokenID uuid.UUID) (*models.TokenDB, error) {
	const query = `
		UPDATE tokens
		SET status = 'cancelled', updated_at = NOW()
		WHERE token_id = $1 AND status = 'waiting'
		RETURNING token_id, queue_id, name, status, seq, created_at, updated_at
	`

	var token models.TokenDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &token, query, tokenID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{tokenID},
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &token, nil
}

// TokenReadRepository handles token lookups.
type TokenReadRepository struct {
	db *sqlx.DB
}

func NewTokenReadRepository(db *sqlx.DB) *TokenReadRepository {
	return &TokenReadRepository{db: db}
}

// ListWaiting returns the queue's waiting tokens oldest-first.
func (r *TokenReadRepository) ListWaiting(ctx context.Context, queueID uuid.UUID) ([]models.TokenDB, error) {
	const query = `
		SELECT token_id, queue_id, name, status, seq, created_at, updated_at
		FROM tokens
		WHERE queue_id = $1 AND status = 'waiting'
		ORDER BY seq
	`

	tokens := make([]models.TokenDB, 0)
	err := r.db.SelectContext(ctx, &tokens, query, queueID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{queueID},
		"result", len(tokens),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return tokens, nil
}

// GetByID returns the token with the given id, or nil when no such token
// exists.
func (r *TokenReadRepository) GetByID(ctx context.Context, tokenID uuid.UUID) (*models.TokenDB, error) {
	const query = `
		SELECT token_id, queue_id, name, status, seq, created_at, updated_at
		FROM tokens
		WHERE token_id = $1
	`

	var token models.TokenDB
	err := r.db.GetContext(ctx, &token, query, tokenID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{tokenID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &token, nil
}
