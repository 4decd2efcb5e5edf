package repositories

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-token-queue/internal/logger"
	"github.com/sbilibin2017/gw-token-queue/internal/models"
)

// StatsReadRepository aggregates token counts per queue and status.
type StatsReadRepository struct {
	db *sqlx.DB
}

func NewStatsReadRepository(db *sqlx.DB) *StatsReadRepository {
	return &StatsReadRepository{db: db}
}

// CountsByQueue returns per-status token counts for every registered
// queue. The LEFT JOIN keeps tokenless queues in the result with zero
// counts; the whole aggregate is one statement, so it reflects a single
// snapshot of the ledger.
func (r *StatsReadRepository) CountsByQueue(ctx context.Context) (map[uuid.UUID]models.QueueStats, error) {
	const query = `
		SELECT q.queue_id, t.status, COUNT(t.token_id) AS total
		FROM queues q
		LEFT JOIN tokens t ON t.queue_id = q.queue_id
		GROUP BY q.queue_id, t.status
	`

	rows := []struct {
		QueueID uuid.UUID      `db:"queue_id"`
		Status  sql.NullString `db:"status"`
		Total   int64          `db:"total"`
	}{}
	err := r.db.SelectContext(ctx, &rows, query)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"result", len(rows),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]models.QueueStats, len(rows))
	for _, row := range rows {
		stats := counts[row.QueueID]
		if row.Status.Valid {
			switch row.Status.String {
			case models.StatusWaiting:
				stats.Waiting = row.Total
			case models.StatusAssigned:
				stats.Assigned = row.Total
			case models.StatusCancelled:
				stats.Cancelled = row.Total
			}
		}
		counts[row.QueueID] = stats
	}

	return counts, nil
}
