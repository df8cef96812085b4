package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/iamasit07/5-in-a-row/backend/internal/service/analysis"
)

// DecisionRepo is the durable tier of engine answers keyed by position.
type DecisionRepo struct {
	DB *sql.DB
}

func NewDecisionRepo(db *sql.DB) *DecisionRepo {
	return &DecisionRepo{DB: db}
}

// GetDecision returns nil, nil when the position has not been searched before.
func (r *DecisionRepo) GetDecision(ctx context.Context, key string) (*analysis.Decision, error) {
	query := `
	UPDATE engine_decisions
	SET hits = hits + 1, last_used_at = NOW()
	WHERE decision_key = $1
	RETURNING move_row, move_col, no_move, difficulty, stones
	`

	var d analysis.Decision
	err := r.DB.QueryRowContext(ctx, query, key).Scan(&d.Row, &d.Col, &d.NoMove, &d.Difficulty, &d.Stones)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load decision: %v", err)
	}
	return &d, nil
}

func (r *DecisionRepo) SaveDecision(ctx context.Context, key string, d analysis.Decision) error {
	query := `
	INSERT INTO engine_decisions (decision_key, board_size, difficulty, stones, move_row, move_col, no_move)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (decision_key) DO UPDATE SET
		move_row = EXCLUDED.move_row,
		move_col = EXCLUDED.move_col,
		no_move = EXCLUDED.no_move,
		last_used_at = NOW();
	`

	_, err := r.DB.ExecContext(ctx, query, key, boardSizeFromKey(key), d.Difficulty, d.Stones, d.Row, d.Col, d.NoMove)
	if err != nil {
		return fmt.Errorf("failed to upsert decision: %v", err)
	}
	return nil
}

// PruneUnused drops decisions not served for the given number of days.
func (r *DecisionRepo) PruneUnused(ctx context.Context, days int) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM engine_decisions WHERE last_used_at < NOW() - make_interval(days => $1)`, days)
	if err != nil {
		return 0, fmt.Errorf("failed to prune decisions: %v", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		log.Printf("[DB] Pruned %d stale engine decisions", n)
	}
	return n, nil
}

// boardSizeFromKey reads the size field of a "move:<size>:..." key.
func boardSizeFromKey(key string) int {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) < 2 {
		return 0
	}
	n, _ := strconv.Atoi(parts[1])
	return n
}
