package cleanup

import (
	"context"
	"log"
	"time"

	"github.com/iamasit07/5-in-a-row/backend/internal/service/game"
)

// DecisionPruner drops stored engine decisions nobody has asked for recently.
type DecisionPruner interface {
	PruneUnused(ctx context.Context, days int) (int64, error)
}

type Worker struct {
	SessionManager *game.SessionManager
	Decisions      DecisionPruner // nil when running without Postgres
	IdleTimeout    time.Duration
	Interval       time.Duration
	DaysToKeep     int
}

func NewWorker(sm *game.SessionManager, decisions DecisionPruner, idleTimeout time.Duration) *Worker {
	return &Worker{
		SessionManager: sm,
		Decisions:      decisions,
		IdleTimeout:    idleTimeout,
		Interval:       5 * time.Minute,
		DaysToKeep:     30,
	}
}

// Start runs one pass immediately, then every Interval until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	go func() {
		w.runCleanup(ctx)

		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Println("[CLEANUP] Background worker stopped")
				return
			case <-ticker.C:
				w.runCleanup(ctx)
			}
		}
	}()
	log.Println("[CLEANUP] Background worker started")
}

func (w *Worker) runCleanup(ctx context.Context) {
	w.SessionManager.CleanupIdleSessions(w.IdleTimeout)

	if w.Decisions == nil {
		return
	}
	if _, err := w.Decisions.PruneUnused(ctx, w.DaysToKeep); err != nil {
		log.Printf("[CLEANUP] Error pruning engine decisions: %v", err)
	}
}
