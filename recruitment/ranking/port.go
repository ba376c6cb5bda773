package ranking

import (
	"context"
	"time"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
)

// Repository persists global rankings, one document per position.
type Repository interface {
	Put(ctx context.Context, g *GlobalRanking) error

	Get(ctx context.Context, position kernel.Position) (*GlobalRanking, error)

	ListAll(ctx context.Context) ([]*GlobalRanking, error)
}

// RebuildQueue carries positions whose global ranking must be recomputed.
type RebuildQueue interface {
	// Enqueue schedules a rebuild for a position. Enqueuing an already
	// queued position is harmless; rebuilds are idempotent.
	Enqueue(ctx context.Context, position kernel.Position) error

	// Dequeue blocks up to timeout for the next position. Returns an
	// empty position when the timeout elapses.
	Dequeue(ctx context.Context, timeout time.Duration) (kernel.Position, error)

	// EnqueueDelayed schedules a rebuild after the delay, used to retry
	// failed rebuilds.
	EnqueueDelayed(ctx context.Context, position kernel.Position, delay time.Duration) error

	// MoveDelayedToReady promotes due delayed rebuilds onto the main
	// queue and returns how many were moved.
	MoveDelayedToReady(ctx context.Context) (int, error)
}
