package worker

import (
	"context"
	"time"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/logx"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/ranking"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/ranking/rankingsrv"
)

const (
	dequeueTimeout = 5 * time.Second
	retryDelay     = 30 * time.Second
	delayedSweep   = 30 * time.Second
)

// RebuildWorker drains the rebuild queue and recomputes global rankings.
// A failed rebuild goes back on the delayed queue instead of being lost.
type RebuildWorker struct {
	service *rankingsrv.Service
	queue   ranking.RebuildQueue
	workers int
}

func NewRebuildWorker(service *rankingsrv.Service, queue ranking.RebuildQueue, workers int) *RebuildWorker {
	return &RebuildWorker{
		service: service,
		queue:   queue,
		workers: workers,
	}
}

func (w *RebuildWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d ranking rebuild workers", w.workers)

	go w.moveDelayedRebuilds(ctx)

	for i := 0; i < w.workers; i++ {
		go w.processRebuilds(ctx, i)
	}
}

func (w *RebuildWorker) processRebuilds(ctx context.Context, workerID int) {
	logx.Infof("Rebuild worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Rebuild worker %d stopping", workerID)
			return
		default:
			position, err := w.queue.Dequeue(ctx, dequeueTimeout)
			if err != nil {
				logx.Errorf("Rebuild worker %d dequeue error: %v", workerID, err)
				continue
			}
			if position.IsEmpty() {
				continue
			}

			if _, err := w.service.Rebuild(ctx, position); err != nil {
				logx.Errorf("Rebuild worker %d failed for position %s, retrying later: %v",
					workerID, position, err)
				if err := w.queue.EnqueueDelayed(ctx, position, retryDelay); err != nil {
					logx.Errorf("Rebuild worker %d could not schedule retry for %s: %v",
						workerID, position, err)
				}
			}
		}
	}
}

func (w *RebuildWorker) moveDelayedRebuilds(ctx context.Context) {
	ticker := time.NewTicker(delayedSweep)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed rebuilds: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed rebuilds to ready queue", count)
			}
		}
	}
}
