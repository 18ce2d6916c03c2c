package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/logseq"
	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/outline"
	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/structure"
)

// Worker processes a single transcription job.
type Worker struct {
	syncer    *logseq.Syncer
	log       *slog.Logger
	structCfg structure.Config
}

// NewWorker builds a worker. syncer may be nil when no Logseq endpoint is
// configured; jobs then stop after structuring.
func NewWorker(syncer *logseq.Syncer, log *slog.Logger, structCfg structure.Config) *Worker {
	return &Worker{
		syncer:    syncer,
		log:       log,
		structCfg: structCfg,
	}
}

// Process runs the structuring and sync phases for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "page", job.Page)

	// Phase 1: structure the recognition result.
	job.SetStatus(StatusStructuring, "structuring")
	doc := structure.Build(job.Input(), w.structCfg)
	job.SetResult(doc)

	if len(doc.Unmatched) > 0 {
		// Not a failure, but callers care when word matching degraded.
		log.Warn("words left unmatched after line assignment",
			"unmatched", len(doc.Unmatched), "lines", len(doc.Lines))
	}
	log.Info("structured recognition result",
		"lines", len(doc.Lines), "commands", len(doc.Commands),
		"indent_unit", doc.Metrics.IndentUnit)

	// Phase 2: reconcile with the Logseq page.
	if w.syncer == nil || job.Page == "" {
		job.SetStatus(StatusCompleted, "sync disabled")
		return
	}

	job.SetStatus(StatusSyncing, "syncing")
	entries := outline.Flatten(doc)

	var created, updated, skipped int
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		created, updated, skipped, lastErr = w.syncer.SyncPage(ctx, job.Page, entries)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable sync error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			lastErr = ctx.Err()
		}
		if ctx.Err() != nil {
			break
		}
	}

	job.SetSyncCounts(created, updated, skipped)
	if lastErr != nil {
		log.Error("sync failed", "error", lastErr)
		job.AddError(fmt.Sprintf("sync: %s", lastErr))
		if created > 0 || updated > 0 {
			job.SetStatus(StatusPartial, "syncing")
		} else {
			job.SetStatus(StatusFailed, "syncing")
		}
		return
	}

	job.SetStatus(StatusCompleted, "done")
}
