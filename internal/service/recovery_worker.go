package service

import (
	"context"
	"log"
	"sync"
	"time"

	"loandocs/internal/port"
)

// RecoveryConfig holds settings for the stalled-document recovery worker.
type RecoveryConfig struct {
	PollInterval time.Duration
	StalledAfter time.Duration
	Concurrency  int
	JobTimeout   time.Duration
}

// RecoveryWorker polls for documents stuck in pending or processing (a crashed
// server, a lost goroutine) and dispatches them for another processing attempt.
type RecoveryWorker struct {
	docRepo    port.DocumentRepository
	docService DocumentService
	cfg        RecoveryConfig
	wg         sync.WaitGroup
}

// NewRecoveryWorker creates a new RecoveryWorker.
func NewRecoveryWorker(docRepo port.DocumentRepository, docService DocumentService, cfg RecoveryConfig) *RecoveryWorker {
	return &RecoveryWorker{
		docRepo:    docRepo,
		docService: docService,
		cfg:        cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight processing goroutines have finished.
func (w *RecoveryWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("recoveryWorker: started (poll=%s, stalledAfter=%s, concurrency=%d)",
		w.cfg.PollInterval, w.cfg.StalledAfter, w.cfg.Concurrency)

	for {
		select {
		case <-ctx.Done():
			log.Printf("recoveryWorker: shutting down, waiting for in-flight jobs...")
			w.wg.Wait()
			log.Printf("recoveryWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			docs, err := w.docRepo.ClaimStalled(ctx, w.cfg.StalledAfter, available)
			if err != nil {
				if ctx.Err() != nil {
					// Context canceled during poll — exit gracefully
					continue
				}
				log.Printf("recoveryWorker: ClaimStalled error: %v", err)
				continue
			}

			for i := range docs {
				doc := docs[i] // copy for goroutine

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Use a fresh context independent of the poll context
					// so in-flight jobs complete even during shutdown.
					jobCtx, cancel := context.WithTimeout(context.Background(), w.cfg.JobTimeout)
					defer cancel()

					log.Printf("recoveryWorker: dispatching stalled document %s", doc.ID)
					w.docService.ProcessDocument(jobCtx, &doc)
				}()
			}
		}
	}
}
