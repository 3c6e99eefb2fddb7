// Command logdemo runs a simulated document-ingestion pass against the
// logging facade. It exercises the full surface: environment configuration,
// sticky context, per-call extras, error capture, timing helpers, and the
// drain-on-shutdown path.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/lorenzo-mora/DocAtlas/pkg/atlaslog"
)

func main() {
	cfg, err := atlaslog.ConfigFromEnv()
	if err != nil {
		log.Fatalf("failed to load logger configuration: %v", err)
	}

	reg := atlaslog.NewRegistry()
	logger := reg.GetOrCreate(cfg)
	if err := logger.Setup("ingest"); err != nil {
		log.Fatalf("failed to set up logger: %v", err)
	}

	// Set up graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(os.Stderr, "\nreceived %v, shutting down...\n", sig)
		cancel()
	}()

	logger.Info("ingestion run starting")
	if err := ingest(ctx, logger, 5); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("ingestion run failed", atlaslog.WithError(err))
	} else {
		logger.Info("ingestion run complete")
	}

	if err := reg.Close(10 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "logger shutdown: %v\n", err)
	}
}

// ingest simulates processing a batch of documents through extraction,
// chunking, and embedding stages.
func ingest(ctx context.Context, logger *atlaslog.Handle, docs int) error {
	for i := 0; i < docs; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		docID := uuid.NewString()
		logger.AddContext("doc_id", docID)
		logger.Info("document received", atlaslog.WithExtra(map[string]any{
			"position": i + 1,
			"batch":    docs,
		}))

		if err := processDocument(ctx, logger); err != nil {
			logger.Error("document failed, skipping", atlaslog.WithError(err))
		}
		logger.RemoveContext("doc_id")
	}
	return ctx.Err()
}

func processDocument(ctx context.Context, logger *atlaslog.Handle) error {
	defer logger.Timed("document processed")()

	logger.Debug("extracting text")
	time.Sleep(30 * time.Millisecond)

	pages := 3 + time.Now().UnixNano()%5
	logger.Debug("chunking pages", atlaslog.WithExtra(map[string]any{"pages": pages}))
	if pages > 6 {
		logger.Warning("document unusually large", atlaslog.WithExtra(map[string]any{"pages": pages}))
	}

	// Embedding is the slow stage; report liveness while it runs.
	embedCtx, done := context.WithCancel(ctx)
	defer done()
	if err := logger.StatusEvery(embedCtx, 50*time.Millisecond, "embedding in progress for {elapsed}"); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(120 * time.Millisecond):
	}

	logger.Debug("vectors stored")
	return nil
}
