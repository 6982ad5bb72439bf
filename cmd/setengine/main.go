// Command setengine runs one game of Set end to end: it loads Config from
// the environment, builds a console display and the engine, starts the
// game, and waits for it to finish or for an interrupt/SIGTERM.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"setengine/internal/config"
	"setengine/internal/domain"
	"setengine/internal/engine"
	"setengine/internal/ports/console"
)

func main() {
	fs := flag.NewFlagSet("setengine", flag.ExitOnError)
	humans := fs.Int("humans", 0, "number of human participants, ids [0, humans)")
	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *humans); err != nil {
		log.Fatalf("setengine: %v", err)
	}
}

func run(ctx context.Context, humanCount int) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	display := console.New(logger)
	defer display.Dispose()

	humanIDs := make(map[int]bool, humanCount)
	for i := 0; i < humanCount && i < cfg.Players; i++ {
		humanIDs[i] = true
	}

	e, err := engine.New(cfg, domain.SetTester{}, display, logger, humanIDs)
	if err != nil {
		return err
	}

	e.Start(ctx)

	select {
	case <-e.Done():
	case <-ctx.Done():
		e.Terminate()
		<-e.Done()
	}

	logger.Info("game finished", zap.Any("scores", e.Scores()))
	return nil
}
