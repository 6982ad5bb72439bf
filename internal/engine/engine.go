// Package engine wires a table, a dealer, and every participant into the
// single construct-once, Start/OnKey/Terminate object a process embeds. It
// is the one process-wide singleton per game.
package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"setengine/internal/config"
	"setengine/internal/dealer"
	"setengine/internal/participant"
	"setengine/internal/participant/ai"
	"setengine/internal/ports"
	"setengine/internal/table"
)

// Engine is the top-level orchestrator: it owns the table, the dealer, and
// every participant handle, and implements ports.KeyIngress on their
// behalf. No participant holds a reference back to the engine or the
// dealer — the dependency direction is engine -> dealer -> participant,
// single-owner throughout.
type Engine struct {
	log     *zap.Logger
	tbl     *table.Table
	dealer  *dealer.Dealer
	parts   []*participant.Participant
	cancel  context.CancelFunc
	doneCh  chan struct{}
}

// New wires a complete game from cfg. humanIDs selects which of the
// [0, cfg.Players) participant slots are driven by external OnKey calls
// rather than a synthetic-input worker; any id outside that set is
// synthetic. tester and display are injected so a process can supply its
// own SetTester/DisplaySink (or a test harness its fakes).
func New(cfg config.Config, tester ports.SetTester, display ports.DisplaySink, log *zap.Logger, humanIDs map[int]bool) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	brainMode := ai.ModeRandom
	if cfg.Hints {
		brainMode = ai.ModeHint
	}
	brain, err := ai.NewBrain(brainMode)
	if err != nil {
		return nil, fmt.Errorf("engine: build brain: %w", err)
	}

	tbl := table.New(cfg.TableSize, cfg.DeckSize, tester, display, time.Duration(cfg.TableDelayMillis)*time.Millisecond)
	d := dealer.New(cfg, tbl, tester, display, log)

	parts := make([]*participant.Participant, cfg.Players)
	for i := range parts {
		isHuman := humanIDs[i]
		var b ai.Brain
		if !isHuman {
			b = brain
		}
		parts[i] = participant.New(i, isHuman, tbl, d, display, log, b)
	}
	d.SetParticipants(parts)

	return &Engine{
		log:    log.Named("engine"),
		tbl:    tbl,
		dealer: d,
		parts:  parts,
		doneCh: make(chan struct{}),
	}, nil
}

// Start launches the dealer (and transitively every participant) as
// goroutines derived from parent, and returns immediately. Done reports
// when the game has finished.
func (e *Engine) Start(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	e.cancel = cancel
	go func() {
		defer close(e.doneCh)
		e.dealer.Run(ctx)
	}()
}

// Done returns a channel that closes once the dealer's run loop and every
// participant's termination cascade have completed.
func (e *Engine) Done() <-chan struct{} {
	return e.doneCh
}

// OnKey implements ports.KeyIngress, dispatching to the named participant.
// Presses for a synthetic or unknown participant id are silently ignored,
// matching Participant.OnKey's own admission rule for non-human ids.
func (e *Engine) OnKey(participantID int, slot int) {
	for _, p := range e.parts {
		if p.ID() == participantID {
			p.OnKey(slot)
			return
		}
	}
}

// Terminate cancels the game. It does not block; use Done to wait for the
// dealer's termination cascade to finish.
func (e *Engine) Terminate() {
	if e.cancel != nil {
		e.cancel()
	}
}

// Scores returns every participant's current score, keyed by id.
func (e *Engine) Scores() map[int]int {
	out := make(map[int]int, len(e.parts))
	for _, p := range e.parts {
		out[p.ID()] = p.Score()
	}
	return out
}

var _ ports.KeyIngress = (*Engine)(nil)
