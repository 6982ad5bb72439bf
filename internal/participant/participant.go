// Package participant implements the per-player coordination loop: key
// ingress, the placement worker that turns pending key presses into table
// tokens, claim submission, and the optional synthetic-input (AI) worker.
//
// A Participant never holds a reference to the dealer. It only holds the
// table, its own freeze/score state, and a ClaimPort — the narrow surface
// it submits claims through — so the dealer<->participant relationship is
// single-owner (dealer owns participant handles) rather than cyclic.
package participant

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"setengine/internal/domain"
	"setengine/internal/participant/ai"
	"setengine/internal/ports"
	"setengine/internal/table"
)

// tickInterval is the polling quantum used by every tick-sleep loop.
const tickInterval = 10 * time.Millisecond

// aiTickInterval paces the synthetic-input worker's presses for visual
// plausibility; it is deliberately coarser than tickInterval.
const aiTickInterval = 150 * time.Millisecond

// ClaimPort is the dealer-side handle a participant submits a claim
// through. It is the only way a participant reaches the dealer.
type ClaimPort interface {
	SubmitClaim(participantID int)
}

// Participant is one player's coordination loop: human participants are
// driven by external OnKey calls, synthetic ones by their own AI worker.
type Participant struct {
	id      int
	isHuman bool

	tbl     *table.Table
	claims  ClaimPort
	display ports.DisplaySink
	log     *zap.Logger
	brain   ai.Brain

	pendingKeys chan domain.Slot
	outcome     chan struct{}

	freeze freezeState

	scoreMu sync.Mutex
	score   int

	cancel context.CancelFunc
	doneCh chan struct{}
	aiWG   sync.WaitGroup
}

// New constructs a Participant. brain is nil for human participants; a
// non-nil brain makes the participant synthetic and starts its AI worker
// when Start is called.
func New(id int, isHuman bool, tbl *table.Table, claims ClaimPort, display ports.DisplaySink, log *zap.Logger, brain ai.Brain) *Participant {
	return &Participant{
		id:          id,
		isHuman:     isHuman,
		tbl:         tbl,
		claims:      claims,
		display:     display,
		log:         log.With(zap.Int("participant", id)),
		brain:       brain,
		pendingKeys: make(chan domain.Slot, domain.SetSize),
		outcome:     make(chan struct{}, 1),
		doneCh:      make(chan struct{}),
	}
}

// ID returns the participant's identifier.
func (p *Participant) ID() int { return p.id }

// IsHuman reports whether this participant is driven by external key
// events rather than its own AI worker.
func (p *Participant) IsHuman() bool { return p.isHuman }

// Score returns the participant's current score.
func (p *Participant) Score() int {
	p.scoreMu.Lock()
	defer p.scoreMu.Unlock()
	return p.score
}

// AddScore adds delta to the participant's score and returns the new total.
func (p *Participant) AddScore(delta int) int {
	p.scoreMu.Lock()
	p.score += delta
	total := p.score
	p.scoreMu.Unlock()
	return total
}

// Start launches the participant's main loop (and AI worker, if any) as
// goroutines derived from parent. It returns immediately.
func (p *Participant) Start(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	p.cancel = cancel
	go p.run(ctx)
}

// RequestTerminate interrupts the participant's tick-sleep and AI worker.
// It does not block; call Join to wait for actual exit.
func (p *Participant) RequestTerminate() {
	if p.cancel != nil {
		p.cancel()
	}
}

// Join blocks until the participant's main loop (and its AI worker, if any)
// have exited.
func (p *Participant) Join() {
	<-p.doneCh
}

// Freeze imposes a FrozenUntil(now+d) freeze and publishes it. The dealer's
// point/penalty effects (§4.3.4) do not call it; they go through
// WakeFromClaim, which imposes the same freeze while waking the participant.
func (p *Participant) Freeze(d time.Duration) {
	p.freeze.setUntil(d)
	p.display.SetFreeze(p.id, d)
}

// Suspend forces the participant into FrozenUntilWoken without a claim
// having been submitted, for the reshuffle protocol (§4.3.3) and the
// termination cascade's "suspend all participants" step.
func (p *Participant) Suspend() {
	p.freeze.setUntilWoken()
}

// WakeFromClaim clears this participant's FrozenUntilWoken state after the
// dealer has adjudicated its claim. If freezeDuration is positive the
// participant is immediately re-frozen for that long (point or penalty);
// otherwise it returns straight to Active (the stale-claim case).
func (p *Participant) WakeFromClaim(freezeDuration time.Duration) {
	if freezeDuration > 0 {
		p.freeze.setUntil(freezeDuration)
		p.display.SetFreeze(p.id, freezeDuration)
	} else {
		p.freeze.setActive()
	}
	select {
	case p.outcome <- struct{}{}:
	default:
	}
}

// OnKey is the external key-ingress entry point, reached only through the
// engine on behalf of a human key-binding translator. A participant's own
// AI worker never calls this; it calls the internal onKey with fromAI=true.
func (p *Participant) OnKey(slot int) {
	p.onKey(domain.Slot(slot), false)
}

func (p *Participant) onKey(slot domain.Slot, fromAI bool) {
	if !p.isHuman && !fromAI {
		return
	}
	if mode, _ := p.freeze.snapshot(); mode != ModeActive {
		return
	}

	p.tbl.Lock()
	tokens := p.tbl.PlayerTokens(p.id)
	p.tbl.Unlock()

	if len(tokens) >= domain.SetSize && !containsSlot(tokens, slot) {
		return
	}

	select {
	case p.pendingKeys <- slot:
	default:
		// Backpressure: pendingKeys is full, drop the key silently rather
		// than block the caller.
	}
}

func (p *Participant) run(ctx context.Context) {
	defer close(p.doneCh)
	if p.brain != nil {
		p.aiWG.Add(1)
		go p.runAI(ctx)
	}
	defer p.aiWG.Wait()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		mode, remaining := p.freeze.snapshot()
		if mode != ModeFrozenUntilWoken {
			// A Suspend+WakeFromClaim pair (reshuffle, termination) can
			// complete before this loop ever observes FrozenUntilWoken,
			// leaving a signal buffered on outcome that nothing is
			// waiting for yet. Flush it now so it can never be mistaken
			// for the wake of a future, genuine claim submission.
			select {
			case <-p.outcome:
			default:
			}
		}
		switch mode {
		case ModeFrozenUntil:
			p.display.SetFreeze(p.id, remaining)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		case ModeFrozenUntilWoken:
			select {
			case <-ctx.Done():
				return
			case <-p.outcome:
			}
		default: // ModeActive
			select {
			case <-ctx.Done():
				return
			case slot := <-p.pendingKeys:
				p.drainAndPlace(slot)
			case <-ticker.C:
			}
		}
	}
}

// drainAndPlace runs the placement worker (§4.2.1): under the table mutex,
// drain every pending key (first plus whatever queued up behind it),
// discard stale entries whose cards were removed, and toggle a token for
// each surviving one. A claim is submitted once, after the mutex is
// released, if any placement reached SetSize.
func (p *Participant) drainAndPlace(first domain.Slot) {
	p.tbl.Lock()
	setLaid := p.applyPress(first)
	for drained := true; drained; {
		select {
		case s := <-p.pendingKeys:
			if p.applyPress(s) {
				setLaid = true
			}
		default:
			drained = false
		}
	}
	p.tbl.Unlock()

	if setLaid {
		p.submitClaim()
	}
}

func (p *Participant) applyPress(slot domain.Slot) bool {
	if _, occupied := p.tbl.Card(slot); !occupied {
		return false
	}
	return p.tbl.PlaceToken(p.id, slot)
}

func (p *Participant) submitClaim() {
	p.freeze.setUntilWoken()
	p.claims.SubmitClaim(p.id)
}

func (p *Participant) runAI(ctx context.Context) {
	defer p.aiWG.Done()
	ticker := time.NewTicker(aiTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if mode, _ := p.freeze.snapshot(); mode != ModeActive {
			continue
		}

		p.tbl.Lock()
		tokens := p.tbl.PlayerTokens(p.id)
		presses := p.brain.NextPresses(tokens, p.tbl)
		p.tbl.Unlock()

		for _, s := range presses {
			p.onKey(s, true)
		}
	}
}

func containsSlot(slots []domain.Slot, slot domain.Slot) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
