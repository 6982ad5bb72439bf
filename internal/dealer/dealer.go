// Package dealer implements the round coordinator: deck management, card
// placement and removal, the timer state machine, claim adjudication, the
// reshuffle protocol, the termination cascade, and winner announcement.
//
// A Dealer owns every participant handle; no participant holds a reference
// back to the dealer (only the narrow participant.ClaimPort it implements),
// so the dealer<->participant relationship is single-owner, not cyclic.
package dealer

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"setengine/internal/config"
	"setengine/internal/domain"
	"setengine/internal/participant"
	"setengine/internal/ports"
	"setengine/internal/table"
)

// tickInterval is the dealer's own polling quantum, matching the
// participant package's tick-sleep granularity.
const tickInterval = 10 * time.Millisecond

// Dealer is the round coordinator. It is constructed once per game and run
// until its context is cancelled or no legal set exists anywhere.
type Dealer struct {
	cfg     config.Config
	tester  ports.SetTester
	display ports.DisplaySink
	log     *zap.Logger
	tbl     *table.Table

	deck         []domain.Card
	participants []*participant.Participant

	claimQueue chan int
	coordMu    sync.Mutex

	roundStart    time.Time
	turnTimeout   time.Duration
	warning       time.Duration
	pointFreeze   time.Duration
	penaltyFreeze time.Duration
}

// New constructs a Dealer over an already-built, empty table. Participants
// must be attached with SetParticipants before Run is called; they need a
// participant.ClaimPort (this Dealer) to construct against, so the two are
// wired in two steps by the caller (the engine).
func New(cfg config.Config, tbl *table.Table, tester ports.SetTester, display ports.DisplaySink, log *zap.Logger) *Dealer {
	return &Dealer{
		cfg:           cfg,
		tester:        tester,
		display:       display,
		log:           log.Named("dealer"),
		tbl:           tbl,
		deck:          domain.NewDeck(cfg.DeckSize),
		claimQueue:    make(chan int, cfg.Players),
		turnTimeout:   time.Duration(cfg.TurnTimeoutMillis) * time.Millisecond,
		warning:       time.Duration(cfg.TurnTimeoutWarningMillis) * time.Millisecond,
		pointFreeze:   time.Duration(cfg.PointFreezeMillis) * time.Millisecond,
		penaltyFreeze: time.Duration(cfg.PenaltyFreezeMillis) * time.Millisecond,
	}
}

// SetParticipants attaches the participant handles the dealer owns. Call
// once, before Run.
func (d *Dealer) SetParticipants(participants []*participant.Participant) {
	d.participants = participants
}

// SubmitClaim implements participant.ClaimPort. It is the only surface a
// participant uses to reach the dealer.
func (d *Dealer) SubmitClaim(participantID int) {
	d.coordMu.Lock()
	defer d.coordMu.Unlock()
	select {
	case d.claimQueue <- participantID:
	default:
		// claimQueue is bounded by the participant count; a participant
		// only ever has one outstanding claim at a time, so this branch is
		// unreachable in practice, but it must not block the caller.
	}
}

// Run drives the dealer's startup, main control loop, and shutdown cascade.
// It blocks until ctx is cancelled or the game ends by exhaustion, and does
// not return until every participant goroutine has exited.
func (d *Dealer) Run(ctx context.Context) {
	d.deck = domain.ShuffleDeck(d.deck)
	for _, p := range d.participants {
		p.Start(ctx)
	}

	d.tbl.Lock()
	d.placeCardsOnTableLocked()
	d.tbl.Unlock()
	d.roundStart = time.Now()

	for !d.shouldFinish(ctx) {
		d.tbl.Lock()
		d.placeCardsOnTableLocked()
		d.tbl.Unlock()

		if d.cfg.Hints {
			d.logHints()
		}

		d.roundStart = time.Now()
		d.wakeSuspendedParticipants()

		d.runTimerLoop(ctx)

		if d.shouldFinish(ctx) {
			break
		}
		d.reshuffle(ctx)
	}

	d.terminateAllParticipants()
	d.announceWinners()
}

// shouldFinish reports whether the game should end: ctx was cancelled, or
// no legal set exists in the deck and none exists on the table.
func (d *Dealer) shouldFinish(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	d.tbl.Lock()
	defer d.tbl.Unlock()
	return d.noLegalSetAnywhereLocked()
}

// noLegalSetAnywhereLocked assumes the caller holds the table mutex.
func (d *Dealer) noLegalSetAnywhereLocked() bool {
	deckHasSet := len(d.tester.FindSets(d.deck, 1)) > 0
	return !deckHasSet && !d.tbl.CheckForSets()
}

func (d *Dealer) placeCardsOnTableLocked() {
	for _, slot := range d.emptySlotsLocked() {
		if len(d.deck) == 0 {
			return
		}
		card := d.deck[0]
		d.deck = d.deck[1:]
		d.tbl.PlaceCard(card, slot)
	}
}

func (d *Dealer) emptySlotsLocked() []domain.Slot {
	occupied := make(map[domain.Slot]struct{})
	for _, s := range d.tbl.UsedSlots() {
		occupied[s] = struct{}{}
	}
	out := make([]domain.Slot, 0, d.tbl.Size())
	for s := 0; s < d.tbl.Size(); s++ {
		if _, ok := occupied[domain.Slot(s)]; !ok {
			out = append(out, domain.Slot(s))
		}
	}
	return out
}

func (d *Dealer) wakeSuspendedParticipants() {
	for _, p := range d.participants {
		p.WakeFromClaim(0)
	}
}

func (d *Dealer) logHints() {
	d.tbl.Lock()
	hint := d.tbl.HintsForAI()
	d.tbl.Unlock()
	if len(hint) == 0 {
		d.log.Debug("no legal set on table to hint")
		return
	}
	d.log.Info("hint", zap.Any("slots", hint), zap.String("round_id", uuid.NewString()))
}

// terminateAllParticipants implements §4.3.5: suspend everyone, then ask
// each participant, highest id first, to terminate and join it. Context
// cancellation already interrupts every participant's tick-sleep the
// instant RequestTerminate fires, so the suspend step here only prevents a
// straggler press from mutating the table while the cascade is in flight.
func (d *Dealer) terminateAllParticipants() {
	d.tbl.Lock()
	for _, p := range d.participants {
		p.Suspend()
	}
	d.tbl.Unlock()

	for i := len(d.participants) - 1; i >= 0; i-- {
		p := d.participants[i]
		p.RequestTerminate()
		p.Join()
	}
}

// announceWinners publishes the ids of every participant tied for the
// highest score.
func (d *Dealer) announceWinners() {
	best := -1
	for _, p := range d.participants {
		if s := p.Score(); s > best {
			best = s
		}
	}
	var winners []int
	for _, p := range d.participants {
		if p.Score() == best {
			winners = append(winners, p.ID())
		}
	}
	sort.Ints(winners)
	d.display.AnnounceWinners(winners)
}

func (d *Dealer) participantByID(id int) *participant.Participant {
	for _, p := range d.participants {
		if p.ID() == id {
			return p
		}
	}
	return nil
}
