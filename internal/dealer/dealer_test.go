package dealer

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"setengine/internal/config"
	"setengine/internal/domain"
	"setengine/internal/participant"
	"setengine/internal/table"
)

type recordingDisplay struct {
	scores    map[int]int
	freezes   map[int]time.Duration
	winners   []int
	countdown []time.Duration
}

func newRecordingDisplay() *recordingDisplay {
	return &recordingDisplay{scores: map[int]int{}, freezes: map[int]time.Duration{}}
}

func (d *recordingDisplay) PlaceCard(domain.Card, domain.Slot)   {}
func (d *recordingDisplay) RemoveCard(domain.Slot)               {}
func (d *recordingDisplay) PlaceToken(int, domain.Slot)          {}
func (d *recordingDisplay) RemoveToken(int, domain.Slot)         {}
func (d *recordingDisplay) RemoveAllTokens()                     {}
func (d *recordingDisplay) RemoveSlotTokens(domain.Slot)          {}
func (d *recordingDisplay) SetScore(p int, score int)            { d.scores[p] = score }
func (d *recordingDisplay) SetFreeze(p int, remaining time.Duration) { d.freezes[p] = remaining }
func (d *recordingDisplay) SetCountdown(remaining time.Duration, warn bool) {
	d.countdown = append(d.countdown, remaining)
}
func (d *recordingDisplay) SetElapsed(time.Duration)  {}
func (d *recordingDisplay) AnnounceWinners(ids []int) { d.winners = ids }
func (d *recordingDisplay) Dispose()                  {}

func testConfig() config.Config {
	return config.Config{
		Players:                  2,
		DeckSize:                 81,
		TableSize:                12,
		FeatureSize:              domain.SetSize,
		TurnTimeoutMillis:        60000,
		TurnTimeoutWarningMillis: 5000,
		PointFreezeMillis:        1000,
		PenaltyFreezeMillis:      3000,
		TableDelayMillis:         0,
	}
}

func newTestDealer(t *testing.T, cfg config.Config) (*Dealer, *table.Table, *recordingDisplay, []*participant.Participant) {
	t.Helper()
	disp := newRecordingDisplay()
	tbl := table.New(cfg.TableSize, cfg.DeckSize, domain.SetTester{}, disp, 0)
	d := New(cfg, tbl, domain.SetTester{}, disp, zap.NewNop())

	participants := make([]*participant.Participant, cfg.Players)
	for i := range participants {
		participants[i] = participant.New(i, true, tbl, d, disp, zap.NewNop(), nil)
	}
	d.SetParticipants(participants)
	return d, tbl, disp, participants
}

// seedAscendingTable places the deck's first TableSize cards onto slots
// 0..TableSize-1 in ascending order, without shuffling, so tests can reason
// about exactly which cards land where.
func seedAscendingTable(d *Dealer) {
	d.tbl.Lock()
	d.placeCardsOnTableLocked()
	d.tbl.Unlock()
}

func TestAdjudicateAwardsValidSetAndRefillsSlots(t *testing.T) {
	d, tbl, disp, ps := newTestDealer(t, testConfig())
	seedAscendingTable(d)

	// Cards 0,1,2 sit at slots 0,1,2 and form a legal set (see domain tests).
	tbl.Lock()
	tbl.PlaceToken(0, domain.Slot(0))
	tbl.PlaceToken(0, domain.Slot(1))
	tbl.PlaceToken(0, domain.Slot(2))
	d.adjudicateLocked(0)
	tbl.Unlock()

	if got := ps[0].Score(); got != 1 {
		t.Fatalf("expected score 1 after a valid claim, got %d", got)
	}
	if disp.scores[0] != 1 {
		t.Fatalf("expected SetScore(0, 1) to be published, got %v", disp.scores)
	}
	if remaining, ok := disp.freezes[0]; !ok || remaining != d.pointFreeze {
		t.Fatalf("expected a point freeze of %v published, got %v", d.pointFreeze, remaining)
	}

	tbl.Lock()
	card, occupied := tbl.Card(domain.Slot(0))
	tbl.Unlock()
	if !occupied || card == domain.Card(0) {
		t.Fatalf("expected slot 0 to be refilled with a different card, got %v occupied=%v", card, occupied)
	}
}

func TestAdjudicatePenalizesInvalidSet(t *testing.T) {
	d, tbl, disp, ps := newTestDealer(t, testConfig())
	seedAscendingTable(d)

	// Cards 0 (features 0,0,0,0) and 9 (features 0,0,1,0) and 3 (features
	// 0,1,0,0) at slots 0,9,3 do not form a legal set (two features tie
	// pairwise without matching the third).
	tbl.Lock()
	tbl.PlaceToken(0, domain.Slot(0))
	tbl.PlaceToken(0, domain.Slot(9))
	tbl.PlaceToken(0, domain.Slot(3))
	d.adjudicateLocked(0)
	tbl.Unlock()

	if got := ps[0].Score(); got != 0 {
		t.Fatalf("expected score to remain 0 after an invalid claim, got %d", got)
	}
	if remaining, ok := disp.freezes[0]; !ok || remaining != d.penaltyFreeze {
		t.Fatalf("expected a penalty freeze of %v published, got %v", d.penaltyFreeze, remaining)
	}
}

func TestAdjudicateWakesStaleClaimWithoutPenalty(t *testing.T) {
	d, tbl, disp, ps := newTestDealer(t, testConfig())
	seedAscendingTable(d)

	// Only two tokens: the claim went stale (a token was removed) before
	// adjudication ran.
	tbl.Lock()
	tbl.PlaceToken(0, domain.Slot(0))
	tbl.PlaceToken(0, domain.Slot(1))
	ps[0].Suspend()
	d.adjudicateLocked(0)
	tbl.Unlock()

	if got := ps[0].Score(); got != 0 {
		t.Fatalf("expected no score change for a stale claim, got %d", got)
	}
	if _, penalized := disp.freezes[0]; penalized {
		t.Fatalf("expected no freeze published for a stale claim, got %v", disp.freezes[0])
	}
}

func TestCollisionIsResolvedByTheWinningClaimant(t *testing.T) {
	d, tbl, disp, ps := newTestDealer(t, testConfig())
	seedAscendingTable(d)

	// Participant 0 tokens a legal set at slots 0,1,2; participant 1 also
	// tokens slot 2 (shared) plus two slots that, together with slot 2,
	// are not a set — it doesn't matter, because slot 2 disappears first.
	tbl.Lock()
	tbl.PlaceToken(0, domain.Slot(0))
	tbl.PlaceToken(0, domain.Slot(1))
	tbl.PlaceToken(0, domain.Slot(2))
	tbl.PlaceToken(1, domain.Slot(2))
	tbl.PlaceToken(1, domain.Slot(4))
	tbl.PlaceToken(1, domain.Slot(5))

	d.adjudicateLocked(0) // 0 claims first and wins
	d.adjudicateLocked(1) // 1's claim is now stale: its token count dropped below SetSize
	tbl.Unlock()

	if got := ps[0].Score(); got != 1 {
		t.Fatalf("expected participant 0 to be awarded the point, got score %d", got)
	}
	if got := ps[1].Score(); got != 0 {
		t.Fatalf("expected participant 1 to score nothing from the collision, got %d", got)
	}
	if _, penalized := disp.freezes[1]; penalized {
		t.Fatalf("expected participant 1 to be woken without penalty, got freeze %v", disp.freezes[1])
	}
}

func TestShouldFinishTrueWhenContextCancelled(t *testing.T) {
	d, _, _, _ := newTestDealer(t, testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if !d.shouldFinish(ctx) {
		t.Fatalf("expected shouldFinish to be true once the context is cancelled")
	}
}

func TestShouldFinishFalseWithCardsInDeckAndOnTable(t *testing.T) {
	d, _, _, _ := newTestDealer(t, testConfig())
	seedAscendingTable(d)
	if d.shouldFinish(context.Background()) {
		t.Fatalf("expected shouldFinish to be false with a full table and cards left in the deck")
	}
}

func TestAnnounceWinnersPublishesEveryTopScorer(t *testing.T) {
	d, _, disp, ps := newTestDealer(t, testConfig())
	ps[0].AddScore(2)
	ps[1].AddScore(2)

	d.announceWinners()

	if len(disp.winners) != 2 || disp.winners[0] != 0 || disp.winners[1] != 1 {
		t.Fatalf("expected both tied participants announced as winners, got %v", disp.winners)
	}
}

func TestReshuffleInElapsedModeGuaranteesASetOnTheTable(t *testing.T) {
	cfg := testConfig()
	cfg.TurnTimeoutMillis = 0 // elapsed mode
	d, tbl, _, ps := newTestDealer(t, cfg)
	seedAscendingTable(d)

	for _, p := range ps {
		p.Start(context.Background())
	}
	defer func() {
		for _, p := range ps {
			p.RequestTerminate()
			p.Join()
		}
	}()

	d.reshuffle(context.Background())

	tbl.Lock()
	hasSet := tbl.CheckForSets()
	tbl.Unlock()
	if !hasSet {
		t.Fatalf("expected elapsed-mode reshuffle to guarantee a legal set on the table")
	}
}
