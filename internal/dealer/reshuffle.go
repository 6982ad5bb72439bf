package dealer

import (
	"context"

	"setengine/internal/domain"
)

// reshuffle implements §4.3.3: suspend every participant, cycle the table
// back into the deck and refill it (repeating until a legal set exists on
// the table, in elapsed/no-timer modes), then wake everyone back up.
func (d *Dealer) reshuffle(ctx context.Context) {
	d.publishTimerReset()

	d.tbl.Lock()
	for _, p := range d.participants {
		p.Suspend()
	}

	d.cycleTableUntilSetOrGiveUpLocked(ctx, d.requiresSetOnTable())

	for _, p := range d.participants {
		p.WakeFromClaim(0)
	}
	d.tbl.Unlock()
}

func (d *Dealer) publishTimerReset() {
	switch {
	case d.turnTimeout < 0:
	case d.turnTimeout == 0:
		d.display.SetElapsed(0)
	default:
		d.display.SetCountdown(d.turnTimeout, false)
	}
}

// cycleTableUntilSetOrGiveUpLocked returns every table card to the deck,
// shuffles, and refills, repeating while requireSet demands a legal set on
// the table and none exists yet (and the game isn't ending anyway). Caller
// must hold the table mutex.
func (d *Dealer) cycleTableUntilSetOrGiveUpLocked(ctx context.Context, requireSet bool) {
	for {
		d.returnTableToDeckLocked()
		d.deck = domain.ShuffleDeck(d.deck)
		d.placeCardsOnTableLocked()

		if !requireSet || ctx.Err() != nil || d.tbl.CheckForSets() || d.noLegalSetAnywhereLocked() {
			return
		}
	}
}

func (d *Dealer) returnTableToDeckLocked() {
	d.tbl.ResetAllTokens()
	for _, slot := range d.tbl.UsedSlots() {
		card, occupied := d.tbl.Card(slot)
		if !occupied {
			continue
		}
		d.tbl.RemoveCard(slot)
		d.deck = append(d.deck, card)
	}
}
