package dealer

import (
	"setengine/internal/domain"
	"setengine/internal/participant"
)

// adjudicateLocked implements §4.3.2 for one claim. Caller must hold the
// table mutex.
//
// Collision handling (scenario 3: two participants token a shared slot,
// the earlier claim wins) falls out of step 1 for free: when the later
// claim is eventually drained, its holder's token count has already
// dropped below SetSize because the winning claim's award stripped the
// shared slot — no explicit claimQueue-splice is needed the way the
// original's doubly-linked queue required.
func (d *Dealer) adjudicateLocked(id int) {
	p := d.participantByID(id)
	if p == nil {
		return
	}

	tokens := d.tbl.PlayerTokens(id)
	if len(tokens) < domain.SetSize {
		p.WakeFromClaim(0)
		return
	}

	var cards [domain.SetSize]domain.Card
	for i, slot := range tokens {
		card, occupied := d.tbl.Card(slot)
		if !occupied {
			d.penalizeLocked(p)
			return
		}
		cards[i] = card
	}

	if !d.tester.TestSet(cards) {
		d.penalizeLocked(p)
		return
	}

	d.awardSetLocked(p, tokens)
}

func (d *Dealer) penalizeLocked(p *participant.Participant) {
	p.WakeFromClaim(d.penaltyFreeze)
}

func (d *Dealer) awardSetLocked(p *participant.Participant, slots []domain.Slot) {
	removed := make([]domain.Slot, len(slots))
	copy(removed, slots)

	d.tbl.RemovePlayerTokens(p.ID())
	for _, slot := range removed {
		d.tbl.RemoveCard(slot)
	}
	d.placeCardsOnTableLocked()

	score := p.AddScore(1)
	d.display.SetScore(p.ID(), score)
	p.WakeFromClaim(d.pointFreeze)
}
