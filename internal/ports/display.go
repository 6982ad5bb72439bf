// Package ports declares the interfaces the core coordination engine
// consumes from and exposes to its external collaborators: the rendering
// surface, the combinatorial set-testing utility, and key-event ingress.
// Nothing in this package depends on table, dealer, or participant state —
// it only depends on the plain domain types every adapter speaks.
package ports

import (
	"time"

	"setengine/internal/domain"
)

// DisplaySink is the rendering surface the core publishes state changes to.
// Every call must be non-blocking from the core's standpoint; a slow
// implementation is the adapter's problem, not the core's.
type DisplaySink interface {
	PlaceCard(card domain.Card, slot domain.Slot)
	RemoveCard(slot domain.Slot)
	PlaceToken(participant int, slot domain.Slot)
	RemoveToken(participant int, slot domain.Slot)
	RemoveAllTokens()
	RemoveSlotTokens(slot domain.Slot)
	SetScore(participant int, score int)
	SetFreeze(participant int, remaining time.Duration)
	SetCountdown(remaining time.Duration, warn bool)
	SetElapsed(elapsed time.Duration)
	AnnounceWinners(ids []int)
	Dispose()
}
