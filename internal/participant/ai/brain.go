// Package ai holds the synthetic-input decision strategies a non-human
// participant presses keys with: a single interface, a factory keyed by
// difficulty mode, and one strategy struct per mode.
package ai

import (
	"fmt"

	"setengine/internal/domain"
)

// TableView is the read-only slice of table.Table a Brain needs. Callers
// must already hold the table's mutex — the same composition rule every
// other table query follows — since a Brain is invoked from inside the
// participant's own locked section.
type TableView interface {
	// HintsForAI returns the slots of one randomly chosen legal set on the
	// table, or nil if none exists.
	HintsForAI() []domain.Slot
	// UsedSlots returns every currently occupied slot.
	UsedSlots() []domain.Slot
}

// Brain decides which slots a synthetic participant should press next.
type Brain interface {
	// NextPresses returns the slots to press this tick, given the
	// participant's current tokens and a read-only view of the table.
	NextPresses(tokens []domain.Slot, view TableView) []domain.Slot
}

// Mode selects which Brain NewBrain constructs.
type Mode int

const (
	// ModeHint presses the slots of a legal set the table already knows
	// about, or clears a rejected full set by re-pressing it.
	ModeHint Mode = iota
	// ModeRandom presses one uniformly random occupied slot.
	ModeRandom
)

// NewBrain constructs a Brain for the given mode.
func NewBrain(mode Mode) (Brain, error) {
	switch mode {
	case ModeHint:
		return hintBrain{}, nil
	case ModeRandom:
		return randomBrain{}, nil
	default:
		return nil, fmt.Errorf("ai: unknown brain mode %d", mode)
	}
}
