package ai

import (
	"math/rand"

	"setengine/internal/domain"
)

// randomBrain ignores whether a set exists and just presses one uniformly
// random occupied slot.
type randomBrain struct{}

func (randomBrain) NextPresses(tokens []domain.Slot, view TableView) []domain.Slot {
	used := view.UsedSlots()
	if len(used) == 0 {
		return nil
	}
	return []domain.Slot{used[rand.Intn(len(used))]}
}
