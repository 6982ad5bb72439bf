package ai

import "setengine/internal/domain"

// hintBrain plays toward a legal set it already knows exists: if the
// participant is sitting on a full, presumably-rejected set, it clears it by
// re-pressing every tokened slot; otherwise it asks the table for one and
// presses its slots.
type hintBrain struct{}

func (hintBrain) NextPresses(tokens []domain.Slot, view TableView) []domain.Slot {
	if len(tokens) == domain.SetSize {
		out := make([]domain.Slot, len(tokens))
		copy(out, tokens)
		return out
	}
	return view.HintsForAI()
}
