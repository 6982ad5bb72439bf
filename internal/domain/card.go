// Package domain holds the pure, concurrency-free data and rules of the card
// game: cards, slots, deck construction, and the combinatorial set test.
package domain

// Card is an opaque card identifier in the range [0, DeckSize).
type Card int

// Slot is a fixed grid position in the range [0, TableSize).
type Slot int

// NoCard and NoSlot are the absent-value sentinels used by the table's
// partial maps; a real Card/Slot is always >= 0.
const (
	NoCard Card = -1
	NoSlot Slot = -1
)

// SetSize is the number of cards that form a legal set, and the cap on a
// participant's token count. config.Config exposes this as FeatureSize at
// the environment boundary and validates it against this constant, but
// inside the engine it is always SetSize.
const SetSize = 3

// FeatureCount is the number of independent attributes encoded in a card
// identifier (count, color, shape, shading in the classic game).
const FeatureCount = 4

// FeatureCardinality is the number of values each feature can take.
const FeatureCardinality = 3
