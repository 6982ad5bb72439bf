package domain

// CardToFeatures decomposes a card identifier into its FeatureCount
// base-FeatureCardinality digits. This is the classic "Set" encoding: a card
// id in [0, FeatureCardinality^FeatureCount) maps to a unique combination of
// independent attributes (count, color, shape, shading).
func CardToFeatures(c Card) [FeatureCount]int {
	var features [FeatureCount]int
	n := int(c)
	for i := 0; i < FeatureCount; i++ {
		features[i] = n % FeatureCardinality
		n /= FeatureCardinality
	}
	return features
}

// TestSet reports whether the three given cards form a legal set: for every
// feature, the three values are either all equal or all distinct.
func TestSet(cards [SetSize]Card) bool {
	f0 := CardToFeatures(cards[0])
	f1 := CardToFeatures(cards[1])
	f2 := CardToFeatures(cards[2])
	for i := 0; i < FeatureCount; i++ {
		allSame := f0[i] == f1[i] && f1[i] == f2[i]
		allDiff := f0[i] != f1[i] && f1[i] != f2[i] && f0[i] != f2[i]
		if !allSame && !allDiff {
			return false
		}
	}
	return true
}

// FindSets enumerates up to maxResults legal triplets drawn from cards,
// stopping early once the cap is reached. Passing maxResults <= 0 returns
// every legal triplet.
func FindSets(cards []Card, maxResults int) [][SetSize]Card {
	var found [][SetSize]Card
	n := len(cards)
	for i := 0; i < n-2; i++ {
		for j := i + 1; j < n-1; j++ {
			for k := j + 1; k < n; k++ {
				triple := [SetSize]Card{cards[i], cards[j], cards[k]}
				if TestSet(triple) {
					found = append(found, triple)
					if maxResults > 0 && len(found) >= maxResults {
						return found
					}
				}
			}
		}
	}
	return found
}

// SetTester is the concrete, stateless implementation of ports.SetTester.
// It holds no fields because the rules it applies never change at runtime,
// so a zero value is always ready to use and safe to share across goroutines.
type SetTester struct{}

// TestSet implements ports.SetTester.
func (SetTester) TestSet(cards [SetSize]Card) bool { return TestSet(cards) }

// FindSets implements ports.SetTester.
func (SetTester) FindSets(cards []Card, maxResults int) [][SetSize]Card {
	return FindSets(cards, maxResults)
}

// CardToFeatures implements ports.SetTester.
func (SetTester) CardToFeatures(c Card) [FeatureCount]int { return CardToFeatures(c) }
