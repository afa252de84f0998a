package engine

import (
	"fmt"

	"bridgetutor/internal/domain"
)

// Stopper grades the holding in a suit for notrump purposes.
type Stopper int

const (
	// StopperNone means the suit can run against us.
	StopperNone Stopper = iota
	// StopperPartial means the suit is guarded if partner contributes.
	StopperPartial
	// StopperFull means the suit is held outright.
	StopperFull
)

// HandFeatures is a derived, read-only snapshot of a hand's strength and
// shape. It is recomputed on every evaluation call and never mutated.
type HandFeatures struct {
	HCP        int
	Aces       int
	Kings      int
	SuitLength [4]int // indexed by domain.Suit
	SuitHCP    [4]int
	DistPoints int // HCP plus one point per card past four in each suit
	Balanced   bool
	Stoppers   [4]Stopper
}

// ExtractFeatures converts a hand into structured features. It fails only
// when the hand does not contain exactly 13 unique cards.
func ExtractFeatures(hand domain.Hand) (HandFeatures, error) {
	if len(hand) != 13 {
		return HandFeatures{}, fmt.Errorf("%w: %d cards", domain.ErrInvalidHand, len(hand))
	}

	seen := make(map[domain.Card]bool, 13)
	var f HandFeatures
	tops := [4][]int{} // ranks per suit, used for stopper grading

	for _, c := range hand {
		if c.Rank < 2 || c.Rank > domain.RankAce || c.Suit < domain.SuitClubs || c.Suit > domain.SuitSpades {
			return HandFeatures{}, fmt.Errorf("%w: bad card %v", domain.ErrInvalidHand, c)
		}
		if seen[c] {
			return HandFeatures{}, fmt.Errorf("%w: duplicate card %v", domain.ErrInvalidHand, c)
		}
		seen[c] = true

		f.HCP += c.HCP()
		switch c.Rank {
		case domain.RankAce:
			f.Aces++
		case domain.RankKing:
			f.Kings++
		}
		f.SuitLength[c.Suit]++
		f.SuitHCP[c.Suit] += c.HCP()
		tops[c.Suit] = append(tops[c.Suit], c.Rank)
	}

	f.DistPoints = f.HCP
	doubletons := 0
	shortest := 13
	for s := domain.SuitClubs; s <= domain.SuitSpades; s++ {
		length := f.SuitLength[s]
		if length > 4 {
			f.DistPoints += length - 4
		}
		if length == 2 {
			doubletons++
		}
		if length < shortest {
			shortest = length
		}
		f.Stoppers[s] = gradeStopper(tops[s])
	}
	f.Balanced = shortest >= 2 && doubletons <= 1

	return f, nil
}

// LongestSuit returns the longest suit, preferring the higher-ranked suit
// on ties so the evaluation order stays deterministic.
func (f HandFeatures) LongestSuit() domain.Suit {
	best := domain.SuitClubs
	for s := domain.SuitDiamonds; s <= domain.SuitSpades; s++ {
		if f.SuitLength[s] >= f.SuitLength[best] {
			best = s
		}
	}
	return best
}

// HasStopper reports a full stopper in the given strain. Notrump always
// reports true.
func (f HandFeatures) HasStopper(st domain.Strain) bool {
	suit, ok := st.Suit()
	if !ok {
		return true
	}
	return f.Stoppers[suit] == StopperFull
}

func gradeStopper(ranks []int) Stopper {
	hasA, hasK, hasQ, hasJ := false, false, false, false
	for _, r := range ranks {
		switch r {
		case domain.RankAce:
			hasA = true
		case domain.RankKing:
			hasK = true
		case domain.RankQueen:
			hasQ = true
		case domain.RankJack:
			hasJ = true
		}
	}
	n := len(ranks)
	switch {
	case hasA,
		hasK && n >= 2,
		hasQ && n >= 3,
		hasJ && n >= 4:
		return StopperFull
	case hasK,
		hasQ && n >= 2,
		hasJ && n >= 3:
		return StopperPartial
	default:
		return StopperNone
	}
}
