package engine

import (
	"reflect"
	"testing"

	"bridgetutor/internal/domain"
)

func TestUpdateBeliefs_WeakTwoNarrows(t *testing.T) {
	a := auctionOf(t, domain.SeatNorth, "2S")
	beliefs := UpdateBeliefs(a)

	n := beliefs[domain.SeatNorth]
	if n.HCPMin != 5 || n.HCPMax != 10 {
		t.Fatalf("opener HCP range = [%d,%d], want [5,10]", n.HCPMin, n.HCPMax)
	}
	if n.SuitMin[domain.SuitSpades] != 6 || n.SuitMax[domain.SuitSpades] != 7 {
		t.Fatalf("opener spade range = [%d,%d], want [6,7]",
			n.SuitMin[domain.SuitSpades], n.SuitMax[domain.SuitSpades])
	}
	if !n.Tags["weak_two"] {
		t.Fatalf("weak_two tag not set: %v", n.Tags)
	}
	if len(n.Trail) == 0 {
		t.Fatalf("no trail entries recorded for the weak two")
	}
}

func TestUpdateBeliefs_OpeningAndRaise(t *testing.T) {
	a := auctionOf(t, domain.SeatNorth, "1S", "Pass", "2S", "Pass")
	beliefs := UpdateBeliefs(a)

	n := beliefs[domain.SeatNorth]
	if n.HCPMin != 12 || n.SuitMin[domain.SuitSpades] != 5 {
		t.Fatalf("opener belief = HCP[%d,%d] spades>=%d, want 12+ with 5+ spades",
			n.HCPMin, n.HCPMax, n.SuitMin[domain.SuitSpades])
	}
	s := beliefs[domain.SeatSouth]
	if s.HCPMin != 6 || s.HCPMax != 9 {
		t.Fatalf("responder HCP range = [%d,%d], want [6,9]", s.HCPMin, s.HCPMax)
	}
	if s.SuitMin[domain.SuitSpades] < 3 {
		t.Fatalf("responder spade minimum = %d, want at least 3", s.SuitMin[domain.SuitSpades])
	}
	// The opening side promises 12+6 HCP, so the defenders can hold at
	// most 22 each.
	e := beliefs[domain.SeatEast]
	if e.HCPMin != 0 || e.HCPMax != 22 {
		t.Fatalf("silent defender range = [%d,%d], want [0,22]", e.HCPMin, e.HCPMax)
	}
}

func TestUpdateBeliefs_DeckClosure(t *testing.T) {
	a := auctionOf(t, domain.SeatNorth, "2C")
	beliefs := UpdateBeliefs(a)

	if got := beliefs[domain.SeatNorth].HCPMin; got != 22 {
		t.Fatalf("strong opener HCPMin = %d, want 22", got)
	}
	for _, seat := range []domain.Seat{domain.SeatEast, domain.SeatSouth, domain.SeatWest} {
		b := beliefs[seat]
		if b.HCPMax != 18 {
			t.Fatalf("seat %v HCPMax = %d, want 18 (40 minus the opener's 22)", seat, b.HCPMax)
		}
	}
}

func TestUpdateBeliefs_PassNarrowsOpeningSeat(t *testing.T) {
	a := auctionOf(t, domain.SeatNorth, "Pass")
	beliefs := UpdateBeliefs(a)

	n := beliefs[domain.SeatNorth]
	if n.HCPMin != 0 || n.HCPMax != 11 {
		t.Fatalf("passed-out opening seat range = [%d,%d], want [0,11]", n.HCPMin, n.HCPMax)
	}
}

// Beliefs are derived from the auction alone, so two replays must agree
// exactly, trail included.
func TestUpdateBeliefs_DerivedAndRepeatable(t *testing.T) {
	a := auctionOf(t, domain.SeatNorth, "1NT", "Pass", "2C", "Pass", "2H", "Pass")
	first := UpdateBeliefs(a)
	second := UpdateBeliefs(a)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("belief replay not repeatable")
	}
}

// Unmodeled calls must leave beliefs open rather than fail.
func TestUpdateBeliefs_UnmodeledCallIgnored(t *testing.T) {
	a := auctionOf(t, domain.SeatNorth, "5C")
	beliefs := UpdateBeliefs(a)

	n := beliefs[domain.SeatNorth]
	if n.HCPMin != 0 || n.HCPMax != 37 {
		t.Fatalf("unmodeled opening changed the range to [%d,%d]", n.HCPMin, n.HCPMax)
	}
	if len(n.Trail) != 0 {
		t.Fatalf("unmodeled opening left trail entries: %v", n.Trail)
	}
}

func TestSeatBelief_NarrowingNeverWidens(t *testing.T) {
	b := NewSeatBelief(domain.SeatNorth)
	b.narrowHCP(12, 21, "1S", "opening")
	b.narrowHCP(0, 37, "Pass", "should not widen")
	if b.HCPMin != 12 || b.HCPMax != 21 {
		t.Fatalf("range widened to [%d,%d]", b.HCPMin, b.HCPMax)
	}
	if len(b.Trail) != 1 {
		t.Fatalf("no-op narrowing appended a trail entry: %v", b.Trail)
	}

	b.narrowSuit(domain.SuitSpades, 5, 13, "1S", "opening")
	b.narrowSuit(domain.SuitSpades, 0, 13, "x", "should not widen")
	if b.SuitMin[domain.SuitSpades] != 5 {
		t.Fatalf("suit minimum widened to %d", b.SuitMin[domain.SuitSpades])
	}
}
