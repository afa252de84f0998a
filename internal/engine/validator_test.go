package engine

import (
	"errors"
	"testing"

	"bridgetutor/internal/domain"
)

func strongFeatures(t *testing.T) HandFeatures {
	t.Helper()
	f, err := ExtractFeatures(hand(t, "AQ32", "KJ4", "Q4", "AJ32"))
	if err != nil {
		t.Fatalf("ExtractFeatures: %v", err)
	}
	return f
}

func TestValidate_AcceptsLegalCandidate(t *testing.T) {
	a := auctionOf(t, domain.SeatNorth, "1C", "Pass")
	res := result("response", call(domain.NewBid(1, domain.StrainSpades), "new suit"))

	got, err := Validate(res, strongFeatures(t), a, DefaultTuning)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got.Bid != domain.NewBid(1, domain.StrainSpades) || got.Adjusted {
		t.Fatalf("got %+v, want an unadjusted 1S", got)
	}
}

func TestValidate_RaisesWithinBound(t *testing.T) {
	a := auctionOf(t, domain.SeatNorth, "1C", "3H", "Pass", "Pass")
	res := result("rebid", call(domain.NewBid(2, domain.StrainNoTrump), "balanced rebid"))

	got, err := Validate(res, strongFeatures(t), a, DefaultTuning)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got.Bid != domain.NewBid(3, domain.StrainNoTrump) {
		t.Fatalf("bid = %v, want 3NT", got.Bid)
	}
	if !got.Adjusted {
		t.Fatalf("raised candidate not marked Adjusted")
	}
}

func TestValidate_BoundExceededFallsThrough(t *testing.T) {
	// 1H under a 4S contract would need a three-level raise; the next
	// candidate must win instead.
	a := auctionOf(t, domain.SeatNorth, "4S", "Pass", "Pass")
	res := result("overcall",
		call(domain.NewBid(1, domain.StrainHearts), "natural overcall"),
		call(domain.Pass(), "nothing to say"),
	)

	got, err := Validate(res, strongFeatures(t), a, DefaultTuning)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !got.Bid.IsPass() {
		t.Fatalf("bid = %v, want Pass", got.Bid)
	}
}

func TestValidate_AllCandidatesFailMeansPass(t *testing.T) {
	a := auctionOf(t, domain.SeatNorth, "4S", "Pass", "Pass")
	res := result("overcall", call(domain.NewBid(1, domain.StrainHearts), "natural overcall"))

	got, err := Validate(res, strongFeatures(t), a, DefaultTuning)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !got.Bid.IsPass() || !got.EscalationBounded {
		t.Fatalf("got %+v, want the bounded Pass fallback", got)
	}
}

// BypassHCP waives the point-count sanity check, never the level bound.
func TestValidate_BypassDoesNotRelaxTheBound(t *testing.T) {
	weak, err := ExtractFeatures(hand(t, "KQJT987", "32", "432", "2"))
	if err != nil {
		t.Fatalf("ExtractFeatures: %v", err)
	}

	// Sanity waived: a 3-level preempt on 6 HCP stands.
	open := auctionOf(t, domain.SeatNorth)
	res := result("opening", conventionCall(domain.NewBid(3, domain.StrainSpades), "preempt", "weak seven-carder"))
	got, err := Validate(res, weak, open, DefaultTuning)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got.Bid != domain.NewBid(3, domain.StrainSpades) {
		t.Fatalf("bid = %v, want 3S", got.Bid)
	}

	// Bound still applies: the same candidate under a 6S contract cannot
	// escalate to 7S+.
	crowded := auctionOf(t, domain.SeatNorth, "6S", "Pass", "Pass")
	got, err = Validate(res, weak, crowded, DefaultTuning)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !got.Bid.IsPass() || !got.EscalationBounded {
		t.Fatalf("got %+v, want the bounded Pass fallback", got)
	}
}

func TestValidate_SanityCheckSkipsOverbids(t *testing.T) {
	weak, err := ExtractFeatures(hand(t, "5432", "432", "5432", "32"))
	if err != nil {
		t.Fatalf("ExtractFeatures: %v", err)
	}
	a := auctionOf(t, domain.SeatNorth)
	res := result("opening",
		call(domain.NewBid(4, domain.StrainSpades), "game on nothing"),
		call(domain.Pass(), "too weak to act"),
	)

	got, err := Validate(res, weak, a, DefaultTuning)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !got.Bid.IsPass() {
		t.Fatalf("bid = %v, want the sanity check to discard 4S", got.Bid)
	}
}

func TestValidate_IllegalDoubleIsDefect(t *testing.T) {
	// Doubling partner's contract is a module bug, not a skippable
	// candidate.
	a := auctionOf(t, domain.SeatNorth, "1S", "Pass")
	res := result("response", call(domain.Double(), "broken module"))

	if _, err := Validate(res, strongFeatures(t), a, DefaultTuning); !errors.Is(err, domain.ErrIllegalCall) {
		t.Fatalf("err = %v, want ErrIllegalCall", err)
	}
}

func TestValidate_LegalDoubleAndRedouble(t *testing.T) {
	// East doubles South's contract.
	doubleOK := auctionOf(t, domain.SeatNorth, "Pass", "Pass", "1S", "Pass", "Pass")
	res := result("overcall", call(domain.Double(), "takeout"))
	got, err := Validate(res, strongFeatures(t), doubleOK, DefaultTuning)
	if err != nil {
		t.Fatalf("Validate double: %v", err)
	}
	if got.Bid.Call != domain.CallDouble {
		t.Fatalf("bid = %v, want X", got.Bid)
	}

	// South redoubles after West's double.
	redoubleOK := auctionOf(t, domain.SeatNorth, "Pass", "Pass", "1S", "X")
	res = result("rebid", call(domain.Redouble(), "confident"))
	got, err = Validate(res, strongFeatures(t), redoubleOK, DefaultTuning)
	if err != nil {
		t.Fatalf("Validate redouble: %v", err)
	}
	if got.Bid.Call != domain.CallRedouble {
		t.Fatalf("bid = %v, want XX", got.Bid)
	}
}
