package engine

import (
	"testing"

	"bridgetutor/internal/domain"
)

func openingCtx(t *testing.T, vuln domain.Vulnerability) AuctionContext {
	t.Helper()
	a := domain.NewAuction(domain.SeatNorth, vuln)
	ctx, err := ParseContext(a, domain.SeatNorth)
	if err != nil {
		t.Fatalf("ParseContext: %v", err)
	}
	return ctx
}

func TestOpeningModule(t *testing.T) {
	m := &openingModule{t: DefaultTuning}

	cases := []struct {
		name string
		hand domain.Hand
		want domain.Bid
	}{
		{
			name: "balanced 17 opens 1NT",
			hand: hand(t, "AQ32", "KJ4", "Q4", "AJ32"),
			want: domain.NewBid(1, domain.StrainNoTrump),
		},
		{
			name: "balanced 20 opens 2NT",
			hand: hand(t, "AKQ2", "KQ4", "QJ3", "K32"),
			want: domain.NewBid(2, domain.StrainNoTrump),
		},
		{
			name: "26 count opens 2C",
			hand: hand(t, "AKQ2", "AK2", "AQ2", "A32"),
			want: domain.NewBid(2, domain.StrainClubs),
		},
		{
			name: "five card major at 13",
			hand: hand(t, "AKJ32", "K32", "Q32", "32"),
			want: domain.NewBid(1, domain.StrainSpades),
		},
		{
			name: "better minor on 4-4",
			hand: hand(t, "A32", "K2", "QJ32", "Q432"),
			want: domain.NewBid(1, domain.StrainDiamonds),
		},
		{
			name: "rule of twenty shape opening",
			hand: hand(t, "AQ432", "2", "32", "KJ432"),
			want: domain.NewBid(1, domain.StrainSpades),
		},
		{
			name: "six card suit weak two",
			hand: hand(t, "KQJT98", "432", "32", "32"),
			want: domain.NewBid(2, domain.StrainSpades),
		},
		{
			name: "seven card suit three level preempt",
			hand: hand(t, "KQJT987", "32", "432", "2"),
			want: domain.NewBid(3, domain.StrainSpades),
		},
		{
			name: "flat seven count passes",
			hand: hand(t, "Q432", "Q32", "J32", "Q32"),
			want: domain.Pass(),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := ExtractFeatures(tc.hand)
			if err != nil {
				t.Fatalf("ExtractFeatures: %v", err)
			}
			res := m.Evaluate(f, openingCtx(t, domain.VulnNone))
			if len(res.Candidates) == 0 {
				t.Fatalf("no candidates")
			}
			if got := res.Candidates[0].Bid; got != tc.want {
				t.Fatalf("top candidate = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOpeningModule_PreemptCarriesBypass(t *testing.T) {
	e := New(DefaultTuning)
	h := hand(t, "KQJT987", "32", "432", "2") // 6 HCP, seven spades
	a := domain.NewAuction(domain.SeatNorth, domain.VulnNone)

	got, err := e.NextBid(h, a, domain.SeatNorth)
	if err != nil {
		t.Fatalf("NextBid: %v", err)
	}
	if got.Bid != domain.NewBid(3, domain.StrainSpades) {
		t.Fatalf("bid = %v, want 3S", got.Bid)
	}
	if !got.Meta.BypassHCP || got.Meta.Convention != "preempt" {
		t.Fatalf("meta = %+v, want a BypassHCP preempt", got.Meta)
	}
}

// A vulnerable preempt needs honour strength in the long suit.
func TestOpeningModule_VulnerablePreemptNeedsSuitQuality(t *testing.T) {
	m := &openingModule{t: DefaultTuning}
	f, err := ExtractFeatures(hand(t, "JT98765", "Q32", "Q2", "K"))
	if err != nil {
		t.Fatalf("ExtractFeatures: %v", err)
	}
	res := m.Evaluate(f, openingCtx(t, domain.VulnBoth))
	if got := res.Candidates[0].Bid; !got.IsPass() {
		t.Fatalf("vulnerable with a weak suit bid %v, want Pass", got)
	}
}

func TestOpeningModule_NotrumpListsSuitAlternative(t *testing.T) {
	m := &openingModule{t: DefaultTuning}
	f, err := ExtractFeatures(hand(t, "AQ32", "KJ4", "Q4", "AJ32"))
	if err != nil {
		t.Fatalf("ExtractFeatures: %v", err)
	}
	res := m.Evaluate(f, openingCtx(t, domain.VulnNone))
	alts := res.Candidates[0].Meta.Alternatives
	if len(alts) != 1 || alts[0] != domain.NewBid(1, domain.StrainClubs) {
		t.Fatalf("alternatives = %v, want [1C]", alts)
	}
}
