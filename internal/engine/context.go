package engine

import (
	"fmt"

	"bridgetutor/internal/domain"
)

// Role is the auction-phase role of a seat relative to the opening side.
type Role int

const (
	// RoleUnknown applies while nobody has opened.
	RoleUnknown Role = iota
	RoleOpener
	RoleResponder
	RoleOvercaller
	RoleAdvancer
)

var roleNames = [...]string{"unknown", "opener", "responder", "overcaller", "advancer"}

func (r Role) String() string { return roleNames[r] }

// AuctionContext is the structured view of the auction from one seat's
// perspective. It is rebuilt from the full call sequence on every request.
type AuctionContext struct {
	Seat          domain.Seat
	Dealer        domain.Seat
	Vulnerability domain.Vulnerability

	Role     Role
	Complete bool

	Opened        bool
	OpenerSeat    domain.Seat
	OpeningBid    domain.Bid
	PartnerOpened bool
	OppOpened     bool

	HasContract      bool
	LastContract     domain.Bid
	LastContractSeat domain.Seat
	Doubled          bool
	Redoubled        bool

	ConsecutivePasses int
	MyRealBids        int
	MyActions         int
	PartnerHasReal    bool
	PartnerLastReal   domain.Bid
	PartnerOvercalled bool
	PartnerDoubled    bool
	PartnerMichaels   bool
	MichaelsSuit      domain.Suit
	Competition       bool

	HasAgreedSuit bool
	AgreedSuit    domain.Strain

	// Notrump-convention state for the asking side. Only this seat's
	// partnership is tracked; opponents' agreements are their business.
	NotrumpOpening     domain.Bid
	NotrumpOpenerSeat  domain.Seat
	HasNotrumpOpening  bool
	StaymanAsked       bool
	StaymanAnswered    bool
	StaymanReply       domain.Bid
	StaymanAnswerDue   bool
	StaymanContinueDue bool
	TransferSuit       domain.Suit
	TransferInProgress bool
	TransferCompleted  bool
	SuperAccepted      bool
	TransferAcceptDue  bool
	TransferContinueDue bool
	BlackwoodAsked     bool
	BlackwoodAskerSeat domain.Seat
	BlackwoodAnswered  bool
	BlackwoodReply     domain.Bid
	BlackwoodAnswerDue bool
	BlackwoodSignoffDue bool
}

// ParseContext re-scans the full auction and produces the context for the
// given seat. It fails with ErrMalformedAuction when the recorded seats do
// not follow rotation from the dealer.
func ParseContext(auction *domain.Auction, seat domain.Seat) (AuctionContext, error) {
	ctx := AuctionContext{
		Seat:          seat,
		Dealer:        auction.Dealer,
		Vulnerability: auction.Vulnerability,
	}

	for i, e := range auction.Entries {
		want := domain.Seat((int(auction.Dealer) + i) % 4)
		if e.Seat != want {
			return AuctionContext{}, fmt.Errorf("%w: entry %d by %v, expected %v",
				domain.ErrMalformedAuction, i, e.Seat, want)
		}
	}

	ctx.Complete = auction.IsComplete()
	ctx.ConsecutivePasses = auction.ConsecutivePasses()
	ctx.MyRealBids = auction.RealBidCount(seat)
	ctx.MyActions = auction.ActionCount(seat)

	if bid, who, ok := auction.LastContract(); ok {
		ctx.HasContract = true
		ctx.LastContract = bid
		ctx.LastContractSeat = who
	}
	ctx.Doubled, ctx.Redoubled = auction.ContractDoubled()

	partner := seat.Partner()
	var overcallerSeat domain.Seat
	overcallerKnown := false
	sideRealBids := [2]bool{} // side index: seat % 2

	// strains bid naturally per seat, for raise-based suit agreement
	var strainsBid [4][5]bool

	for _, e := range auction.Entries {
		b := e.Bid
		if e.Seat == partner {
			if b.IsContract() {
				ctx.PartnerHasReal = true
				ctx.PartnerLastReal = b
			}
		}
		if b.IsContract() {
			sideRealBids[int(e.Seat)%2] = true
		}
		if !ctx.Opened && b.IsContract() {
			ctx.Opened = true
			ctx.OpenerSeat = e.Seat
			ctx.OpeningBid = b
		} else if ctx.Opened && !overcallerKnown && !e.Seat.SameSide(ctx.OpenerSeat) {
			if b.IsContract() || b.Call == domain.CallDouble {
				overcallerSeat = e.Seat
				overcallerKnown = true
				if e.Seat == partner {
					ctx.PartnerOvercalled = b.IsContract()
					ctx.PartnerDoubled = b.Call == domain.CallDouble
					// Michaels is the direct cue-bid only; a jump in
					// their suit is natural.
					if b.IsContract() && ctx.OpeningBid.IsContract() &&
						b.Strain == ctx.OpeningBid.Strain && b.Strain != domain.StrainNoTrump &&
						b.Level == ctx.OpeningBid.Level+1 {
						ctx.PartnerMichaels = true
						ctx.MichaelsSuit = domain.Suit(b.Strain)
					}
				}
			}
		}
		if b.IsContract() && b.Strain != domain.StrainNoTrump {
			if strainsBid[e.Seat.Partner()][b.Strain] && e.Seat.SameSide(seat) {
				ctx.HasAgreedSuit = true
				ctx.AgreedSuit = b.Strain
			}
			strainsBid[e.Seat][b.Strain] = true
		}
	}

	ctx.Competition = sideRealBids[0] && sideRealBids[1]
	if ctx.Opened {
		ctx.PartnerOpened = ctx.OpenerSeat == partner
		ctx.OppOpened = !ctx.OpenerSeat.SameSide(seat)
		switch {
		case ctx.OpenerSeat == seat:
			ctx.Role = RoleOpener
		case ctx.PartnerOpened:
			ctx.Role = RoleResponder
		case overcallerKnown && overcallerSeat == seat:
			ctx.Role = RoleOvercaller
		case overcallerKnown && overcallerSeat == partner:
			ctx.Role = RoleAdvancer
		case ctx.PartnerOvercalled || ctx.PartnerDoubled:
			ctx.Role = RoleAdvancer
		default:
			ctx.Role = RoleOvercaller
		}
	}

	parseNotrumpConventions(auction, seat, &ctx)
	return ctx, nil
}

// parseNotrumpConventions walks the auction again tracking the Stayman,
// Jacoby transfer and Blackwood state machines for this seat's side.
func parseNotrumpConventions(auction *domain.Auction, seat domain.Seat, ctx *AuctionContext) {
	mySide := func(s domain.Seat) bool { return s.SameSide(seat) }

	agreed := false
	var strainsBid [4][5]bool
	blackwoodOpen := false // asked, answer pending
	var asker domain.Seat

	for _, e := range auction.Entries {
		b := e.Bid
		if !b.IsContract() {
			continue
		}

		if mySide(e.Seat) {
			switch {
			// Only the opening bid itself starts the machinery; a 1NT or
			// 2NT rebid after a suit opening is natural.
			case !ctx.HasNotrumpOpening && ctx.Opened && e.Seat == ctx.OpenerSeat &&
				b == ctx.OpeningBid &&
				b.Strain == domain.StrainNoTrump && (b.Level == 1 || b.Level == 2):
				ctx.HasNotrumpOpening = true
				ctx.NotrumpOpening = b
				ctx.NotrumpOpenerSeat = e.Seat

			case ctx.HasNotrumpOpening && e.Seat == ctx.NotrumpOpenerSeat.Partner() &&
				!ctx.StaymanAsked && !ctx.TransferInProgress && !ctx.TransferCompleted:
				relay := ctx.NotrumpOpening.Level + 1
				switch {
				case b.Level == relay && b.Strain == domain.StrainClubs:
					ctx.StaymanAsked = true
				case b.Level == relay && b.Strain == domain.StrainDiamonds:
					ctx.TransferInProgress = true
					ctx.TransferSuit = domain.SuitHearts
				case b.Level == relay && b.Strain == domain.StrainHearts:
					ctx.TransferInProgress = true
					ctx.TransferSuit = domain.SuitSpades
				}

			case ctx.StaymanAsked && !ctx.StaymanAnswered && e.Seat == ctx.NotrumpOpenerSeat:
				ctx.StaymanAnswered = true
				ctx.StaymanReply = b

			case ctx.TransferInProgress && e.Seat == ctx.NotrumpOpenerSeat:
				if b.Strain == ctx.TransferSuit.Strain() {
					ctx.TransferInProgress = false
					ctx.TransferCompleted = true
					ctx.SuperAccepted = b.Level > ctx.NotrumpOpening.Level+1
					if ctx.SuperAccepted {
						agreed = true
						ctx.HasAgreedSuit = true
						ctx.AgreedSuit = b.Strain
					}
				}

			case blackwoodOpen && e.Seat == asker.Partner() &&
				b.Level == 5 && b.Strain != domain.StrainNoTrump:
				blackwoodOpen = false
				ctx.BlackwoodAnswered = true
				ctx.BlackwoodReply = b
			}

			// 4NT is Blackwood only once the partnership has agreed a
			// suit; without agreement it stays quantitative.
			if b.Level == 4 && b.Strain == domain.StrainNoTrump && agreed && !ctx.BlackwoodAsked {
				ctx.BlackwoodAsked = true
				ctx.BlackwoodAskerSeat = e.Seat
				asker = e.Seat
				blackwoodOpen = true
			}

			if b.Strain != domain.StrainNoTrump && strainsBid[e.Seat.Partner()][b.Strain] {
				agreed = true
			}
		}
		strainsBid[e.Seat][b.Strain] = true
	}

	// Derived "whose move" flags used by the router.
	ctx.StaymanAnswerDue = ctx.StaymanAsked && !ctx.StaymanAnswered && seat == ctx.NotrumpOpenerSeat
	ctx.StaymanContinueDue = ctx.StaymanAnswered && seat == ctx.NotrumpOpenerSeat.Partner() &&
		!bidAfter(auction, seat, ctx.StaymanReply)
	ctx.TransferAcceptDue = ctx.TransferInProgress && seat == ctx.NotrumpOpenerSeat
	ctx.TransferContinueDue = ctx.TransferCompleted && seat == ctx.NotrumpOpenerSeat.Partner() &&
		!bidAfterStrain(auction, seat, ctx.TransferSuit.Strain())
	ctx.BlackwoodAnswerDue = ctx.BlackwoodAsked && !ctx.BlackwoodAnswered && seat == ctx.BlackwoodAskerSeat.Partner()
	ctx.BlackwoodSignoffDue = ctx.BlackwoodAnswered && seat == ctx.BlackwoodAskerSeat
}

// bidAfter reports whether seat made any real bid after partner's reply bid.
func bidAfter(auction *domain.Auction, seat domain.Seat, reply domain.Bid) bool {
	seenReply := false
	for _, e := range auction.Entries {
		if e.Bid == reply && e.Seat != seat {
			seenReply = true
			continue
		}
		if seenReply && e.Seat == seat && e.Bid.IsContract() {
			return true
		}
	}
	return false
}

// bidAfterStrain reports whether seat made a real bid after partner first
// bid the given strain.
func bidAfterStrain(auction *domain.Auction, seat domain.Seat, st domain.Strain) bool {
	seen := false
	for _, e := range auction.Entries {
		if e.Seat == seat.Partner() && e.Bid.IsContract() && e.Bid.Strain == st {
			seen = true
			continue
		}
		if seen && e.Seat == seat && e.Bid.IsContract() {
			return true
		}
	}
	return false
}
