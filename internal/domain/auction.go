package domain

// AuctionEntry is one call in the auction together with the seat that made
// it and any explanation or metadata attached by the engine.
type AuctionEntry struct {
	Seat        Seat              `json:"seat"`
	Bid         Bid               `json:"bid"`
	Explanation string            `json:"explanation,omitempty"`
	Meta        map[string]string `json:"meta,omitempty"`
}

// Auction is the append-only ordered call sequence for one deal.
type Auction struct {
	Dealer        Seat          `json:"dealer"`
	Vulnerability Vulnerability `json:"vulnerability"`
	Entries       []AuctionEntry `json:"entries"`
}

// NewAuction starts an empty auction for the given dealer.
func NewAuction(dealer Seat, vuln Vulnerability) *Auction {
	return &Auction{Dealer: dealer, Vulnerability: vuln}
}

// Append records a call. Turn order is the caller's responsibility; the
// context parser rejects out-of-rotation sequences.
func (a *Auction) Append(entry AuctionEntry) {
	a.Entries = append(a.Entries, entry)
}

// CurrentTurn returns the seat due to act next.
func (a *Auction) CurrentTurn() Seat {
	return Seat((int(a.Dealer) + len(a.Entries)) % 4)
}

// LastContract returns the most recent contract bid and the seat that made
// it. ok is false while no contract bid has been made.
func (a *Auction) LastContract() (bid Bid, seat Seat, ok bool) {
	for i := len(a.Entries) - 1; i >= 0; i-- {
		if a.Entries[i].Bid.IsContract() {
			return a.Entries[i].Bid, a.Entries[i].Seat, true
		}
	}
	return Bid{}, 0, false
}

// ConsecutivePasses counts the passes at the tail of the auction.
func (a *Auction) ConsecutivePasses() int {
	n := 0
	for i := len(a.Entries) - 1; i >= 0; i-- {
		if !a.Entries[i].Bid.IsPass() {
			break
		}
		n++
	}
	return n
}

// IsComplete reports whether the auction has ended: four passes with no
// contract bid, or three passes after any call.
func (a *Auction) IsComplete() bool {
	passes := a.ConsecutivePasses()
	if len(a.Entries) == passes {
		return passes >= 4
	}
	return passes >= 3
}

// PassedOut reports a completed auction in which nobody bid.
func (a *Auction) PassedOut() bool {
	return a.IsComplete() && len(a.Entries) == a.ConsecutivePasses()
}

// ContractDoubled reports whether the standing contract is currently
// doubled or redoubled. Both are false once a later contract bid is made.
func (a *Auction) ContractDoubled() (doubled, redoubled bool) {
	for i := len(a.Entries) - 1; i >= 0; i-- {
		switch a.Entries[i].Bid.Call {
		case CallBid:
			return doubled, redoubled
		case CallDouble:
			doubled = true
		case CallRedouble:
			redoubled = true
		}
	}
	return doubled, redoubled
}

// LegalCall reports whether the seat currently on turn may make this call.
func (a *Auction) LegalCall(b Bid) bool {
	last, lastSeat, hasLast := a.LastContract()
	doubled, redoubled := a.ContractDoubled()
	actor := a.CurrentTurn()

	switch b.Call {
	case CallPass:
		return true
	case CallDouble:
		return hasLast && !lastSeat.SameSide(actor) && !doubled && !redoubled
	case CallRedouble:
		return hasLast && lastSeat.SameSide(actor) && doubled && !redoubled
	}
	return !hasLast || b.Beats(last)
}

// Contract is the outcome of a completed auction.
type Contract struct {
	Bid       Bid  `json:"bid"`
	Declarer  Seat `json:"declarer"`
	Doubled   bool `json:"doubled,omitempty"`
	Redoubled bool `json:"redoubled,omitempty"`
	PassedOut bool `json:"passed_out,omitempty"`
}

// FinalContract resolves a completed auction to its contract. The declarer
// is the first member of the winning side to have named the final strain.
// ok is false while the auction is still open.
func (a *Auction) FinalContract() (Contract, bool) {
	if !a.IsComplete() {
		return Contract{}, false
	}
	if a.PassedOut() {
		return Contract{PassedOut: true}, true
	}
	last, lastSeat, _ := a.LastContract()
	doubled, redoubled := a.ContractDoubled()
	declarer := lastSeat
	for _, e := range a.Entries {
		if e.Bid.IsContract() && e.Bid.Strain == last.Strain && e.Seat.SameSide(lastSeat) {
			declarer = e.Seat
			break
		}
	}
	return Contract{
		Bid:       last,
		Declarer:  declarer,
		Doubled:   doubled && !redoubled,
		Redoubled: redoubled,
	}, true
}

// RealBidCount counts the contract bids a seat has made so far.
func (a *Auction) RealBidCount(seat Seat) int {
	n := 0
	for _, e := range a.Entries {
		if e.Seat == seat && e.Bid.IsContract() {
			n++
		}
	}
	return n
}

// ActionCount counts every call a seat has made, passes included.
func (a *Auction) ActionCount(seat Seat) int {
	n := 0
	for _, e := range a.Entries {
		if e.Seat == seat {
			n++
		}
	}
	return n
}
