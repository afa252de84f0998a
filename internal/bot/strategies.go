package bot

import (
	"bridgetutor/internal/domain"
	"bridgetutor/internal/engine"
)

// TextbookBot bids the standard teaching system, the same line the coach
// recommends to humans.
type TextbookBot struct {
	eng *engine.Engine
}

func (b *TextbookBot) SuggestCall(hand domain.Hand, auction *domain.Auction, seat domain.Seat) (engine.FinalCall, error) {
	return b.eng.NextBid(hand, auction, seat)
}

// CautiousBot runs the conservative tuning: it opens and competes a point
// heavier, so learners see sound minimum auctions.
type CautiousBot struct {
	eng *engine.Engine
}

func (b *CautiousBot) SuggestCall(hand domain.Hand, auction *domain.Auction, seat domain.Seat) (engine.FinalCall, error) {
	return b.eng.NextBid(hand, auction, seat)
}
