package domain

import "sort"

// Suit identifies one of the four card suits, ordered by bridge rank.
type Suit int

const (
	SuitClubs Suit = iota
	SuitDiamonds
	SuitHearts
	SuitSpades
)

var suitSymbols = [4]string{"C", "D", "H", "S"}

func (s Suit) String() string {
	if s < SuitClubs || s > SuitSpades {
		return "?"
	}
	return suitSymbols[s]
}

// IsMajor reports whether the suit is hearts or spades.
func (s Suit) IsMajor() bool { return s == SuitHearts || s == SuitSpades }

// Strain converts the suit to its bidding strain.
func (s Suit) Strain() Strain { return Strain(s) }

// Rank values run 2..14 with ace high.
const (
	RankTen   = 10
	RankJack  = 11
	RankQueen = 12
	RankKing  = 13
	RankAce   = 14
)

var rankSymbols = map[int]string{
	RankTen: "T", RankJack: "J", RankQueen: "Q", RankKing: "K", RankAce: "A",
}

// Card is a single playing card.
type Card struct {
	Suit Suit `json:"suit"`
	Rank int  `json:"rank"` // 2..14, ace high
}

func (c Card) String() string {
	if sym, ok := rankSymbols[c.Rank]; ok {
		return sym + c.Suit.String()
	}
	return string(rune('0'+c.Rank)) + c.Suit.String()
}

// HCP returns the high-card points for a single card (A=4, K=3, Q=2, J=1).
func (c Card) HCP() int {
	switch c.Rank {
	case RankAce:
		return 4
	case RankKing:
		return 3
	case RankQueen:
		return 2
	case RankJack:
		return 1
	default:
		return 0
	}
}

// Hand is the 13 cards held by one seat.
type Hand []Card

// NewDeck produces an ordered 52-card deck.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for s := SuitClubs; s <= SuitSpades; s++ {
		for r := 2; r <= RankAce; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// SortHand orders a hand spades first, descending rank within each suit.
func SortHand(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].Suit != cards[j].Suit {
			return cards[i].Suit > cards[j].Suit
		}
		return cards[i].Rank > cards[j].Rank
	})
}
