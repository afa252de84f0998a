package domain

import (
	"fmt"
	"strings"
)

// Strain is the denomination of a contract bid.
type Strain int

const (
	StrainClubs Strain = iota
	StrainDiamonds
	StrainHearts
	StrainSpades
	StrainNoTrump
)

var strainSymbols = [5]string{"C", "D", "H", "S", "NT"}

func (st Strain) String() string {
	if st < StrainClubs || st > StrainNoTrump {
		return "?"
	}
	return strainSymbols[st]
}

// IsMajor reports whether the strain is hearts or spades.
func (st Strain) IsMajor() bool { return st == StrainHearts || st == StrainSpades }

// Suit returns the card suit for a non-notrump strain.
func (st Strain) Suit() (Suit, bool) {
	if st == StrainNoTrump {
		return 0, false
	}
	return Suit(st), true
}

// CallType distinguishes the kinds of calls a seat can make.
type CallType int

const (
	CallPass CallType = iota
	CallDouble
	CallRedouble
	CallBid
)

// Bid is a single call in the auction: Pass, Double, Redouble, or a
// contract bid of a level and strain. The zero value is Pass.
type Bid struct {
	Call   CallType `json:"call"`
	Level  int      `json:"level,omitempty"`
	Strain Strain   `json:"strain,omitempty"`
}

// Pass returns the pass call.
func Pass() Bid { return Bid{Call: CallPass} }

// Double returns the double call.
func Double() Bid { return Bid{Call: CallDouble} }

// Redouble returns the redouble call.
func Redouble() Bid { return Bid{Call: CallRedouble} }

// NewBid returns a contract bid at the given level and strain.
func NewBid(level int, strain Strain) Bid {
	return Bid{Call: CallBid, Level: level, Strain: strain}
}

// IsContract reports whether the bid names a level and strain.
func (b Bid) IsContract() bool { return b.Call == CallBid }

// IsPass reports whether the bid is a pass.
func (b Bid) IsPass() bool { return b.Call == CallPass }

// Index maps a contract bid onto the total bid order: level primary,
// strain secondary (C < D < H < S < NT). 1C is 0, 7NT is 34.
func (b Bid) Index() int {
	if !b.IsContract() {
		return -1
	}
	return (b.Level-1)*5 + int(b.Strain)
}

// Beats reports whether b is strictly higher than o in the bid order.
// Only defined for contract bids.
func (b Bid) Beats(o Bid) bool {
	return b.IsContract() && o.IsContract() && b.Index() > o.Index()
}

func (b Bid) String() string {
	switch b.Call {
	case CallPass:
		return "Pass"
	case CallDouble:
		return "X"
	case CallRedouble:
		return "XX"
	default:
		return fmt.Sprintf("%d%s", b.Level, b.Strain)
	}
}

// ParseBid parses the textual form produced by Bid.String.
func ParseBid(s string) (Bid, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PASS", "P":
		return Pass(), nil
	case "X", "DBL":
		return Double(), nil
	case "XX", "RDBL":
		return Redouble(), nil
	}
	t := strings.ToUpper(strings.TrimSpace(s))
	if len(t) < 2 {
		return Bid{}, fmt.Errorf("unparseable bid %q", s)
	}
	level := int(t[0] - '0')
	if level < 1 || level > 7 {
		return Bid{}, fmt.Errorf("bid level out of range in %q", s)
	}
	for st := StrainClubs; st <= StrainNoTrump; st++ {
		if t[1:] == strainSymbols[st] {
			return NewBid(level, st), nil
		}
	}
	return Bid{}, fmt.Errorf("unknown strain in bid %q", s)
}
