package domain

// Seat identifies one of the four table positions.
type Seat int

const (
	SeatNorth Seat = iota
	SeatEast
	SeatSouth
	SeatWest
)

var seatNames = [4]string{"North", "East", "South", "West"}

func (s Seat) String() string {
	if s < SeatNorth || s > SeatWest {
		return "?"
	}
	return seatNames[s]
}

// Next returns the seat to the left, the next to act in rotation.
func (s Seat) Next() Seat { return (s + 1) % 4 }

// Partner returns the seat across the table.
func (s Seat) Partner() Seat { return (s + 2) % 4 }

// SameSide reports whether two seats form a partnership.
func (s Seat) SameSide(o Seat) bool { return s%2 == o%2 }

// Vulnerability describes which partnerships are vulnerable on a deal.
type Vulnerability int

const (
	VulnNone Vulnerability = iota
	VulnNS
	VulnEW
	VulnBoth
)

var vulnNames = [4]string{"None", "NS", "EW", "Both"}

func (v Vulnerability) String() string {
	if v < VulnNone || v > VulnBoth {
		return "?"
	}
	return vulnNames[v]
}

// SeatVulnerable reports whether the given seat's side is vulnerable.
func (v Vulnerability) SeatVulnerable(s Seat) bool {
	switch v {
	case VulnBoth:
		return true
	case VulnNS:
		return s == SeatNorth || s == SeatSouth
	case VulnEW:
		return s == SeatEast || s == SeatWest
	default:
		return false
	}
}

// VulnerabilityForDeal follows the standard 16-board rotation cycle.
func VulnerabilityForDeal(dealNumber int) Vulnerability {
	cycle := [16]Vulnerability{
		VulnNone, VulnNS, VulnEW, VulnBoth,
		VulnNS, VulnEW, VulnBoth, VulnNone,
		VulnEW, VulnBoth, VulnNone, VulnNS,
		VulnBoth, VulnNone, VulnNS, VulnEW,
	}
	idx := (dealNumber - 1) % 16
	if idx < 0 {
		idx = 0
	}
	return cycle[idx]
}

// DealerForDeal rotates the dealer one seat per deal starting at North.
func DealerForDeal(dealNumber int) Seat {
	idx := (dealNumber - 1) % 4
	if idx < 0 {
		idx = 0
	}
	return Seat(idx)
}
