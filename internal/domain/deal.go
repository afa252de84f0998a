package domain

// Deal is one board: four hands, a dealer and a vulnerability.
type Deal struct {
	Number        int           `json:"number"`
	Dealer        Seat          `json:"dealer"`
	Vulnerability Vulnerability `json:"vulnerability"`
	Hands         [4]Hand       `json:"hands"`
}

// HandFor returns the 13 cards dealt to a seat.
func (d *Deal) HandFor(seat Seat) Hand {
	return d.Hands[seat]
}
