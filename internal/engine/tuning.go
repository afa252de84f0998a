package engine

// Tuning holds the point bands and scoring weights the modules and the
// differential analyzer share. Loaded once, never mutated.
type Tuning struct {
	// Opening bands
	OpenMinHCP    int
	OneNTMin      int
	OneNTMax      int
	TwoNTMin      int
	TwoNTMax      int
	StrongTwoMin  int
	WeakTwoMin    int
	WeakTwoMax    int
	PreemptMaxHCP int

	// Response bands
	RespondMin   int
	InviteMin    int
	GameForceMin int
	SlamTryMin   int

	// Defensive bands
	OvercallOneMin int
	OvercallTwoMin int
	OvercallMax    int
	TakeoutMin     int
	NTOvercallMin  int
	NTOvercallMax  int

	// Validator
	EscalationBound int
	SanityMinHCP    [8]int // minimum HCP to volunteer a contract at each level

	// Differential scoring
	MaxScore         float64
	AcceptableScore  float64
	PenaltyPerLevel  float64
	PenaltyPerHCP    float64
	PenaltyWrongSide float64
	MinScore         float64
}

// DefaultTuning is the standard teaching profile (SAYC-flavoured).
var DefaultTuning = Tuning{
	OpenMinHCP:    12,
	OneNTMin:      15,
	OneNTMax:      17,
	TwoNTMin:      20,
	TwoNTMax:      21,
	StrongTwoMin:  22,
	WeakTwoMin:    5,
	WeakTwoMax:    10,
	PreemptMaxHCP: 10,

	RespondMin:   6,
	InviteMin:    10,
	GameForceMin: 13,
	SlamTryMin:   17,

	OvercallOneMin: 8,
	OvercallTwoMin: 10,
	OvercallMax:    17,
	TakeoutMin:     12,
	NTOvercallMin:  15,
	NTOvercallMax:  18,

	EscalationBound: 2,
	SanityMinHCP:    [8]int{0, 0, 0, 6, 6, 8, 10, 12},

	MaxScore:         100,
	AcceptableScore:  85,
	PenaltyPerLevel:  15,
	PenaltyPerHCP:    4,
	PenaltyWrongSide: 10,
	MinScore:         10,
}

// ConservativeTuning opens and competes a point heavier across the board;
// used by the cautious practice bots.
var ConservativeTuning = func() Tuning {
	t := DefaultTuning
	t.OpenMinHCP = 13
	t.OvercallOneMin = 10
	t.OvercallTwoMin = 12
	t.InviteMin = 11
	return t
}()
