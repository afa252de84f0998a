package app

const (
	// SeatsPerTable is fixed: bridge is a four-player game.
	SeatsPerTable = 4
	// MinHumansToDeal allows a solo human to practice against three bots.
	MinHumansToDeal = 1
)
