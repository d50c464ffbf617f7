package dice

// Multiplier scales the dice total of a roll.
type Multiplier int

const (
	Normal   Multiplier = 1
	Critical Multiplier = 2
)

// MultiplierFor returns Critical when crit is set, Normal otherwise.
func MultiplierFor(crit bool) Multiplier {
	if crit {
		return Critical
	}
	return Normal
}

// Draw is the outcome of a single die.
type Draw struct {
	Die   DieType
	Value int
}

// Result captures a cast roll.
type Result struct {
	Draws         []Draw
	DiceTotal     int
	ConstantTotal int
	Multiplier    Multiplier
	// Total is DiceTotal*Multiplier + ConstantTotal.
	Total int
}

// Cast draws every die of roll from src, in order, and totals the result.
// When observe is non-nil it is called with each draw as it happens.
//
// Only the dice total is multiplied; constants are added afterwards.
func Cast(roll Roll, multiplier Multiplier, src Source, observe func(Draw)) Result {
	draws := make([]Draw, 0, len(roll.Dice))
	for _, die := range roll.Dice {
		draw := Draw{Die: die, Value: die.Draw(src)}
		draws = append(draws, draw)
		if observe != nil {
			observe(draw)
		}
	}
	return Tally(draws, roll.Constants, multiplier)
}

// Tally totals already-drawn outcomes. It is deterministic: the same draws,
// constants and multiplier always give the same Result.
func Tally(draws []Draw, constants []int, multiplier Multiplier) Result {
	diceTotal := 0
	for _, draw := range draws {
		diceTotal += draw.Value
	}
	constantTotal := 0
	for _, c := range constants {
		constantTotal += c
	}
	return Result{
		Draws:         draws,
		DiceTotal:     diceTotal,
		ConstantTotal: constantTotal,
		Multiplier:    multiplier,
		Total:         diceTotal*int(multiplier) + constantTotal,
	}
}
