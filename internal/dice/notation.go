package dice

import (
	"regexp"
	"strconv"

	apperrors "github.com/louisbranch/roller/internal/platform/errors"
)

// Dice groups and constants are found by two independent scans of the same
// input. A constant needs a leading '+' and must be followed by '+' or the end
// of the input, and that trailing '+' is consumed, so "+6+7" yields only 6.
// \p{Nd} matches any decimal digit; runs strconv cannot read are reported as
// number parse failures.
var (
	diceGroupPattern = regexp.MustCompile(`(\p{Nd}+)d(\p{Nd}+)\+?`)
	constantPattern  = regexp.MustCompile(`\+(\p{Nd}+)(?:\+|$)`)
)

var (
	// ErrNumberParse indicates a digit run could not be read as a 32-bit integer.
	ErrNumberParse = apperrors.New(apperrors.CodeNumberParseFailure, "number parse failure")

	// ErrTooManyDice indicates an expression expands to more dice than allowed.
	ErrTooManyDice = apperrors.New(apperrors.CodeDiceLimitExceeded, "too many dice")
)

// Roll is a parsed expression ready to be cast.
type Roll struct {
	// Dice holds one entry per individual die, in order of appearance.
	Dice []DieType
	// Constants holds each flat modifier, in order of appearance.
	Constants []int
}

// Empty reports whether the roll has neither dice nor constants.
func (r Roll) Empty() bool {
	return len(r.Dice) == 0 && len(r.Constants) == 0
}

// Parse scans input for dice groups and constants. Input with no matches
// yields an empty Roll.
func Parse(input string) (Roll, error) {
	return ParseLimited(input, 0)
}

// ParseLimited is Parse with a cap on the total number of dice. A maxDice of
// zero or less disables the cap. All validation happens before any dice are
// expanded.
func ParseLimited(input string, maxDice int) (Roll, error) {
	type group struct {
		count int
		die   DieType
	}

	matches := diceGroupPattern.FindAllStringSubmatch(input, -1)
	groups := make([]group, 0, len(matches))
	total := 0
	for _, m := range matches {
		count, err := parseNumber(m[1])
		if err != nil {
			return Roll{}, err
		}
		die, err := ParseDieType(m[2])
		if err != nil {
			return Roll{}, err
		}
		total += count
		if maxDice > 0 && total > maxDice {
			return Roll{}, apperrors.WithMetadata(
				apperrors.CodeDiceLimitExceeded,
				"too many dice",
				map[string]string{"count": strconv.Itoa(total), "max": strconv.Itoa(maxDice)},
			)
		}
		groups = append(groups, group{count: count, die: die})
	}

	var roll Roll
	if total > 0 {
		roll.Dice = make([]DieType, 0, total)
	}
	for _, g := range groups {
		for i := 0; i < g.count; i++ {
			roll.Dice = append(roll.Dice, g.die)
		}
	}

	for _, m := range constantPattern.FindAllStringSubmatch(input, -1) {
		value, err := parseNumber(m[1])
		if err != nil {
			return Roll{}, err
		}
		roll.Constants = append(roll.Constants, value)
	}

	return roll, nil
}

func parseNumber(digits string) (int, error) {
	value, err := strconv.ParseInt(digits, 10, 32)
	if err != nil {
		return 0, apperrors.WrapWithMetadata(
			apperrors.CodeNumberParseFailure,
			"parse number "+strconv.Quote(digits),
			map[string]string{"value": digits},
			err,
		)
	}
	return int(value), nil
}
