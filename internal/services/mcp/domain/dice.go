package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/louisbranch/roller/internal/dice"
	apperrors "github.com/louisbranch/roller/internal/platform/errors"
	"github.com/louisbranch/roller/internal/platform/i18n/catalog"
	"github.com/louisbranch/roller/internal/random"
)

// Roller holds what the dice tools share across calls.
type Roller struct {
	// Source is used when a call has no seed. It must be safe for concurrent use.
	Source  dice.Source
	MaxDice int
	Locale  string
	Logger  *zap.Logger
}

// RollDiceInput represents the MCP tool input for a dice roll.
type RollDiceInput struct {
	Notation string `json:"notation" jsonschema:"dice expression such as 3d4+2d8+6"`
	Crit     bool   `json:"crit,omitempty" jsonschema:"double the dice total for a critical hit"`
	Seed     *int64 `json:"seed,omitempty" jsonschema:"optional seed for a reproducible roll; 0 picks a fresh seed and reports it"`
}

// RollDiceDraw is one die outcome.
type RollDiceDraw struct {
	Die   string `json:"die" jsonschema:"die type, e.g. d8"`
	Value int    `json:"value" jsonschema:"face rolled"`
}

// RollDiceResult represents the MCP tool output for a dice roll.
type RollDiceResult struct {
	Notation      string         `json:"notation" jsonschema:"expression as received"`
	Multiplier    int            `json:"multiplier" jsonschema:"factor applied to the dice total"`
	Draws         []RollDiceDraw `json:"draws" jsonschema:"each die in draw order"`
	DiceTotal     int            `json:"dice_total" jsonschema:"sum of all dice before the multiplier"`
	ConstantTotal int            `json:"constant_total" jsonschema:"sum of flat modifiers"`
	Total         int            `json:"total" jsonschema:"dice_total*multiplier + constant_total"`
	Seed          *int64         `json:"seed,omitempty" jsonschema:"seed that reproduces this roll, set when a seed was requested"`
}

// ListDiceInput is the empty input of list_dice.
type ListDiceInput struct{}

// DieInfo describes a supported die.
type DieInfo struct {
	Die string `json:"die"`
	Min int    `json:"min"`
	Max int    `json:"max"`
}

// ListDiceResult lists the supported dice.
type ListDiceResult struct {
	Dice []DieInfo `json:"dice"`
}

// RollDiceTool defines the dice roll tool.
func RollDiceTool(locale string) *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_dice",
		Description: catalog.Default().Printer(locale).Sprintf("mcp.tool.roll_dice"),
	}
}

// ListDiceTool defines the supported-dice listing tool.
func ListDiceTool(locale string) *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_dice",
		Description: catalog.Default().Printer(locale).Sprintf("mcp.tool.list_dice"),
	}
}

// RollDiceHandler parses and casts a dice expression.
func RollDiceHandler(r Roller) mcp.ToolHandlerFor[RollDiceInput, RollDiceResult] {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RollDiceInput) (*mcp.CallToolResult, RollDiceResult, error) {
		roll, err := dice.ParseLimited(input.Notation, r.MaxDice)
		if err != nil {
			if !apperrors.GetCode(err).IsInvalidInput() {
				logger.Error("roll_dice failed", zap.String("notation", input.Notation), zap.Error(err))
				return nil, RollDiceResult{}, fmt.Errorf("roll dice: %w", err)
			}
			logger.Info("roll_dice rejected", zap.String("notation", input.Notation), zap.Error(err))
			return nil, RollDiceResult{}, localizedError{
				message: apperrors.UserMessage(err, r.Locale),
				cause:   err,
			}
		}

		src := r.Source
		var usedSeed *int64
		if input.Seed != nil || src == nil {
			var requested int64
			if input.Seed != nil {
				requested = *input.Seed
			}
			rng, seed, err := random.New(requested)
			if err != nil {
				logger.Error("roll_dice failed", zap.Error(err))
				return nil, RollDiceResult{}, fmt.Errorf("roll dice: %w", err)
			}
			src = rng
			if input.Seed != nil {
				usedSeed = &seed
			}
		}

		result := dice.Cast(roll, dice.MultiplierFor(input.Crit), src, nil)
		draws := make([]RollDiceDraw, 0, len(result.Draws))
		for _, d := range result.Draws {
			draws = append(draws, RollDiceDraw{Die: d.Die.String(), Value: d.Value})
		}
		logger.Info("roll_dice",
			zap.String("notation", input.Notation),
			zap.Bool("crit", input.Crit),
			zap.Int("total", result.Total),
		)

		return nil, RollDiceResult{
			Notation:      input.Notation,
			Multiplier:    int(result.Multiplier),
			Draws:         draws,
			DiceTotal:     result.DiceTotal,
			ConstantTotal: result.ConstantTotal,
			Total:         result.Total,
			Seed:          usedSeed,
		}, nil
	}
}

// ListDiceHandler returns the supported dice and their ranges.
func ListDiceHandler() mcp.ToolHandlerFor[ListDiceInput, ListDiceResult] {
	return func(context.Context, *mcp.CallToolRequest, ListDiceInput) (*mcp.CallToolResult, ListDiceResult, error) {
		types := dice.DieTypes()
		out := make([]DieInfo, 0, len(types))
		for _, die := range types {
			low, high := die.Range()
			out = append(out, DieInfo{Die: die.String(), Min: low, Max: high})
		}
		return nil, ListDiceResult{Dice: out}, nil
	}
}

// localizedError shows the catalog message to MCP clients while keeping the
// domain error reachable through errors.Is.
type localizedError struct {
	message string
	cause   error
}

func (e localizedError) Error() string { return e.message }

func (e localizedError) Unwrap() error { return e.cause }

// NewSharedSource returns the concurrency-safe source used for unseeded calls.
func NewSharedSource(seed int64) (dice.Source, error) {
	src, err := random.NewLocked(seed)
	if err != nil {
		return nil, err
	}
	return src, nil
}
