// Package roller implements the roller command: parse a dice expression,
// print every die as it is drawn, then a separator and the total.
package roller

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/text/message"

	"github.com/louisbranch/roller/internal/dice"
	platformcmd "github.com/louisbranch/roller/internal/platform/cmd"
	apperrors "github.com/louisbranch/roller/internal/platform/errors"
	"github.com/louisbranch/roller/internal/platform/i18n/catalog"
	"github.com/louisbranch/roller/internal/platform/logging"
	"github.com/louisbranch/roller/internal/platform/otel"
	"github.com/louisbranch/roller/internal/random"
)

const tracerName = "github.com/louisbranch/roller/internal/tools/roller"

// DefaultMaxDice caps the dice in one expression unless configured otherwise.
const DefaultMaxDice = 10000

// Config holds configuration for a single roll.
type Config struct {
	Input    string
	Crit     bool
	Seed     int64  `env:"SEED"`
	MaxDice  int    `env:"MAX_DICE" envDefault:"10000"`
	Locale   string `env:"LOCALE" envDefault:"en-US"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`
}

var flagUsage = platformcmd.FlagUsage{
	"crit":      "cli.flag.crit",
	"seed":      "cli.flag.seed",
	"max-dice":  "cli.flag.max_dice",
	"locale":    "cli.flag.locale",
	"log-level": "cli.flag.log_level",
}

// ParseConfig reads ROLLER_ environment defaults, then flags and the
// positional input. On error the returned Config still carries the settings
// parsed so far, so callers can localize the message.
func ParseConfig(fs *pflag.FlagSet, args []string) (Config, error) {
	var cfg Config
	base := catalog.Default().Printer(catalog.BaseLocale)
	fs.BoolVarP(&cfg.Crit, "crit", "c", false, base.Sprintf("cli.flag.crit"))
	fs.Int64Var(&cfg.Seed, "seed", 0, base.Sprintf("cli.flag.seed"))
	fs.IntVar(&cfg.MaxDice, "max-dice", DefaultMaxDice, base.Sprintf("cli.flag.max_dice"))
	fs.StringVar(&cfg.Locale, "locale", catalog.BaseLocale, base.Sprintf("cli.flag.locale"))
	fs.StringVar(&cfg.LogLevel, "log-level", logging.DefaultLevel, base.Sprintf("cli.flag.log_level"))
	platformcmd.LocalizeUsage(fs, &cfg.Locale, "cli.usage", flagUsage)

	if err := platformcmd.ParseConfigFromArgs(&cfg, fs, args); err != nil {
		return cfg, err
	}

	switch fs.NArg() {
	case 0:
		return cfg, apperrors.New(apperrors.CodeInputMissing, "input is required")
	case 1:
		cfg.Input = fs.Arg(0)
	default:
		return cfg, fmt.Errorf("expected one dice expression, got %d arguments", fs.NArg())
	}
	return cfg, nil
}

// Run parses cfg.Input, casts it and writes the report to out. A nil logger
// discards diagnostics; a nil src draws from a generator seeded by cfg.Seed.
//
// With Crit set the critical notice is written before anything is parsed.
// Parse failures are returned before any die is drawn, so out never holds a
// partial report.
func Run(ctx context.Context, cfg Config, out io.Writer, logger *zap.Logger, src dice.Source) error {
	if out == nil {
		return fmt.Errorf("output is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if src == nil {
		rng, seed, err := random.New(cfg.Seed)
		if err != nil {
			return err
		}
		logger.Debug("random source ready", zap.Int64("seed", seed))
		src = rng
	}

	w := &lineWriter{w: out, printer: catalog.Default().Printer(cfg.Locale)}
	multiplier := dice.MultiplierFor(cfg.Crit)
	if cfg.Crit {
		w.say("cli.crit_notice")
	}

	roll, err := parse(ctx, cfg, logger)
	if err != nil {
		return err
	}

	result := cast(ctx, roll, multiplier, src, func(d dice.Draw) {
		w.line(d.Value)
	})
	logger.Debug("cast roll",
		zap.Int("dice_total", result.DiceTotal),
		zap.Int("constant_total", result.ConstantTotal),
		zap.Int("multiplier", int(result.Multiplier)),
		zap.Int("total", result.Total),
	)

	w.say("cli.separator")
	w.line(result.Total)
	return w.err
}

func parse(ctx context.Context, cfg Config, logger *zap.Logger) (dice.Roll, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "roller.parse")
	defer span.End()

	roll, err := dice.ParseLimited(cfg.Input, cfg.MaxDice)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperrors.GetCode(err)))
		logger.Debug("parse failed", zap.String("input", cfg.Input), zap.Error(err))
		return dice.Roll{}, err
	}
	span.SetAttributes(
		attribute.Int("dice.count", len(roll.Dice)),
		attribute.Int("constants.count", len(roll.Constants)),
	)
	logger.Debug("parsed roll",
		zap.String("input", cfg.Input),
		zap.Stringers("dice", roll.Dice),
		zap.Ints("constants", roll.Constants),
	)
	return roll, nil
}

func cast(ctx context.Context, roll dice.Roll, multiplier dice.Multiplier, src dice.Source, observe func(dice.Draw)) dice.Result {
	_, span := otel.Tracer(tracerName).Start(ctx, "roller.cast")
	defer span.End()

	result := dice.Cast(roll, multiplier, src, observe)
	span.SetAttributes(
		attribute.Int("roll.multiplier", int(result.Multiplier)),
		attribute.Int("roll.total", result.Total),
	)
	return result
}

// lineWriter keeps the first write error so the report can be written
// without checking every line.
type lineWriter struct {
	w       io.Writer
	printer *message.Printer
	err     error
}

func (l *lineWriter) line(v any) {
	if l.err != nil {
		return
	}
	_, l.err = fmt.Fprintln(l.w, v)
}

func (l *lineWriter) say(key string) {
	l.line(l.printer.Sprintf(key))
}
