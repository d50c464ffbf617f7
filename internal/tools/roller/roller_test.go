package roller

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/louisbranch/roller/internal/dice"
	apperrors "github.com/louisbranch/roller/internal/platform/errors"
)

// faces replays die faces; Intn returns face-1.
type faces struct {
	values []int
	calls  int
}

func (f *faces) Intn(n int) int {
	if f.calls >= len(f.values) {
		return 0
	}
	v := f.values[f.calls]
	f.calls++
	return (v - 1) % n
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("roller", pflag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	return fs
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(newFlagSet(), []string{"3d4+6"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Input != "3d4+6" {
		t.Fatalf("expected input 3d4+6, got %q", cfg.Input)
	}
	if cfg.Crit {
		t.Fatal("expected crit to default to false")
	}
	if cfg.MaxDice != 10000 || cfg.Locale != "en-US" || cfg.LogLevel != "warn" || cfg.Seed != 0 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseConfigCritFlag(t *testing.T) {
	for _, args := range [][]string{{"--crit", "1d20"}, {"-c", "1d20"}, {"1d20", "-c"}} {
		cfg, err := ParseConfig(newFlagSet(), args)
		if err != nil {
			t.Fatalf("parse config %v: %v", args, err)
		}
		if !cfg.Crit {
			t.Fatalf("expected crit for %v", args)
		}
		if cfg.Input != "1d20" {
			t.Fatalf("expected input 1d20 for %v, got %q", args, cfg.Input)
		}
	}
}

func TestParseConfigEnvThenFlags(t *testing.T) {
	t.Setenv("ROLLER_SEED", "11")
	t.Setenv("ROLLER_MAX_DICE", "20")
	t.Setenv("ROLLER_LOCALE", "pt-BR")

	cfg, err := ParseConfig(newFlagSet(), []string{"--max-dice", "5", "2d6"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Seed != 11 {
		t.Fatalf("expected env seed 11, got %d", cfg.Seed)
	}
	if cfg.MaxDice != 5 {
		t.Fatalf("expected flag max dice 5, got %d", cfg.MaxDice)
	}
	if cfg.Locale != "pt-BR" {
		t.Fatalf("expected env locale pt-BR, got %q", cfg.Locale)
	}
}

func TestParseConfigMissingInput(t *testing.T) {
	t.Setenv("ROLLER_LOCALE", "pt-BR")
	cfg, err := ParseConfig(newFlagSet(), nil)
	if !errors.Is(err, apperrors.New(apperrors.CodeInputMissing, "")) {
		t.Fatalf("expected missing input error, got %v", err)
	}
	if cfg.Locale != "pt-BR" {
		t.Fatalf("expected locale to survive the error, got %q", cfg.Locale)
	}
}

func TestParseConfigRejectsExtraArgs(t *testing.T) {
	if _, err := ParseConfig(newFlagSet(), []string{"1d4", "+", "2"}); err == nil {
		t.Fatal("expected error for extra arguments")
	}
}

func TestParseConfigHelpUsesConfiguredLocale(t *testing.T) {
	t.Setenv("ROLLER_LOCALE", "pt-BR")
	var out bytes.Buffer
	fs := pflag.NewFlagSet("roller", pflag.ContinueOnError)
	fs.SetOutput(&out)

	_, err := ParseConfig(fs, []string{"--help"})
	if !errors.Is(err, pflag.ErrHelp) {
		t.Fatalf("expected ErrHelp, got %v", err)
	}
	usage := out.String()
	if !strings.HasPrefix(usage, "uso: roller [opções] <expressão>") {
		t.Fatalf("unexpected usage header: %q", usage)
	}
	if !strings.Contains(usage, "dobra o total dos dados") || !strings.Contains(usage, "-c, --crit") {
		t.Fatalf("expected localized crit flag, got %q", usage)
	}
	if !strings.Contains(usage, "(default 10000)") {
		t.Fatalf("expected max-dice default in usage, got %q", usage)
	}
}

func TestParseConfigBadFlag(t *testing.T) {
	if _, err := ParseConfig(newFlagSet(), []string{"--loud", "1d4"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

func TestRunWritesDrawsSeparatorAndTotal(t *testing.T) {
	var buf bytes.Buffer
	src := &faces{values: []int{1, 2, 3, 7, 8}}
	err := Run(context.Background(), Config{Input: "3d4+2d8+6", Locale: "en-US"}, &buf, nil, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "1\n2\n3\n7\n8\n---\n27\n"
	if got := buf.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestRunCritPrintsNoticeAndDoublesDice(t *testing.T) {
	var buf bytes.Buffer
	src := &faces{values: []int{5, 6}}
	err := Run(context.Background(), Config{Input: "2d6+3", Crit: true, Locale: "en-US"}, &buf, nil, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "Critical Hit!\n5\n6\n---\n25\n"
	if got := buf.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestRunLocalizedNotice(t *testing.T) {
	var buf bytes.Buffer
	err := Run(context.Background(), Config{Input: "+4", Crit: true, Locale: "pt-BR"}, &buf, nil, &faces{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := buf.String(); got != "Acerto Crítico!\n---\n4\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestRunEmptyExpression(t *testing.T) {
	var buf bytes.Buffer
	if err := Run(context.Background(), Config{Input: "nothing here"}, &buf, nil, &faces{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := buf.String(); got != "---\n0\n" {
		t.Fatalf("output = %q", got)
	}
}

// TestRunParseFailureWritesNoTotal ensures a failed parse never reports dice or a total.
func TestRunParseFailureWritesNoTotal(t *testing.T) {
	var buf bytes.Buffer
	src := &faces{values: []int{1}}
	err := Run(context.Background(), Config{Input: "2d7"}, &buf, nil, src)
	if !errors.Is(err, dice.ErrUnrecognizedDieType) {
		t.Fatalf("expected unrecognized die type, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
	if src.calls != 0 {
		t.Fatalf("expected no draws, got %d", src.calls)
	}
}

func TestRunCritNoticePrecedesParseFailure(t *testing.T) {
	var buf bytes.Buffer
	err := Run(context.Background(), Config{Input: "1d3", Crit: true}, &buf, nil, &faces{})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := buf.String(); got != "Critical Hit!\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestRunRespectsMaxDice(t *testing.T) {
	err := Run(context.Background(), Config{Input: "11d6", MaxDice: 10}, &bytes.Buffer{}, nil, &faces{})
	if !errors.Is(err, dice.ErrTooManyDice) {
		t.Fatalf("expected too many dice, got %v", err)
	}
}

func TestRunSeededIsReproducible(t *testing.T) {
	cfg := Config{Input: "4d20+1", Seed: 99}
	var first, second bytes.Buffer
	if err := Run(context.Background(), cfg, &first, nil, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := Run(context.Background(), cfg, &second, nil, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if first.String() != second.String() {
		t.Fatalf("seeded runs differ: %q vs %q", first.String(), second.String())
	}
	if lines := strings.Split(strings.TrimSpace(first.String()), "\n"); len(lines) != 6 {
		t.Fatalf("expected 4 draws, separator and total, got %q", first.String())
	}
}

func TestRunNilOutput(t *testing.T) {
	if err := Run(context.Background(), Config{Input: "1d4"}, nil, nil, nil); err == nil {
		t.Fatal("expected error for nil output")
	}
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, errors.New("write error") }

func TestRunWriterError(t *testing.T) {
	if err := Run(context.Background(), Config{Input: "1d4"}, errWriter{}, nil, &faces{}); err == nil {
		t.Fatal("expected error from failing writer")
	}
}
