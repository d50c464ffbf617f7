package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestLocalizeUsageFollowsLocaleAtPrintTime(t *testing.T) {
	locale := "en-US"
	var out bytes.Buffer
	fs := pflag.NewFlagSet("roller", pflag.ContinueOnError)
	fs.SetOutput(&out)
	fs.StringVar(&locale, "locale", locale, "locale")
	fs.Int64Var(new(int64), "seed", 0, "seed")
	LocalizeUsage(fs, &locale, "cli.usage", FlagUsage{"seed": "cli.flag.seed"})

	err := fs.Parse([]string{"--locale", "pt-BR", "--help"})
	if !errors.Is(err, pflag.ErrHelp) {
		t.Fatalf("Parse error = %v, want ErrHelp", err)
	}
	got := out.String()
	if !strings.HasPrefix(got, "uso: roller [opções] <expressão>\n") {
		t.Fatalf("usage header = %q", got)
	}
	if !strings.Contains(got, "semente aleatória fixa") {
		t.Fatalf("expected localized seed description, got %q", got)
	}
	if !strings.Contains(got, "--locale") {
		t.Fatalf("expected unmapped flag to be listed, got %q", got)
	}
}

func TestLocalizeUsageNilLocaleUsesBase(t *testing.T) {
	var out bytes.Buffer
	fs := pflag.NewFlagSet("roller-mcp", pflag.ContinueOnError)
	fs.SetOutput(&out)
	LocalizeUsage(fs, nil, "mcp.usage", nil)
	fs.Usage()
	if got := out.String(); got != "usage: roller-mcp [flags]\n" {
		t.Fatalf("usage = %q", got)
	}
}
