package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	platformcmd "github.com/louisbranch/roller/internal/platform/cmd"
	"github.com/louisbranch/roller/internal/platform/i18n/catalog"
	"github.com/louisbranch/roller/internal/services/mcp/domain"
)

const (
	serverName = "roller"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"

	defaultMaxDice  = 10000
	defaultLogLevel = "info"
)

// Config holds MCP server settings, read with the ROLLER_ prefix.
type Config struct {
	Seed     int64  `env:"SEED"`
	MaxDice  int    `env:"MAX_DICE" envDefault:"10000"`
	Locale   string `env:"LOCALE" envDefault:"en-US"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

var flagUsage = platformcmd.FlagUsage{
	"seed":      "cli.flag.seed",
	"max-dice":  "cli.flag.max_dice",
	"locale":    "cli.flag.locale",
	"log-level": "cli.flag.log_level",
}

// ParseConfig reads environment defaults and then flags.
func ParseConfig(fs *pflag.FlagSet, args []string) (Config, error) {
	var cfg Config
	base := catalog.Default().Printer(catalog.BaseLocale)
	fs.Int64Var(&cfg.Seed, "seed", 0, base.Sprintf("cli.flag.seed"))
	fs.IntVar(&cfg.MaxDice, "max-dice", defaultMaxDice, base.Sprintf("cli.flag.max_dice"))
	fs.StringVar(&cfg.Locale, "locale", catalog.BaseLocale, base.Sprintf("cli.flag.locale"))
	fs.StringVar(&cfg.LogLevel, "log-level", defaultLogLevel, base.Sprintf("cli.flag.log_level"))
	platformcmd.LocalizeUsage(fs, &cfg.Locale, "mcp.usage", flagUsage)

	if err := platformcmd.ParseConfigFromArgs(&cfg, fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Server owns the MCP server and its registered dice tools.
type Server struct {
	mcpServer *mcp.Server
	logger    *zap.Logger
}

// New builds a server with roll_dice and list_dice registered. Unseeded rolls
// share one mutex-protected source seeded from cfg.Seed.
func New(cfg Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	src, err := domain.NewSharedSource(cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("random source: %w", err)
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	roller := domain.Roller{
		Source:  src,
		MaxDice: cfg.MaxDice,
		Locale:  cfg.Locale,
		Logger:  logger,
	}
	mcp.AddTool(mcpServer, domain.RollDiceTool(cfg.Locale), domain.RollDiceHandler(roller))
	mcp.AddTool(mcpServer, domain.ListDiceTool(cfg.Locale), domain.ListDiceHandler())

	return &Server{mcpServer: mcpServer, logger: logger}, nil
}

// Run is the service entrypoint and blocks until ctx is cancelled or stdin closes.
func Run(ctx context.Context, cfg Config, logger *zap.Logger) error {
	server, err := New(cfg, logger)
	if err != nil {
		return err
	}
	return server.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport runs the MCP server on transport. Cancellation is a
// clean shutdown, not an error.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	s.logger.Info("serving MCP", zap.String("server", serverName), zap.String("version", serverVersion))
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
