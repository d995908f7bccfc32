package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmorgan81/rcgraphics/internal/config"
	"github.com/dmorgan81/rcgraphics/internal/handler"
	"github.com/dmorgan81/rcgraphics/internal/inject"
	"github.com/dmorgan81/rcgraphics/internal/log"
	"github.com/joho/godotenv"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X".
var Version = "1.0.0"

var errToolFailed = errors.New("tool reported an error")

type app struct {
	asJSON  bool
	verbose bool

	cfg      config.Config
	injector *do.Injector
}

// Execute runs the root command until it finishes or the process is signalled.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "rcgraphics",
		Short: "Ryder Cup graphics tools and leaderboard",
		Long: `rcgraphics generates event graphics with Gemini and serves the leaderboard.

The four graphics tools are available over MCP (rcgraphics mcp), as an AWS
Lambda handler (rcgraphics lambda) and directly from the command line.

Configuration is read from the environment and an optional .env file.
GEMINI_API_KEY (or GEMINI_API_KEY_PARAM, an SSM parameter path) is required
to generate images.

Examples:
  # Serve the tools to an MCP client over stdio
  rcgraphics mcp

  # Generate a badge from a template
  rcgraphics template team-badge -p teamName=Mergen -p primaryColor=navy

  # Same image at every size, JSON output for piping
  rcgraphics batch "a golden trophy" --sizes 1K,2K,4K --json | jq '.files'
`,
		Version:            Version,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	root.PersistentFlags().BoolVar(&a.asJSON, "json", false, "output as JSON (for piping)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		a.mcpCmd(),
		a.lambdaCmd(),
		a.webCmd(),
		a.templatesCmd(),
		a.iconCmd(),
		a.templateCmd(),
		a.batchCmd(),
		a.callCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	a.cfg = config.Load()

	level := log.ParseLevel(a.cfg.LogLevel)
	if a.verbose {
		level = slog.LevelDebug
	}
	// stdout carries MCP traffic and command output.
	ctx := log.NewContext(cmd.Context(), log.New(cmd.ErrOrStderr(), level))
	cmd.SetContext(ctx)

	a.injector = inject.Setup(ctx, a.cfg, Version)
	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	if a.injector == nil {
		return nil
	}
	return a.injector.Shutdown()
}

func (a *app) handler() *handler.Handler {
	return do.MustInvoke[*handler.Handler](a.injector)
}
