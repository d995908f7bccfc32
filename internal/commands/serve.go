package commands

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/dmorgan81/rcgraphics/internal/tools"
	"github.com/dmorgan81/rcgraphics/internal/web"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

func (a *app) mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the graphics tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return tools.Serve(cmd.Context(), do.MustInvoke[*mcp.Server](a.injector))
		},
	}
}

func (a *app) lambdaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "Run as an AWS Lambda handler for tool invocations",
		Long: `Run as an AWS Lambda handler. Each event names a tool and its arguments:

  {"tool": "generate_icon", "arguments": {"prompt": "a golf flag"}}

and the response is {"text": "...", "isError": false}.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			lambda.StartWithOptions(a.handler().Handle, lambda.WithContext(ctx), lambda.WithEnableSIGTERM(func() {
				_ = a.injector.Shutdown()
			}))
			return nil
		},
	}
}

func (a *app) webCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the leaderboard site and generated graphics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.WebAddr
			}
			return do.MustInvoke[*web.Server](a.injector).Run(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $WEB_ADDR or :3000)")
	return cmd
}
