// Package tools serves the graphics tools over the Model Context Protocol.
package tools

import (
	"context"
	"log/slog"

	"github.com/dmorgan81/rcgraphics/internal/handler"
	"github.com/dmorgan81/rcgraphics/internal/log"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/samber/do"
	"github.com/samber/lo"
)

const ServerName = "ryder-cup-graphics"

func NewServer(i *do.Injector) (*mcp.Server, error) {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: do.MustInvokeNamed[string](i, "version"),
	}, nil)
	err := Register(server, do.MustInvoke[*handler.Handler](i), do.MustInvoke[*slog.Logger](i))
	return server, err
}

// Register adds the four tools to server. Calls run with logger in their context.
func Register(server *mcp.Server, h *handler.Handler, logger *slog.Logger) error {
	iconSchema, err := jsonschema.For[handler.IconInput](nil)
	if err != nil {
		return err
	}
	listSchema, err := jsonschema.For[handler.ListInput](nil)
	if err != nil {
		return err
	}
	templateSchema, err := jsonschema.For[handler.TemplateInput](nil)
	if err != nil {
		return err
	}
	batchSchema, err := jsonschema.For[handler.BatchInput](nil)
	if err != nil {
		return err
	}
	batchSchema.Properties["sizes"].MinItems = lo.ToPtr(1)

	mcp.AddTool(server, &mcp.Tool{
		Name:        handler.ToolGenerateIcon,
		Description: "Generate a single image from a text description. Returns a PNG file path.",
		InputSchema: iconSchema,
	}, wrap(logger, h.GenerateIcon))

	mcp.AddTool(server, &mcp.Tool{
		Name:        handler.ToolListTemplates,
		Description: "List all available graphic templates with descriptions and required parameters.",
		InputSchema: listSchema,
	}, wrap(logger, func(ctx context.Context, _ handler.ListInput) handler.Result {
		return h.ListTemplates(ctx)
	}))

	mcp.AddTool(server, &mcp.Tool{
		Name:        handler.ToolGenerateFromTemplate,
		Description: "Generate an image using a predefined template with custom parameters.",
		InputSchema: templateSchema,
	}, wrap(logger, h.GenerateFromTemplate))

	mcp.AddTool(server, &mcp.Tool{
		Name:        handler.ToolGenerateIconBatch,
		Description: "Generate the same image in multiple sizes. Returns one PNG file per size.",
		InputSchema: batchSchema,
	}, wrap(logger, h.GenerateIconBatch))

	return nil
}

func wrap[In any](logger *slog.Logger, fn func(context.Context, In) handler.Result) mcp.ToolHandlerFor[In, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
		if logger != nil {
			ctx = log.NewContext(ctx, logger.With("tool", req.Params.Name))
		}
		res := fn(ctx, in)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: res.Text}},
			IsError: res.IsError,
		}, nil, nil
	}
}

// Serve runs server on stdio until ctx is done or the client disconnects.
func Serve(ctx context.Context, server *mcp.Server) error {
	log.FromContextOrDiscard(ctx).Info(ServerName + " MCP server running on stdio")
	return server.Run(ctx, &mcp.StdioTransport{})
}
