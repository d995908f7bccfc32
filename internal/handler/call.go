package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmorgan81/rcgraphics/internal/log"
)

const (
	ToolGenerateIcon         = "generate_icon"
	ToolListTemplates        = "list_templates"
	ToolGenerateFromTemplate = "generate_from_template"
	ToolGenerateIconBatch    = "generate_icon_batch"
)

// Invocation names a tool and carries its JSON arguments.
type Invocation struct {
	Tool      string          `json:"tool"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

func decode[T any](args json.RawMessage) (T, error) {
	var in T
	if len(args) == 0 {
		return in, nil
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return in, fmt.Errorf("invalid arguments: %w", err)
	}
	return in, nil
}

func run[T any](ctx context.Context, args json.RawMessage, fn func(context.Context, T) Result) Result {
	in, err := decode[T](args)
	if err != nil {
		return failure(err)
	}
	return fn(ctx, in)
}

// Call dispatches an invocation by tool name.
func (h *Handler) Call(ctx context.Context, inv Invocation) Result {
	switch inv.Tool {
	case ToolGenerateIcon:
		return run(ctx, inv.Arguments, h.GenerateIcon)
	case ToolListTemplates:
		return h.ListTemplates(ctx)
	case ToolGenerateFromTemplate:
		return run(ctx, inv.Arguments, h.GenerateFromTemplate)
	case ToolGenerateIconBatch:
		return run(ctx, inv.Arguments, h.GenerateIconBatch)
	default:
		return failure(fmt.Errorf("unknown tool '%s'", inv.Tool))
	}
}

// Handle is the lambda entrypoint.
func (h *Handler) Handle(ctx context.Context, inv Invocation) (Result, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("Handler").With("tool", inv.Tool)
	log.Info("handling lambda invocation")

	result := h.Call(ctx, inv)
	if result.IsError {
		log.Warn("tool reported an error", "text", result.Text)
	}
	return result, nil
}
