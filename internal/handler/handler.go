package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmorgan81/rcgraphics/internal/image"
	"github.com/dmorgan81/rcgraphics/internal/log"
	"github.com/dmorgan81/rcgraphics/internal/prompt"
	"github.com/dmorgan81/rcgraphics/internal/store"
	"github.com/dmorgan81/rcgraphics/internal/validate"
	"github.com/samber/do"
	"github.com/samber/lo"
)

type Handler struct {
	generator image.Generator
	resolver  *store.Resolver
	files     *store.FileUploader
}

func New(generator image.Generator, resolver *store.Resolver, files *store.FileUploader) *Handler {
	return &Handler{generator: generator, resolver: resolver, files: files}
}

func NewHandler(i *do.Injector) (*Handler, error) {
	return New(
		do.MustInvoke[image.Generator](i),
		do.MustInvoke[*store.Resolver](i),
		do.MustInvoke[*store.FileUploader](i),
	), nil
}

func failure(err error) Result {
	return Result{Text: "Error: " + err.Error(), IsError: true}
}

// validateShape checks only the values the caller supplied.
func validateShape(ratio, size string) error {
	if ratio != "" {
		if err := validate.AspectRatio(ratio); err != nil {
			return err
		}
	}
	if size != "" {
		return validate.Size(size)
	}
	return nil
}

func (h *Handler) render(ctx context.Context, dir, prefix string, params image.Params) (store.Saved, error) {
	data, err := h.generator.Generate(ctx, params)
	if err != nil {
		return store.Saved{}, err
	}
	return h.files.Save(ctx, dir, prefix, data)
}

func (h *Handler) single(ctx context.Context, outputDir, prefix string, params image.Params) (store.Saved, error) {
	dir, err := h.resolver.ResolveDir(outputDir)
	if err != nil {
		return store.Saved{}, err
	}
	return h.render(ctx, dir, prefix, params)
}

func (h *Handler) GenerateIcon(ctx context.Context, in IconInput) Result {
	log := log.FromContextOrDiscard(ctx).WithGroup("generate_icon")

	if err := validate.Prompt(in.Prompt); err != nil {
		return failure(err)
	}
	if err := validateShape(in.AspectRatio, in.Size); err != nil {
		return failure(err)
	}

	params := shape(in.AspectRatio, in.Size, DefaultAspectRatio, DefaultSize)
	params.Prompt = in.Prompt
	saved, err := h.single(ctx, in.OutputDir, "icon", params)
	if err != nil {
		log.Error("generation failed", "error", err)
		return failure(err)
	}

	log.Info("generated", "path", saved.Path, "bytes", saved.Size)
	return Result{
		Text:  fmt.Sprintf("Image generated successfully.\nFile: %s\nSize: %d bytes", saved.Path, saved.Size),
		Files: []store.Saved{saved},
	}
}

func (h *Handler) ListTemplates(context.Context) Result {
	var entries []string
	for tmpl := range prompt.All() {
		entries = append(entries, fmt.Sprintf("%d. **%s**: %s\n   Required: %s\n   Optional: %s\n   Default: %s, %s",
			len(entries)+1,
			tmpl.Name,
			tmpl.Description,
			strings.Join(tmpl.Required, ", "),
			lo.Ternary(len(tmpl.Defaults) > 0, strings.Join(tmpl.Optional(), ", "), "none"),
			tmpl.AspectRatio,
			tmpl.Size,
		))
	}
	if len(entries) == 0 {
		return Result{Text: "No templates available."}
	}
	return Result{Text: "Available templates:\n\n" + strings.Join(entries, "\n\n")}
}

func (h *Handler) GenerateFromTemplate(ctx context.Context, in TemplateInput) Result {
	log := log.FromContextOrDiscard(ctx).WithGroup("generate_from_template").With("template", in.Template)

	tmpl, ok := prompt.Get(in.Template)
	if !ok {
		return failure(fmt.Errorf("%w: '%s', use list_templates to see available templates", prompt.ErrTemplateNotFound, in.Template))
	}

	text, err := prompt.Build(tmpl, in.Params)
	if err != nil {
		return failure(err)
	}
	if err := validate.Prompt(text); err != nil {
		return failure(err)
	}
	if err := validateShape(in.AspectRatio, in.Size); err != nil {
		return failure(err)
	}

	params := shape(in.AspectRatio, in.Size, tmpl.AspectRatio, tmpl.Size)
	params.Prompt = text
	saved, err := h.single(ctx, in.OutputDir, tmpl.Name, params)
	if err != nil {
		log.Error("generation failed", "error", err)
		return failure(err)
	}

	log.Info("generated", "path", saved.Path, "bytes", saved.Size)
	return Result{
		Text:  fmt.Sprintf("Image generated from template '%s'.\nFile: %s\nSize: %d bytes", tmpl.Name, saved.Path, saved.Size),
		Files: []store.Saved{saved},
	}
}

// GenerateIconBatch renders the prompt once per size, one at a time. A failed
// size is recorded and the rest still run. The result is an error only when
// nothing was generated.
func (h *Handler) GenerateIconBatch(ctx context.Context, in BatchInput) Result {
	log := log.FromContextOrDiscard(ctx).WithGroup("generate_icon_batch").With("sizes", in.Sizes)

	if err := validate.Prompt(in.Prompt); err != nil {
		return failure(err)
	}
	if err := validateShape(in.AspectRatio, ""); err != nil {
		return failure(err)
	}
	if len(in.Sizes) == 0 {
		return failure(fmt.Errorf("%w: sizes must contain at least one entry", validate.ErrInvalidInput))
	}
	dir, err := h.resolver.ResolveDir(in.OutputDir)
	if err != nil {
		return failure(err)
	}

	outcome := &BatchOutcome{Requested: len(in.Sizes)}
	for _, size := range in.Sizes {
		saved, err := h.batchItem(ctx, dir, in, size)
		if err != nil {
			log.Warn("size failed", "size", size, "error", err)
			outcome.Errors = append(outcome.Errors, BatchError{Size: size, Error: err.Error()})
			continue
		}
		outcome.Generated = append(outcome.Generated, BatchItem{Size: size, Format: "png", Path: saved.Path, Bytes: saved.Size})
	}
	outcome.Succeeded = len(outcome.Generated)
	outcome.Failed = len(outcome.Errors)
	log.Info("batch complete", "succeeded", outcome.Succeeded, "failed", outcome.Failed)

	return Result{
		Text:    outcome.String(),
		IsError: outcome.Succeeded == 0,
		Files: lo.Map(outcome.Generated, func(item BatchItem, _ int) store.Saved {
			return store.Saved{Path: item.Path, Size: item.Bytes}
		}),
		Batch: outcome,
	}
}

func (h *Handler) batchItem(ctx context.Context, dir string, in BatchInput, size string) (store.Saved, error) {
	if err := validate.Size(size); err != nil {
		return store.Saved{}, err
	}
	params := shape(in.AspectRatio, size, DefaultAspectRatio, DefaultSize)
	params.Prompt = in.Prompt
	return h.render(ctx, dir, "batch-"+size, params)
}

func (o *BatchOutcome) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Batch complete: %d/%d images generated.", o.Succeeded, o.Requested)
	if o.Failed > 0 {
		fmt.Fprintf(&b, " %d error(s).", o.Failed)
	}
	if len(o.Generated) > 0 {
		b.WriteString("\n\nGenerated:")
		for _, item := range o.Generated {
			fmt.Fprintf(&b, "\n  %s: %s (%d bytes)", item.Size, item.Path, item.Bytes)
		}
	}
	if len(o.Errors) > 0 {
		b.WriteString("\n\nErrors:")
		for _, e := range o.Errors {
			fmt.Fprintf(&b, "\n  %s: %s", e.Size, e.Error)
		}
	}
	return b.String()
}
