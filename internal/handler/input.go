package handler

import (
	"github.com/dmorgan81/rcgraphics/internal/image"
	"github.com/dmorgan81/rcgraphics/internal/store"
	"github.com/samber/lo"
)

const (
	DefaultAspectRatio = "1:1"
	DefaultSize        = "1K"
)

type IconInput struct {
	Prompt      string `json:"prompt" jsonschema:"Text description of the image to generate"`
	AspectRatio string `json:"aspectRatio,omitempty" jsonschema:"Aspect ratio (default 1:1). Options: 1:1, 2:3, 3:2, 3:4, 4:3, 4:5, 5:4, 9:16, 16:9, 21:9"`
	Size        string `json:"size,omitempty" jsonschema:"Image size (default 1K). Options: 1K, 2K, 4K"`
	OutputDir   string `json:"outputDir,omitempty" jsonschema:"Custom output directory (defaults to public/generated/)"`
}

type TemplateInput struct {
	Template    string            `json:"template" jsonschema:"Template name (use list_templates to see options)"`
	Params      map[string]string `json:"params" jsonschema:"Key-value pairs for template placeholders"`
	AspectRatio string            `json:"aspectRatio,omitempty" jsonschema:"Override template default aspect ratio"`
	Size        string            `json:"size,omitempty" jsonschema:"Override template default size"`
	OutputDir   string            `json:"outputDir,omitempty" jsonschema:"Custom output directory (defaults to public/generated/)"`
}

type BatchInput struct {
	Prompt      string   `json:"prompt" jsonschema:"Text description of the image to generate"`
	Sizes       []string `json:"sizes" jsonschema:"Sizes to generate. Options per entry: 1K, 2K, 4K"`
	AspectRatio string   `json:"aspectRatio,omitempty" jsonschema:"Aspect ratio for all images (default 1:1)"`
	OutputDir   string   `json:"outputDir,omitempty" jsonschema:"Custom output directory (defaults to public/generated/)"`
}

type ListInput struct{}

// Result is what every tool returns. Failures are reported in Text with
// IsError set and never as a Go error.
type Result struct {
	Text    string        `json:"text" yaml:"text"`
	IsError bool          `json:"isError" yaml:"isError"`
	Files   []store.Saved `json:"files,omitempty" yaml:"files,omitempty"`
	Batch   *BatchOutcome `json:"batch,omitempty" yaml:"batch,omitempty"`
}

type BatchItem struct {
	Size   string `json:"size" yaml:"size"`
	Format string `json:"format" yaml:"format"`
	Path   string `json:"path" yaml:"path"`
	Bytes  int64  `json:"bytes" yaml:"bytes"`
}

type BatchError struct {
	Size  string `json:"size" yaml:"size"`
	Error string `json:"error" yaml:"error"`
}

type BatchOutcome struct {
	Requested int          `json:"requested" yaml:"requested"`
	Succeeded int          `json:"succeeded" yaml:"succeeded"`
	Failed    int          `json:"failed" yaml:"failed"`
	Generated []BatchItem  `json:"generated" yaml:"generated"`
	Errors    []BatchError `json:"errors" yaml:"errors"`
}

func shape(ratio, size, defaultRatio, defaultSize string) image.Params {
	return image.Params{
		AspectRatio: lo.Ternary(ratio != "", ratio, defaultRatio),
		Size:        lo.Ternary(size != "", size, defaultSize),
	}
}
