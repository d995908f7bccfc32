package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmorgan81/rcgraphics/internal/handler"
	"github.com/dmorgan81/rcgraphics/internal/validate"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

func (a *app) templatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the graphic templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.output(cmd, a.handler().ListTemplates(cmd.Context()))
		},
	}
}

func (a *app) iconCmd() *cobra.Command {
	var in handler.IconInput
	cmd := &cobra.Command{
		Use:   "icon <prompt>",
		Short: "Generate a single image from a text description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Prompt = args[0]
			return a.output(cmd, a.handler().GenerateIcon(cmd.Context(), in))
		},
	}
	cmd.Flags().StringVar(&in.AspectRatio, "aspect-ratio", "", "aspect ratio ("+strings.Join(validate.AspectRatios(), ", ")+")")
	cmd.Flags().StringVar(&in.Size, "size", "", "image size ("+strings.Join(validate.Sizes(), ", ")+")")
	cmd.Flags().StringVarP(&in.OutputDir, "output-dir", "o", "", "output directory (default public/generated)")
	return cmd
}

func (a *app) templateCmd() *cobra.Command {
	var in handler.TemplateInput
	cmd := &cobra.Command{
		Use:   "template <name>",
		Short: "Generate an image from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Template = args[0]
			return a.output(cmd, a.handler().GenerateFromTemplate(cmd.Context(), in))
		},
	}
	cmd.Flags().StringToStringVarP(&in.Params, "param", "p", nil, "template parameter as key=value (repeatable)")
	cmd.Flags().StringVar(&in.AspectRatio, "aspect-ratio", "", "override the template aspect ratio")
	cmd.Flags().StringVar(&in.Size, "size", "", "override the template size")
	cmd.Flags().StringVarP(&in.OutputDir, "output-dir", "o", "", "output directory (default public/generated)")
	return cmd
}

func (a *app) batchCmd() *cobra.Command {
	var in handler.BatchInput
	cmd := &cobra.Command{
		Use:   "batch <prompt>",
		Short: "Generate the same image at several sizes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Prompt = args[0]
			return a.output(cmd, a.handler().GenerateIconBatch(cmd.Context(), in))
		},
	}
	cmd.Flags().StringSliceVar(&in.Sizes, "sizes", validate.Sizes(), "sizes to generate")
	cmd.Flags().StringVar(&in.AspectRatio, "aspect-ratio", "", "aspect ratio for every image")
	cmd.Flags().StringVarP(&in.OutputDir, "output-dir", "o", "", "output directory (default public/generated)")
	return cmd
}

func (a *app) callCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Invoke a tool with arguments from a YAML or JSON file",
		Long: `Invoke a tool by name. Arguments are read from --file ("-" for stdin)
and use the same shape as the MCP tool input.

Example:
  echo '{template: score-icon, params: {score: "3", teamColor: red}}' | rcgraphics call generate_from_template -f -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arguments, err := readArguments(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			return a.output(cmd, a.handler().Call(cmd.Context(), handler.Invocation{Tool: args[0], Arguments: arguments}))
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "arguments file (YAML or JSON, - for stdin)")
	return cmd
}

// readArguments loads YAML or JSON and returns it as JSON.
func readArguments(stdin io.Reader, path string) (json.RawMessage, error) {
	if path == "" {
		return nil, nil
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read arguments: %w", err)
	}

	out, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse arguments: %w", err)
	}
	return out, nil
}
