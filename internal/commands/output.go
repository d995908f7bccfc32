package commands

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmorgan81/rcgraphics/internal/handler"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

var (
	okStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9f"))
	errStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff5f87"))
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
)

// output writes result to stdout as YAML or JSON and a status line to stderr.
func (a *app) output(cmd *cobra.Command, result handler.Result) error {
	w := cmd.OutOrStdout()
	if a.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
	} else {
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}

	stderr := cmd.ErrOrStderr()
	if result.IsError {
		fmt.Fprintln(stderr, errStyle.Render("✗ "+cmd.Name()+" failed"))
		return errToolFailed
	}
	fmt.Fprintln(stderr, okStyle.Render("✓ "+cmd.Name()), dimStyle.Render(fmt.Sprintf("%d file(s)", len(result.Files))))
	return nil
}
