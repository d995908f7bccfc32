package prompt

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	ErrMissingParameter = errors.New("missing template parameter")
	ErrTemplateNotFound = errors.New("template not found")
)

// Build fills the template's placeholders from params over its defaults.
// Placeholders with no value are left as-is.
func Build(t Template, params map[string]string) (string, error) {
	for _, req := range t.Required {
		if _, ok := params[req]; !ok {
			return "", fmt.Errorf("%w: template '%s' requires parameter '%s' but it was not provided",
				ErrMissingParameter, t.Name, req)
		}
	}

	merged := maps.Clone(t.Defaults)
	if merged == nil {
		merged = make(map[string]string, len(params))
	}
	maps.Copy(merged, params)

	prompt := t.Prompt
	for _, key := range slices.Sorted(maps.Keys(merged)) {
		prompt = strings.ReplaceAll(prompt, "{"+key+"}", merged[key])
	}
	return prompt, nil
}
