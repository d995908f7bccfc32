package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/dmorgan81/rcgraphics/internal/handler"
	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OUTPUT_BUCKET", "")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTemplatesJSON(t *testing.T) {
	out, err := run(t, "", "templates", "--json")
	require.NoError(t, err)

	var res handler.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.IsError)
	assert.True(t, strings.HasPrefix(res.Text, "Available templates:"))
}

func TestTemplatesYAML(t *testing.T) {
	out, err := run(t, "", "templates")
	require.NoError(t, err)

	var res handler.Result
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.Contains(t, res.Text, "**score-icon**")
}

func TestIconValidationFails(t *testing.T) {
	out, err := run(t, "", "icon", "   ", "--json")
	require.ErrorIs(t, err, errToolFailed)

	var res handler.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.IsError)
	assert.Contains(t, res.Text, "prompt is required")
}

func TestTemplateMissingParam(t *testing.T) {
	out, err := run(t, "", "template", "score-icon", "-p", "score=3", "--json")
	require.ErrorIs(t, err, errToolFailed)
	assert.Contains(t, out, "requires parameter 'teamColor'")
}

func TestCall(t *testing.T) {
	out, err := run(t, "{}", "call", "list_templates", "-f", "-", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, "Available templates:")

	out, err = run(t, "", "call", "draw", "--json")
	require.ErrorIs(t, err, errToolFailed)
	assert.Contains(t, out, "unknown tool 'draw'")
}

func TestReadArguments(t *testing.T) {
	got, err := readArguments(strings.NewReader("template: score-icon\nparams:\n  score: \"3\"\n  teamColor: red\n"), "-")
	require.NoError(t, err)

	var in handler.TemplateInput
	require.NoError(t, json.Unmarshal(got, &in))
	assert.Equal(t, "score-icon", in.Template)
	assert.Equal(t, map[string]string{"score": "3", "teamColor": "red"}, in.Params)

	got, err = readArguments(nil, "")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = readArguments(nil, "/definitely/not/here.yaml")
	assert.Error(t, err)
}
