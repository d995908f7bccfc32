package inject

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmorgan81/rcgraphics/internal/config"
	"github.com/dmorgan81/rcgraphics/internal/handler"
	"github.com/dmorgan81/rcgraphics/internal/image"
	"github.com/dmorgan81/rcgraphics/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	cfg := config.Config{
		GeminiAPIKey:      "direct-key",
		GeminiModel:       image.DefaultModel,
		GenerationTimeout: image.DefaultTimeout,
		PublicDir:         "public",
	}
	injector := Setup(context.Background(), cfg, "test")
	t.Cleanup(func() { _ = injector.Shutdown() })

	key, err := do.InvokeNamed[string](injector, "gemini_key")
	require.NoError(t, err)
	assert.Equal(t, "direct-key", key)

	gen, ok := do.MustInvoke[image.Generator](injector).(*image.GeminiGenerator)
	require.True(t, ok)
	assert.Equal(t, image.DefaultModel, gen.Model)
	assert.Equal(t, image.DefaultTimeout, gen.Timeout)

	assert.Nil(t, do.MustInvoke[*store.FileUploader](injector).Mirror, "no bucket, no mirror")
	assert.NotNil(t, do.MustInvoke[*handler.Handler](injector))
	assert.NotNil(t, do.MustInvoke[*mcp.Server](injector))
}

func TestSetupMirror(t *testing.T) {
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")

	cfg := config.Config{
		OutputBucket: "rc26-graphics",
		OutputPrefix: "generated",
		Distribution: "E123",
		PublicDir:    "public",
	}
	injector := Setup(context.Background(), cfg, "test")
	t.Cleanup(func() { _ = injector.Shutdown() })

	mirror := do.MustInvoke[*store.FileUploader](injector).Mirror
	require.NotNil(t, mirror)
	assert.Equal(t, "generated", mirror.Prefix)
	assert.IsType(t, &store.S3Uploader{}, mirror.Uploader)
	assert.IsType(t, &store.CloudFrontInvalidator{}, mirror.Invalidator)
}

func TestSetupResolverUsesPublicDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "static"), 0o755))
	t.Chdir(root)

	injector := Setup(context.Background(), config.Config{PublicDir: "static"}, "test")
	t.Cleanup(func() { _ = injector.Shutdown() })

	dir, err := do.MustInvoke[*store.Resolver](injector).ResolveDir("")
	require.NoError(t, err)
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "static", "generated"), dir)
}
