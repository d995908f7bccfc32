package inject

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/dmorgan81/rcgraphics/internal/config"
	"github.com/dmorgan81/rcgraphics/internal/feed"
	"github.com/dmorgan81/rcgraphics/internal/handler"
	"github.com/dmorgan81/rcgraphics/internal/image"
	"github.com/dmorgan81/rcgraphics/internal/leaderboard"
	"github.com/dmorgan81/rcgraphics/internal/log"
	"github.com/dmorgan81/rcgraphics/internal/page"
	"github.com/dmorgan81/rcgraphics/internal/param"
	"github.com/dmorgan81/rcgraphics/internal/store"
	"github.com/dmorgan81/rcgraphics/internal/tools"
	"github.com/dmorgan81/rcgraphics/internal/web"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/samber/do"
)

func Setup(ctx context.Context, cfg config.Config, version string) *do.Injector {
	log := log.FromContextOrDiscard(ctx)

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			log.Debug(fmt.Sprintf(format, args...))
		},
	})
	do.ProvideValue[context.Context](injector, ctx)
	do.ProvideValue[*slog.Logger](injector, log)

	do.Provide[aws.Config](injector, func(i *do.Injector) (aws.Config, error) {
		return awsconfig.LoadDefaultConfig(ctx)
	})
	do.Provide[*ssm.Client](injector, func(i *do.Injector) (*ssm.Client, error) {
		return ssm.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*s3.Client](injector, func(i *do.Injector) (*s3.Client, error) {
		return s3.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*cloudfront.Client](injector, func(i *do.Injector) (*cloudfront.Client, error) {
		return cloudfront.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})

	do.ProvideNamed[string](injector, "gemini_key", func(i *do.Injector) (string, error) {
		var fetcher param.Fetcher
		if cfg.GeminiAPIKey == "" && cfg.GeminiAPIKeyParam != "" {
			fetcher = do.MustInvoke[param.Fetcher](i)
		}
		return param.APIKey(ctx, cfg.GeminiAPIKey, cfg.GeminiAPIKeyParam, fetcher)
	})
	do.ProvideNamedValue[string](injector, "gemini_model", cfg.GeminiModel)
	do.ProvideNamedValue[time.Duration](injector, "generation_timeout", cfg.GenerationTimeout)
	do.ProvideNamedValue[string](injector, "public_dir", cfg.PublicDir)
	do.ProvideNamedValue[string](injector, "bucket", cfg.OutputBucket)
	do.ProvideNamedValue[string](injector, "distribution", cfg.Distribution)
	do.ProvideNamedValue[string](injector, "site_url", cfg.SiteURL)
	do.ProvideNamedValue[string](injector, "leaderboard_pin", cfg.LeaderboardPIN)
	do.ProvideNamedValue[string](injector, "firestore_project", cfg.FirestoreProject)
	do.ProvideNamedValue[string](injector, "version", version)

	do.Provide[param.Fetcher](injector, param.NewParameterStoreFetcher)
	do.Provide[image.Generator](injector, image.NewGeminiGenerator)
	do.Provide[*store.Resolver](injector, store.NewResolver)
	do.Provide[*store.FileUploader](injector, store.NewFileUploader)
	if cfg.MirrorEnabled() {
		do.Provide[store.Uploader](injector, store.NewS3Uploader)
		do.Provide[*store.Mirror](injector, func(i *do.Injector) (*store.Mirror, error) {
			mirror := &store.Mirror{
				Uploader: do.MustInvoke[store.Uploader](i),
				Prefix:   cfg.OutputPrefix,
			}
			if cfg.Distribution != "" {
				mirror.Invalidator = do.MustInvoke[store.Invalidator](i)
			}
			return mirror, nil
		})
		do.Provide[store.Invalidator](injector, store.NewCloudFrontInvalidator)
	}

	do.Provide[*handler.Handler](injector, handler.NewHandler)
	do.Provide[*mcp.Server](injector, tools.NewServer)

	do.Provide[*page.Templator](injector, page.NewTemplator)
	do.Provide[*feed.Generator](injector, feed.NewGenerator)
	do.Provide[leaderboard.Source](injector, leaderboard.NewFirestoreSource)
	do.Provide[*web.Server](injector, web.NewServer)

	return injector
}
