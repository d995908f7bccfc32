package store

import (
	"context"
	"path"
	"strings"

	"github.com/dmorgan81/rcgraphics/internal/log"
)

type Invalidator interface {
	Invalidate(context.Context, []string) error
}

// Mirror copies saved files to a remote Uploader under Prefix and
// invalidates their CDN paths.
type Mirror struct {
	Uploader    Uploader
	Invalidator Invalidator
	Prefix      string
}

func (m *Mirror) Publish(ctx context.Context, params UploadParams) error {
	params.Name = strings.TrimPrefix(path.Join(m.Prefix, params.Name), "/")
	log.FromContextOrDiscard(ctx).WithGroup("mirror").Info("publishing", "key", params.Name)

	if err := m.Uploader.Upload(ctx, params); err != nil {
		return err
	}
	if m.Invalidator == nil {
		return nil
	}
	return m.Invalidator.Invalidate(ctx, []string{"/" + params.Name})
}
