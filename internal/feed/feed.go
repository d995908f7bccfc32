package feed

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmorgan81/rcgraphics/internal/log"
	"github.com/dmorgan81/rcgraphics/internal/store"
	"github.com/gorilla/feeds"
	"github.com/samber/do"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

type Generator struct {
	Resolver *store.Resolver
	SiteURL  string
}

func NewGenerator(i *do.Injector) (*Generator, error) {
	return &Generator{
		Resolver: do.MustInvoke[*store.Resolver](i),
		SiteURL:  do.MustInvokeNamed[string](i, "site_url"),
	}, nil
}

// Generate builds an RSS feed of the graphics in the default output directory.
func (g *Generator) Generate(ctx context.Context) ([]byte, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("feed")
	log.Info("generating rss feed")

	dir, err := g.Resolver.ResolveDir("")
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	pngs := lo.Filter(entries, func(e fs.DirEntry, _ int) bool {
		_, _, ok := store.ParseFilename(e.Name())
		return !e.IsDir() && ok
	})

	site := strings.TrimSuffix(g.SiteURL, "/")
	feed := feeds.Feed{
		Title:       "Ryder Cup Graphics",
		Description: "Generated graphics for the 2026 Ryder Cup",
		Link:        &feeds.Link{Href: site + "/"},
		Updated:     time.Now(),
	}

	items := make([]*feeds.Item, len(pngs))
	var group errgroup.Group
	for idx, entry := range pngs {
		group.Go(func() error {
			info, err := entry.Info()
			if err != nil {
				return err
			}
			prefix, created, _ := store.ParseFilename(entry.Name())
			items[idx] = &feeds.Item{
				Id:          entry.Name(),
				Title:       prefix,
				Link:        &feeds.Link{Href: site + "/generated/" + entry.Name()},
				Description: fmt.Sprintf("%s, %d bytes", prefix, info.Size()),
				Created:     created,
				Updated:     info.ModTime(),
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	log.Info("collected items", "dir", filepath.Base(dir), "count", len(items))

	feed.Items = items
	feed.Sort(func(a, b *feeds.Item) bool {
		return a.Created.After(b.Created)
	})
	rss, err := feed.ToRss()
	return []byte(rss), err
}
