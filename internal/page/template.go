package page

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"sync"

	"github.com/dmorgan81/rcgraphics/internal/leaderboard"
	"github.com/dmorgan81/rcgraphics/internal/log"
	"github.com/samber/do"
)

//go:embed assets/*.html
var assets embed.FS

const (
	Title       = "2026 Ryder Cup: Mergen vs. Carlson 2026"
	Description = "Live scoring + leaderboard"
)

const (
	Landing     = "landing"
	Leaderboard = "leaderboard"
)

type Layout struct {
	Title       string
	Description string
}

func DefaultLayout() Layout {
	return Layout{Title: Title, Description: Description}
}

type LandingParams struct {
	Layout
	Error string
}

type LeaderboardParams struct {
	Layout
	Event    *leaderboard.Event
	Sessions []leaderboard.Session
	Error    string
}

type Templator struct {
	pages map[string]*template.Template
	once  sync.Once
}

func NewTemplator(*do.Injector) (*Templator, error) {
	return &Templator{}, nil
}

func (g *Templator) Template(ctx context.Context, name string, params any) ([]byte, error) {
	g.once.Do(func() {
		g.pages = make(map[string]*template.Template)
		for _, page := range []string{Landing, Leaderboard} {
			g.pages[page] = template.Must(template.New(page).ParseFS(assets, "assets/layout.html", "assets/"+page+".html"))
		}
	})

	log := log.FromContextOrDiscard(ctx).WithGroup("templator").With("page", name)
	log.Info("generating page")

	tmpl, ok := g.pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", name)
	}
	var data bytes.Buffer
	if err := tmpl.ExecuteTemplate(&data, "layout", params); err != nil {
		return nil, err
	}
	return data.Bytes(), nil
}
