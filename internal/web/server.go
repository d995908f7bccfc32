// Package web serves the leaderboard site and the generated graphics.
package web

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmorgan81/rcgraphics/internal/feed"
	"github.com/dmorgan81/rcgraphics/internal/leaderboard"
	"github.com/dmorgan81/rcgraphics/internal/log"
	"github.com/dmorgan81/rcgraphics/internal/page"
	"github.com/dmorgan81/rcgraphics/internal/store"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

const (
	PinCookie     = "rc26_pin_ok"
	pinCookieLife = 30 * 24 * time.Hour
)

type Server struct {
	Templator *page.Templator
	// Source is resolved per request so the site starts without database credentials.
	Source   func() (leaderboard.Source, error)
	Feed     *feed.Generator
	Resolver *store.Resolver
	PIN      string
	Logger   *slog.Logger
}

func NewServer(i *do.Injector) (*Server, error) {
	return &Server{
		Templator: do.MustInvoke[*page.Templator](i),
		Source: func() (leaderboard.Source, error) {
			return do.Invoke[leaderboard.Source](i)
		},
		Feed:     do.MustInvoke[*feed.Generator](i),
		Resolver: do.MustInvoke[*store.Resolver](i),
		PIN:      do.MustInvokeNamed[string](i, "leaderboard_pin"),
		Logger:   do.MustInvoke[*slog.Logger](i),
	}, nil
}

func (s *Server) Handler() (http.Handler, error) {
	public, ok, err := s.Resolver.PublicRoot()
	if err != nil {
		return nil, err
	}
	generated, err := s.Resolver.ResolveDir("")
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.landing)
	mux.HandleFunc("POST /{$}", s.unlock)
	mux.HandleFunc("GET /leaderboard", s.leaderboard)
	mux.HandleFunc("GET /generated/feed.xml", s.feed)
	mux.Handle("GET /generated/{name}", generatedFiles(generated))
	if ok {
		mux.Handle("GET /", hideDotFiles(http.FileServer(http.Dir(public))))
	}
	return s.logRequests(mux), nil
}

// generatedFiles serves only graphics named by store.Filename from dir.
func generatedFiles(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		if _, _, ok := store.ParseFilename(name); !ok || strings.HasPrefix(name, ".") || filepath.Base(name) != name {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(dir, name))
	})
}

func hideDotFiles(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, part := range strings.Split(r.URL.Path, "/") {
			if strings.HasPrefix(part, ".") {
				http.NotFound(w, r)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Run serves on addr until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.FromContextOrDiscard(ctx).Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	})
	return group.Wait()
}

func (s *Server) unlocked(r *http.Request) bool {
	if s.PIN == "" {
		return true
	}
	c, err := r.Cookie(PinCookie)
	return err == nil && c.Value == "1"
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, params any) {
	body, err := s.Templator.Template(r.Context(), name, params)
	if err != nil {
		log.FromContextOrDiscard(r.Context()).Error("render failed", "page", name, "error", err)
		http.Error(w, "Failed to render page.", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) landing(w http.ResponseWriter, r *http.Request) {
	if s.PIN != "" && s.unlocked(r) {
		http.Redirect(w, r, "/leaderboard", http.StatusFound)
		return
	}
	s.render(w, r, http.StatusOK, page.Landing, page.LandingParams{Layout: page.DefaultLayout()})
}

func (s *Server) unlock(w http.ResponseWriter, r *http.Request) {
	pin := r.FormValue("pin")
	if s.PIN != "" && subtle.ConstantTimeCompare([]byte(pin), []byte(s.PIN)) != 1 {
		log.FromContextOrDiscard(r.Context()).Warn("incorrect pin")
		s.render(w, r, http.StatusUnauthorized, page.Landing, page.LandingParams{
			Layout: page.DefaultLayout(),
			Error:  "Incorrect PIN.",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     PinCookie,
		Value:    "1",
		Path:     "/",
		MaxAge:   int(pinCookieLife.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/leaderboard", http.StatusSeeOther)
}

func (s *Server) leaderboard(w http.ResponseWriter, r *http.Request) {
	if !s.unlocked(r) {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	params := page.LeaderboardParams{Layout: page.DefaultLayout()}
	board, err := s.loadBoard(r.Context())
	switch {
	case errors.Is(err, leaderboard.ErrNoEvent):
		params.Error = "No event found in database."
	case err != nil:
		log.FromContextOrDiscard(r.Context()).Error("load failed", "error", err)
		params.Error = err.Error()
	default:
		params.Event = &board.Event
		params.Sessions = board.Sessions
	}
	s.render(w, r, http.StatusOK, page.Leaderboard, params)
}

func (s *Server) loadBoard(ctx context.Context) (leaderboard.Board, error) {
	src, err := s.Source()
	if err != nil {
		return leaderboard.Board{}, err
	}
	return leaderboard.Load(ctx, src)
}

func (s *Server) feed(w http.ResponseWriter, r *http.Request) {
	rss, err := s.Feed.Generate(r.Context())
	if err != nil {
		log.FromContextOrDiscard(r.Context()).Error("feed failed", "error", err)
		http.Error(w, "Failed to generate feed.", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	_, _ = w.Write(rss)
}
