// Package leaderboard reads the event and its sessions for the scoring page.
package leaderboard

import (
	"context"
	"errors"

	"github.com/dmorgan81/rcgraphics/internal/log"
)

var ErrNoEvent = errors.New("no event found in database")

type Event struct {
	ID        string `firestore:"-"`
	Name      string `firestore:"name"`
	TeamAName string `firestore:"team_a_name"`
	TeamBName string `firestore:"team_b_name"`
}

type Session struct {
	ID              string  `firestore:"-"`
	Name            string  `firestore:"name"`
	PointsAvailable float64 `firestore:"points_available"`
	SortOrder       int     `firestore:"sort_order"`
}

type Source interface {
	// Event returns the first event, or ErrNoEvent.
	Event(context.Context) (Event, error)
	// Sessions returns every session ordered by sort order.
	Sessions(context.Context) ([]Session, error)
}

type Board struct {
	Event    Event
	Sessions []Session
}

// Load reads the event, then its sessions. Sessions are not read when the
// event lookup fails.
func Load(ctx context.Context, src Source) (Board, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("leaderboard")

	event, err := src.Event(ctx)
	if err != nil {
		log.Warn("load event failed", "error", err)
		return Board{}, err
	}
	sessions, err := src.Sessions(ctx)
	if err != nil {
		log.Warn("load sessions failed", "error", err)
		return Board{}, err
	}

	board := Board{Event: event, Sessions: sessions}
	log.Info("loaded", "event", board.Event.Name, "sessions", len(board.Sessions))
	return board, nil
}
