package leaderboard

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/samber/do"
	"github.com/samber/lo"
)

const (
	eventsCollection   = "events"
	sessionsCollection = "sessions"
)

type FirestoreSource struct {
	client *firestore.Client
}

func NewFirestoreSource(i *do.Injector) (Source, error) {
	ctx := do.MustInvoke[context.Context](i)
	project := do.MustInvokeNamed[string](i, "firestore_project")
	client, err := firestore.NewClient(ctx, lo.Ternary(project != "", project, firestore.DetectProjectID))
	if err != nil {
		return nil, err
	}
	return &FirestoreSource{client: client}, nil
}

func (s *FirestoreSource) Event(ctx context.Context) (Event, error) {
	docs, err := s.client.Collection(eventsCollection).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return Event{}, err
	}
	if len(docs) == 0 {
		return Event{}, ErrNoEvent
	}

	var ev Event
	if err := docs[0].DataTo(&ev); err != nil {
		return Event{}, err
	}
	ev.ID = docs[0].Ref.ID
	return ev, nil
}

func (s *FirestoreSource) Sessions(ctx context.Context) ([]Session, error) {
	docs, err := s.client.Collection(sessionsCollection).OrderBy("sort_order", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	sessions := make([]Session, 0, len(docs))
	for _, doc := range docs {
		var sess Session
		if err := doc.DataTo(&sess); err != nil {
			return nil, err
		}
		sess.ID = doc.Ref.ID
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

func (s *FirestoreSource) Shutdown() error {
	return s.client.Close()
}
