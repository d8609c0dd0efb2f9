// Package handler contains the HTTP handlers for the catalog API.  Each
// handler struct bundles the store interfaces and configuration it
// depends on; nothing reads package-level state.  The store interfaces
// are defined here, where they are consumed, and are satisfied by the
// mongo-backed repositories and by in-memory fakes in tests.
package handler

import (
	"context"
	"log"
	"time"

	"github.com/watchnow/watchnow/internal/model"
	"github.com/watchnow/watchnow/internal/queue"
)

// dbTimeout bounds every persistence call made from a handler.
const dbTimeout = 5 * time.Second

// MovieStore is the persistence surface the movie handlers need.
type MovieStore interface {
	ListAll(ctx context.Context) ([]model.Movie, error)
	Create(ctx context.Context, m *model.Movie) error
	UpdateByID(ctx context.Context, id int64, fields map[string]any) (*model.Movie, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

// SeriesStore is the persistence surface the series handlers need.
type SeriesStore interface {
	ListAll(ctx context.Context) ([]model.Series, error)
	Create(ctx context.Context, s *model.Series) error
	UpdateByID(ctx context.Context, id int64, fields map[string]any) (*model.Series, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

// UserStore is the persistence surface the user and auth handlers need.
type UserStore interface {
	ListAll(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	NextID(ctx context.Context) (int64, error)
	UpdateByID(ctx context.Context, id int64, fields map[string]any) (*model.User, error)
	UpdatePasswordByEmail(ctx context.Context, email, hash string) (*model.User, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

// AuditPublisher receives catalog-change events after successful admin
// mutations.  A nil publisher disables auditing.
type AuditPublisher interface {
	PublishCatalogChanged(ctx context.Context, ev queue.CatalogEvent) error
}

// publishAudit fires an audit event without blocking the request.
// Publish failures are logged by the publisher and otherwise ignored:
// the mutation has already been committed and the response must not
// depend on the broker being up.
func publishAudit(pub AuditPublisher, collection, action string, recordID int64, title string, actor *model.User) {
	if pub == nil {
		return
	}
	ev := queue.CatalogEvent{
		Collection: collection,
		Action:     action,
		RecordID:   recordID,
		Title:      title,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if actor != nil {
		ev.ActorID = actor.ID
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
		defer cancel()
		if err := pub.PublishCatalogChanged(ctx, ev); err != nil {
			log.Printf("audit: publish %s/%s failed: %v", collection, action, err)
		}
	}()
}
