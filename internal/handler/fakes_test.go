package handler

// In-memory store fakes used across the handler tests.  They mirror the
// repository semantics: sentinel errors, email pre-checks, partial
// updates applied as field maps.

import (
	"context"
	"sort"
	"time"

	"github.com/watchnow/watchnow/internal/model"
	"github.com/watchnow/watchnow/internal/queue"
	"github.com/watchnow/watchnow/internal/repository"
)

type fakeMovieStore struct {
	items map[int64]model.Movie
}

func newFakeMovieStore(items ...model.Movie) *fakeMovieStore {
	s := &fakeMovieStore{items: map[int64]model.Movie{}}
	for _, m := range items {
		s.items[m.ID] = m
	}
	return s
}

func (s *fakeMovieStore) ListAll(ctx context.Context) ([]model.Movie, error) {
	out := []model.Movie{}
	for _, m := range s.items {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeMovieStore) Create(ctx context.Context, m *model.Movie) error {
	s.items[m.ID] = *m
	return nil
}

func (s *fakeMovieStore) UpdateByID(ctx context.Context, id int64, fields map[string]any) (*model.Movie, error) {
	m, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "title":
			m.Title, _ = v.(string)
		case "director":
			m.Director, _ = v.(string)
		case "year":
			if f, ok := v.(float64); ok {
				m.Year = int(f)
			}
		case "genre":
			m.Genre, _ = v.(string)
		case "sinopsis":
			m.Sinopsis, _ = v.(string)
		case "cover":
			m.Cover, _ = v.(string)
		case "rating":
			m.Rating, _ = v.(float64)
		}
	}
	s.items[id] = m
	return &m, nil
}

func (s *fakeMovieStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	_, ok := s.items[id]
	delete(s.items, id)
	return ok, nil
}

type fakeSeriesStore struct {
	items map[int64]model.Series
}

func newFakeSeriesStore(items ...model.Series) *fakeSeriesStore {
	s := &fakeSeriesStore{items: map[int64]model.Series{}}
	for _, it := range items {
		s.items[it.ID] = it
	}
	return s
}

func (s *fakeSeriesStore) ListAll(ctx context.Context) ([]model.Series, error) {
	out := []model.Series{}
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeSeriesStore) Create(ctx context.Context, sr *model.Series) error {
	s.items[sr.ID] = *sr
	return nil
}

func (s *fakeSeriesStore) UpdateByID(ctx context.Context, id int64, fields map[string]any) (*model.Series, error) {
	sr, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if v, ok := fields["title"].(string); ok {
		sr.Title = v
	}
	if f, ok := fields["seasons"].(float64); ok {
		sr.Seasons = int(f)
	}
	if f, ok := fields["episodes"].(float64); ok {
		sr.Episodes = int(f)
	}
	s.items[id] = sr
	return &sr, nil
}

func (s *fakeSeriesStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	_, ok := s.items[id]
	delete(s.items, id)
	return ok, nil
}

type fakeUserStore struct {
	items map[int64]model.User
}

func newFakeUserStore(items ...model.User) *fakeUserStore {
	s := &fakeUserStore{items: map[int64]model.User{}}
	for _, u := range items {
		s.items[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) ListAll(ctx context.Context) ([]model.User, error) {
	out := []model.User{}
	for _, u := range s.items {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeUserStore) FindByID(ctx context.Context, id int64) (*model.User, error) {
	u, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *fakeUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	email = repository.NormalizeEmail(email)
	for _, u := range s.items {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeUserStore) Create(ctx context.Context, u *model.User) error {
	u.Email = repository.NormalizeEmail(u.Email)
	if _, err := s.FindByEmail(ctx, u.Email); err == nil {
		return repository.ErrEmailExists
	}
	s.items[u.ID] = *u
	return nil
}

func (s *fakeUserStore) NextID(ctx context.Context) (int64, error) {
	var max int64
	for id := range s.items {
		if id > max {
			max = id
		}
	}
	return max + 1, nil
}

func (s *fakeUserStore) UpdateByID(ctx context.Context, id int64, fields map[string]any) (*model.User, error) {
	u, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name, _ = v.(string)
		case "email":
			if e, ok := v.(string); ok {
				u.Email = repository.NormalizeEmail(e)
			}
		case "password":
			u.Password, _ = v.(string)
		case "role":
			u.Role, _ = v.(string)
		}
	}
	s.items[id] = u
	return &u, nil
}

func (s *fakeUserStore) UpdatePasswordByEmail(ctx context.Context, email, hash string) (*model.User, error) {
	u, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	u.Password = hash
	s.items[u.ID] = *u
	return u, nil
}

func (s *fakeUserStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	_, ok := s.items[id]
	delete(s.items, id)
	return ok, nil
}

// fakeAudit records published events on a buffered channel so tests can
// wait for the async publish without sleeping.
type fakeAudit struct {
	events chan queue.CatalogEvent
}

func newFakeAudit() *fakeAudit {
	return &fakeAudit{events: make(chan queue.CatalogEvent, 16)}
}

func (f *fakeAudit) PublishCatalogChanged(ctx context.Context, ev queue.CatalogEvent) error {
	f.events <- ev
	return nil
}

func (f *fakeAudit) next(timeout time.Duration) (queue.CatalogEvent, bool) {
	select {
	case ev := <-f.events:
		return ev, true
	case <-time.After(timeout):
		return queue.CatalogEvent{}, false
	}
}
