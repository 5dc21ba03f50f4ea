package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/tickify/gateway/internal/catalog"
	"github.com/tickify/gateway/internal/models"
)

var ErrNotFound = errors.New("session: not found")

// Session is the single source of truth for one signed-in client: the
// upstream bearer token, a snapshot of the user, and (separately keyed)
// the browse window. Handlers never mutate session state except through
// the store, and every mutation notifies subscribers. This replaces the
// ambient "something changed" broadcasts of the old client.
type Session struct {
	ID        string      `json:"id"`
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	CreatedAt time.Time   `json:"created_at"`
}

// Store persists sessions in Redis with a TTL. Without Redis it degrades to
// process-local memory, which keeps a single instance working.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
	log   *logrus.Entry

	mu       sync.Mutex
	sessions map[string]Session
	windows  map[string]catalog.Window
	subs     map[int]func(Session)
	nextSub  int
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		redis:    client,
		ttl:      ttl,
		log:      logrus.WithField("component", "session"),
		sessions: make(map[string]Session),
		windows:  make(map[string]catalog.Window),
		subs:     make(map[int]func(Session)),
	}
}

// Subscribe registers a callback invoked after every session mutation. The
// returned function unsubscribes.
func (s *Store) Subscribe(fn func(Session)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(sess Session) {
	s.mu.Lock()
	subs := make([]func(Session), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(sess)
	}
}

func (s *Store) Create(ctx context.Context, token string, user models.User) (Session, error) {
	sess := Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.save(ctx, sess); err != nil {
		return Session{}, err
	}
	s.notify(sess)
	return sess, nil
}

func (s *Store) Get(ctx context.Context, id string) (Session, error) {
	if s.redis != nil {
		raw, err := s.redis.Get(ctx, sessionKey(id)).Result()
		if err == redis.Nil {
			return Session{}, ErrNotFound
		}
		if err != nil {
			return Session{}, fmt.Errorf("session: load: %w", err)
		}
		var sess Session
		if err := json.Unmarshal([]byte(raw), &sess); err != nil {
			return Session{}, fmt.Errorf("session: decode: %w", err)
		}
		return sess, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

// Update overwrites the stored session and notifies subscribers. Used when
// the profile changes so every surface sees the fresh user snapshot.
func (s *Store) Update(ctx context.Context, sess Session) error {
	if err := s.save(ctx, sess); err != nil {
		return err
	}
	s.notify(sess)
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	if s.redis != nil {
		if err := s.redis.Del(ctx, sessionKey(id), windowKey(id)).Err(); err != nil {
			return fmt.Errorf("session: delete: %w", err)
		}
	} else {
		s.mu.Lock()
		delete(s.sessions, id)
		delete(s.windows, id)
		s.mu.Unlock()
	}

	sess.Token = ""
	s.notify(sess)
	return nil
}

// Window loads the browse window for a session. A missing window is not an
// error; the catalog resets zero windows on first use.
func (s *Store) Window(ctx context.Context, id string) catalog.Window {
	if s.redis != nil {
		raw, err := s.redis.Get(ctx, windowKey(id)).Result()
		if err != nil {
			return catalog.Window{}
		}
		var win catalog.Window
		if err := json.Unmarshal([]byte(raw), &win); err != nil {
			return catalog.Window{}
		}
		return win
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.windows[id]
}

func (s *Store) SetWindow(ctx context.Context, id string, win catalog.Window) {
	if s.redis != nil {
		raw, err := json.Marshal(win)
		if err != nil {
			return
		}
		if err := s.redis.Set(ctx, windowKey(id), raw, s.ttl).Err(); err != nil {
			s.log.WithError(err).Debug("window write failed")
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows[id] = win
}

func (s *Store) save(ctx context.Context, sess Session) error {
	if s.redis != nil {
		raw, err := json.Marshal(sess)
		if err != nil {
			return fmt.Errorf("session: encode: %w", err)
		}
		if err := s.redis.Set(ctx, sessionKey(sess.ID), raw, s.ttl).Err(); err != nil {
			return fmt.Errorf("session: store: %w", err)
		}
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func sessionKey(id string) string { return "session:" + id }
func windowKey(id string) string  { return "session:" + id + ":window" }
