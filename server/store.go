package server

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plus3/tenten/config"
	"github.com/plus3/tenten/render/headless"
	"github.com/plus3/tenten/session"
)

// Room is one hosted game with its renderer and its subscribers.
type Room struct {
	mu       sync.Mutex
	game     *session.Game
	renderer *headless.Renderer
	hub      *Broadcaster[session.State]
}

// ID returns the game's ID.
func (r *Room) ID() uuid.UUID {
	return r.game.ID()
}

// View runs fn against the game without publishing anything unless a queued
// clear finished first.
func (r *Room) View(fn func(g *session.Game)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.renderer.Flush() > 0 {
		r.hub.Publish(r.game.State())
	}
	fn(r.game)
}

// Update runs fn against the game and publishes the new state when fn
// succeeds. Clears queued by earlier requests finish before fn runs.
func (r *Room) Update(fn func(g *session.Game) error) (session.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	flushed := r.renderer.Flush()
	err := fn(r.game)
	st := r.game.State()
	if err == nil || flushed > 0 {
		r.hub.Publish(st)
	}
	return st, err
}

// Subscribe returns a channel of states published after each change.
func (r *Room) Subscribe() chan session.State {
	return r.hub.Subscribe()
}

// Unsubscribe stops a subscription.
func (r *Room) Unsubscribe(ch chan session.State) {
	r.hub.Unsubscribe(ch)
}

// Store holds the games served by one process.
type Store struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]*Room
	cfg   config.Tuning
	log   *zap.Logger
}

// NewStore creates an empty store whose games use cfg.
func NewStore(cfg config.Tuning, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		rooms: make(map[uuid.UUID]*Room),
		cfg:   cfg,
		log:   log,
	}
}

// Create starts a game. A nil seed seeds the supplier randomly.
func (s *Store) Create(seed *uint64) *Room {
	r := &Room{
		renderer: headless.New(),
		hub:      NewBroadcaster[session.State](),
	}
	opts := []session.Option{session.WithLogger(s.log), session.WithRenderer(r.renderer)}
	if seed != nil {
		opts = append(opts, session.WithSeed(*seed))
	}
	r.game = session.New(s.cfg, opts...)

	s.mu.Lock()
	s.rooms[r.ID()] = r
	s.mu.Unlock()
	return r
}

// Get returns the room for id if it exists.
func (s *Store) Get(id uuid.UUID) (*Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	return r, ok
}

// Delete drops the room and closes its subscriptions.
func (s *Store) Delete(id uuid.UUID) bool {
	s.mu.Lock()
	r, ok := s.rooms[id]
	delete(s.rooms, id)
	s.mu.Unlock()
	if ok {
		r.hub.Close()
	}
	return ok
}

// Len returns the number of hosted games.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
