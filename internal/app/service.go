package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jaminalder/codex-connect-three/internal/domain"
)

// Errors exposed by the service layer.
var ErrNotFound = errors.New("game not found")

// GameState is a snapshot of one registered game.
type GameState struct {
	ID      string
	View    domain.View
	Last    *domain.MoveResult
	Created time.Time
	Updated time.Time
}

type entry struct {
	id      string
	game    *domain.Game
	last    *domain.MoveResult
	created time.Time
	updated time.Time
}

func (e *entry) snapshot() GameState {
	gs := GameState{ID: e.id, View: e.game.View(), Created: e.created, Updated: e.updated}
	if e.last != nil {
		last := *e.last
		gs.Last = &last
	}
	return gs
}

type subscriber struct {
	ch        chan []byte
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service manages games and subscribers. Every engine call happens under mu,
// so each game has a single writer no matter how many requests arrive.
type Service struct {
	mu     sync.Mutex
	games  map[string]*entry
	subs   map[string]map[*subscriber]struct{}
	render func(GameState) []byte
	log    *slog.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithRenderer sets the function that encodes broadcast payloads.
func WithRenderer(renderer func(GameState) []byte) Option {
	return func(s *Service) {
		if renderer != nil {
			s.render = renderer
		}
	}
}

// WithLogger sets the logger used for game events.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a service. Without options it renders nothing and
// discards logs.
func NewService(opts ...Option) *Service {
	s := &Service{
		games:  make(map[string]*entry),
		subs:   make(map[string]map[*subscriber]struct{}),
		render: func(GameState) []byte { return nil },
		log:    slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		s.render = func(GameState) []byte { return nil }
		return
	}
	s.render = renderer
}

// CreateGame validates the player names and registers a new game.
func (s *Service) CreateGame(player1, player2 string) (*GameState, error) {
	g, err := domain.New(player1, player2)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	e := &entry{id: uuid.NewString(), game: g, created: now, updated: now}
	s.games[e.id] = e
	s.log.Info("game created", "game_id", e.id, "player1", g.Players()[0].Name, "player2", g.Players()[1].Name)
	gs := e.snapshot()
	return &gs, nil
}

// Get returns a snapshot of the game if present.
func (s *Service) Get(id string) (*GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.games[id]
	if !ok {
		return nil, false
	}
	gs := e.snapshot()
	return &gs, true
}

// Drop plays the current player's chip into col.
func (s *Service) Drop(id string, col int) (*GameState, error) {
	return s.mutate(id, "drop", func(e *entry) error {
		res, err := e.game.ApplyMove(col)
		if err != nil {
			s.log.Debug("move rejected", "game_id", id, "column", col, "error", err)
			return err
		}
		e.last = &res
		s.log.Info("move applied", "game_id", id, "column", col, "row", res.Row,
			"player", res.Player.Name, "outcome", res.Outcome.String())
		return nil
	})
}

// Undo reverts the last move attempt.
func (s *Service) Undo(id string) (*GameState, error) {
	return s.mutate(id, "undo", func(e *entry) error {
		if err := e.game.Undo(); err != nil {
			return err
		}
		e.last = nil
		return nil
	})
}

// Switch hands the turn to the other player.
func (s *Service) Switch(id string) (*GameState, error) {
	return s.mutate(id, "switch", func(e *entry) error {
		return e.game.Rotate()
	})
}

// Reset starts the game over. Empty names keep the current players.
func (s *Service) Reset(id, player1, player2 string) (*GameState, error) {
	return s.mutate(id, "reset", func(e *entry) error {
		players := e.game.Players()
		if player1 == "" && player2 == "" {
			player1, player2 = players[0].Name, players[1].Name
		}
		if err := e.game.Reset(player1, player2); err != nil {
			return err
		}
		e.last = nil
		return nil
	})
}

// mutate runs op under the lock and broadcasts the new state on success.
// On an engine error the current snapshot is still returned so callers can
// re-render alongside the message.
func (s *Service) mutate(id, action string, op func(*entry) error) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := op(e); err != nil {
		gs := e.snapshot()
		return &gs, err
	}
	e.updated = s.now()
	if action != "drop" {
		s.log.Info("game "+action, "game_id", id, "current", e.game.CurrentPlayer().Name)
	}
	gs := e.snapshot()
	s.broadcastLocked(id, s.render(gs))
	return &gs, nil
}

// broadcastLocked fans payload out without blocking; subscribers whose
// buffer is full are closed and removed.
func (s *Service) broadcastLocked(id string, payload []byte) {
	set := s.subs[id]
	dropped := 0
	for sub := range set {
		select {
		case sub.ch <- payload:
		default:
			sub.close()
			delete(set, sub)
			dropped++
		}
	}
	if dropped > 0 {
		s.log.Warn("dropped slow subscribers", "game_id", id, "count", dropped)
	}
}

// Subscribe registers a subscriber for a game. Returns a channel and an
// unsubscribe func; the subscription also ends when ctx is done.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return nil, func() {}, ErrNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan []byte, 1)}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
			s.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub, nil
}
