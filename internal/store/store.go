package store

import (
	"slices"
	"sync"

	"poketimes/internal/logger"
)

// Listener is notified after an event has been applied.
type Listener func(event Event, state State)

// Store is the single container of application state. All writes go
// through Dispatch, which applies events one at a time.
type Store struct {
	logger    *logger.Logger
	state     State
	listeners []Listener
	version   uint64
	mu        sync.RWMutex
}

// New creates a store in the Empty state.
func New(log *logger.Logger) *Store {
	if log == nil {
		log = logger.Discard()
	}

	return &Store{
		logger: log.With("component", "store"),
		state:  Empty(),
	}
}

// Dispatch applies event. The new state is visible to State() before
// Dispatch returns.
func (s *Store) Dispatch(event Event) {
	s.mu.Lock()
	s.state = Reduce(s.state, event)
	s.version++
	state := s.snapshotLocked()
	version := s.version
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	s.logger.Debug("event applied", "event", event.String(), "version", version, "posts", len(state.Posts))

	for _, fn := range listeners {
		fn(event, state)
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

// Version returns the number of events applied so far.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.version
}

// Subscribe registers fn to run after every dispatched event.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(s.listeners, fn)
}

func (s *Store) snapshotLocked() State {
	return State{
		Posts:  slices.Clone(s.state.Posts),
		Loaded: s.state.Loaded,
	}
}
