package session

import "sync"

// Store owns the State. Every mutation goes through Dispatch, which is
// serialized, and subscribers always observe the newest snapshot.
type Store struct {
	mu          sync.Mutex
	state       State
	nextID      int
	subscribers map[int]chan State
}

func NewStore(initial State) *Store {
	return &Store{
		state:       initial,
		subscribers: make(map[int]chan State),
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies the actions atomically, as a single revision, and returns
// the resulting state.
func (s *Store) Dispatch(actions ...Action) State {
	return s.Update(func(State) []Action { return actions })
}

// Update runs fn with the current state under the store lock and dispatches
// the actions it returns. It lets callers make a decision and act on it
// without another dispatch slipping in between.
func (s *Store) Update(fn func(State) []Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	actions := fn(s.state)
	if len(actions) == 0 {
		return s.state
	}

	s.state = Reduce(s.state, actions...)
	for _, ch := range s.subscribers {
		publish(ch, s.state)
	}
	return s.state
}

// Subscribe returns a channel that receives the current state immediately and
// the latest state after every change. Slow readers skip intermediate states.
// The returned function unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan State, 1)
	ch <- s.state
	s.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subscribers, id)
			close(ch)
		})
	}
}

// publish replaces whatever snapshot is waiting in ch with st. Only called
// with the store lock held, so there is a single writer.
func publish(ch chan State, st State) {
	select {
	case <-ch:
	default:
	}
	ch <- st
}
