// Package store holds the shared playback state. The Store is the single
// source of truth for playback intent: views request playback through it and
// the player widget observes it. It is owned by the application root and
// handed to every consumer at construction time.
package store

import (
	"sync"

	"github.com/jmrivas/ondacast/internal/catalog"
)

// DefaultVolume is the initial volume level.
const DefaultVolume = 0.7

// State is a snapshot of the playback state. Progress and Duration are in
// seconds; Volume is in [0, 1].
type State struct {
	Current  *catalog.Episode
	Playing  bool
	Volume   float64
	Progress float64
	Duration float64
}

// Selected reports whether ep is the currently selected episode.
func (s State) Selected(ep *catalog.Episode) bool {
	return s.Current != nil && ep != nil && s.Current.ID == ep.ID
}

// ActivelyPlaying reports whether ep is selected and playback is on.
func (s State) ActivelyPlaying(ep *catalog.Episode) bool {
	return s.Selected(ep) && s.Playing
}

// Listener receives a snapshot after every mutation.
type Listener func(State)

// Store is the observable playback state. All operations are total: out of
// range input is clamped and absent-episode cases are defined, so none of
// them can fail. Snapshots are delivered to subscribers in mutation order;
// a mutation made from inside a listener is delivered after the current
// notification returns.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners map[int]Listener
	nextID    int
	pending   []State
	notifying bool
}

func New() *Store {
	return &Store{
		state:     State{Volume: DefaultVolume},
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers a listener and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SelectEpisode makes ep the current episode. A new episode always starts
// paused at position 0; actual playback begins once the widget reports the
// media loaded. Re-selecting the already-current episode resumes playback
// instead.
func (s *Store) SelectEpisode(ep *catalog.Episode) {
	if ep == nil {
		return
	}
	s.mutate(func(st *State) {
		if st.Current != nil && st.Current.ID == ep.ID {
			st.Playing = true
			return
		}
		st.Current = ep
		st.Playing = false
		st.Progress = 0
		st.Duration = 0
	})
}

// TogglePlayback flips the playing flag. With no episode selected it is a
// no-op: the nil-episode invariant keeps Playing false.
func (s *Store) TogglePlayback() {
	s.mutate(func(st *State) {
		if st.Current == nil {
			return
		}
		st.Playing = !st.Playing
	})
}

// Play turns playback on for the current episode.
func (s *Store) Play() {
	s.mutate(func(st *State) {
		if st.Current == nil {
			return
		}
		st.Playing = true
	})
}

// Pause turns playback off.
func (s *Store) Pause() {
	s.mutate(func(st *State) {
		st.Playing = false
	})
}

// Stop clears the selection and resets progress. Duration is left as-is; it
// is unobservable with no episode selected and the next selection resets it.
func (s *Store) Stop() {
	s.mutate(func(st *State) {
		st.Current = nil
		st.Playing = false
		st.Progress = 0
	})
}

// SetVolume stores v clamped to [0, 1].
func (s *Store) SetVolume(v float64) {
	s.mutate(func(st *State) {
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		st.Volume = v
	})
}

// SetProgress stores the playback position verbatim. Called by the widget on
// every time-update and synchronously on user seeks.
func (s *Store) SetProgress(seconds float64) {
	s.mutate(func(st *State) {
		st.Progress = seconds
	})
}

// SetDuration stores the total duration, reported once the playback
// primitive has the media's metadata.
func (s *Store) SetDuration(seconds float64) {
	s.mutate(func(st *State) {
		st.Duration = seconds
	})
}

// mutate applies fn under the lock and queues the resulting snapshot. A
// single goroutine at a time drains the queue, so subscribers observe
// snapshots in mutation order even when the UI and the player-event
// goroutine mutate concurrently. Listeners run outside the lock and may
// call back into the store; such a mutation is queued and delivered once
// the current notification returns.
func (s *Store) mutate(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	s.pending = append(s.pending, s.state)
	if s.notifying {
		// An active drainer will deliver this snapshot in order.
		s.mu.Unlock()
		return
	}
	s.notifying = true
	for len(s.pending) > 0 {
		snapshot := s.pending[0]
		s.pending = s.pending[1:]
		listeners := make([]Listener, 0, len(s.listeners))
		for _, l := range s.listeners {
			listeners = append(listeners, l)
		}
		s.mu.Unlock()
		for _, l := range listeners {
			l(snapshot)
		}
		s.mu.Lock()
	}
	s.notifying = false
	s.mu.Unlock()
}
