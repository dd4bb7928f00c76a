// Package widget bridges the playback store and the playback primitive. It
// is the only component that drives the primitive: store mutations become
// load/pause/seek/volume commands, and the primitive's events are folded
// back into store updates.
package widget

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jmrivas/ondacast/internal/catalog"
	"github.com/jmrivas/ondacast/internal/player"
	"github.com/jmrivas/ondacast/internal/store"
)

// SkipSeconds is the step used by the rewind and fast-forward controls.
const SkipSeconds = 10

// PlaybackState tracks where the widget is between selecting an episode and
// hearing audio.
type PlaybackState int

const (
	// StateIdle means no episode is selected.
	StateIdle PlaybackState = iota
	// StateLoading means an episode is selected but the primitive has not
	// reported its metadata yet.
	StateLoading
	StatePaused
	StatePlaying
	// StateEnded is transient: playback reached the end and the widget is
	// about to fold back to Idle through Stop.
	StateEnded
)

func (s PlaybackState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StatePaused:
		return "paused"
	case StatePlaying:
		return "playing"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Primitive is the playback facility the widget commands. *player.Player
// implements it; tests substitute a fake.
type Primitive interface {
	Load(url string) error
	SetPaused(paused bool) error
	SetVolume(v float64) error
	SeekTo(seconds float64) error
	SeekBy(delta float64) error
	Stop() error
}

// Widget is the process-wide singleton binding the store to the primitive.
type Widget struct {
	store *store.Store
	prim  Primitive

	mu    sync.Mutex
	state PlaybackState
	last  store.State

	unsubscribe func()
}

func New(st *store.Store, prim Primitive) *Widget {
	return &Widget{
		store: st,
		prim:  prim,
		state: StateIdle,
		last:  st.State(),
	}
}

// Bind subscribes the widget to store changes and pushes the store's volume
// to the primitive so both start in agreement.
func (w *Widget) Bind() {
	if err := w.prim.SetVolume(w.store.State().Volume); err != nil {
		logrus.WithError(err).Warn("failed to apply initial volume")
	}
	w.unsubscribe = w.store.Subscribe(w.apply)
}

// Unbind detaches the widget from the store.
func (w *Widget) Unbind() {
	if w.unsubscribe != nil {
		w.unsubscribe()
		w.unsubscribe = nil
	}
}

// Run consumes primitive events until the channel closes. It is meant to be
// run on its own goroutine.
func (w *Widget) Run(events <-chan player.Event) {
	for ev := range events {
		w.handleEvent(ev)
	}
}

// State returns the widget's playback state for display purposes.
func (w *Widget) State() PlaybackState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// SeekTo jumps to an absolute position. Per user-seek semantics it both
// commands the primitive and updates the store synchronously, so the
// displayed position does not wait for the next time-update.
func (w *Widget) SeekTo(seconds float64) {
	w.mu.Lock()
	duration := w.last.Duration
	w.mu.Unlock()

	if seconds < 0 {
		seconds = 0
	}
	if duration > 0 && seconds > duration {
		seconds = duration
	}
	if err := w.prim.SeekTo(seconds); err != nil {
		logrus.WithError(err).Error("seek command failed")
	}
	w.store.SetProgress(seconds)
}

// Rewind skips back SkipSeconds. It is a direct primitive command; the next
// time-update reconciles the store.
func (w *Widget) Rewind() {
	if err := w.prim.SeekBy(-SkipSeconds); err != nil {
		logrus.WithError(err).Error("rewind command failed")
	}
}

// Forward skips ahead SkipSeconds.
func (w *Widget) Forward() {
	if err := w.prim.SeekBy(SkipSeconds); err != nil {
		logrus.WithError(err).Error("forward command failed")
	}
}

// apply receives every store snapshot and translates the diff against the
// previous one into primitive commands.
func (w *Widget) apply(next store.State) {
	w.mu.Lock()
	prev := w.last
	w.last = next

	episodeChanged := episodeID(prev.Current) != episodeID(next.Current)
	playingChanged := prev.Playing != next.Playing
	volumeChanged := prev.Volume != next.Volume

	switch {
	case episodeChanged && next.Current == nil:
		w.state = StateIdle
	case episodeChanged:
		w.state = StateLoading
	case playingChanged && next.Playing:
		// A resume before metadata arrives keeps the widget loading; the
		// primitive buffers the intent.
		if w.state == StatePaused || w.state == StateEnded {
			w.state = StatePlaying
		}
	case playingChanged:
		if w.state == StatePlaying {
			w.state = StatePaused
		}
	}
	w.mu.Unlock()

	if episodeChanged {
		if next.Current == nil {
			if err := w.prim.Stop(); err != nil {
				logrus.WithError(err).Error("stop command failed")
			}
		} else {
			logrus.WithFields(logrus.Fields{
				"episode": next.Current.ID,
				"title":   next.Current.Title,
			}).Info("loading episode")
			if err := w.prim.Load(next.Current.AudioURL); err != nil {
				// The selection stays so the user can retry.
				logrus.WithError(err).Error("load command failed")
			}
		}
	}

	if volumeChanged {
		if err := w.prim.SetVolume(next.Volume); err != nil {
			logrus.WithError(err).Error("volume command failed")
		}
	}

	if playingChanged && next.Current != nil {
		if err := w.prim.SetPaused(!next.Playing); err != nil {
			logrus.WithError(err).Error("pause command failed")
			if next.Playing {
				// The primitive rejected the start; roll the flag back so
				// the UI never claims to be playing silence.
				w.store.Pause()
			}
		}
	}
}

// handleEvent is the single dispatch point for the primitive's inbound
// messages.
func (w *Widget) handleEvent(ev player.Event) {
	switch ev.Kind {
	case player.EventMetadataLoaded:
		w.store.SetDuration(ev.Duration)
		w.mu.Lock()
		if w.state == StateLoading {
			if w.last.Playing {
				w.state = StatePlaying
			} else {
				w.state = StatePaused
			}
		}
		w.mu.Unlock()

	case player.EventTimeUpdate:
		w.store.SetProgress(ev.Position)

	case player.EventEnded:
		w.mu.Lock()
		w.state = StateEnded
		w.mu.Unlock()
		// Ended folds straight back to Idle.
		w.store.Stop()

	case player.EventError:
		// Log only; the selection is kept so the user can retry.
		logrus.WithField("detail", ev.Err).Error("playback error")
	}
}

func episodeID(ep *catalog.Episode) int {
	if ep == nil {
		return 0
	}
	return ep.ID
}
