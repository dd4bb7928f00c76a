package widget

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmrivas/ondacast/internal/catalog"
	"github.com/jmrivas/ondacast/internal/player"
	"github.com/jmrivas/ondacast/internal/store"
)

// fakePrimitive records the commands the widget issues.
type fakePrimitive struct {
	calls        []string
	rejectResume bool
}

func (f *fakePrimitive) record(format string, args ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakePrimitive) Load(url string) error {
	f.record("load %s", url)
	return nil
}

func (f *fakePrimitive) SetPaused(paused bool) error {
	if !paused && f.rejectResume {
		f.record("resume rejected")
		return errors.New("autoplay blocked")
	}
	f.record("pause=%v", paused)
	return nil
}

func (f *fakePrimitive) SetVolume(v float64) error {
	f.record("volume=%.2f", v)
	return nil
}

func (f *fakePrimitive) SeekTo(seconds float64) error {
	f.record("seekTo=%.0f", seconds)
	return nil
}

func (f *fakePrimitive) SeekBy(delta float64) error {
	f.record("seekBy=%+.0f", delta)
	return nil
}

func (f *fakePrimitive) Stop() error {
	f.record("stop")
	return nil
}

var (
	ep1 = &catalog.Episode{ID: 1, Title: "Uno", AudioURL: "https://example.com/1.mp3"}
	ep2 = &catalog.Episode{ID: 2, Title: "Dos", AudioURL: "https://example.com/2.mp3"}
)

func newBound(t *testing.T) (*store.Store, *fakePrimitive, *Widget) {
	t.Helper()
	s := store.New()
	prim := &fakePrimitive{}
	w := New(s, prim)
	w.Bind()
	t.Cleanup(w.Unbind)
	prim.calls = nil // drop the initial volume push
	return s, prim, w
}

func TestSelectEpisodeLoads(t *testing.T) {
	s, prim, w := newBound(t)

	s.SelectEpisode(ep1)

	assert.Equal(t, []string{"load https://example.com/1.mp3"}, prim.calls)
	assert.Equal(t, StateLoading, w.State())
	assert.False(t, s.State().Playing)
}

func TestMetadataWhilePausedLandsInPaused(t *testing.T) {
	s, _, w := newBound(t)
	s.SelectEpisode(ep1)

	w.handleEvent(player.Event{Kind: player.EventMetadataLoaded, Duration: 300})

	assert.Equal(t, StatePaused, w.State())
	assert.Equal(t, 300.0, s.State().Duration)
}

func TestResumeBeforeMetadataBuffersIntent(t *testing.T) {
	s, prim, w := newBound(t)
	s.SelectEpisode(ep1)
	s.TogglePlayback()

	// The intent reaches the primitive but the widget keeps loading.
	assert.Contains(t, prim.calls, "pause=false")
	assert.Equal(t, StateLoading, w.State())

	w.handleEvent(player.Event{Kind: player.EventMetadataLoaded, Duration: 300})
	assert.Equal(t, StatePlaying, w.State())
}

func TestReselectSameEpisodeResumes(t *testing.T) {
	s, prim, w := newBound(t)
	s.SelectEpisode(ep1)
	w.handleEvent(player.Event{Kind: player.EventMetadataLoaded, Duration: 300})
	prim.calls = nil

	s.SelectEpisode(ep1)

	assert.Equal(t, []string{"pause=false"}, prim.calls, "no reload for the same episode")
	assert.Equal(t, StatePlaying, w.State())
}

func TestSwitchingEpisodesReloads(t *testing.T) {
	s, prim, w := newBound(t)
	s.SelectEpisode(ep1)
	w.handleEvent(player.Event{Kind: player.EventMetadataLoaded, Duration: 300})
	s.SelectEpisode(ep1) // playing
	prim.calls = nil

	s.SelectEpisode(ep2)

	assert.Equal(t, []string{"load https://example.com/2.mp3"}, prim.calls)
	assert.Equal(t, StateLoading, w.State())
	st := s.State()
	assert.False(t, st.Playing)
	assert.Zero(t, st.Progress)
	assert.Zero(t, st.Duration)
}

func TestToggleForwardsPauseCommands(t *testing.T) {
	s, prim, w := newBound(t)
	s.SelectEpisode(ep1)
	w.handleEvent(player.Event{Kind: player.EventMetadataLoaded, Duration: 300})
	prim.calls = nil

	s.TogglePlayback()
	assert.Equal(t, []string{"pause=false"}, prim.calls)
	assert.Equal(t, StatePlaying, w.State())

	s.TogglePlayback()
	assert.Equal(t, []string{"pause=false", "pause=true"}, prim.calls)
	assert.Equal(t, StatePaused, w.State())
}

func TestTimeUpdateFlowsIntoStore(t *testing.T) {
	s, _, w := newBound(t)
	s.SelectEpisode(ep1)

	w.handleEvent(player.Event{Kind: player.EventTimeUpdate, Position: 12.5})

	assert.Equal(t, 12.5, s.State().Progress)
}

func TestEndedFoldsBackToIdle(t *testing.T) {
	s, prim, w := newBound(t)
	s.SelectEpisode(ep1)
	w.handleEvent(player.Event{Kind: player.EventMetadataLoaded, Duration: 300})
	s.TogglePlayback()

	w.handleEvent(player.Event{Kind: player.EventEnded})

	assert.Equal(t, StateIdle, w.State())
	st := s.State()
	assert.Nil(t, st.Current)
	assert.False(t, st.Playing)
	assert.Zero(t, st.Progress)
	assert.Contains(t, prim.calls, "stop")
}

func TestErrorEventLeavesStoreUntouched(t *testing.T) {
	s, _, w := newBound(t)
	s.SelectEpisode(ep1)
	before := s.State()

	w.handleEvent(player.Event{Kind: player.EventError, Err: "404"})

	assert.Equal(t, before, s.State(), "the selection stays so the user can retry")
	assert.Equal(t, StateLoading, w.State())
}

func TestSeekToUpdatesPrimitiveAndStore(t *testing.T) {
	s, prim, w := newBound(t)
	s.SelectEpisode(ep1)
	w.handleEvent(player.Event{Kind: player.EventMetadataLoaded, Duration: 300})
	prim.calls = nil

	w.SeekTo(150)

	assert.Equal(t, []string{"seekTo=150"}, prim.calls)
	assert.Equal(t, 150.0, s.State().Progress, "seek reflects immediately, before any time-update")
}

func TestSeekToClampsToEpisodeBounds(t *testing.T) {
	s, prim, w := newBound(t)
	s.SelectEpisode(ep1)
	w.handleEvent(player.Event{Kind: player.EventMetadataLoaded, Duration: 300})
	prim.calls = nil

	w.SeekTo(500)
	w.SeekTo(-20)

	assert.Equal(t, []string{"seekTo=300", "seekTo=0"}, prim.calls)
	assert.Equal(t, 0.0, s.State().Progress,
		"the stored position never overshoots the episode")
}

func TestSkipControlsAreDirectPrimitiveCommands(t *testing.T) {
	s, prim, w := newBound(t)
	s.SelectEpisode(ep1)
	w.handleEvent(player.Event{Kind: player.EventMetadataLoaded, Duration: 300})
	w.handleEvent(player.Event{Kind: player.EventTimeUpdate, Position: 60})
	prim.calls = nil

	w.Rewind()
	w.Forward()

	assert.Equal(t, []string{"seekBy=-10", "seekBy=+10"}, prim.calls)
	assert.Equal(t, 60.0, s.State().Progress, "store waits for the next time-update")
}

func TestVolumeChangeForwarded(t *testing.T) {
	s, prim, _ := newBound(t)

	s.SetVolume(0.25)

	assert.Equal(t, []string{"volume=0.25"}, prim.calls)
}

func TestRejectedResumeRollsBackPlaying(t *testing.T) {
	s, prim, w := newBound(t)
	s.SelectEpisode(ep1)
	w.handleEvent(player.Event{Kind: player.EventMetadataLoaded, Duration: 300})
	prim.rejectResume = true
	prim.calls = nil

	s.TogglePlayback()

	require.False(t, s.State().Playing, "a rejected start must not leave the store claiming playback")
	assert.Equal(t, StatePaused, w.State())
	assert.Contains(t, prim.calls, "resume rejected")
}
