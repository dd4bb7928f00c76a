// Package player drives an mpv subprocess over its JSON IPC socket. It is
// the playback primitive of the application: it decodes and outputs audio,
// accepts load/pause/seek/volume commands, and reports playback milestones
// as typed events on a channel.
package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	socketTimeout = 2 * time.Second
	pollInterval  = 500 * time.Millisecond
)

// Player wraps one mpv process. Exactly one instance exists per application,
// bound to the single player widget.
type Player struct {
	mu         sync.Mutex
	binary     string
	cmd        *exec.Cmd
	socketPath string
	loaded     bool
	paused     bool
	position   float64
	duration   float64 // 0 until mpv reports the media's metadata
	volume     float64 // cached, [0,1]

	events  chan Event
	quit    chan struct{}
	senders sync.WaitGroup // tracks the goroutines that send on events
	once    sync.Once
}

type ipcRequest struct {
	Command   []interface{} `json:"command"`
	RequestID int           `json:"request_id,omitempty"`
}

type ipcResponse struct {
	Data      interface{} `json:"data"`
	RequestID int         `json:"request_id"`
	Error     string      `json:"error"`
}

type ipcEvent struct {
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
	FileError string `json:"file_error,omitempty"`
}

// New creates a player that will run the given mpv binary. An empty binary
// name means "mpv" from PATH.
func New(binary string) *Player {
	if binary == "" {
		binary = "mpv"
	}
	return &Player{
		binary:     binary,
		socketPath: fmt.Sprintf("%s/ondacast-mpv-%d", os.TempDir(), os.Getpid()),
		volume:     1.0,
		events:     make(chan Event, 16),
		quit:       make(chan struct{}),
	}
}

// Events returns the channel carrying the primitive's inbound messages. The
// channel is closed on Shutdown.
func (p *Player) Events() <-chan Event {
	return p.events
}

// Start launches mpv in idle mode so the first load is instant, and begins
// watching playback.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cmd != nil {
		return nil
	}

	os.Remove(p.socketPath)

	cmd := exec.Command(p.binary,
		"--no-video",
		"--really-quiet",
		"--no-terminal",
		fmt.Sprintf("--input-ipc-server=%s", p.socketPath),
		"--idle",
		"--force-window=no",
		"--keep-open=no",
	)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", p.binary, err)
	}

	if err := p.waitForSocket(); err != nil {
		cmd.Process.Kill()
		cmd.Wait()
		return err
	}
	p.cmd = cmd

	p.senders.Add(2)
	go p.listenEvents()
	go p.watch()

	logrus.WithField("socket", p.socketPath).Info("mpv started in idle mode")
	return nil
}

func (p *Player) waitForSocket() error {
	for i := 0; i < 20; i++ {
		if _, err := os.Stat(p.socketPath); err == nil {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("mpv did not create its IPC socket at %s", p.socketPath)
}

// Load switches the primitive to a new media source. The internal position
// resets to 0 and the duration is unknown until mpv re-acquires metadata,
// reported later as an EventMetadataLoaded. Playback starts paused.
func (p *Player) Load(url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Pause before loading so a freshly selected episode never autoplays.
	if _, err := p.command("set_property", "pause", true); err != nil {
		return fmt.Errorf("failed to pause before load: %w", err)
	}
	if _, err := p.command("loadfile", url); err != nil {
		return fmt.Errorf("failed to load %s: %w", url, err)
	}

	p.loaded = true
	p.paused = true
	p.position = 0
	p.duration = 0

	// Re-apply the cached volume; mpv keeps it across loads but a restart
	// of the process would not.
	if _, err := p.command("set_property", "volume", p.volume*100); err != nil {
		logrus.WithError(err).Warn("failed to re-apply volume after load")
	}
	return nil
}

// SetPaused pauses or resumes playback.
func (p *Player) SetPaused(paused bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.command("set_property", "pause", paused); err != nil {
		return fmt.Errorf("failed to set pause=%v: %w", paused, err)
	}
	p.paused = paused
	return nil
}

// SetVolume sets the output volume, v in [0, 1].
func (p *Player) SetVolume(v float64) error {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = v
	if p.cmd == nil {
		return nil
	}
	if _, err := p.command("set_property", "volume", v*100); err != nil {
		return fmt.Errorf("failed to set volume: %w", err)
	}
	return nil
}

// SeekTo jumps to an absolute position in seconds, clamped to the known
// media bounds.
func (p *Player) SeekTo(seconds float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loaded {
		return nil
	}
	seconds = p.clamp(seconds)
	if _, err := p.command("seek", seconds, "absolute"); err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}
	p.position = seconds
	return nil
}

// SeekBy adjusts the position by delta seconds, clamped to [0, duration].
// The result is observed by the consumer through the next time-update.
func (p *Player) SeekBy(delta float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loaded {
		return nil
	}
	target := p.clamp(p.position + delta)
	if _, err := p.command("seek", target, "absolute"); err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}
	p.position = target
	return nil
}

func (p *Player) clamp(seconds float64) float64 {
	if seconds < 0 {
		return 0
	}
	if p.duration > 0 && seconds > p.duration {
		return p.duration
	}
	return seconds
}

// Stop unloads the current media but keeps mpv idling for the next load.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loaded {
		return nil
	}
	p.loaded = false
	p.paused = true
	p.position = 0
	p.duration = 0

	if _, err := p.command("stop"); err != nil {
		return fmt.Errorf("failed to stop playback: %w", err)
	}
	return nil
}

// Position returns the last observed playback position in seconds.
func (p *Player) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position
}

// Duration returns the media duration in seconds, 0 while unknown.
func (p *Player) Duration() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

// Shutdown terminates mpv and closes the event channel. It must be called
// exactly once, at application exit.
func (p *Player) Shutdown() {
	p.once.Do(func() {
		close(p.quit)

		p.mu.Lock()
		cmd := p.cmd
		p.cmd = nil
		p.loaded = false
		p.mu.Unlock()

		if cmd != nil && cmd.Process != nil {
			p.sendRaw(ipcRequest{Command: []interface{}{"quit"}})

			done := make(chan error, 1)
			go func() { done <- cmd.Wait() }()
			select {
			case <-done:
			case <-time.After(500 * time.Millisecond):
				logrus.WithField("pid", cmd.Process.Pid).Warn("force killing mpv")
				cmd.Process.Kill()
				<-done
			}
		}

		os.Remove(p.socketPath)

		// The channel closes only after every sender has returned; a
		// watcher mid-poll may still emit while mpv is going down.
		p.senders.Wait()
		close(p.events)
	})
}

// command sends one IPC request and decodes the response. Callers hold p.mu.
func (p *Player) command(args ...interface{}) (*ipcResponse, error) {
	return p.sendRaw(ipcRequest{Command: args})
}

func (p *Player) sendRaw(req ipcRequest) (*ipcResponse, error) {
	conn, err := net.Dial("unix", p.socketPath)
	if err != nil {
		return nil, fmt.Errorf("mpv socket unavailable: %w", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(socketTimeout))

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal command: %w", err)
	}
	if _, err := conn.Write(append(data, '\n')); err != nil {
		return nil, fmt.Errorf("failed to write command: %w", err)
	}

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		var resp ipcResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			continue
		}
		// Skip interleaved event notifications on this connection; only a
		// command response carries the error field.
		if resp.Error == "" {
			continue
		}
		if resp.Error != "success" {
			return &resp, fmt.Errorf("mpv: %s", resp.Error)
		}
		return &resp, nil
	}
}

// property reads a numeric property, returning ok=false when mpv has no
// value for it yet. Callers hold p.mu.
func (p *Player) property(name string) (float64, bool) {
	resp, err := p.command("get_property", name)
	if err != nil {
		return 0, false
	}
	v, ok := resp.Data.(float64)
	return v, ok
}

// watch polls mpv for position and duration, translating changes into the
// metadata-loaded and time-update events. The delivery cadence is
// best-effort, not a periodicity contract.
func (p *Player) watch() {
	defer p.senders.Done()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.quit:
			return
		case <-ticker.C:
		}

		p.mu.Lock()
		if p.cmd == nil || !p.loaded {
			p.mu.Unlock()
			continue
		}

		var out []Event
		if p.duration == 0 {
			if dur, ok := p.property("duration"); ok && dur > 0 {
				p.duration = dur
				out = append(out, Event{Kind: EventMetadataLoaded, Duration: dur})
			}
		}
		if pos, ok := p.property("time-pos"); ok && pos >= 0 {
			moved := pos != p.position
			p.position = pos
			if moved || !p.paused {
				out = append(out, Event{Kind: EventTimeUpdate, Position: pos})
			}
		}
		p.mu.Unlock()

		for _, ev := range out {
			p.emit(ev)
		}
	}
}

// listenEvents holds a dedicated connection for mpv's asynchronous event
// stream and forwards end-of-file and failure notifications.
func (p *Player) listenEvents() {
	defer p.senders.Done()

	conn, err := net.Dial("unix", p.socketPath)
	if err != nil {
		logrus.WithError(err).Error("failed to open mpv event connection")
		return
	}
	defer conn.Close()

	reader := bufio.NewReader(conn)
	for {
		select {
		case <-p.quit:
			return
		default:
		}

		conn.SetReadDeadline(time.Now().Add(pollInterval))
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}
			logrus.WithError(err).Debug("mpv event connection closed")
			return
		}

		var ev ipcEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			continue
		}
		if ev.Event != "end-file" {
			continue
		}

		switch ev.Reason {
		case "eof":
			p.mu.Lock()
			final := p.duration
			if final > 0 {
				p.position = final
			}
			p.loaded = false
			p.mu.Unlock()

			if final > 0 {
				p.emit(Event{Kind: EventTimeUpdate, Position: final})
			}
			p.emit(Event{Kind: EventEnded})
		case "error":
			p.emit(Event{Kind: EventError, Err: ev.FileError})
		}
	}
}

func (p *Player) emit(ev Event) {
	if ev.Kind == EventTimeUpdate {
		// Time updates are droppable when the consumer lags.
		select {
		case p.events <- ev:
		default:
		}
		return
	}
	select {
	case p.events <- ev:
	case <-p.quit:
	}
}
