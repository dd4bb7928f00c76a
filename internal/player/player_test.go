package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShutdownClosesEventsAfterSendersReturn(t *testing.T) {
	p := New("mpv")

	// Stand-in for the poll goroutine: emits droppable time updates as
	// fast as it can until told to quit. Shutdown must not close the
	// events channel while this is still running.
	p.senders.Add(1)
	go func() {
		defer p.senders.Done()
		for {
			select {
			case <-p.quit:
				return
			default:
				p.emit(Event{Kind: EventTimeUpdate, Position: 1})
			}
		}
	}()

	done := make(chan struct{})
	go func() {
		p.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown did not complete")
	}

	// The channel drains to a clean close; a send after close would have
	// panicked the emitter above.
	for range p.events {
	}
	_, open := <-p.events
	assert.False(t, open)
}

func TestEmitDropsTimeUpdatesWhenFull(t *testing.T) {
	p := New("mpv")

	for i := 0; i < cap(p.events)+8; i++ {
		p.emit(Event{Kind: EventTimeUpdate, Position: float64(i)})
	}

	assert.Len(t, p.events, cap(p.events), "overflow time updates are dropped, not blocked on")
}
