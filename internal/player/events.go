package player

// EventKind identifies an inbound message from the playback primitive.
type EventKind int

const (
	// EventMetadataLoaded fires once the media's duration is known after a
	// load. Duration carries the value in seconds.
	EventMetadataLoaded EventKind = iota
	// EventTimeUpdate fires repeatedly during playback. Position carries
	// the current position in seconds. Delivery is periodic on a best-effort
	// basis, not guaranteed.
	EventTimeUpdate
	// EventEnded fires when playback reaches the end of the media.
	EventEnded
	// EventError reports a decode or transport failure. Err carries a
	// description. The selection is not affected; the user may retry.
	EventError
)

// Event is one message from the primitive to its consumer.
type Event struct {
	Kind     EventKind
	Position float64
	Duration float64
	Err      string
}

func (k EventKind) String() string {
	switch k {
	case EventMetadataLoaded:
		return "metadata-loaded"
	case EventTimeUpdate:
		return "time-update"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}
