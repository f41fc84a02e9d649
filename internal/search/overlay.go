package search

import "time"

// DefaultCloseDuration time-boxes the closing transition before the overlay
// unmounts.
const DefaultCloseDuration = 200 * time.Millisecond

// OverlayState enumerates the overlay lifecycle states.
type OverlayState int

const (
	Closed OverlayState = iota
	Opening
	Open
	Closing
)

func (s OverlayState) String() string {
	switch s {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return ""
	}
}

// Overlay is the open/close lifecycle machine:
//
//	Closed → Opening → Open → Closing → Closed
//
// Opening applies a global side effect (suspending background interaction)
// whose restore runs exactly once when the close completes. Escape and
// backdrop events share the single RequestClose path; events inside the
// results panel never close the overlay.
type Overlay struct {
	state         OverlayState
	closeDuration time.Duration
	restore       func()
	onClose       func()
}

// NewOverlay creates a closed overlay. onClose fires after every completed
// close; a non-positive duration selects DefaultCloseDuration.
func NewOverlay(closeDuration time.Duration, onClose func()) *Overlay {
	if closeDuration <= 0 {
		closeDuration = DefaultCloseDuration
	}
	return &Overlay{closeDuration: closeDuration, onClose: onClose}
}

func (o *Overlay) State() OverlayState { return o.state }

// CloseDuration returns the fixed length of the closing transition.
func (o *Overlay) CloseDuration() time.Duration { return o.closeDuration }

// RequestOpen starts the entrance transition. suspend applies the global side
// effect and returns its restore; either may be nil. Reports whether the
// transition started.
func (o *Overlay) RequestOpen(suspend func() func()) bool {
	if o.state != Closed {
		return false
	}

	o.state = Opening
	if suspend != nil {
		o.restore = suspend()
	}
	return true
}

// OpenFinished completes the entrance transition.
func (o *Overlay) OpenFinished() bool {
	if o.state != Opening {
		return false
	}
	o.state = Open
	return true
}

// RequestClose starts the time-boxed exit transition. Escape and backdrop
// both land here. Reports whether the caller must schedule CloseFinished
// after CloseDuration; a second request while already closing is absorbed.
func (o *Overlay) RequestClose() bool {
	if o.state != Open && o.state != Opening {
		return false
	}
	o.state = Closing
	return true
}

// CloseFinished unmounts the overlay: the side effect applied on open is
// restored and the onClose notification fires.
func (o *Overlay) CloseFinished() bool {
	if o.state != Closing {
		return false
	}

	o.state = Closed
	if o.restore != nil {
		o.restore()
		o.restore = nil
	}
	if o.onClose != nil {
		o.onClose()
	}
	return true
}

// ResultsPanelEvent records an event originating inside the results panel.
// Contained events never reach the close path.
func (o *Overlay) ResultsPanelEvent() bool {
	return false
}
