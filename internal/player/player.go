// package player manages preview playback for the browse UI.
//
// At most one preview is active at a time: starting a new one stops the
// current one first. Audio output goes through the Sink interface so the UI
// and tests inject their own implementations.
package player

import (
	"fmt"

	"github.com/nexusaudio/nexus/internal/shared"
)

// Sink plays preview audio. Implementations are expected to be cheap to start
// and stop; Start replaces whatever the sink was playing.
type Sink interface {
	Start(url string) error
	Stop()
}

// Session owns the single active preview.
type Session struct {
	sink    Sink
	trackID int
	active  bool
}

// NewSession creates a stopped playback session over the given sink.
func NewSession(sink Sink) *Session {
	return &Session{sink: sink}
}

// Play starts the preview for a track, stopping any current preview first.
// Playing the track that is already active restarts it.
func (s *Session) Play(trackID int, url string) error {
	if s.sink == nil {
		return fmt.Errorf("%w: no audio sink", shared.ErrServiceUnavailable)
	}
	if url == "" {
		return fmt.Errorf("%w: track has no preview", shared.ErrInvalidInput)
	}

	if s.active {
		s.sink.Stop()
		s.active = false
	}

	if err := s.sink.Start(url); err != nil {
		s.trackID = 0
		return fmt.Errorf("%w: start preview: %v", shared.ErrServiceUnavailable, err)
	}

	s.trackID = trackID
	s.active = true
	return nil
}

// Stop ends the active preview. Stopping an idle session is a no-op.
func (s *Session) Stop() {
	if !s.active {
		return
	}
	s.sink.Stop()
	s.active = false
	s.trackID = 0
}

// IsPlaying reports whether the given track is the active preview.
func (s *Session) IsPlaying(trackID int) bool {
	return s.active && s.trackID == trackID
}

// Active reports whether any preview is playing.
func (s *Session) Active() bool {
	return s.active
}
