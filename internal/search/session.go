package search

import (
	"strings"
	"time"

	"github.com/nexusaudio/nexus/internal/models"
)

// DefaultDebounce is the quiet interval after the last keystroke before a
// search is issued.
const DefaultDebounce = 300 * time.Millisecond

// State enumerates the search session states.
type State int

const (
	Idle State = iota
	Debouncing
	Loading
	Results
	Empty
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Debouncing:
		return "debouncing"
	case Loading:
		return "loading"
	case Results:
		return "results"
	case Empty:
		return "empty"
	case Error:
		return "error"
	default:
		return ""
	}
}

// Session is the per-search-session state machine:
//
//	Idle → Debouncing → Loading → Results | Empty | Error
//
// Each issued request carries a generation number. Only the response whose
// generation matches the latest issued request may affect visible state, so a
// stale in-flight response is ignored on arrival even though the transport
// cannot truly cancel it.
type Session struct {
	state      State
	query      string
	generation int
	debounce   time.Duration
	results    []models.Track
	lastErr    error
}

// NewSession creates an idle session. A non-positive debounce selects
// DefaultDebounce.
func NewSession(debounce time.Duration) *Session {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Session{debounce: debounce}
}

func (s *Session) State() State            { return s.state }
func (s *Session) Query() string           { return s.query }
func (s *Session) Generation() int         { return s.generation }
func (s *Session) Debounce() time.Duration { return s.debounce }
func (s *Session) Err() error              { return s.lastErr }

// Results returns the tracks currently visible. Never nil.
func (s *Session) Results() []models.Track {
	if s.results == nil {
		return []models.Track{}
	}
	return s.results
}

// Input records a keystroke. The raw input is trimmed; an empty query returns
// the session to Idle with results cleared, distinct from Empty which means a
// search ran and found nothing.
//
// Reports whether the caller must (re)arm the debounce timer. Only one timer
// is live at a time: every true return replaces the previous timer.
func (s *Session) Input(raw string) bool {
	query := strings.TrimSpace(raw)

	if query == "" {
		s.state = Idle
		s.query = ""
		s.results = nil
		s.lastErr = nil
		return false
	}

	s.state = Debouncing
	s.query = query
	return true
}

// DebounceElapsed fires when the timer armed for query expires. A timer whose
// query no longer matches the current input is stale and ignored.
//
// Reports whether a request must be issued, and under which generation.
func (s *Session) DebounceElapsed(query string) (bool, int) {
	if s.state != Debouncing || query != s.query {
		return false, 0
	}

	s.state = Loading
	s.generation++
	return true, s.generation
}

// Resolve delivers a successful response for the given generation. Stale
// generations are ignored. Reports whether visible state changed.
func (s *Session) Resolve(generation int, tracks []models.Track) bool {
	if s.state != Loading || generation != s.generation {
		return false
	}

	s.results = tracks
	s.lastErr = nil
	if len(tracks) == 0 {
		s.state = Empty
	} else {
		s.state = Results
	}
	return true
}

// Fail delivers a failed response for the given generation. The session
// degrades to an empty result set for display; the error is retained for
// logging, never shown raw.
func (s *Session) Fail(generation int, err error) bool {
	if s.state != Loading || generation != s.generation {
		return false
	}

	s.state = Error
	s.results = nil
	s.lastErr = err
	return true
}
