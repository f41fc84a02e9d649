package search

import (
	"errors"
	"testing"
	"time"

	"github.com/nexusaudio/nexus/internal/models"
)

func TestSession(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		s := NewSession(0)
		if s.State() != Idle {
			t.Errorf("expected Idle, got %s", s.State())
		}
		if s.Debounce() != DefaultDebounce {
			t.Errorf("expected default debounce, got %v", s.Debounce())
		}
		if s.Results() == nil || len(s.Results()) != 0 {
			t.Errorf("expected empty non-nil results, got %v", s.Results())
		}
	})

	t.Run("Keystroke Debounces", func(t *testing.T) {
		s := NewSession(50 * time.Millisecond)

		if !s.Input("tech") {
			t.Fatal("expected timer arm for non-empty input")
		}
		if s.State() != Debouncing {
			t.Errorf("expected Debouncing, got %s", s.State())
		}
		if s.Query() != "tech" {
			t.Errorf("expected trimmed query 'tech', got %q", s.Query())
		}
	})

	t.Run("Input Is Trimmed", func(t *testing.T) {
		s := NewSession(0)
		s.Input("  techno  ")
		if s.Query() != "techno" {
			t.Errorf("expected 'techno', got %q", s.Query())
		}
	})

	t.Run("Empty Query Returns To Idle With Cleared Results", func(t *testing.T) {
		s := NewSession(0)
		s.Input("a")
		if issue, gen := s.DebounceElapsed("a"); !issue {
			t.Fatal("expected request issue")
		} else {
			s.Resolve(gen, []models.Track{{ID: 1, Title: "T"}})
		}
		if s.State() != Results {
			t.Fatalf("expected Results, got %s", s.State())
		}

		if s.Input("   ") {
			t.Error("expected no timer for blank input")
		}
		if s.State() != Idle {
			t.Errorf("expected Idle, got %s", s.State())
		}
		if len(s.Results()) != 0 {
			t.Errorf("expected cleared results, got %v", s.Results())
		}
	})

	t.Run("Two Keystrokes Within Window Issue One Call", func(t *testing.T) {
		s := NewSession(0)

		// "a" arms a timer; "ab" replaces it before it fires.
		s.Input("a")
		s.Input("ab")

		// The replaced timer for "a" still fires in a naive scheduler; its
		// query no longer matches so it must not issue.
		if issue, _ := s.DebounceElapsed("a"); issue {
			t.Error("stale timer for 'a' must not issue a request")
		}

		issue, gen := s.DebounceElapsed("ab")
		if !issue {
			t.Fatal("expected request issue for 'ab'")
		}
		if gen != 1 {
			t.Errorf("expected exactly one issued request, got generation %d", gen)
		}
		if s.State() != Loading {
			t.Errorf("expected Loading, got %s", s.State())
		}
	})

	t.Run("Keystrokes Across Windows Issue Two Calls", func(t *testing.T) {
		s := NewSession(0)

		s.Input("a")
		if issue, _ := s.DebounceElapsed("a"); !issue {
			t.Fatal("expected first issue")
		}

		s.Input("ab")
		issue, gen := s.DebounceElapsed("ab")
		if !issue {
			t.Fatal("expected second issue")
		}
		if gen != 2 {
			t.Errorf("expected generation 2, got %d", gen)
		}
	})

	t.Run("Late Response Never Overwrites Newer Results", func(t *testing.T) {
		s := NewSession(0)

		s.Input("a")
		_, genA := s.DebounceElapsed("a")

		s.Input("ab")
		_, genAB := s.DebounceElapsed("ab")

		abTracks := []models.Track{{ID: 2, Title: "AB Match"}}
		if !s.Resolve(genAB, abTracks) {
			t.Fatal("expected newest response to apply")
		}

		if s.Resolve(genA, []models.Track{{ID: 1, Title: "A Match"}}) {
			t.Error("stale response must be ignored")
		}

		if s.State() != Results || len(s.Results()) != 1 || s.Results()[0].ID != 2 {
			t.Errorf("expected 'ab' results to survive, got %s %v", s.State(), s.Results())
		}
	})

	t.Run("Zero Results Yield Empty State", func(t *testing.T) {
		s := NewSession(0)
		s.Input("zzz")
		_, gen := s.DebounceElapsed("zzz")

		s.Resolve(gen, []models.Track{})
		if s.State() != Empty {
			t.Errorf("expected Empty, got %s", s.State())
		}
	})

	t.Run("Failure Degrades To Empty Display", func(t *testing.T) {
		s := NewSession(0)
		s.Input("x")
		_, gen := s.DebounceElapsed("x")

		cause := errors.New("connection refused")
		if !s.Fail(gen, cause) {
			t.Fatal("expected failure to apply")
		}
		if s.State() != Error {
			t.Errorf("expected Error, got %s", s.State())
		}
		if len(s.Results()) != 0 {
			t.Errorf("expected empty display results, got %v", s.Results())
		}
		if !errors.Is(s.Err(), cause) {
			t.Errorf("expected retained cause, got %v", s.Err())
		}
	})

	t.Run("Stale Failure Ignored", func(t *testing.T) {
		s := NewSession(0)
		s.Input("a")
		genA := 0
		if _, gen := s.DebounceElapsed("a"); gen > 0 {
			genA = gen
		}

		s.Input("ab")
		_, genAB := s.DebounceElapsed("ab")
		s.Resolve(genAB, []models.Track{{ID: 5}})

		if s.Fail(genA, errors.New("late failure")) {
			t.Error("stale failure must be ignored")
		}
		if s.State() != Results {
			t.Errorf("expected Results to survive, got %s", s.State())
		}
	})

	t.Run("Typing While Loading Invalidates In-Flight Response", func(t *testing.T) {
		s := NewSession(0)
		s.Input("a")
		_, gen := s.DebounceElapsed("a")

		s.Input("ab")
		if s.State() != Debouncing {
			t.Fatalf("expected Debouncing, got %s", s.State())
		}

		if s.Resolve(gen, []models.Track{{ID: 1}}) {
			t.Error("response for a superseded query must not apply")
		}
	})
}
