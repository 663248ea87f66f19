// Package forms holds the per-form submission state shared by the dashboard
// pages. Each rendered form owns one Shell; nothing is global.
package forms

import (
	"time"

	"github.com/subfolio-dev/subfolio/internal/actions"
)

type State int

const (
	Idle State = iota
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// RedirectDelay is how long a success message stays up before the page
// navigates back to its list.
const RedirectDelay = 1500 * time.Millisecond

const msgBusy = "A submission is already in progress"

// Shell drives one form through Idle, Submitting and a settled state.
type Shell[T any] struct {
	Mode   Mode
	Values T

	State   State
	Success string
	Error   string
	Fields  map[string]string

	// ListPath is set for forms that return to a collection after saving.
	// Profile and contact forms leave it empty and stay in place.
	ListPath      string
	RedirectAfter time.Duration
}

func New[T any](mode Mode, initial T) *Shell[T] {
	return &Shell[T]{Mode: mode, Values: initial}
}

// WithListPath makes a successful submission navigate back to path.
func (s *Shell[T]) WithListPath(path string) *Shell[T] {
	s.ListPath = path
	return s
}

// Submit runs exactly one mutation. Messages from the previous attempt are
// cleared first; values are kept on failure and cleared after a successful
// create.
func (s *Shell[T]) Submit(mutate func() actions.Result) actions.Result {
	if s.State == Submitting {
		return actions.Result{Error: msgBusy, Kind: actions.KindInvalidInput}
	}

	s.Success, s.Error, s.Fields = "", "", nil
	s.RedirectAfter = 0
	s.State = Submitting

	res := mutate()
	if !res.OK() {
		s.fail(res.Error, res.Fields)
		return res
	}

	s.State = Succeeded
	s.Success = res.Success

	if s.Mode == ModeCreate {
		var zero T
		s.Values = zero
	}

	if s.ListPath != "" {
		s.RedirectAfter = RedirectDelay
	}

	return res
}

// Fail settles the shell without calling a mutator, for preconditions the
// page can check itself.
func (s *Shell[T]) Fail(message string) {
	s.Success = ""
	s.RedirectAfter = 0
	s.fail(message, nil)
}

func (s *Shell[T]) fail(message string, fields map[string]string) {
	s.State = Failed
	s.Error = message
	s.Fields = fields
}

// Pending reports whether the submit control should be disabled.
func (s *Shell[T]) Pending() bool {
	return s.State == Submitting
}

// Navigates reports whether the rendered page should schedule a return to
// the list.
func (s *Shell[T]) Navigates() bool {
	return s.State == Succeeded && s.ListPath != "" && s.RedirectAfter > 0
}

// RedirectSeconds is RedirectAfter in the unit a meta refresh expects.
func (s *Shell[T]) RedirectSeconds() float64 {
	return s.RedirectAfter.Seconds()
}

func (s *Shell[T]) FieldError(name string) string {
	return s.Fields[name]
}
