package placeholder

import (
	"fmt"
	"unicode/utf8"
)

// Phase is the animator's position in the typing cycle.
type Phase int

const (
	PhaseTyping Phase = iota
	PhasePaused
	PhaseDeleting
	PhaseSuspended
)

func (p Phase) String() string {
	switch p {
	case PhaseTyping:
		return "typing"
	case PhasePaused:
		return "paused"
	case PhaseDeleting:
		return "deleting"
	case PhaseSuspended:
		return "suspended"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

const (
	// TabThreshold is the minimum number of displayed runes before the tab
	// affordance is offered.
	TabThreshold = 12

	caretBaseOffset = 3.5
	caretScale      = 1.32
)

// State is a snapshot of the animator. Derived values are methods so they
// can never drift from the fields they are computed from.
type State struct {
	Index    int
	Text     string
	Phase    Phase
	Focused  bool
	HasInput bool
	// SuspendedFrom is the phase that was active when the animator was
	// suspended. Only meaningful while Phase is PhaseSuspended.
	SuspendedFrom Phase
}

// TabAffordanceVisible reports whether the host should offer to accept the
// current placeholder into the field.
func (s State) TabAffordanceVisible() bool {
	if s.Focused || s.HasInput {
		return false
	}
	return utf8.RuneCountInString(s.Text) >= TabThreshold
}

// CTAVisible reports whether the submit call-to-action should be shown.
func (s State) CTAVisible() bool {
	return s.HasInput
}

// CaretOffset positions the tab affordance just past the displayed text,
// in character cells.
func (s State) CaretOffset() float64 {
	return caretBaseOffset + float64(utf8.RuneCountInString(s.Text))/caretScale
}
