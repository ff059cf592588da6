package wizard

import (
	"math"

	"pathway-compass/survey-portal-backend/internal/registry"
)

// TotalSteps mirrors the registry's section count.
const TotalSteps = registry.TotalSteps

// skipUnlockStep is the step whose completion unlocks the jump-to-review
// shortcut.
const skipUnlockStep = 9

// State gates step navigation and computes the progress percentage.
// It lives per session and is rebuilt from persisted sections on load;
// nothing here is persisted beyond what CompleteStep hands back to the
// caller for the progress write.
type State struct {
	current   int
	completed map[int]bool
}

// New returns a fresh state positioned on step 1.
func New() *State {
	return &State{current: 1, completed: make(map[int]bool)}
}

// NewFromSections rebuilds state from the section keys present in a
// project's persisted storage: a stored section implies its step is
// completed, and the current step is one past the highest contiguous
// completed step. Unknown keys are ignored.
func NewFromSections(keys []registry.SectionKey) *State {
	s := New()
	for _, key := range keys {
		if step := registry.StepFor(key); step > 0 {
			s.completed[step] = true
		}
	}
	for step := 1; step <= TotalSteps && s.completed[step]; step++ {
		s.current = step + 1
	}
	if s.current > TotalSteps {
		s.current = TotalSteps
	}
	return s
}

// Current returns the current step, always in [1, TotalSteps].
func (s *State) Current() int {
	return s.current
}

// Completed returns the completed steps in ascending order.
func (s *State) Completed() []int {
	out := make([]int, 0, len(s.completed))
	for step := 1; step <= TotalSteps; step++ {
		if s.completed[step] {
			out = append(out, step)
		}
	}
	return out
}

// IsCompleted reports whether a step has been completed.
func (s *State) IsCompleted(step int) bool {
	return s.completed[step]
}

// GoToStep moves to target if it is reachable: step 1 is always open,
// any other step requires its predecessor to be completed. Unreachable
// targets are a silent no-op, a UI guard rather than an error.
func (s *State) GoToStep(target int) bool {
	if target < 1 || target > TotalSteps {
		return false
	}
	if target != 1 && !s.completed[target-1] {
		return false
	}
	s.current = target
	return true
}

// CompleteStep marks a step completed and advances to the next one,
// clamped at the last step. The returned progress is what the caller
// persists; progress writes happen only here, so answer edits after
// later steps are completed leave the stored value stale.
func (s *State) CompleteStep(step int) int {
	if step < 1 || step > TotalSteps {
		return s.Progress()
	}
	s.completed[step] = true
	s.current = step + 1
	if s.current > TotalSteps {
		s.current = TotalSteps
	}
	return s.Progress()
}

// SkipToEnd jumps to the final step. Allowed only once the shortcut
// unlock step is completed.
func (s *State) SkipToEnd() bool {
	if !s.completed[skipUnlockStep] {
		return false
	}
	s.current = TotalSteps
	return true
}

// Restart moves back to step 1 without clearing completion state.
func (s *State) Restart() {
	s.current = 1
}

// Progress returns round(100 * current / TotalSteps).
func (s *State) Progress() int {
	return int(math.Round(100 * float64(s.current) / float64(TotalSteps)))
}

// DeriveProgress computes the progress value implied by persisted
// section keys alone, without session state. The drift audit job
// compares this against the stored value.
func DeriveProgress(keys []registry.SectionKey) int {
	return NewFromSections(keys).Progress()
}
