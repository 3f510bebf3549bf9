package tactic

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/action"
)

// Scripted is a test provider that follows a fixed plan of choice labels.
// Each call consumes the next label and selects the first offered choice
// whose label matches it exactly. Running out of plan, or a label with no
// matching choice, is an error: a scripted plan that diverges from the
// offered choices is a test defect, not a recoverable state.
type Scripted struct {
	plan []string
	pos  int
}

// NewScriptedPlan creates a Scripted provider following labels in order.
//
// Precondition: labels must be non-empty.
func NewScriptedPlan(labels ...string) (*Scripted, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("tactic: scripted plan must not be empty")
	}
	cp := make([]string, len(labels))
	copy(cp, labels)
	return &Scripted{plan: cp}, nil
}

// ChooseIntent selects the offered choice matching the next planned label.
func (s *Scripted) ChooseIntent(combatantID string, choices []Choice) (action.Intent, error) {
	if len(choices) == 0 {
		return nil, errNoChoices(combatantID)
	}
	if s.pos >= len(s.plan) {
		return nil, fmt.Errorf("tactic: scripted plan exhausted for combatant %q", combatantID)
	}
	label := s.plan[s.pos]
	s.pos++
	for _, c := range choices {
		if c.Label == label {
			return c.Intent, nil
		}
	}
	return nil, fmt.Errorf("tactic: scripted label %q not among choices for combatant %q", label, combatantID)
}
