// Package tactic provides pluggable decision strategies that convert a
// combatant's available action choices into a chosen intent. The engine is
// agnostic to which provider drives which combatant; any combatant without a
// provider is externally controlled through the engine's intent submission
// boundary.
package tactic

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/action"
)

// Choice wraps one pre-built, legal intent with a display label.
type Choice struct {
	Intent action.Intent
	Label  string
}

// Provider chooses one intent from the available choices for a combatant's
// turn.
//
// Precondition: choices is non-empty.
type Provider interface {
	ChooseIntent(combatantID string, choices []Choice) (action.Intent, error)
}

// errNoChoices builds the shared empty-choices error.
func errNoChoices(combatantID string) error {
	return fmt.Errorf("tactic: no choices offered for combatant %q", combatantID)
}
