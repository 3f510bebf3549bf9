package encounter

import "github.com/cory-johannsen/skirmish/internal/game/modifier"

// CombatantView is an immutable point-in-time projection of one combatant.
type CombatantView struct {
	ID         string
	Name       string
	Side       Side
	HP         int // clamped at zero
	MaxHP      int
	ArmorClass int
	Fled       bool
	Dead       bool
	// Modifiers is a copy of the combatant's active stat modifiers.
	Modifiers []modifier.Active
}

// CombatView is an immutable snapshot of the whole encounter, recomputed on
// demand. Views never alias engine-owned state: two calls with no state
// change in between yield equal views.
type CombatView struct {
	EncounterID string
	Round       int
	State       State
	Outcome     Outcome
	Combatants  []CombatantView
}

// View builds a fresh snapshot of the current encounter state. Safe to call
// in any state, including ENDED.
//
// Postcondition: the returned view shares no mutable data with the engine.
func (e *Engine) View() CombatView {
	v := CombatView{
		EncounterID: e.id,
		Round:       e.round,
		State:       e.state,
		Outcome:     e.outcome,
		Combatants:  make([]CombatantView, 0, len(e.roster)),
	}
	for _, c := range e.roster {
		v.Combatants = append(v.Combatants, CombatantView{
			ID:         c.ID,
			Name:       c.Name,
			Side:       c.Side,
			HP:         c.DisplayHP(),
			MaxHP:      c.MaxHP,
			ArmorClass: c.ArmorClass,
			Fled:       c.Fled,
			Dead:       c.Dead,
			Modifiers:  e.tracker.All(c.ID),
		})
	}
	return v
}

// Combatant returns the view of the combatant with id, if present.
func (v CombatView) Combatant(id string) (CombatantView, bool) {
	for _, c := range v.Combatants {
		if c.ID == id {
			return c, true
		}
	}
	return CombatantView{}, false
}
