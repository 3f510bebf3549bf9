package modifier

import "sort"

// Expiry identifies one modifier removed by a round tick.
type Expiry struct {
	CombatantID string
	ModifierID  string
}

// Tracker holds all active modifiers for one encounter, keyed by combatant
// id. It is exclusively owned by a single encounter engine and is not safe
// for concurrent use.
type Tracker struct {
	active map[string][]Active
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{active: make(map[string][]Active)}
}

// Add appends m to the combatant's active modifiers. No de-duplication is
// performed: multiple stacking instances of the same source are allowed and
// their values sum.
//
// Postcondition: Total(combatantID, m.Stat) includes m.Value.
func (t *Tracker) Add(combatantID string, m Active) {
	t.active[combatantID] = append(t.active[combatantID], m)
}

// Total returns the arithmetic sum of all active modifiers matching stat for
// the combatant, or zero if none.
func (t *Tracker) Total(combatantID string, stat Stat) int {
	total := 0
	for _, m := range t.active[combatantID] {
		if m.Stat == stat {
			total += m.Value
		}
	}
	return total
}

// All returns a defensive copy of the combatant's active modifiers.
//
// Postcondition: mutating the returned slice never affects the Tracker.
func (t *Tracker) All(combatantID string) []Active {
	mods := t.active[combatantID]
	cp := make([]Active, len(mods))
	copy(cp, mods)
	return cp
}

// Remove deletes the modifier with modifierID from the combatant, reporting
// whether it was present. This is the only way to clear a permanent modifier.
func (t *Tracker) Remove(combatantID, modifierID string) bool {
	mods := t.active[combatantID]
	for i, m := range mods {
		if m.ID == modifierID {
			t.active[combatantID] = append(mods[:i], mods[i+1:]...)
			return true
		}
	}
	return false
}

// TickRound decrements every modifier with a finite duration by one round and
// removes any that reach zero or below. Permanent modifiers are untouched.
// Returned expiries are ordered by combatant id, then by application order,
// so expiry events are deterministic.
//
// Postcondition: every returned (combatant, modifier) pair is no longer
// present in the Tracker.
func (t *Tracker) TickRound() []Expiry {
	ids := make([]string, 0, len(t.active))
	for id := range t.active {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var expired []Expiry
	for _, id := range ids {
		var kept []Active
		for _, m := range t.active[id] {
			if m.Rounds == Permanent {
				kept = append(kept, m)
				continue
			}
			m.Rounds--
			if m.Rounds <= 0 {
				expired = append(expired, Expiry{CombatantID: id, ModifierID: m.ID})
				continue
			}
			kept = append(kept, m)
		}
		if len(kept) == 0 {
			delete(t.active, id)
		} else {
			t.active[id] = kept
		}
	}
	return expired
}
