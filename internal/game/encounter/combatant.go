// Package encounter implements the turn-based encounter resolution engine: a
// deterministic state machine that validates per-combatant action intents,
// executes them against shared combat state, applies the resulting effects,
// and advances through death, morale, and victory checks until the encounter
// reaches a terminal outcome.
package encounter

import "github.com/cory-johannsen/skirmish/internal/game/target"

// Side identifies which group a combatant fights for.
type Side int

const (
	SideParty Side = iota
	SideMonster
)

// String returns the symbolic name of the Side.
func (s Side) String() string {
	switch s {
	case SideParty:
		return "PARTY"
	case SideMonster:
		return "MONSTER"
	default:
		return "UNKNOWN"
	}
}

// Opposing returns the other side.
func (s Side) Opposing() Side {
	if s == SideParty {
		return SideMonster
	}
	return SideParty
}

// Combatant is one participant in an encounter. The engine owns every
// Combatant exclusively for the encounter's lifetime; external code sees them
// only through View snapshots.
type Combatant struct {
	ID   string
	Name string
	Side Side
	// HP may go negative internally; DisplayHP clamps at zero.
	HP         int
	MaxHP      int
	ArmorClass int
	// AttackBonus is the flat to-hit bonus before active modifiers.
	AttackBonus int
	// DamageDice is the melee damage expression, e.g. "1d8".
	DamageDice string
	// RangedDice is the ranged damage expression; empty means the combatant
	// has no ranged attack.
	RangedDice string
	// Level is the character level for party members.
	Level int
	// HitDice is the number of hit dice for monsters.
	HitDice int
	Class   string
	// Slots maps spell level to remaining spell slots.
	Slots  map[int]int
	Spells []string
	Items  []string
	Fled   bool
	Dead   bool
}

// Active reports whether the combatant still participates in the encounter:
// neither dead nor fled.
func (c *Combatant) Active() bool {
	return !c.Dead && !c.Fled
}

// DisplayHP returns HP clamped at zero for observers.
//
// Postcondition: Returns >= 0.
func (c *Combatant) DisplayHP() int {
	if c.HP < 0 {
		return 0
	}
	return c.HP
}

// HasSlot reports whether a spell slot of the given level remains.
func (c *Combatant) HasSlot(level int) bool {
	return c.Slots[level] > 0
}

// Knows reports whether the combatant knows the spell.
func (c *Combatant) Knows(spellID string) bool {
	for _, id := range c.Spells {
		if id == spellID {
			return true
		}
	}
	return false
}

// Carries reports whether the combatant carries the named item.
func (c *Combatant) Carries(item string) bool {
	for _, it := range c.Items {
		if it == item {
			return true
		}
	}
	return false
}

// removeItem deletes one instance of item from the inventory, reporting
// whether it was present.
func (c *Combatant) removeItem(item string) bool {
	for i, it := range c.Items {
		if it == item {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// targetKind maps the combatant's side onto the targeting resolver's entity
// classification.
func (c *Combatant) targetKind() target.Kind {
	switch c.Side {
	case SideParty:
		return target.KindPlayer
	case SideMonster:
		return target.KindMonster
	default:
		return target.KindUnknown
	}
}

// effectiveHitDice returns the hit dice used for pool-based targeting.
func (c *Combatant) effectiveHitDice() int {
	return target.EffectiveHitDice(c.targetKind(), c.HitDice, c.Level)
}

// clone returns a deep copy of the combatant, owned by the caller.
func (c *Combatant) clone() *Combatant {
	cp := *c
	cp.Slots = make(map[int]int, len(c.Slots))
	for lvl, n := range c.Slots {
		cp.Slots[lvl] = n
	}
	cp.Spells = append([]string(nil), c.Spells...)
	cp.Items = append([]string(nil), c.Items...)
	return &cp
}
