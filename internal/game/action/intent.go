// Package action defines the closed vocabulary of intents and effects the
// encounter engine operates on. Intents are proposed actions, not yet
// validated; effects are the atomic state mutations produced by executing a
// validated intent. Both families are immutable value types.
package action

// Intent is a proposed action submitted for a combatant's turn. The set of
// implementations is closed; resolution logic type-switches over it and must
// handle every variant.
type Intent interface {
	isIntent()
}

// MeleeAttack is a melee weapon attack against a single target.
type MeleeAttack struct {
	Actor  string
	Target string
}

// RangedAttack is a ranged weapon attack against a single target.
type RangedAttack struct {
	Actor  string
	Target string
}

// CastSpell casts the spell identified by SpellID using a slot of SlotLevel.
// Targets is never nil; spells that resolve their own targets (all-opposing
// or HD-pool spells) carry an empty slice.
type CastSpell struct {
	Actor     string
	SpellID   string
	SlotLevel int
	Targets   []string
}

// UseItem consumes the named item from the actor's inventory.
// Targets is never nil; self-targeting items carry an empty slice.
type UseItem struct {
	Actor   string
	Item    string
	Targets []string
}

// Flee is a voluntary withdrawal from the encounter.
type Flee struct {
	Actor string
}

func (MeleeAttack) isIntent()  {}
func (RangedAttack) isIntent() {}
func (CastSpell) isIntent()    {}
func (UseItem) isIntent()      {}
func (Flee) isIntent()         {}

// NewCastSpell builds a CastSpell intent, normalizing nil targets to an empty
// slice so downstream code can iterate unconditionally.
func NewCastSpell(actor, spellID string, slotLevel int, targets []string) CastSpell {
	return CastSpell{
		Actor:     actor,
		SpellID:   spellID,
		SlotLevel: slotLevel,
		Targets:   copyTargets(targets),
	}
}

// NewUseItem builds a UseItem intent, normalizing nil targets to an empty slice.
func NewUseItem(actor, item string, targets []string) UseItem {
	return UseItem{
		Actor:   actor,
		Item:    item,
		Targets: copyTargets(targets),
	}
}

// ActorID returns the acting combatant's id for any intent variant.
func ActorID(in Intent) string {
	switch v := in.(type) {
	case MeleeAttack:
		return v.Actor
	case RangedAttack:
		return v.Actor
	case CastSpell:
		return v.Actor
	case UseItem:
		return v.Actor
	case Flee:
		return v.Actor
	default:
		return ""
	}
}

// copyTargets returns a non-nil copy of targets.
//
// Postcondition: return value is never nil.
func copyTargets(targets []string) []string {
	cp := make([]string, len(targets))
	copy(cp, targets)
	return cp
}
