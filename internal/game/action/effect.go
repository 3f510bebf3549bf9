package action

// Effect is a validated, atomic state mutation produced by executing an
// intent. Effects are the engine's sole means of mutating combat state; the
// implementation set is closed.
type Effect interface {
	isEffect()
}

// Damage reduces Target's hit points by Amount. A negative Amount is healing;
// application clamps hit points at the target's maximum.
type Damage struct {
	Source string
	Target string
	Amount int
}

// ConsumeSlot spends one of Caster's spell slots of the given level.
type ConsumeSlot struct {
	Caster string
	Level  int
}

// ApplyCondition places the condition identified by ConditionID on Target for
// Rounds rounds. Rounds < 0 means the condition is permanent until removed.
type ApplyCondition struct {
	Source      string
	Target      string
	ConditionID string
	Rounds      int
}

// FleeCombat removes Combatant from active participation. The combatant stays
// in the roster, marked fled, and is excluded from targeting and turn order.
type FleeCombat struct {
	Combatant string
}

func (Damage) isEffect()         {}
func (ConsumeSlot) isEffect()    {}
func (ApplyCondition) isEffect() {}
func (FleeCombat) isEffect()     {}
