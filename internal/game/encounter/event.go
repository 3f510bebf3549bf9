package encounter

import "github.com/cory-johannsen/skirmish/internal/game/tactic"

// Event records one observable change in combat state. Events are the only
// channel through which external collaborators learn what happened; their
// ordering within a turn is significant (a damage event always precedes the
// death event it causes). The implementation set is closed.
type Event interface {
	isEvent()
}

// EventRoundStarted marks the start of a combat round.
type EventRoundStarted struct {
	Round int
}

// EventTurnStarted marks the start of one combatant's turn.
type EventTurnStarted struct {
	CombatantID string
	Round       int
}

// EventNeedAction is the engine's suspension point: an externally controlled
// combatant must answer with SubmitIntent before the encounter can proceed.
type EventNeedAction struct {
	CombatantID string
	Choices     []tactic.Choice
}

// EventIntentRejected reports a submitted intent that failed validation. The
// engine stays in AWAIT_INTENT and re-prompts.
type EventIntentRejected struct {
	CombatantID string
	Reason      string
}

// EventAttack reports a resolved to-hit roll.
type EventAttack struct {
	Attacker string
	Target   string
	Ranged   bool
	Roll     int // raw d20
	Total    int // d20 + attack bonus + active modifiers
	TargetAC int // armor class + active modifiers
	Hit      bool
}

// EventSpellCast reports a spell being cast with its resolved targets.
type EventSpellCast struct {
	Caster  string
	SpellID string
	Targets []string
}

// EventSavingThrow reports one target's saving throw against a resistible
// spell. A successful save negates the spell's payload for that target.
type EventSavingThrow struct {
	CombatantID string
	SpellID     string
	Roll        int // raw d20
	Total       int // d20 + active saving-throw modifiers
	Threshold   int
	Saved       bool
}

// EventItemUsed reports an item being consumed.
type EventItemUsed struct {
	CombatantID string
	Item        string
	Targets     []string
}

// EventDamage reports hit points lost. HPAfter is clamped at zero.
type EventDamage struct {
	Source  string
	Target  string
	Amount  int
	HPAfter int
}

// EventHealed reports hit points restored, clamped at the target's maximum.
type EventHealed struct {
	Source  string
	Target  string
	Amount  int
	HPAfter int
}

// EventSlotConsumed reports a spell slot being spent.
type EventSlotConsumed struct {
	Caster    string
	Level     int
	Remaining int
}

// EventConditionApplied reports a condition taking hold of a target.
type EventConditionApplied struct {
	Source      string
	Target      string
	ConditionID string
	Rounds      int
}

// EventModifierExpired reports a tracked modifier expiring at a round
// boundary.
type EventModifierExpired struct {
	CombatantID string
	ModifierID  string
}

// EventDeath reports a combatant dying. Emitted exactly once per combatant.
type EventDeath struct {
	CombatantID string
}

// EventFled reports a combatant leaving the fight, either by its own Flee
// intent (Voluntary) or a failed morale check.
type EventFled struct {
	CombatantID string
	Voluntary   bool
}

// EventEncounterEnded carries the terminal outcome.
type EventEncounterEnded struct {
	Outcome Outcome
	Rounds  int
}

func (EventRoundStarted) isEvent()     {}
func (EventTurnStarted) isEvent()      {}
func (EventNeedAction) isEvent()       {}
func (EventIntentRejected) isEvent()   {}
func (EventAttack) isEvent()           {}
func (EventSpellCast) isEvent()        {}
func (EventSavingThrow) isEvent()      {}
func (EventItemUsed) isEvent()         {}
func (EventDamage) isEvent()           {}
func (EventHealed) isEvent()           {}
func (EventSlotConsumed) isEvent()     {}
func (EventConditionApplied) isEvent() {}
func (EventModifierExpired) isEvent()  {}
func (EventDeath) isEvent()            {}
func (EventFled) isEvent()             {}
func (EventEncounterEnded) isEvent()   {}
