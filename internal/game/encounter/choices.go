package encounter

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/action"
	"github.com/cory-johannsen/skirmish/internal/game/spell"
	"github.com/cory-johannsen/skirmish/internal/game/tactic"
)

// computeChoices builds the full set of legal action choices for c's turn:
// melee and ranged attacks against each living opponent, castable spells with
// an available slot, carried items, and flee. Flee is always legal, so the
// result is never empty.
func (e *Engine) computeChoices(c *Combatant) []tactic.Choice {
	var out []tactic.Choice

	for _, o := range e.activeOpponents(c.Side) {
		out = append(out, tactic.Choice{
			Intent: action.MeleeAttack{Actor: c.ID, Target: o.ID},
			Label:  fmt.Sprintf("melee attack %s", o.Name),
		})
		if c.RangedDice != "" {
			out = append(out, tactic.Choice{
				Intent: action.RangedAttack{Actor: c.ID, Target: o.ID},
				Label:  fmt.Sprintf("ranged attack %s", o.Name),
			})
		}
	}

	for _, spellID := range c.Spells {
		def, ok := e.spells.Get(spellID)
		if !ok || !def.UsableBy(c.Class) || !c.HasSlot(def.Level) {
			continue
		}
		if def.PoolDice != "" || def.Targets != 1 {
			// Targets resolve at execution time.
			out = append(out, tactic.Choice{
				Intent: action.NewCastSpell(c.ID, spellID, def.Level, nil),
				Label:  fmt.Sprintf("cast %s", def.Name),
			})
			continue
		}
		for _, t := range e.spellTargets(c, def) {
			out = append(out, tactic.Choice{
				Intent: action.NewCastSpell(c.ID, spellID, def.Level, []string{t.ID}),
				Label:  fmt.Sprintf("cast %s on %s", def.Name, t.Name),
			})
		}
	}

	for _, item := range uniqueItems(c.Items) {
		def := itemCatalog[item]
		if def.SelfOnly {
			out = append(out, tactic.Choice{
				Intent: action.NewUseItem(c.ID, item, nil),
				Label:  fmt.Sprintf("use %s", item),
			})
			continue
		}
		for _, o := range e.activeOpponents(c.Side) {
			out = append(out, tactic.Choice{
				Intent: action.NewUseItem(c.ID, item, []string{o.ID}),
				Label:  fmt.Sprintf("use %s on %s", item, o.Name),
			})
		}
	}

	out = append(out, tactic.Choice{
		Intent: action.Flee{Actor: c.ID},
		Label:  "flee",
	})
	return out
}

// spellTargets returns the eligible single-target pool for def: allies
// (including the caster) for beneficial spells, opponents otherwise.
func (e *Engine) spellTargets(c *Combatant, def *spell.Definition) []*Combatant {
	if e.isBeneficial(def) {
		return e.activeAllies(c.Side)
	}
	return e.activeOpponents(c.Side)
}

// isBeneficial reports whether def helps its target rather than harming it:
// healing spells, and pure condition spells whose condition raises a stat.
func (e *Engine) isBeneficial(def *spell.Definition) bool {
	if def.Healing {
		return true
	}
	if def.Damage != "" || def.ConditionID == "" {
		return false
	}
	cond, ok := e.conditions.Get(def.ConditionID)
	return ok && cond.Value > 0
}

// validateIntent checks in against current combat state. A nil error means
// the intent is legal for the current combatant this turn.
func (e *Engine) validateIntent(in action.Intent) error {
	actor, ok := e.byID[action.ActorID(in)]
	if !ok {
		return fmt.Errorf("unknown actor %q", action.ActorID(in))
	}
	if actor.ID != e.currentID {
		return fmt.Errorf("combatant %q acted out of turn", actor.ID)
	}
	if !actor.Active() {
		return fmt.Errorf("combatant %q cannot act", actor.ID)
	}

	switch v := in.(type) {
	case action.MeleeAttack:
		return e.validateAttackTarget(actor, v.Target)
	case action.RangedAttack:
		if actor.RangedDice == "" {
			return fmt.Errorf("combatant %q has no ranged attack", actor.ID)
		}
		return e.validateAttackTarget(actor, v.Target)
	case action.CastSpell:
		return e.validateCast(actor, v)
	case action.UseItem:
		return e.validateUseItem(actor, v)
	case action.Flee:
		return nil
	default:
		return fmt.Errorf("unsupported intent %T", in)
	}
}

// validateAttackTarget checks that targetID is a living, present opponent.
func (e *Engine) validateAttackTarget(actor *Combatant, targetID string) error {
	t, ok := e.byID[targetID]
	if !ok {
		return fmt.Errorf("unknown target %q", targetID)
	}
	if t.Side == actor.Side {
		return fmt.Errorf("target %q is on the attacker's side", targetID)
	}
	if !t.Active() {
		return fmt.Errorf("target %q is no longer a valid target", targetID)
	}
	return nil
}

// validateCast checks spell knowledge, class, slot availability, and target
// legality for a CastSpell intent.
func (e *Engine) validateCast(actor *Combatant, v action.CastSpell) error {
	def, ok := e.spells.Get(v.SpellID)
	if !ok {
		return fmt.Errorf("unknown spell %q", v.SpellID)
	}
	if !actor.Knows(v.SpellID) {
		return fmt.Errorf("combatant %q does not know %q", actor.ID, v.SpellID)
	}
	if !def.UsableBy(actor.Class) {
		return fmt.Errorf("spell %q is not usable by class %q", v.SpellID, actor.Class)
	}
	if v.SlotLevel != def.Level {
		return fmt.Errorf("spell %q requires a level %d slot, got %d", v.SpellID, def.Level, v.SlotLevel)
	}
	if !actor.HasSlot(v.SlotLevel) {
		return fmt.Errorf("combatant %q has no level %d slot remaining", actor.ID, v.SlotLevel)
	}

	if def.PoolDice != "" || def.Targets != 1 {
		if len(v.Targets) != 0 {
			return fmt.Errorf("spell %q resolves its own targets", v.SpellID)
		}
		return nil
	}
	if len(v.Targets) != 1 {
		return fmt.Errorf("spell %q requires exactly one target, got %d", v.SpellID, len(v.Targets))
	}
	t, ok := e.byID[v.Targets[0]]
	if !ok {
		return fmt.Errorf("unknown target %q", v.Targets[0])
	}
	if !t.Active() {
		return fmt.Errorf("target %q is no longer a valid target", t.ID)
	}
	if e.isBeneficial(def) {
		if t.Side != actor.Side {
			return fmt.Errorf("spell %q targets allies only", v.SpellID)
		}
	} else if t.Side == actor.Side {
		return fmt.Errorf("spell %q targets opponents only", v.SpellID)
	}
	return nil
}

// validateUseItem checks possession and target legality for a UseItem intent.
func (e *Engine) validateUseItem(actor *Combatant, v action.UseItem) error {
	def, ok := itemCatalog[v.Item]
	if !ok {
		return fmt.Errorf("unknown item %q", v.Item)
	}
	if !actor.Carries(v.Item) {
		return fmt.Errorf("combatant %q does not carry %q", actor.ID, v.Item)
	}
	if def.SelfOnly {
		if len(v.Targets) != 0 {
			return fmt.Errorf("item %q is self-targeting", v.Item)
		}
		return nil
	}
	if len(v.Targets) != 1 {
		return fmt.Errorf("item %q requires exactly one target, got %d", v.Item, len(v.Targets))
	}
	return e.validateAttackTarget(actor, v.Targets[0])
}

// uniqueItems returns items with duplicates collapsed, preserving first-seen
// order.
func uniqueItems(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
