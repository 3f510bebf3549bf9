package encounter

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/skirmish/internal/game/action"
	"github.com/cory-johannsen/skirmish/internal/game/modifier"
	"github.com/cory-johannsen/skirmish/internal/game/spell"
	"github.com/cory-johannsen/skirmish/internal/game/target"
)

// itemDef describes one usable item. Items are a small static table, like
// spells without slots.
type itemDef struct {
	// Damage is the effect die expression.
	Damage string
	// Healing inverts Damage into restored hit points.
	Healing bool
	// SelfOnly items ignore targets and affect the user.
	SelfOnly bool
}

// itemCatalog is the static usable-item table.
var itemCatalog = map[string]itemDef{
	"healing_potion": {Damage: "1d6+1", Healing: true, SelfOnly: true},
	"oil_flask":      {Damage: "1d8"},
}

// executePending resolves the validated pending intent into effects and
// applies each effect to combat state in order. Once execution begins it runs
// to completion before any other work is considered.
func (e *Engine) executePending() error {
	effects, err := e.resolveIntent(e.pending)
	if err != nil {
		return err
	}
	for _, eff := range effects {
		if err := e.applyEffect(eff); err != nil {
			return err
		}
	}
	e.pending = nil
	e.state = StateCheckDeaths
	return nil
}

// resolveIntent converts an already-validated intent into an ordered effect
// list, emitting the declaration events (attack rolls, spell casts, item
// uses) as it goes.
func (e *Engine) resolveIntent(in action.Intent) ([]action.Effect, error) {
	switch v := in.(type) {
	case action.MeleeAttack:
		return e.resolveAttack(e.byID[v.Actor], e.byID[v.Target], false), nil
	case action.RangedAttack:
		return e.resolveAttack(e.byID[v.Actor], e.byID[v.Target], true), nil
	case action.CastSpell:
		return e.resolveCast(e.byID[v.Actor], v)
	case action.UseItem:
		return e.resolveUseItem(e.byID[v.Actor], v)
	case action.Flee:
		return []action.Effect{action.FleeCombat{Combatant: v.Actor}}, nil
	default:
		return nil, fmt.Errorf("encounter: cannot resolve intent %T", in)
	}
}

// resolveAttack performs the to-hit roll (d20 + attack bonus + active attack
// modifiers vs armor class + active AC modifiers) and, on a hit, rolls
// damage. A hit always deals at least 1 damage.
func (e *Engine) resolveAttack(actor, tgt *Combatant, ranged bool) []action.Effect {
	roll := e.svc.D20()
	total := roll + actor.AttackBonus + e.tracker.Total(actor.ID, modifier.Attack)
	ac := tgt.ArmorClass + e.tracker.Total(tgt.ID, modifier.ArmorClass)
	hit := total >= ac

	e.emit(EventAttack{
		Attacker: actor.ID,
		Target:   tgt.ID,
		Ranged:   ranged,
		Roll:     roll,
		Total:    total,
		TargetAC: ac,
		Hit:      hit,
	})
	if !hit {
		return nil
	}

	expr := actor.DamageDice
	if ranged {
		expr = actor.RangedDice
	}
	amount := e.tracker.Total(actor.ID, modifier.Damage)
	if expr != "" {
		// Damage expressions are validated at construction; Roll only fails
		// on malformed notation.
		r, err := e.svc.Roll(expr)
		if err == nil {
			amount += r.Total()
		}
	}
	if amount < 1 {
		amount = 1
	}
	return []action.Effect{action.Damage{Source: actor.ID, Target: tgt.ID, Amount: amount}}
}

// resolveCast expands a CastSpell intent: the slot is consumed first, then
// per-target damage, healing, and condition effects in target order.
func (e *Engine) resolveCast(actor *Combatant, v action.CastSpell) ([]action.Effect, error) {
	def, ok := e.spells.Get(v.SpellID)
	if !ok {
		return nil, fmt.Errorf("encounter: unknown spell %q at execution", v.SpellID)
	}

	targetIDs, err := e.resolveSpellTargets(actor, def, v.Targets)
	if err != nil {
		return nil, err
	}
	e.emit(EventSpellCast{Caster: actor.ID, SpellID: v.SpellID, Targets: targetIDs})

	effects := []action.Effect{action.ConsumeSlot{Caster: actor.ID, Level: v.SlotLevel}}
	for _, id := range targetIDs {
		if !def.AutoHit && e.resolveSave(e.byID[id], def) {
			continue
		}
		effects = append(effects, e.payloadEffects(actor.ID, id, def.Damage, def.Healing, def.ConditionID)...)
	}
	return effects, nil
}

// saveBase is the save difficulty before the spell's level is added.
const saveBase = 10

// resolveSave rolls one target's saving throw against a resistible spell:
// d20 + active saving-throw modifiers vs saveBase + spell level. A successful
// save negates the spell's payload for that target.
func (e *Engine) resolveSave(tgt *Combatant, def *spell.Definition) bool {
	roll := e.svc.D20()
	total := roll + e.tracker.Total(tgt.ID, modifier.SavingThrow)
	threshold := saveBase + def.Level
	saved := total >= threshold

	e.emit(EventSavingThrow{
		CombatantID: tgt.ID,
		SpellID:     def.ID,
		Roll:        roll,
		Total:       total,
		Threshold:   threshold,
		Saved:       saved,
	})
	return saved
}

// resolveSpellTargets produces the concrete target list for def: the
// validated explicit target, every living opponent, a uniform random group,
// or an HD-pool bounded subset consuming weakest opponents first.
func (e *Engine) resolveSpellTargets(actor *Combatant, def *spell.Definition, explicit []string) ([]string, error) {
	if def.PoolDice != "" {
		pool, err := e.svc.Roll(def.PoolDice)
		if err != nil {
			return nil, fmt.Errorf("encounter: pool roll for %q: %w", def.ID, err)
		}
		var candidates []target.Candidate
		for _, o := range e.activeOpponents(actor.Side) {
			candidates = append(candidates, target.Candidate{ID: o.ID, HitDice: o.effectiveHitDice()})
		}
		return target.ResolveHDPool(candidates, pool.Total()), nil
	}
	if def.Targets == spell.AllOpposing {
		ids := []string{}
		for _, o := range e.activeOpponents(actor.Side) {
			ids = append(ids, o.ID)
		}
		return ids, nil
	}
	if def.Targets > 1 {
		ids := []string{}
		for _, o := range e.activeOpponents(actor.Side) {
			ids = append(ids, o.ID)
		}
		return target.ResolveRandomGroup(ids, def.Targets, e.svc), nil
	}
	return explicit, nil
}

// resolveUseItem expands a UseItem intent and removes the item from the
// user's inventory. Inventory contents are engine-internal bookkeeping, not
// effect-governed combat state, so consumption happens here.
func (e *Engine) resolveUseItem(actor *Combatant, v action.UseItem) ([]action.Effect, error) {
	def, ok := itemCatalog[v.Item]
	if !ok {
		return nil, fmt.Errorf("encounter: unknown item %q at execution", v.Item)
	}
	if !actor.removeItem(v.Item) {
		return nil, fmt.Errorf("encounter: item %q vanished from %q", v.Item, actor.ID)
	}

	targetIDs := v.Targets
	if def.SelfOnly {
		targetIDs = []string{actor.ID}
	}
	e.emit(EventItemUsed{CombatantID: actor.ID, Item: v.Item, Targets: targetIDs})

	var effects []action.Effect
	for _, id := range targetIDs {
		effects = append(effects, e.payloadEffects(actor.ID, id, def.Damage, def.Healing, "")...)
	}
	return effects, nil
}

// payloadEffects builds the damage/healing and condition effects one spell or
// item applies to a single target.
func (e *Engine) payloadEffects(sourceID, targetID, damage string, healing bool, conditionID string) []action.Effect {
	var out []action.Effect
	if damage != "" {
		r, err := e.svc.Roll(damage)
		if err == nil {
			amount := r.Total()
			if amount < 0 {
				amount = 0
			}
			if healing {
				amount = -amount
			}
			out = append(out, action.Damage{Source: sourceID, Target: targetID, Amount: amount})
		}
	}
	if conditionID != "" {
		rounds := modifier.Permanent
		if cond, ok := e.conditions.Get(conditionID); ok {
			rounds = cond.Rounds
		}
		out = append(out, action.ApplyCondition{
			Source:      sourceID,
			Target:      targetID,
			ConditionID: conditionID,
			Rounds:      rounds,
		})
	}
	return out
}

// applyEffect is the sole mutation path for combat state. Every effect
// produces its corresponding event.
func (e *Engine) applyEffect(eff action.Effect) error {
	switch v := eff.(type) {
	case action.Damage:
		t, ok := e.byID[v.Target]
		if !ok {
			return fmt.Errorf("encounter: damage effect names unknown target %q", v.Target)
		}
		if v.Amount >= 0 {
			t.HP -= v.Amount
			e.emit(EventDamage{Source: v.Source, Target: v.Target, Amount: v.Amount, HPAfter: t.DisplayHP()})
		} else {
			t.HP -= v.Amount
			if t.HP > t.MaxHP {
				t.HP = t.MaxHP
			}
			e.emit(EventHealed{Source: v.Source, Target: v.Target, Amount: -v.Amount, HPAfter: t.DisplayHP()})
		}
		return nil
	case action.ConsumeSlot:
		c, ok := e.byID[v.Caster]
		if !ok {
			return fmt.Errorf("encounter: slot effect names unknown caster %q", v.Caster)
		}
		if c.Slots[v.Level] <= 0 {
			return fmt.Errorf("encounter: caster %q has no level %d slot to consume", v.Caster, v.Level)
		}
		c.Slots[v.Level]--
		e.emit(EventSlotConsumed{Caster: v.Caster, Level: v.Level, Remaining: c.Slots[v.Level]})
		return nil
	case action.ApplyCondition:
		cond, ok := e.conditions.Get(v.ConditionID)
		if !ok {
			return fmt.Errorf("encounter: condition effect names unknown condition %q", v.ConditionID)
		}
		e.tracker.Add(v.Target, modifier.Active{
			ID:       uuid.NewString(),
			SourceID: v.ConditionID,
			Stat:     cond.ModifierStat(),
			Value:    cond.Value,
			Rounds:   v.Rounds,
		})
		e.emit(EventConditionApplied{
			Source:      v.Source,
			Target:      v.Target,
			ConditionID: v.ConditionID,
			Rounds:      v.Rounds,
		})
		return nil
	case action.FleeCombat:
		c, ok := e.byID[v.Combatant]
		if !ok {
			return fmt.Errorf("encounter: flee effect names unknown combatant %q", v.Combatant)
		}
		c.Fled = true
		e.emit(EventFled{CombatantID: v.Combatant, Voluntary: true})
		return nil
	default:
		return fmt.Errorf("encounter: cannot apply effect %T", eff)
	}
}
