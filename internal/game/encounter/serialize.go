package encounter

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/action"
	"github.com/cory-johannsen/skirmish/internal/game/tactic"
)

// Serialize converts an event into a JSON-safe key-value structure with a
// "type" discriminator. Enumerations appear as their symbolic names, nested
// intents carry their own discriminator, and choice labels are included as
// derived display fields. Serializing the same event twice yields identical
// output, and the structure contains only plain maps, slices, strings, ints,
// and bools.
func Serialize(ev Event) map[string]any {
	switch v := ev.(type) {
	case EventRoundStarted:
		return map[string]any{
			"type":  "ROUND_STARTED",
			"round": v.Round,
		}
	case EventTurnStarted:
		return map[string]any{
			"type":      "TURN_STARTED",
			"combatant": v.CombatantID,
			"round":     v.Round,
		}
	case EventNeedAction:
		return map[string]any{
			"type":      "NEED_ACTION",
			"combatant": v.CombatantID,
			"choices":   serializeChoices(v.Choices),
		}
	case EventIntentRejected:
		return map[string]any{
			"type":      "INTENT_REJECTED",
			"combatant": v.CombatantID,
			"reason":    v.Reason,
		}
	case EventAttack:
		return map[string]any{
			"type":      "ATTACK",
			"attacker":  v.Attacker,
			"target":    v.Target,
			"ranged":    v.Ranged,
			"roll":      v.Roll,
			"total":     v.Total,
			"target_ac": v.TargetAC,
			"hit":       v.Hit,
		}
	case EventSpellCast:
		return map[string]any{
			"type":    "SPELL_CAST",
			"caster":  v.Caster,
			"spell":   v.SpellID,
			"targets": copyStrings(v.Targets),
		}
	case EventSavingThrow:
		return map[string]any{
			"type":      "SAVING_THROW",
			"combatant": v.CombatantID,
			"spell":     v.SpellID,
			"roll":      v.Roll,
			"total":     v.Total,
			"threshold": v.Threshold,
			"saved":     v.Saved,
		}
	case EventItemUsed:
		return map[string]any{
			"type":      "ITEM_USED",
			"combatant": v.CombatantID,
			"item":      v.Item,
			"targets":   copyStrings(v.Targets),
		}
	case EventDamage:
		return map[string]any{
			"type":     "DAMAGE",
			"source":   v.Source,
			"target":   v.Target,
			"amount":   v.Amount,
			"hp_after": v.HPAfter,
		}
	case EventHealed:
		return map[string]any{
			"type":     "HEALED",
			"source":   v.Source,
			"target":   v.Target,
			"amount":   v.Amount,
			"hp_after": v.HPAfter,
		}
	case EventSlotConsumed:
		return map[string]any{
			"type":      "SLOT_CONSUMED",
			"caster":    v.Caster,
			"level":     v.Level,
			"remaining": v.Remaining,
		}
	case EventConditionApplied:
		return map[string]any{
			"type":      "CONDITION_APPLIED",
			"source":    v.Source,
			"target":    v.Target,
			"condition": v.ConditionID,
			"rounds":    v.Rounds,
		}
	case EventModifierExpired:
		return map[string]any{
			"type":      "MODIFIER_EXPIRED",
			"combatant": v.CombatantID,
			"modifier":  v.ModifierID,
		}
	case EventDeath:
		return map[string]any{
			"type":      "DEATH",
			"combatant": v.CombatantID,
		}
	case EventFled:
		return map[string]any{
			"type":      "FLED",
			"combatant": v.CombatantID,
			"voluntary": v.Voluntary,
		}
	case EventEncounterEnded:
		return map[string]any{
			"type":    "ENCOUNTER_ENDED",
			"outcome": v.Outcome.String(),
			"rounds":  v.Rounds,
		}
	default:
		// The event set is closed; an unknown variant is a programming error.
		panic(fmt.Sprintf("encounter: Serialize on unknown event %T", ev))
	}
}

// SerializeIntent converts an intent into a JSON-safe key-value structure
// with a "type" discriminator.
func SerializeIntent(in action.Intent) map[string]any {
	switch v := in.(type) {
	case action.MeleeAttack:
		return map[string]any{
			"type":   "MELEE_ATTACK",
			"actor":  v.Actor,
			"target": v.Target,
		}
	case action.RangedAttack:
		return map[string]any{
			"type":   "RANGED_ATTACK",
			"actor":  v.Actor,
			"target": v.Target,
		}
	case action.CastSpell:
		return map[string]any{
			"type":       "CAST_SPELL",
			"actor":      v.Actor,
			"spell":      v.SpellID,
			"slot_level": v.SlotLevel,
			"targets":    copyStrings(v.Targets),
		}
	case action.UseItem:
		return map[string]any{
			"type":    "USE_ITEM",
			"actor":   v.Actor,
			"item":    v.Item,
			"targets": copyStrings(v.Targets),
		}
	case action.Flee:
		return map[string]any{
			"type":  "FLEE",
			"actor": v.Actor,
		}
	default:
		panic(fmt.Sprintf("encounter: SerializeIntent on unknown intent %T", in))
	}
}

// serializeChoices projects offered choices, injecting the display label next
// to each serialized intent.
func serializeChoices(choices []tactic.Choice) []map[string]any {
	out := make([]map[string]any, 0, len(choices))
	for _, c := range choices {
		out = append(out, map[string]any{
			"label":  c.Label,
			"intent": SerializeIntent(c.Intent),
		})
	}
	return out
}

// copyStrings returns a non-nil copy of s.
func copyStrings(s []string) []string {
	cp := make([]string, len(s))
	copy(cp, s)
	return cp
}
